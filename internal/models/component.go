// internal/models/component.go
package models

// Component names shared by weights, emphasis and skeleton sections
const (
	ComponentSubject      = "subject"
	ComponentAction       = "action"
	ComponentSetting      = "setting"
	ComponentObjects      = "objects"
	ComponentColors       = "colors"
	ComponentMood         = "mood"
	ComponentEffects      = "effects"
	ComponentStyleMarkers = "style_markers"
	ComponentTypography   = "typography"
)

// Subject types recognized by the extractor
const (
	SubjectHuman    = "human"
	SubjectAnimal   = "animal"
	SubjectObject   = "object"
	SubjectFood     = "food"
	SubjectAbstract = "abstract"
)

// Energy levels for actions
const (
	EnergyLow    = "low"
	EnergyMedium = "medium"
	EnergyHigh   = "high"
)

// Subject is the primary figure of the prompt
type Subject struct {
	Type       string   `json:"type"`                 // human/animal/object/food/abstract
	Name       string   `json:"name"`                 // matched noun, empty when abstract
	Attributes []string `json:"attributes"`           // adjectives preceding the subject
	Profession string   `json:"profession,omitempty"` // set only for known professions
	Count      int      `json:"count"`                // 0 when no subject matched
}

// Action is the verb plus its energy tier
type Action struct {
	Verb        string `json:"verb"`
	EnergyLevel string `json:"energy_level"` // low/medium/high
	Object      string `json:"object,omitempty"`
	Modifier    string `json:"modifier,omitempty"`
	Progressive bool   `json:"progressive"`
}

// Setting is the environment the subject is placed in
type Setting struct {
	Type       string   `json:"type"` // indoor_specific/indoor_generic/outdoor_natural/outdoor_urban/fantasy/abstract
	Location   string   `json:"location"`
	Attributes []string `json:"attributes"`
	Time       string   `json:"time,omitempty"` // time-of-day token if present
}

// Mood is the emotional tone of the prompt
type Mood struct {
	Emotion   string `json:"emotion"`
	Valence   string `json:"valence"`   // positive/negative/neutral
	Intensity string `json:"intensity"` // low/medium/high
}

// SemanticWeights maps component name to a 0-100 importance score.
// Scores are truncated during normalization, so they sum to at most 100.
type SemanticWeights map[string]int

// ComponentSet is the full parsed representation of one prompt.
// Produced once per input text by the parser service; immutable afterwards.
type ComponentSet struct {
	Subject         Subject         `json:"subject"`
	Action          Action          `json:"action"`
	Setting         Setting         `json:"setting"`
	Objects         []string        `json:"objects"`
	Colors          []string        `json:"colors"`
	Mood            Mood            `json:"mood"`
	SemanticWeights SemanticWeights `json:"semantic_weights,omitempty"`
}
