// internal/models/category.go
package models

// SubjectRule describes how one subject type is rendered in a category.
type SubjectRule struct {
	Treatment  string   `json:"treatment" yaml:"treatment"`
	Features   []string `json:"features" yaml:"features"`
	Attributes []string `json:"attributes" yaml:"attributes"`
}

// ActionRule describes how one energy tier is rendered in a category.
type ActionRule struct {
	Treatment string   `json:"treatment" yaml:"treatment"`
	Features  []string `json:"features" yaml:"features"`
	Effects   []string `json:"effects" yaml:"effects"`
}

// SettingRule describes how one setting type is rendered in a category.
type SettingRule struct {
	Treatment  string `json:"treatment" yaml:"treatment"`
	Elements   string `json:"elements" yaml:"elements"`
	Background string `json:"background" yaml:"background"`
}

// ColorRules describes a category's palette policy.
type ColorRules struct {
	Mappings       map[string]string `json:"mappings" yaml:"mappings"`
	AlwaysAdd      string            `json:"always_add,omitempty" yaml:"always_add"`
	Saturation     string            `json:"saturation" yaml:"saturation"`
	Gradients      *bool             `json:"gradients,omitempty" yaml:"gradients"`
	MaxColors      int               `json:"max_colors,omitempty" yaml:"max_colors"`
	DefaultPalette string            `json:"default_palette" yaml:"default_palette"`
}

// GradientsAllowed reports whether the category permits gradients.
// Unspecified means allowed.
func (cr ColorRules) GradientsAllowed() bool {
	return cr.Gradients == nil || *cr.Gradients
}

// TypographySpec is present only for categories that put text on the box.
// Style may contain the placeholders {text} and {era}.
type TypographySpec struct {
	Suffix   string `json:"suffix" yaml:"suffix"`
	Style    string `json:"style" yaml:"style"`
	EraAware bool   `json:"era_aware,omitempty" yaml:"era_aware"`
}

// CategoryRules holds the complete rule set for one aesthetic category.
// Loaded once at startup from the catalog data and never mutated.
type CategoryRules struct {
	Name                 string                 `json:"name" yaml:"name"`
	Description          string                 `json:"description" yaml:"description"`
	VisualDNA            []string               `json:"visual_dna" yaml:"visual_dna"`
	IdealSubjects        []string               `json:"ideal_subjects" yaml:"ideal_subjects"`
	CompatibleMoods      []string               `json:"compatible_moods" yaml:"compatible_moods"`
	TriggerKeywords      []string               `json:"trigger_keywords" yaml:"trigger_keywords"`
	CoreIntention        string                 `json:"core_intention" yaml:"core_intention"`
	CommercialPromise    string                 `json:"commercial_promise" yaml:"commercial_promise"`
	CompositionPrinciple string                 `json:"composition_principle" yaml:"composition_principle"`
	SubjectRules         map[string]SubjectRule `json:"subject_rules" yaml:"subject_rules"`
	ActionRules          map[string]ActionRule  `json:"action_rules" yaml:"action_rules"`
	SettingRules         map[string]SettingRule `json:"setting_rules" yaml:"setting_rules"`
	ColorRules           ColorRules             `json:"color_rules" yaml:"color_rules"`
	Effects              []string               `json:"effects" yaml:"effects"`
	Typography           *TypographySpec        `json:"typography,omitempty" yaml:"typography"`
	MandatoryMarkers     []string               `json:"mandatory_markers" yaml:"mandatory_markers"`
	NegativePrompts      []string               `json:"negative_prompts" yaml:"negative_prompts"`
}

// CategorySummary is the listing view of a category.
type CategorySummary struct {
	Description       string   `json:"description"`
	VisualDNA         []string `json:"visual_dna"`
	IdealFor          []string `json:"ideal_for"`
	MoodMatch         []string `json:"mood_match"`
	CoreIntention     string   `json:"core_intention"`
	CommercialPromise string   `json:"commercial_promise"`
}

// CategoryIntention is the aesthetic reasoning view of a category.
type CategoryIntention struct {
	Category             string `json:"category"`
	CoreIntention        string `json:"core_intention"`
	CommercialPromise    string `json:"commercial_promise"`
	CompositionPrinciple string `json:"composition_principle"`
}

// CategorySuggestion ranks categories against a parsed component set.
type CategorySuggestion struct {
	PrimarySuggestion string         `json:"primary_suggestion"`
	Alternatives      []string       `json:"alternatives"`
	Scores            map[string]int `json:"scores"`
	Reasoning         string         `json:"reasoning"`
}

// Template carries a category's prompt layout preferences.
type Template struct {
	EmphasisOrder []string `json:"emphasis_order" yaml:"emphasis_order"`
	Structure     string   `json:"structure" yaml:"structure"`
}

// TransformationMaps are the cross-category lookup tables.
type TransformationMaps struct {
	ProfessionToIconProps map[string]string `json:"profession_to_icon_props" yaml:"profession_to_icon_props"`
	EmotionToMascotFace   map[string]string `json:"emotion_to_mascot_face" yaml:"emotion_to_mascot_face"`
	LocationToFantasy     map[string]string `json:"location_to_fantasy" yaml:"location_to_fantasy"`
}

// CatalogMetadata describes the loaded rule catalog.
type CatalogMetadata struct {
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description" yaml:"description"`
}
