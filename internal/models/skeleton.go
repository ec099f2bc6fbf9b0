// internal/models/skeleton.go
package models

// TransformedComponents is the result of pushing a ComponentSet through one
// category's rule set: one rendered text fragment per logical component.
type TransformedComponents struct {
	Subject      string   `json:"subject"`
	Action       string   `json:"action"`
	Setting      string   `json:"setting"`
	Colors       string   `json:"colors"`
	Effects      string   `json:"effects"`
	StyleMarkers []string `json:"style_markers"`
	Typography   string   `json:"typography,omitempty"`
}

// NamedFragment pairs a component name with its rendered text.
type NamedFragment struct {
	Name  string
	Value string
}

// Fragments returns the components as name/value pairs in their natural
// insertion order. Empty fragments are included; the assembler skips them.
func (tc TransformedComponents) Fragments() []NamedFragment {
	return []NamedFragment{
		{ComponentSubject, tc.Subject},
		{ComponentAction, tc.Action},
		{ComponentSetting, tc.Setting},
		{ComponentColors, tc.Colors},
		{ComponentEffects, tc.Effects},
		{ComponentStyleMarkers, joinMarkers(tc.StyleMarkers)},
		{ComponentTypography, tc.Typography},
	}
}

func joinMarkers(markers []string) string {
	out := ""
	for i, m := range markers {
		if i > 0 {
			out += ", "
		}
		out += m
	}
	return out
}

// PromptSection is one ordered fragment of the final prompt.
type PromptSection struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SkeletonMetadata tracks skeleton bookkeeping. EstimatedTokens is a pure
// function of the current section contents and is recomputed on every edit.
type SkeletonMetadata struct {
	Category          string   `json:"category"`
	EstimatedTokens   int      `json:"estimated_tokens"`
	ReadyForSynthesis bool     `json:"ready_for_synthesis"`
	UserModifications []string `json:"user_modifications,omitempty"`
}

// PromptSkeleton is the deliverable of the pipeline: ordered weighted
// fragments plus the matching negative prompt. A skeleton is not safe for
// concurrent mutation; the holder of a reference serializes its own edits.
type PromptSkeleton struct {
	ID             string             `json:"id,omitempty"`
	Sections       []PromptSection    `json:"sections"`
	Emphasis       map[string]float64 `json:"emphasis"`
	Template       Template           `json:"template"`
	NegativePrompt string             `json:"negative_prompt"`
	Metadata       SkeletonMetadata   `json:"metadata"`
}

// Section returns the value of the named section.
func (ps *PromptSkeleton) Section(name string) (string, bool) {
	for _, s := range ps.Sections {
		if s.Name == name {
			return s.Value, true
		}
	}
	return "", false
}

// SetSection replaces the value of the named section in place and reports
// whether the section existed.
func (ps *PromptSkeleton) SetSection(name, value string) bool {
	for i := range ps.Sections {
		if ps.Sections[i].Name == name {
			ps.Sections[i].Value = value
			return true
		}
	}
	return false
}

// SectionNames lists the current section keys in order.
func (ps *PromptSkeleton) SectionNames() []string {
	names := make([]string, 0, len(ps.Sections))
	for _, s := range ps.Sections {
		names = append(names, s.Name)
	}
	return names
}

// EstimateTokens computes the character-length/4 token heuristic over the
// current sections.
func (ps *PromptSkeleton) EstimateTokens() int {
	total := 0
	for _, s := range ps.Sections {
		total += len(s.Value)
	}
	return total / 4
}

// StyleParams is one style parameter bundle for the transformer.
type StyleParams struct {
	Name               string  `json:"name,omitempty"`
	EnergyLevel        float64 `json:"energy_level"`
	ColorSaturation    string  `json:"color_saturation,omitempty"`
	CompositionDensity float64 `json:"composition_density"`
	Era                string  `json:"era,omitempty"`
}

// WithDefaults fills unset numeric fields so a caller may supply only the
// fields it cares about. Zero is not a meaningful value for either field;
// every preset sets both explicitly.
func (sp StyleParams) WithDefaults() StyleParams {
	if sp.EnergyLevel == 0 {
		sp.EnergyLevel = 1.0
	}
	if sp.CompositionDensity == 0 {
		sp.CompositionDensity = 0.7
	}
	return sp
}

// DefaultStyleParams are the parameters used when the caller supplies none.
func DefaultStyleParams() StyleParams {
	return StyleParams{}.WithDefaults()
}

// VariantPresets returns the fixed, ordered parameter bundles driving
// variant generation.
func VariantPresets() []StyleParams {
	return []StyleParams{
		{Name: "Subtle", EnergyLevel: 0.5, ColorSaturation: "pastel", CompositionDensity: 0.4},
		{Name: "Balanced", EnergyLevel: 0.75, ColorSaturation: "bright", CompositionDensity: 0.7},
		{Name: "Intense", EnergyLevel: 1.0, ColorSaturation: "neon", CompositionDensity: 1.0},
		{Name: "Vintage", EnergyLevel: 0.6, ColorSaturation: "muted", CompositionDensity: 0.5, Era: "1970s"},
		{Name: "Dramatic", EnergyLevel: 0.9, ColorSaturation: "bold", CompositionDensity: 0.8},
	}
}

// Variant is one preset applied to the same parsed input.
type Variant struct {
	Name        string          `json:"name"`
	StyleParams StyleParams     `json:"style_params"`
	Skeleton    *PromptSkeleton `json:"skeleton"`
}
