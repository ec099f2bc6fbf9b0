// internal/services/transformer_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/crunchvision/boxstylemcp/internal/models"
)

// TransformerService applies one category's rule set to a parsed component
// set. It is total over valid inputs: a missing per-type rule degrades to a
// generic phrase built from the raw extraction, never an error.
type TransformerService struct{}

// NewTransformerService creates the transformer.
func NewTransformerService() *TransformerService {
	return &TransformerService{}
}

// Apply transforms every component under the given rules. A nil params means
// the default style parameters; unset numeric fields of a partial params take
// their defaults too.
func (s *TransformerService) Apply(
	components *models.ComponentSet,
	rules *models.CategoryRules,
	maps models.TransformationMaps,
	params *models.StyleParams,
) *models.TransformedComponents {
	p := models.DefaultStyleParams()
	if params != nil {
		p = params.WithDefaults()
	}

	transformed := &models.TransformedComponents{
		Subject:      s.transformSubject(components.Subject, rules, maps),
		Action:       s.transformAction(components.Action, rules, p),
		Setting:      s.transformSetting(components.Setting, rules, maps),
		Colors:       s.transformColors(components.Colors, rules, p),
		Effects:      s.transformEffects(rules, p),
		StyleMarkers: rules.MandatoryMarkers,
	}

	if rules.Typography != nil {
		transformed.Typography = s.transformTypography(components.Subject, rules.Typography, p)
	}

	return transformed
}

// transformSubject renders the subject fragment. With no rule entry for the
// subject type, the bare name is emitted.
func (s *TransformerService) transformSubject(subject models.Subject, rules *models.CategoryRules, maps models.TransformationMaps) string {
	subjectType := subject.Type
	if subjectType == "" {
		subjectType = models.SubjectAbstract
	}

	name := subject.Name
	if name == "" {
		name = "character"
	}

	rule, ok := rules.SubjectRules[subjectType]
	if !ok {
		return name
	}

	parts := []string{strings.ReplaceAll(rule.Treatment, "_", " "), name}

	if subject.Profession != "" {
		if prop, found := maps.ProfessionToIconProps[subject.Profession]; found {
			parts = append(parts, "with "+prop)
		}
	}

	parts = append(parts, rule.Features...)
	parts = append(parts, rule.Attributes...)

	// Attributes from the prompt: emotions become facial descriptions
	for _, attr := range subject.Attributes {
		if face, found := maps.EmotionToMascotFace[attr]; found {
			parts = append(parts, face)
		} else {
			parts = append(parts, attr+" appearance")
		}
	}

	return strings.Join(parts, ", ")
}

// transformAction renders the action fragment for the extracted energy tier,
// falling back to the low-energy entry when the tier is absent.
func (s *TransformerService) transformAction(action models.Action, rules *models.CategoryRules, params models.StyleParams) string {
	if action.Verb == "" {
		return "in neutral pose"
	}

	energyKey := action.EnergyLevel + "_energy"
	rule, ok := rules.ActionRules[energyKey]
	if !ok {
		rule, ok = rules.ActionRules["low_energy"]
		if !ok {
			return action.Verb
		}
	}

	effects := rule.Effects
	if params.EnergyLevel > 1.0 && len(effects) > 0 {
		intensified := make([]string, len(effects))
		for i, e := range effects {
			intensified[i] = e + " intensified"
		}
		effects = intensified
	}

	parts := []string{action.Verb + " with " + rule.Treatment}
	parts = append(parts, rule.Features...)

	if action.Object != "" {
		if isExaggerationCategory(rules.Name) {
			parts = append(parts, "with comically oversized "+action.Object)
		} else {
			parts = append(parts, "with "+action.Object)
		}
	}

	if len(effects) > 0 {
		parts = append(parts, strings.Join(effects, ", "))
	}

	return strings.Join(parts, ", ")
}

// isExaggerationCategory marks categories that blow up action objects.
func isExaggerationCategory(category string) bool {
	return strings.Contains(category, "mascot") || strings.Contains(category, "kid_chaos")
}

// transformSetting renders the setting fragment. Exact type lookup first,
// then the coarse indoor/outdoor/abstract bucket, then a bare background.
// Categories with a fantasy setting rule translate mundane locations through
// the fantasy map first.
func (s *TransformerService) transformSetting(setting models.Setting, rules *models.CategoryRules, maps models.TransformationMaps) string {
	settingType := setting.Type
	if settingType == "" {
		settingType = "abstract"
	}

	location := setting.Location
	if location == "" {
		location = "background"
	}

	if _, fantasy := rules.SettingRules["fantasy"]; fantasy {
		if mapped, ok := maps.LocationToFantasy[strings.ToLower(location)]; ok {
			location = mapped
		}
	}

	ruleKey := settingType
	if _, ok := rules.SettingRules[ruleKey]; !ok {
		switch {
		case strings.Contains(settingType, "indoor"):
			ruleKey = "indoor"
		case strings.Contains(settingType, "outdoor"):
			ruleKey = "outdoor"
		default:
			ruleKey = "abstract"
		}
	}

	rule, ok := rules.SettingRules[ruleKey]
	if !ok {
		return location + " background"
	}

	parts := []string{location + " " + rule.Treatment}
	if rule.Elements != "" {
		parts = append(parts, "with "+rule.Elements)
	}
	if rule.Background != "" {
		parts = append(parts, rule.Background)
	}

	if setting.Time != "" {
		parts = append(parts, "at "+setting.Time)
	}

	return strings.Join(parts, ", ")
}

// transformColors renders the palette fragment. Extracted colors are mapped
// through the category table (unmapped colors pass through) and capped at
// three rendered entries.
func (s *TransformerService) transformColors(colors []string, rules *models.CategoryRules, params models.StyleParams) string {
	colorRules := rules.ColorRules

	saturation := params.ColorSaturation
	if saturation == "" {
		saturation = colorRules.Saturation
	}
	if saturation == "" {
		saturation = "medium"
	}

	if len(colors) == 0 {
		defaultPalette := colorRules.DefaultPalette
		if defaultPalette == "" {
			defaultPalette = "natural balanced colors"
		}
		return defaultPalette + ", " + saturation + " saturation"
	}

	transformed := make([]string, 0, len(colors)+1)
	for _, color := range colors {
		if mapped, ok := colorRules.Mappings[color]; ok {
			transformed = append(transformed, mapped)
		} else {
			transformed = append(transformed, color)
		}
	}

	// The accent is appended before the cap, so it can be cut off
	if colorRules.AlwaysAdd == "complementary accent color" {
		transformed = append(transformed, "with complementary accent")
	}

	if len(transformed) > 3 {
		transformed = transformed[:3]
	}

	parts := []string{
		"color palette of " + strings.Join(transformed, ", "),
		saturation + " saturation",
	}

	if !colorRules.GradientsAllowed() {
		parts = append(parts, "flat colors with no gradients")
	}

	if colorRules.MaxColors > 0 {
		parts = append(parts, fmt.Sprintf("limited to %d colors maximum", colorRules.MaxColors))
	}

	return strings.Join(parts, ", ")
}

// transformEffects truncates the category effect list by composition
// density: under 0.5 keeps two, up to 0.8 keeps three, above that all.
func (s *TransformerService) transformEffects(rules *models.CategoryRules, params models.StyleParams) string {
	effects := rules.Effects

	switch {
	case params.CompositionDensity < 0.5:
		effects = truncateEffects(effects, 2)
	case params.CompositionDensity > 0.8:
		// full list
	default:
		effects = truncateEffects(effects, 3)
	}

	return strings.Join(effects, ", ")
}

func truncateEffects(effects []string, n int) []string {
	if len(effects) > n {
		return effects[:n]
	}
	return effects
}

// transformTypography renders the on-box text for categories that use it.
func (s *TransformerService) transformTypography(subject models.Subject, spec *models.TypographySpec, params models.StyleParams) string {
	base := subject.Profession
	if base == "" {
		base = subject.Name
	}
	if base == "" {
		base = "AWESOME"
	}
	base = strings.ToUpper(base)

	era := params.Era
	if era == "" {
		era = "1970s"
	}

	var text string
	if spec.EraAware {
		year := era
		if len(year) > 4 {
			year = year[:4]
		}
		text = base + " - SINCE " + year
	} else if spec.Suffix != "" {
		text = base + " " + spec.Suffix
	} else {
		text = base
	}

	rendered := strings.ReplaceAll(spec.Style, "{text}", text)
	rendered = strings.ReplaceAll(rendered, "{era}", era)
	return rendered
}
