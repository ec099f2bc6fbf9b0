// internal/services/transformer_service_test.go
package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crunchvision/boxstylemcp/internal/models"
)

func mascotRules(t *testing.T) (*models.CategoryRules, models.TransformationMaps) {
	t.Helper()
	catalog := newTestCatalog(t)
	rules, err := catalog.GetCategory("mascot_theater")
	require.NoError(t, err)
	return rules, catalog.Maps()
}

func chefComponents() *models.ComponentSet {
	return &models.ComponentSet{
		Subject: models.Subject{
			Type:       models.SubjectHuman,
			Name:       "chef",
			Attributes: []string{"happy"},
			Profession: "chef",
			Count:      1,
		},
		Action: models.Action{
			Verb:        "cooking",
			EnergyLevel: models.EnergyMedium,
			Object:      "soup",
			Progressive: true,
		},
		Setting: models.Setting{Type: "indoor_specific", Location: "kitchen"},
		Objects: []string{},
		Colors:  []string{},
		Mood:    models.Mood{Emotion: "happy", Valence: "positive", Intensity: "medium"},
	}
}

func TestTransformSubjectMascot(t *testing.T) {
	rules, maps := mascotRules(t)
	tr := NewTransformerService()

	result := tr.Apply(chefComponents(), rules, maps, nil)

	assert.Contains(t, result.Subject, "cartoon mascot")
	assert.Contains(t, result.Subject, "chef")
	assert.Contains(t, result.Subject, "with oversized white chef hat and red neckerchief")
	// The happy attribute renders as a mascot face
	assert.Contains(t, result.Subject, "wide smile with sparkles in eyes")
}

func TestTransformSubjectUnknownAttribute(t *testing.T) {
	rules, maps := mascotRules(t)
	tr := NewTransformerService()

	components := chefComponents()
	components.Subject.Attributes = []string{"grumpy"}

	result := tr.Apply(components, rules, maps, nil)
	assert.Contains(t, result.Subject, "grumpy appearance")
}

func TestTransformActionExaggeration(t *testing.T) {
	rules, maps := mascotRules(t)
	tr := NewTransformerService()

	result := tr.Apply(chefComponents(), rules, maps, nil)

	assert.Contains(t, result.Action, "cooking with animated motion")
	assert.Contains(t, result.Action, "with comically oversized soup")
}

func TestTransformActionNeutralPose(t *testing.T) {
	rules, maps := mascotRules(t)
	tr := NewTransformerService()

	components := chefComponents()
	components.Action = models.Action{EnergyLevel: models.EnergyLow}

	result := tr.Apply(components, rules, maps, nil)
	assert.Equal(t, "in neutral pose", result.Action)
}

func TestTransformActionIntensifiedEffects(t *testing.T) {
	rules, maps := mascotRules(t)
	tr := NewTransformerService()

	overdriven := models.StyleParams{EnergyLevel: 1.5, CompositionDensity: 0.7}
	result := tr.Apply(chefComponents(), rules, maps, &overdriven)
	assert.Contains(t, result.Action, "motion lines intensified")

	// No preset reaches past 1.0, so preset-driven output never intensifies
	for _, preset := range models.VariantPresets() {
		p := preset
		result := tr.Apply(chefComponents(), rules, maps, &p)
		assert.NotContains(t, result.Action, " intensified", p.Name)
	}
}

func TestTransformColorsMappingAndAccent(t *testing.T) {
	rules, maps := mascotRules(t)
	tr := NewTransformerService()

	components := chefComponents()
	components.Colors = []string{"red", "blue"}

	result := tr.Apply(components, rules, maps, nil)
	assert.Contains(t, result.Colors, "cherry red, bright primary blue, with complementary accent")
	assert.Contains(t, result.Colors, "maximum saturation")
	assert.Contains(t, result.Colors, "flat colors with no gradients")
	assert.Contains(t, result.Colors, "limited to 4 colors maximum")
}

func TestTransformColorsCapDropsAccent(t *testing.T) {
	rules, maps := mascotRules(t)
	tr := NewTransformerService()

	components := chefComponents()
	components.Colors = []string{"red", "blue", "green"}

	// The accent joins before the cap, so three extracted colors push it out
	result := tr.Apply(components, rules, maps, nil)
	assert.Contains(t, result.Colors, "cherry red, bright primary blue, lime green")
	assert.NotContains(t, result.Colors, "complementary accent")
}

func TestTransformColorsDefaultPalette(t *testing.T) {
	rules, maps := mascotRules(t)
	tr := NewTransformerService()

	result := tr.Apply(chefComponents(), rules, maps, nil)
	assert.Equal(t, "bright primary colors (red, blue, yellow), maximum saturation", result.Colors)
}

func TestTransformEffectsDensity(t *testing.T) {
	rules, maps := mascotRules(t)
	tr := NewTransformerService()

	countEffects := func(density float64) int {
		p := models.StyleParams{EnergyLevel: 1.0, CompositionDensity: density}
		result := tr.Apply(chefComponents(), rules, maps, &p)
		return len(strings.Split(result.Effects, ", "))
	}

	assert.Equal(t, 2, countEffects(0.4))
	assert.Equal(t, 3, countEffects(0.7))
	assert.Equal(t, len(rules.Effects), countEffects(1.0))
}

func TestApplyPartialParamsKeepsDefaults(t *testing.T) {
	rules, maps := mascotRules(t)
	tr := NewTransformerService()

	// Only saturation supplied: the zero density and energy must behave
	// like the defaults, not like an ultra-sparse low-energy request
	partial := models.StyleParams{ColorSaturation: "neon"}
	withPartial := tr.Apply(chefComponents(), rules, maps, &partial)
	withNil := tr.Apply(chefComponents(), rules, maps, nil)

	assert.Equal(t, withNil.Effects, withPartial.Effects)
	assert.Equal(t, withNil.Action, withPartial.Action)
	assert.Contains(t, withPartial.Colors, "neon saturation")
	assert.NotContains(t, withPartial.Action, " intensified")
}

func TestTransformTypographySuffix(t *testing.T) {
	rules, maps := mascotRules(t)
	tr := NewTransformerService()

	result := tr.Apply(chefComponents(), rules, maps, nil)
	assert.Contains(t, result.Typography, "'CHEF CRUNCH'")
	assert.Contains(t, result.Typography, "bubbly curved typography")
}

func TestTransformTypographyEraAware(t *testing.T) {
	catalog := newTestCatalog(t)
	rules, err := catalog.GetCategory("nostalgia_revival")
	require.NoError(t, err)
	tr := NewTransformerService()

	components := chefComponents()
	components.Subject = models.Subject{Type: models.SubjectHuman, Name: "knight", Attributes: []string{}, Count: 1}

	result := tr.Apply(components, rules, catalog.Maps(), nil)
	assert.Contains(t, result.Typography, "KNIGHT - SINCE 1970")
	assert.Contains(t, result.Typography, "1970s")

	fifties := models.StyleParams{EnergyLevel: 1.0, CompositionDensity: 0.7, Era: "1950s"}
	result = tr.Apply(components, rules, catalog.Maps(), &fifties)
	assert.Contains(t, result.Typography, "KNIGHT - SINCE 1950")
}

func TestTransformSettingFantasyMapping(t *testing.T) {
	catalog := newTestCatalog(t)
	rules, err := catalog.GetCategory("adventure_fantasy")
	require.NoError(t, err)
	tr := NewTransformerService()

	result := tr.Apply(chefComponents(), rules, catalog.Maps(), nil)
	assert.Contains(t, result.Setting, "alchemist's laboratory")

	// Categories without a fantasy rule keep the mundane location
	mascot, _ := mascotRules(t)
	result = tr.Apply(chefComponents(), mascot, catalog.Maps(), nil)
	assert.Contains(t, result.Setting, "kitchen")
}

func TestTransformStyleMarkers(t *testing.T) {
	rules, maps := mascotRules(t)
	tr := NewTransformerService()

	result := tr.Apply(chefComponents(), rules, maps, nil)
	assert.Equal(t, rules.MandatoryMarkers, result.StyleMarkers)
}
