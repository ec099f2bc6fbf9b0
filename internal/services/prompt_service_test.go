// internal/services/prompt_service_test.go
package services

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/crunchvision/boxstylemcp/internal/errors"
	"github.com/crunchvision/boxstylemcp/internal/models"
)

func newTestPipeline(t *testing.T) *PromptService {
	t.Helper()
	catalog := newTestCatalog(t)
	parser := NewParserService(catalog.Maps())
	return NewPromptService(catalog, parser, NewTransformerService())
}

func TestSemanticWeightsSumAfterNormalization(t *testing.T) {
	pipeline := newTestPipeline(t)

	components := pipeline.Parse("a happy chef cooking soup")
	weights := components.SemanticWeights

	// Presence: subject 40+10 (profession), action 30, mood 5. Normalized
	// with truncation, so the sum lands just under 100.
	assert.Equal(t, 58, weights[models.ComponentSubject])
	assert.Equal(t, 35, weights[models.ComponentAction])
	assert.Equal(t, 5, weights[models.ComponentMood])
	assert.Equal(t, 0, weights[models.ComponentSetting])
	assert.Equal(t, 0, weights[models.ComponentObjects])
	assert.Equal(t, 0, weights[models.ComponentColors])

	total := 0
	for _, w := range weights {
		total += w
	}
	assert.LessOrEqual(t, total, 100)
	assert.GreaterOrEqual(t, total, 95)
}

func TestSemanticWeightsAllZeroWhenNothingMatches(t *testing.T) {
	pipeline := newTestPipeline(t)

	components := pipeline.Parse("qwerty asdf")
	for name, w := range components.SemanticWeights {
		assert.Zero(t, w, name)
	}
}

func TestSemanticWeightsSettingSpecificityBonus(t *testing.T) {
	pipeline := newTestPipeline(t)

	// indoor_specific earns the setting bonus: 15+10 of 25 total
	components := pipeline.Parse("inside the kitchen")
	weights := components.SemanticWeights
	assert.Equal(t, 100, weights[models.ComponentSetting])
}

func TestEmphasisMultiplierTiers(t *testing.T) {
	cases := map[int]float64{
		61: 1.3,
		60: 1.15,
		41: 1.15,
		40: 1.0,
		21: 1.0,
		20: 0.85,
		0:  0.85,
	}
	for weight, want := range cases {
		assert.Equal(t, want, emphasisMultiplier(weight), "weight %d", weight)
	}
}

func TestSuggestCategoryRanking(t *testing.T) {
	pipeline := newTestPipeline(t)

	components := pipeline.Parse("a happy chef cooking soup")
	suggestion := pipeline.SuggestCategory(components)

	// Human subject (+3) and happy mood (+2) put mascot_theater on top
	assert.Equal(t, "mascot_theater", suggestion.PrimarySuggestion)
	assert.Equal(t, 5, suggestion.Scores["mascot_theater"])
	assert.Len(t, suggestion.Alternatives, 2)
	assert.NotEmpty(t, suggestion.Reasoning)
	assert.Len(t, suggestion.Scores, 7)
}

func TestSuggestCategoryTieKeepsCatalogOrder(t *testing.T) {
	pipeline := newTestPipeline(t)

	// Nothing extractable leaves only the low-energy affinity bonus. Both
	// minimalist categories tie at 2; catalog order breaks the tie.
	components := pipeline.Parse("qwerty asdf")
	suggestion := pipeline.SuggestCategory(components)
	assert.Equal(t, "health_halo", suggestion.PrimarySuggestion)
	assert.Equal(t, 2, suggestion.Scores["health_halo"])
	assert.Equal(t, 2, suggestion.Scores["premium_disruptor"])
	assert.Equal(t, []string{"premium_disruptor", "mascot_theater"}, suggestion.Alternatives)
}

func TestAssembleSectionOrder(t *testing.T) {
	pipeline := newTestPipeline(t)

	components := pipeline.Parse("a happy chef cooking soup")
	transformed, err := pipeline.Transform(components, "mascot_theater", nil)
	require.NoError(t, err)

	skeleton, err := pipeline.Assemble(transformed, "mascot_theater", components.SemanticWeights)
	require.NoError(t, err)

	assert.Equal(t, []string{
		models.ComponentSubject,
		models.ComponentAction,
		models.ComponentEffects,
		models.ComponentSetting,
		models.ComponentColors,
		models.ComponentTypography,
		models.ComponentStyleMarkers,
	}, skeleton.SectionNames())

	assert.True(t, skeleton.Metadata.ReadyForSynthesis)
	assert.Equal(t, "mascot_theater", skeleton.Metadata.Category)
	assert.Positive(t, skeleton.Metadata.EstimatedTokens)
	assert.Equal(t, skeleton.EstimateTokens(), skeleton.Metadata.EstimatedTokens)
}

func TestAssembleNegativePrompt(t *testing.T) {
	pipeline := newTestPipeline(t)

	components := pipeline.Parse("a happy chef cooking soup")
	transformed, err := pipeline.Transform(components, "mascot_theater", nil)
	require.NoError(t, err)

	skeleton, err := pipeline.Assemble(transformed, "mascot_theater", components.SemanticWeights)
	require.NoError(t, err)

	// Universal list first, category list after, no deduplication
	assert.True(t, strings.HasPrefix(skeleton.NegativePrompt, "blurry, low quality"))
	assert.Contains(t, skeleton.NegativePrompt, "realistic")
	assert.Contains(t, skeleton.NegativePrompt, "photographic")
}

func TestAssembleEmphasisFromWeights(t *testing.T) {
	pipeline := newTestPipeline(t)

	components := pipeline.Parse("a happy chef cooking soup")
	transformed, err := pipeline.Transform(components, "mascot_theater", nil)
	require.NoError(t, err)

	skeleton, err := pipeline.Assemble(transformed, "mascot_theater", components.SemanticWeights)
	require.NoError(t, err)

	assert.Equal(t, 1.15, skeleton.Emphasis[models.ComponentSubject]) // weight 58
	assert.Equal(t, 1.0, skeleton.Emphasis[models.ComponentAction])   // weight 35
	assert.Equal(t, 0.85, skeleton.Emphasis[models.ComponentMood])    // weight 5
}

func TestTransformUnknownCategory(t *testing.T) {
	pipeline := newTestPipeline(t)

	components := pipeline.Parse("a happy chef cooking soup")
	_, err := pipeline.Transform(components, "bauhaus_brutalism", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnknownCategoryError(err))
}

func TestRefineReplacesSection(t *testing.T) {
	pipeline := newTestPipeline(t)
	skeleton := assembleChefSkeleton(t, pipeline)

	before := skeleton.Metadata.EstimatedTokens
	err := pipeline.Refine(skeleton, models.ComponentSetting, "tiny value")
	require.NoError(t, err)

	value, ok := skeleton.Section(models.ComponentSetting)
	require.True(t, ok)
	assert.Equal(t, "tiny value", value)
	assert.Equal(t, []string{models.ComponentSetting}, skeleton.Metadata.UserModifications)
	assert.NotEqual(t, before, skeleton.Metadata.EstimatedTokens)
}

func TestRefineUnknownComponentLeavesSkeletonUntouched(t *testing.T) {
	pipeline := newTestPipeline(t)
	skeleton := assembleChefSkeleton(t, pipeline)

	snapshot, err := json.Marshal(skeleton)
	require.NoError(t, err)

	err = pipeline.Refine(skeleton, "aroma", "fresh bread")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnknownComponentError(err))

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "aroma", appErr.Value)
	assert.Equal(t, skeleton.SectionNames(), appErr.Valid)

	after, err := json.Marshal(skeleton)
	require.NoError(t, err)
	assert.JSONEq(t, string(snapshot), string(after))
}

func TestGenerateVariantsCountValidation(t *testing.T) {
	pipeline := newTestPipeline(t)
	components := pipeline.Parse("a happy chef cooking soup")

	for _, count := range []int{0, -1, 6} {
		_, err := pipeline.GenerateVariants(components, "mascot_theater", count)
		require.Error(t, err, count)
		assert.True(t, apperrors.IsInvalidCountError(err), count)
	}
}

func TestGenerateVariantsPresetOrder(t *testing.T) {
	pipeline := newTestPipeline(t)
	components := pipeline.Parse("a happy chef cooking soup")

	variants, err := pipeline.GenerateVariants(components, "mascot_theater", 3)
	require.NoError(t, err)
	require.Len(t, variants, 3)

	assert.Equal(t, "Variant 1 (Subtle)", variants[0].Name)
	assert.Equal(t, "Variant 2 (Balanced)", variants[1].Name)
	assert.Equal(t, "Variant 3 (Intense)", variants[2].Name)

	// Density differences show up as effect counts
	subtle, _ := variants[0].Skeleton.Section(models.ComponentEffects)
	intense, _ := variants[2].Skeleton.Section(models.ComponentEffects)
	assert.Less(t, len(subtle), len(intense))
}

func TestGenerateVariantsDeterministic(t *testing.T) {
	pipeline := newTestPipeline(t)
	components := pipeline.Parse("a happy chef cooking soup")

	first, err := pipeline.GenerateVariants(components, "mascot_theater", 5)
	require.NoError(t, err)
	second, err := pipeline.GenerateVariants(components, "mascot_theater", 5)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(firstJSON), string(secondJSON))
}

func assembleChefSkeleton(t *testing.T, pipeline *PromptService) *models.PromptSkeleton {
	t.Helper()

	components := pipeline.Parse("a happy chef cooking soup")
	transformed, err := pipeline.Transform(components, "mascot_theater", nil)
	require.NoError(t, err)

	skeleton, err := pipeline.Assemble(transformed, "mascot_theater", components.SemanticWeights)
	require.NoError(t, err)
	return skeleton
}
