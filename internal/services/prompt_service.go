// internal/services/prompt_service.go
package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/crunchvision/boxstylemcp/internal/errors"
	"github.com/crunchvision/boxstylemcp/internal/models"
)

// universalNegatives lead every negative prompt, before the category's own
// negative list. No deduplication.
var universalNegatives = []string{
	"blurry",
	"low quality",
	"distorted",
	"deformed",
	"watermark",
	"text overlay",
	"signature",
	"cropped",
	"out of frame",
}

// Category affinity groups for suggestion scoring.
var (
	highEnergyCategories = map[string]bool{"kid_chaos": true, "mascot_theater": true}
	lowEnergyCategories  = map[string]bool{"health_halo": true, "premium_disruptor": true}
)

// PromptService runs the full pipeline: parse, weight, transform, assemble,
// refine, and variant generation. Everything except Refine is pure; the
// shared catalog is immutable, so concurrent requests need no coordination.
type PromptService struct {
	Catalog     *CatalogService
	Parser      *ParserService
	Transformer *TransformerService
}

// NewPromptService wires the pipeline services together.
func NewPromptService(catalog *CatalogService, parser *ParserService, transformer *TransformerService) *PromptService {
	return &PromptService{
		Catalog:     catalog,
		Parser:      parser,
		Transformer: transformer,
	}
}

// Parse extracts components from raw text and attaches semantic weights.
func (s *PromptService) Parse(text string) *models.ComponentSet {
	components := s.Parser.Parse(text)
	components.SemanticWeights = s.CalculateSemanticWeights(components)
	return components
}

// CalculateSemanticWeights scores each component 0-100 by presence and
// specificity, normalized so that the scores sum to 100 (barring integer
// truncation) whenever anything scored at all.
func (s *PromptService) CalculateSemanticWeights(components *models.ComponentSet) models.SemanticWeights {
	weights := models.SemanticWeights{
		models.ComponentSubject: 0,
		models.ComponentAction:  0,
		models.ComponentSetting: 0,
		models.ComponentObjects: 0,
		models.ComponentColors:  0,
		models.ComponentMood:    0,
	}

	// Base scores for presence
	if components.Subject.Name != "" {
		weights[models.ComponentSubject] = 40
	}
	if components.Action.Verb != "" {
		weights[models.ComponentAction] = 30
	}
	if components.Setting.Location != "" {
		weights[models.ComponentSetting] = 15
	}
	if len(components.Objects) > 0 {
		weights[models.ComponentObjects] = 10
	}
	if components.Mood.Emotion != "" {
		weights[models.ComponentMood] = 5
	}

	// Specificity bonuses
	if len(components.Subject.Attributes) > 1 || components.Subject.Profession != "" {
		weights[models.ComponentSubject] += 10
	}
	if components.Action.EnergyLevel == models.EnergyHigh || components.Action.EnergyLevel == "extreme" {
		weights[models.ComponentAction] += 10
	}
	if strings.HasSuffix(components.Setting.Type, "_specific") {
		weights[models.ComponentSetting] += 10
	}

	total := 0
	for _, w := range weights {
		total += w
	}

	if total > 0 {
		for key, w := range weights {
			weights[key] = int(float64(w) / float64(total) * 100)
		}
	}

	return weights
}

// SuggestCategory ranks every catalog category against the parsed
// components. Ties keep catalog order.
func (s *PromptService) SuggestCategory(components *models.ComponentSet) *models.CategorySuggestion {
	type ranked struct {
		name    string
		score   int
		reasons []string
	}

	// Trigger keywords match against the stringified component set
	promptText := strings.ToLower(stringifyComponents(components))

	scores := make(map[string]int)
	rankings := make([]ranked, 0, len(s.Catalog.CategoryNames()))

	for _, name := range s.Catalog.CategoryNames() {
		rules, err := s.Catalog.GetCategory(name)
		if err != nil {
			continue
		}

		entry := ranked{name: name}

		if contains(rules.IdealSubjects, components.Subject.Type) {
			entry.score += 3
			entry.reasons = append(entry.reasons,
				fmt.Sprintf("Subject type '%s' is ideal for this category", components.Subject.Type))
		}

		if components.Mood.Emotion != "" && contains(rules.CompatibleMoods, components.Mood.Emotion) {
			entry.score += 2
			entry.reasons = append(entry.reasons,
				fmt.Sprintf("Mood '%s' aligns with category aesthetic", components.Mood.Emotion))
		}

		energy := components.Action.EnergyLevel
		if energy == "" {
			energy = models.EnergyMedium
		}
		if highEnergyCategories[name] && (energy == models.EnergyHigh || energy == "extreme") {
			entry.score += 2
			entry.reasons = append(entry.reasons, "High energy matches dynamic category")
		} else if lowEnergyCategories[name] && energy == models.EnergyLow {
			entry.score += 2
			entry.reasons = append(entry.reasons, "Low energy suits minimalist aesthetic")
		}

		for _, keyword := range rules.TriggerKeywords {
			if strings.Contains(promptText, keyword) {
				entry.score++
			}
		}

		scores[name] = entry.score
		rankings = append(rankings, entry)
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].score > rankings[j].score
	})

	suggestion := &models.CategorySuggestion{
		PrimarySuggestion: rankings[0].name,
		Alternatives:      []string{},
		Scores:            scores,
		Reasoning:         "General compatibility",
	}

	for _, entry := range rankings[1:] {
		if len(suggestion.Alternatives) == 2 {
			break
		}
		suggestion.Alternatives = append(suggestion.Alternatives, entry.name)
	}

	if len(rankings[0].reasons) > 0 {
		suggestion.Reasoning = strings.Join(rankings[0].reasons, "; ")
	}

	return suggestion
}

// stringifyComponents produces the deterministic text the keyword scorer
// searches.
func stringifyComponents(components *models.ComponentSet) string {
	raw, err := json.Marshal(components)
	if err != nil {
		return ""
	}
	return string(raw)
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// Transform applies one category's rules to the components.
func (s *PromptService) Transform(components *models.ComponentSet, category string, params *models.StyleParams) (*models.TransformedComponents, error) {
	rules, err := s.Catalog.GetCategory(category)
	if err != nil {
		return nil, err
	}

	return s.Transformer.Apply(components, rules, s.Catalog.Maps(), params), nil
}

// Assemble orders the transformed fragments by the category's emphasis order
// and weights, and attaches the negative prompt and token estimate.
func (s *PromptService) Assemble(transformed *models.TransformedComponents, category string, weights models.SemanticWeights) (*models.PromptSkeleton, error) {
	rules, err := s.Catalog.GetCategory(category)
	if err != nil {
		return nil, err
	}

	template, err := s.Catalog.Template(category)
	if err != nil {
		return nil, err
	}

	fragments := transformed.Fragments()
	byName := make(map[string]string, len(fragments))
	for _, f := range fragments {
		byName[f.Name] = f.Value
	}

	// Emphasis order first, then any remaining non-empty fragments in their
	// natural order
	sections := make([]models.PromptSection, 0, len(fragments))
	placed := make(map[string]bool, len(fragments))
	for _, name := range template.EmphasisOrder {
		if value, ok := byName[name]; ok && value != "" {
			sections = append(sections, models.PromptSection{Name: name, Value: value})
			placed[name] = true
		}
	}
	for _, f := range fragments {
		if !placed[f.Name] && f.Value != "" {
			sections = append(sections, models.PromptSection{Name: f.Name, Value: f.Value})
		}
	}

	emphasis := make(map[string]float64, len(weights))
	for component, weight := range weights {
		emphasis[component] = emphasisMultiplier(weight)
	}

	negatives := make([]string, 0, len(universalNegatives)+len(rules.NegativePrompts))
	negatives = append(negatives, universalNegatives...)
	negatives = append(negatives, rules.NegativePrompts...)

	skeleton := &models.PromptSkeleton{
		Sections:       sections,
		Emphasis:       emphasis,
		Template:       template,
		NegativePrompt: strings.Join(negatives, ", "),
		Metadata: models.SkeletonMetadata{
			Category:          category,
			ReadyForSynthesis: true,
		},
	}
	skeleton.Metadata.EstimatedTokens = skeleton.EstimateTokens()

	return skeleton, nil
}

// emphasisMultiplier maps a semantic weight to its tier. Thresholds are
// strictly greater-than: exactly 60 lands in the 1.15 tier, exactly 40 in
// the 1.0 tier, exactly 20 in the 0.85 tier.
func emphasisMultiplier(weight int) float64 {
	switch {
	case weight > 60:
		return 1.3
	case weight > 40:
		return 1.15
	case weight > 20:
		return 1.0
	default:
		return 0.85
	}
}

// Refine replaces one named section's value in place, appends the component
// name to the modification history and recomputes the token estimate. The
// skeleton is untouched when the component is unknown.
func (s *PromptService) Refine(skeleton *models.PromptSkeleton, componentName, newValue string) error {
	if !skeleton.SetSection(componentName, newValue) {
		return apperrors.NewUnknownComponentError(componentName, skeleton.SectionNames())
	}

	skeleton.Metadata.UserModifications = append(skeleton.Metadata.UserModifications, componentName)
	skeleton.Metadata.EstimatedTokens = skeleton.EstimateTokens()
	return nil
}

// GenerateVariants runs the transform/assemble pipeline once per preset, in
// preset order. Count must be within [1,5].
func (s *PromptService) GenerateVariants(components *models.ComponentSet, category string, count int) ([]models.Variant, error) {
	if count < 1 || count > 5 {
		return nil, apperrors.NewInvalidCountError(count)
	}

	weights := components.SemanticWeights
	if weights == nil {
		weights = s.CalculateSemanticWeights(components)
	}

	presets := models.VariantPresets()
	variants := make([]models.Variant, 0, count)

	for i := 0; i < count; i++ {
		params := presets[i]

		transformed, err := s.Transform(components, category, &params)
		if err != nil {
			return nil, err
		}

		skeleton, err := s.Assemble(transformed, category, weights)
		if err != nil {
			return nil, err
		}

		variants = append(variants, models.Variant{
			Name:        fmt.Sprintf("Variant %d (%s)", i+1, params.Name),
			StyleParams: params,
			Skeleton:    skeleton,
		})
	}

	return variants, nil
}
