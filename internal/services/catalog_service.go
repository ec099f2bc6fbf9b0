// internal/services/catalog_service.go
package services

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/crunchvision/boxstylemcp/internal/data"
	apperrors "github.com/crunchvision/boxstylemcp/internal/errors"
	"github.com/crunchvision/boxstylemcp/internal/models"
	"github.com/crunchvision/boxstylemcp/internal/storage"
)

// catalogFile is the on-disk layout of categories.yaml.
type catalogFile struct {
	Metadata   models.CatalogMetadata `yaml:"metadata"`
	Categories []models.CategoryRules `yaml:"categories"`
}

// CatalogService loads the aesthetic rule catalog once at startup and serves
// it read-only afterwards. Catalog order is preserved: it is the tie-break
// order for category suggestions.
type CatalogService struct {
	metadata   models.CatalogMetadata
	categories map[string]*models.CategoryRules
	order      []string
	maps       models.TransformationMaps
	templates  map[string]models.Template
}

// NewCatalogService builds the catalog. Files under dataDir take precedence;
// missing files fall back to the embedded defaults. Any load or validation
// failure is a MissingRuleData error and should abort startup.
func NewCatalogService(dataDir string, fileCache *storage.FileCacheService) (*CatalogService, error) {
	svc := &CatalogService{
		categories: make(map[string]*models.CategoryRules),
		templates:  make(map[string]models.Template),
	}

	var catalog catalogFile
	if err := loadCatalogFile(dataDir, fileCache, "categories.yaml", data.Categories, &catalog); err != nil {
		return nil, apperrors.NewMissingRuleDataError("failed to load category catalog", err)
	}

	if err := loadCatalogFile(dataDir, fileCache, "transformation_maps.yaml", data.TransformationMaps, &svc.maps); err != nil {
		return nil, apperrors.NewMissingRuleDataError("failed to load transformation maps", err)
	}

	if err := loadCatalogFile(dataDir, fileCache, "templates.yaml", data.Templates, &svc.templates); err != nil {
		return nil, apperrors.NewMissingRuleDataError("failed to load prompt templates", err)
	}

	svc.metadata = catalog.Metadata
	for i := range catalog.Categories {
		cat := catalog.Categories[i]
		if cat.Name == "" {
			return nil, apperrors.NewMissingRuleDataError(
				fmt.Sprintf("category at index %d has no name", i), nil)
		}
		if _, dup := svc.categories[cat.Name]; dup {
			return nil, apperrors.NewMissingRuleDataError(
				fmt.Sprintf("duplicate category: %s", cat.Name), nil)
		}
		svc.categories[cat.Name] = &cat
		svc.order = append(svc.order, cat.Name)
	}

	if err := svc.validate(); err != nil {
		return nil, err
	}

	return svc, nil
}

// loadCatalogFile reads name from dataDir when present, otherwise decodes the
// embedded default bytes.
func loadCatalogFile(dataDir string, fileCache *storage.FileCacheService, name string, embedded []byte, target interface{}) error {
	if dataDir != "" && fileCache != nil {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err == nil {
			return fileCache.ReadYAML(path, target)
		}
	}

	if err := yaml.Unmarshal(embedded, target); err != nil {
		return fmt.Errorf("failed to parse embedded %s: %w", name, err)
	}
	return nil
}

// validate checks that every category carries the fields the pipeline
// depends on and has a matching template.
func (s *CatalogService) validate() error {
	if len(s.categories) == 0 {
		return apperrors.NewMissingRuleDataError("catalog contains no categories", nil)
	}

	for _, name := range s.order {
		cat := s.categories[name]
		switch {
		case cat.Description == "":
			return missingField(name, "description")
		case len(cat.VisualDNA) == 0:
			return missingField(name, "visual_dna")
		case len(cat.IdealSubjects) == 0:
			return missingField(name, "ideal_subjects")
		case len(cat.CompatibleMoods) == 0:
			return missingField(name, "compatible_moods")
		case len(cat.TriggerKeywords) == 0:
			return missingField(name, "trigger_keywords")
		case len(cat.SubjectRules) == 0:
			return missingField(name, "subject_rules")
		case len(cat.ActionRules) == 0:
			return missingField(name, "action_rules")
		case len(cat.SettingRules) == 0:
			return missingField(name, "setting_rules")
		case len(cat.MandatoryMarkers) == 0:
			return missingField(name, "mandatory_markers")
		case len(cat.NegativePrompts) == 0:
			return missingField(name, "negative_prompts")
		case cat.CoreIntention == "":
			return missingField(name, "core_intention")
		case cat.CompositionPrinciple == "":
			return missingField(name, "composition_principle")
		case cat.CommercialPromise == "":
			return missingField(name, "commercial_promise")
		}

		if _, ok := s.templates[name]; !ok {
			return apperrors.NewMissingRuleDataError(
				fmt.Sprintf("category %s has no prompt template", name), nil)
		}
	}

	return nil
}

func missingField(category, field string) error {
	return apperrors.NewMissingRuleDataError(
		fmt.Sprintf("category %s is missing %s", category, field), nil)
}

// Metadata returns the catalog descriptor.
func (s *CatalogService) Metadata() models.CatalogMetadata {
	return s.metadata
}

// CategoryNames returns the category names in catalog order.
func (s *CatalogService) CategoryNames() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// GetCategory returns the rule set for one category.
func (s *CatalogService) GetCategory(name string) (*models.CategoryRules, error) {
	cat, ok := s.categories[name]
	if !ok {
		return nil, apperrors.NewUnknownCategoryError(name, s.CategoryNames())
	}
	return cat, nil
}

// Summaries returns the listing view of every category.
func (s *CatalogService) Summaries() map[string]models.CategorySummary {
	summaries := make(map[string]models.CategorySummary, len(s.categories))
	for name, cat := range s.categories {
		summaries[name] = models.CategorySummary{
			Description:       cat.Description,
			VisualDNA:         cat.VisualDNA,
			IdealFor:          cat.IdealSubjects,
			MoodMatch:         cat.CompatibleMoods,
			CoreIntention:     cat.CoreIntention,
			CommercialPromise: cat.CommercialPromise,
		}
	}
	return summaries
}

// Intention returns the aesthetic reasoning view of one category.
func (s *CatalogService) Intention(name string) (*models.CategoryIntention, error) {
	cat, err := s.GetCategory(name)
	if err != nil {
		return nil, err
	}

	return &models.CategoryIntention{
		Category:             name,
		CoreIntention:        cat.CoreIntention,
		CommercialPromise:    cat.CommercialPromise,
		CompositionPrinciple: cat.CompositionPrinciple,
	}, nil
}

// Template returns the prompt layout for one category.
func (s *CatalogService) Template(name string) (models.Template, error) {
	tpl, ok := s.templates[name]
	if !ok {
		return models.Template{}, apperrors.NewUnknownCategoryError(name, s.CategoryNames())
	}
	return tpl, nil
}

// Maps returns the cross-category transformation lookup tables.
func (s *CatalogService) Maps() models.TransformationMaps {
	return s.maps
}
