// internal/api/handlers.go
package api

import (
	"time"

	"github.com/crunchvision/boxstylemcp/internal/models"
	"github.com/crunchvision/boxstylemcp/internal/services"
	"github.com/crunchvision/boxstylemcp/internal/utils"
	"github.com/gin-gonic/gin"
)

// Handler processes API requests
type Handler struct {
	CatalogService *services.CatalogService // rule catalog
	PromptService  *services.PromptService  // parse/transform/assemble pipeline
	SkeletonStore  *services.SkeletonStore  // stored skeletons for refinement
	Metrics        *utils.PipelineMetrics   // pipeline counters
	Response       *ResponseHelper          // response helper
}

// ParseRequest carries free text to decompose
type ParseRequest struct {
	Text string `json:"text" binding:"required"`
}

// SuggestRequest carries free text, or an already-parsed (possibly edited)
// component set, to score against the catalog
type SuggestRequest struct {
	Text       string               `json:"text"`
	Components *models.ComponentSet `json:"components,omitempty"`
}

// TransformRequest applies a category's visual language to a prompt given as
// raw text or as an edited component set
type TransformRequest struct {
	Text       string               `json:"text"`
	Components *models.ComponentSet `json:"components,omitempty"`
	Category   string               `json:"category" binding:"required"`
	Params     *models.StyleParams  `json:"params,omitempty"`
}

// AssembleRequest builds a full skeleton from a prompt and a category
type AssembleRequest struct {
	Text       string               `json:"text"`
	Components *models.ComponentSet `json:"components,omitempty"`
	Category   string               `json:"category" binding:"required"`
	Params     *models.StyleParams  `json:"params,omitempty"`
}

// RefineRequest overwrites one skeleton section
type RefineRequest struct {
	Value string `json:"value" binding:"required"`
}

// VariantsRequest asks for count style variants of one prompt
type VariantsRequest struct {
	Text       string               `json:"text"`
	Components *models.ComponentSet `json:"components,omitempty"`
	Category   string               `json:"category" binding:"required"`
	Count      int                  `json:"count"`
}

// APIResponse is the standard response format
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"` // for debugging and tracing
}

// APIError is the standard error format. Value holds the rejected input and
// Valid the accepted alternatives, when known.
type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details string   `json:"details,omitempty"`
	Value   string   `json:"value,omitempty"`
	Valid   []string `json:"valid,omitempty"`
}

// NewHandler creates the API handler
func NewHandler(
	catalogService *services.CatalogService,
	promptService *services.PromptService,
	skeletonStore *services.SkeletonStore) *Handler {

	return &Handler{
		CatalogService: catalogService,
		PromptService:  promptService,
		SkeletonStore:  skeletonStore,
		Metrics:        utils.NewPipelineMetrics(),
		Response:       NewResponseHelper(),
	}
}

// resolveComponents favors a caller-supplied component set over re-parsing,
// so a client can edit a parse and run the rest of the pipeline on the edit.
// Weights are derived when the caller did not carry them over.
func (h *Handler) resolveComponents(text string, components *models.ComponentSet) (*models.ComponentSet, bool) {
	if components != nil {
		if components.SemanticWeights == nil {
			components.SemanticWeights = h.PromptService.CalculateSemanticWeights(components)
		}
		return components, true
	}
	if text == "" {
		return nil, false
	}
	return h.PromptService.Parse(text), true
}

// ParseText decomposes free text into semantic components with weights
func (h *Handler) ParseText(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "invalid request body", err.Error())
		return
	}

	components := h.PromptService.Parse(req.Text)
	h.Response.Success(c, components, "text parsed")
}

// GetCategories lists every category with its summary
func (h *Handler) GetCategories(c *gin.Context) {
	h.Response.Success(c, h.CatalogService.Summaries(), "categories listed")
}

// SuggestCategory scores the catalog against parsed text
func (h *Handler) SuggestCategory(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "invalid request body", err.Error())
		return
	}

	components, ok := h.resolveComponents(req.Text, req.Components)
	if !ok {
		h.Response.BadRequest(c, "text or components is required")
		return
	}
	suggestion := h.PromptService.SuggestCategory(components)

	h.Response.Success(c, suggestion, "category suggested")
}

// GetCategoryRules returns the full rule set for one category
func (h *Handler) GetCategoryRules(c *gin.Context) {
	name := c.Param("name")
	rules, err := h.CatalogService.GetCategory(name)
	if err != nil {
		h.Response.AppError(c, err)
		return
	}

	h.Response.Success(c, rules, "category rules")
}

// GetCategoryIntention returns the design intention behind one category
func (h *Handler) GetCategoryIntention(c *gin.Context) {
	name := c.Param("name")
	intention, err := h.CatalogService.Intention(name)
	if err != nil {
		h.Response.AppError(c, err)
		return
	}

	h.Response.Success(c, intention, "category intention")
}

// TransformText applies a category's visual language to parsed components
func (h *Handler) TransformText(c *gin.Context) {
	var req TransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "invalid request body", err.Error())
		return
	}

	components, ok := h.resolveComponents(req.Text, req.Components)
	if !ok {
		h.Response.BadRequest(c, "text or components is required")
		return
	}
	transformed, err := h.PromptService.Transform(components, req.Category, req.Params)
	if err != nil {
		h.Response.AppError(c, err)
		return
	}

	h.Metrics.RecordTransform(req.Category)
	h.Response.Success(c, transformed, "components transformed")
}

// CreateSkeleton runs the full pipeline and stores the result for refinement
func (h *Handler) CreateSkeleton(c *gin.Context) {
	var req AssembleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "invalid request body", err.Error())
		return
	}

	components, ok := h.resolveComponents(req.Text, req.Components)
	if !ok {
		h.Response.BadRequest(c, "text or components is required")
		return
	}
	transformed, err := h.PromptService.Transform(components, req.Category, req.Params)
	if err != nil {
		h.Response.AppError(c, err)
		return
	}

	skeleton, err := h.PromptService.Assemble(transformed, req.Category, components.SemanticWeights)
	if err != nil {
		h.Response.AppError(c, err)
		return
	}

	h.SkeletonStore.Save(skeleton)
	h.Metrics.RecordTransform(req.Category)
	h.Metrics.RecordTokenEstimate(skeleton.Metadata.EstimatedTokens)
	h.Response.Created(c, skeleton, "skeleton assembled")
}

// RefineSkeleton overwrites one section of a stored skeleton
func (h *Handler) RefineSkeleton(c *gin.Context) {
	id := c.Param("id")
	component := c.Param("component")

	var req RefineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "invalid request body", err.Error())
		return
	}

	skeleton, err := h.SkeletonStore.Update(id, func(skeleton *models.PromptSkeleton) error {
		return h.PromptService.Refine(skeleton, component, req.Value)
	})
	if err != nil {
		h.Response.AppError(c, err)
		return
	}

	h.Response.Success(c, skeleton, "section refined")
}

// GenerateVariants produces count preset-styled variants of one prompt
func (h *Handler) GenerateVariants(c *gin.Context) {
	var req VariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "invalid request body", err.Error())
		return
	}

	components, ok := h.resolveComponents(req.Text, req.Components)
	if !ok {
		h.Response.BadRequest(c, "text or components is required")
		return
	}
	variants, err := h.PromptService.GenerateVariants(components, req.Category, req.Count)
	if err != nil {
		h.Response.AppError(c, err)
		return
	}

	h.Metrics.RecordVariantBatch(req.Category, len(variants))
	h.Response.Success(c, variants, "variants generated")
}

// GetCatalogMetadata reports the loaded catalog's name, version and categories
func (h *Handler) GetCatalogMetadata(c *gin.Context) {
	meta := h.CatalogService.Metadata()
	h.Response.Success(c, gin.H{
		"name":        meta.Name,
		"version":     meta.Version,
		"description": meta.Description,
		"categories":  h.CatalogService.CategoryNames(),
	}, "catalog metadata")
}

// GetMetrics returns a snapshot of all pipeline metrics
func (h *Handler) GetMetrics(c *gin.Context) {
	h.Response.Success(c, utils.GetMetricsCollector().GetMetrics())
}

// HealthCheck reports service health
func (h *Handler) HealthCheck(c *gin.Context) {
	h.Response.Success(c, gin.H{
		"status":     "ok",
		"categories": len(h.CatalogService.CategoryNames()),
		"skeletons":  h.SkeletonStore.Count(),
	})
}
