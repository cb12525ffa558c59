package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/uctoflow/ledger-engine/internal/core/ports/services"
	"github.com/uctoflow/ledger-engine/internal/dto"
	"github.com/uctoflow/ledger-engine/internal/middleware"
)

// templateHandler handles HTTP requests for posting templates.
type templateHandler struct {
	templateService portssvc.TemplateSvcFacade
}

// newTemplateHandler creates a new templateHandler.
func newTemplateHandler(templateService portssvc.TemplateSvcFacade) *templateHandler {
	return &templateHandler{
		templateService: templateService,
	}
}

// createTemplate godoc
// @Summary Create a posting template
// @Tags templates
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param template body dto.CreateTemplateRequest true "Template with blueprint lines"
// @Success 201 {object} dto.TemplateResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /tenants/{tenantID}/templates [post]
func (h *templateHandler) createTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTemplate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), tenantID, req, middleware.GetUserID(c))
	if err != nil {
		respondWithError(c, logger, err, "Failed to create template")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTemplateResponse(template))
}

// getTemplate godoc
// @Summary Get a posting template
// @Tags templates
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param templateID path string true "Template ID"
// @Success 200 {object} dto.TemplateResponse
// @Failure 404 {object} map[string]string "Template not found"
// @Router /tenants/{tenantID}/templates/{templateID} [get]
func (h *templateHandler) getTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	templateID := c.Param("templateID")

	template, err := h.templateService.GetTemplate(c.Request.Context(), tenantID, templateID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve template")
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateResponse(template))
}

// listTemplates godoc
// @Summary List the tenant's posting templates
// @Tags templates
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} dto.ListTemplatesResponse
// @Router /tenants/{tenantID}/templates [get]
func (h *templateHandler) listTemplates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	templates, err := h.templateService.ListTemplates(c.Request.Context(), tenantID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list templates")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTemplatesResponse(templates))
}

// applyTemplate godoc
// @Summary Expand a template into a draft entry
// @Description Resolves account codes against the current chart; unresolved lines stay editable on the draft
// @Tags templates
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param templateID path string true "Template ID"
// @Param apply body dto.ApplyTemplateRequest true "Entry date and description"
// @Success 201 {object} dto.EntryResponse "The seeded draft entry"
// @Failure 404 {object} map[string]string "Template not found"
// @Router /tenants/{tenantID}/templates/{templateID}/apply [post]
func (h *templateHandler) applyTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	templateID := c.Param("templateID")

	var req dto.ApplyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for applyTemplate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	entry, err := h.templateService.ApplyTemplate(c.Request.Context(), tenantID, templateID, date, req.Description, middleware.GetUserID(c))
	if err != nil {
		respondWithError(c, logger, err, "Failed to apply template")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// registerTemplateRoutes registers posting template routes on the tenant group.
func registerTemplateRoutes(tenantGroup *gin.RouterGroup, templateService portssvc.TemplateSvcFacade) {
	h := newTemplateHandler(templateService)

	templates := tenantGroup.Group("/templates")
	{
		templates.POST("", h.createTemplate)
		templates.GET("", h.listTemplates)
		templates.GET("/:templateID", h.getTemplate)
		templates.POST("/:templateID/apply", h.applyTemplate)
	}
}
