package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/uctoflow/ledger-engine/internal/core/ports/services"
	"github.com/uctoflow/ledger-engine/internal/dto"
	"github.com/uctoflow/ledger-engine/internal/middleware"
)

// tenantHandler handles HTTP requests for tenants.
type tenantHandler struct {
	tenantService portssvc.TenantSvcFacade
}

// newTenantHandler creates a new tenantHandler.
func newTenantHandler(tenantService portssvc.TenantSvcFacade) *tenantHandler {
	return &tenantHandler{
		tenantService: tenantService,
	}
}

// createTenant godoc
// @Summary Create a tenant
// @Description A tenant owns its own chart of accounts, numbering sequences and books
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant body dto.CreateTenantRequest true "Tenant details"
// @Success 201 {object} dto.TenantResponse
// @Router /tenants [post]
func (h *tenantHandler) createTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTenant", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), req, middleware.GetUserID(c))
	if err != nil {
		respondWithError(c, logger, err, "Failed to create tenant")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTenantResponse(tenant))
}

// getTenant godoc
// @Summary Get a tenant
// @Tags tenants
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} map[string]string "Tenant not found"
// @Router /tenants/{tenantID} [get]
func (h *tenantHandler) getTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	tenant, err := h.tenantService.GetTenantByID(c.Request.Context(), tenantID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve tenant")
		return
	}

	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// listTenants godoc
// @Summary List tenants
// @Tags tenants
// @Produce json
// @Success 200 {array} dto.TenantResponse
// @Router /tenants [get]
func (h *tenantHandler) listTenants(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenants, err := h.tenantService.ListTenants(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list tenants")
		return
	}

	responses := make([]dto.TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = dto.ToTenantResponse(&tenants[i])
	}
	c.JSON(http.StatusOK, responses)
}

// disableTenant godoc
// @Summary Disable a tenant
// @Description Marks the tenant inactive; its books remain readable
// @Tags tenants
// @Param tenantID path string true "Tenant ID"
// @Success 204 "Tenant disabled"
// @Failure 404 {object} map[string]string "Tenant not found"
// @Router /tenants/{tenantID} [delete]
func (h *tenantHandler) disableTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	if err := h.tenantService.DisableTenant(c.Request.Context(), tenantID, middleware.GetUserID(c)); err != nil {
		respondWithError(c, logger, err, "Failed to disable tenant")
		return
	}

	c.Status(http.StatusNoContent)
}
