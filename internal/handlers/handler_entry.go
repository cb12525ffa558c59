package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/uctoflow/ledger-engine/internal/core/ports/services"
	"github.com/uctoflow/ledger-engine/internal/dto"
	"github.com/uctoflow/ledger-engine/internal/middleware"
)

// entryHandler handles HTTP requests for journal entries.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

// newEntryHandler creates a new entryHandler.
func newEntryHandler(entryService portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{
		entryService: entryService,
	}
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Records a new entry in DRAFT status; balance is validated at post time
// @Tags entries
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param entry body dto.CreateEntryRequest true "Entry with lines"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /tenants/{tenantID}/entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.entryService.CreateDraftEntry(c.Request.Context(), tenantID, req, middleware.GetUserID(c))
	if err != nil {
		respondWithError(c, logger, err, "Failed to create draft entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags entries
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /tenants/{tenantID}/entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	entryID := c.Param("entryID")

	entry, err := h.entryService.GetEntry(c.Request.Context(), tenantID, entryID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Cursor-paginated listing, newest first; drafts only when requested
// @Tags entries
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from a previous page"
// @Param includeDrafts query bool false "Include DRAFT entries" default(false)
// @Param includeLines query bool false "Embed lines in each entry" default(false)
// @Success 200 {object} dto.ListEntriesResponse
// @Router /tenants/{tenantID}/entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.entryService.ListEntries(c.Request.Context(), tenantID, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateEntry godoc
// @Summary Update a draft journal entry
// @Description Replaces header fields and/or the full line set; drafts only
// @Tags entries
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param entryID path string true "Entry ID"
// @Param entry body dto.UpdateEntryRequest true "Fields to update, with expected version"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string "Not a draft or version conflict"
// @Router /tenants/{tenantID}/entries/{entryID} [put]
func (h *entryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	entryID := c.Param("entryID")

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.entryService.UpdateDraftEntry(c.Request.Context(), tenantID, entryID, req, middleware.GetUserID(c))
	if err != nil {
		respondWithError(c, logger, err, "Failed to update draft entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// postEntry godoc
// @Summary Post a draft entry
// @Description Validates balance and accounts, assigns the document number and freezes the entry
// @Tags entries
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Unbalanced or invalid lines"
// @Failure 409 {object} map[string]string "Not a draft"
// @Router /tenants/{tenantID}/entries/{entryID}/post [post]
func (h *entryHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	entryID := c.Param("entryID")

	entry, err := h.entryService.PostEntry(c.Request.Context(), tenantID, entryID, middleware.GetUserID(c))
	if err != nil {
		respondWithError(c, logger, err, "Failed to post entry")
		return
	}

	logger.Info("Entry posted via API",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted entry
// @Description Creates the compensating mirror entry and marks the original REVERSED
// @Tags entries
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param entryID path string true "Entry ID"
// @Param reversal body dto.ReverseEntryRequest false "Optional storno date"
// @Success 201 {object} dto.EntryResponse "The mirror entry"
// @Failure 409 {object} map[string]string "Not posted or already reversed"
// @Router /tenants/{tenantID}/entries/{entryID}/reverse [post]
func (h *entryHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	entryID := c.Param("entryID")

	var req dto.ReverseEntryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for reverseEntry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	mirror, err := h.entryService.ReverseEntry(c.Request.Context(), tenantID, entryID, req, middleware.GetUserID(c))
	if err != nil {
		respondWithError(c, logger, err, "Failed to reverse entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(mirror))
}

// deleteEntry godoc
// @Summary Delete a draft entry
// @Description Drafts only; posted history is append-only, use reversal instead
// @Tags entries
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param entryID path string true "Entry ID"
// @Success 204
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Router /tenants/{tenantID}/entries/{entryID} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	entryID := c.Param("entryID")

	if err := h.entryService.DeleteDraftEntry(c.Request.Context(), tenantID, entryID, middleware.GetUserID(c)); err != nil {
		respondWithError(c, logger, err, "Failed to delete draft entry")
		return
	}

	c.Status(http.StatusNoContent)
}

// listLinesByAccount godoc
// @Summary List posted lines hitting one account
// @Tags entries
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param accountID path string true "Account ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListLinesResponse
// @Router /tenants/{tenantID}/accounts/{accountID}/lines [get]
func (h *entryHandler) listLinesByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	accountID := c.Param("accountID")

	var params dto.ListLinesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.entryService.ListLinesByAccount(c.Request.Context(), tenantID, accountID, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list lines")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterEntryRoutes registers journal entry routes on the tenant group.
func RegisterEntryRoutes(tenantGroup *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)

	entries := tenantGroup.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID", h.updateEntry)
		entries.DELETE("/:entryID", h.deleteEntry)
		entries.POST("/:entryID/post", h.postEntry)
		entries.POST("/:entryID/reverse", h.reverseEntry)
	}

	tenantGroup.GET("/accounts/:accountID/lines", h.listLinesByAccount)
}
