package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/uctoflow/ledger-engine/internal/core/ports/services"
	"github.com/uctoflow/ledger-engine/internal/dto"
	"github.com/uctoflow/ledger-engine/internal/middleware"
)

// accountHandler handles HTTP requests for the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: accountService,
	}
}

// registerAccount godoc
// @Summary Register an account in the chart of accounts
// @Description Adds a new syntetic/analytic account to the tenant's chart
// @Tags accounts
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param account body dto.RegisterAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Duplicate code"
// @Router /tenants/{tenantID}/accounts [post]
func (h *accountHandler) registerAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.RegisterAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for registerAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.RegisterAccount(c.Request.Context(), tenantID, req, middleware.GetUserID(c))
	if err != nil {
		respondWithError(c, logger, err, "Failed to register account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /tenants/{tenantID}/accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	accountID := c.Param("accountID")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), tenantID, accountID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// lookupAccount godoc
// @Summary Look up an account by code
// @Description Exact match on code and optional analytic suffix, no fuzzy fallback
// @Tags accounts
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param code query string true "Synthetic code, e.g. 311"
// @Param analytic query string false "Analytic suffix, e.g. 100"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "No such account"
// @Router /tenants/{tenantID}/accounts/lookup [get]
func (h *accountHandler) lookupAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var params dto.LookupAccountParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	account, err := h.accountService.LookupAccountByCode(c.Request.Context(), tenantID, params.Code, params.Analytic)
	if err != nil {
		respondWithError(c, logger, err, "Failed to look up account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List the tenant's chart of accounts
// @Tags accounts
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Router /tenants/{tenantID}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), tenantID, params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts))
}

// disableAccount godoc
// @Summary Disable an account for future postings
// @Description Historic postings are unaffected; accounts are never deleted
// @Tags accounts
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param accountID path string true "Account ID"
// @Success 204
// @Failure 404 {object} map[string]string "Account not found"
// @Router /tenants/{tenantID}/accounts/{accountID} [delete]
func (h *accountHandler) disableAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	accountID := c.Param("accountID")

	if err := h.accountService.DisableAccount(c.Request.Context(), tenantID, accountID, middleware.GetUserID(c)); err != nil {
		respondWithError(c, logger, err, "Failed to disable account")
		return
	}

	c.Status(http.StatusNoContent)
}

// registerAccountRoutes registers chart-of-accounts routes on the tenant group.
func registerAccountRoutes(tenantGroup *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := tenantGroup.Group("/accounts")
	{
		accounts.POST("", h.registerAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/lookup", h.lookupAccount)
		accounts.GET("/:accountID", h.getAccount)
		accounts.DELETE("/:accountID", h.disableAccount)
	}
}
