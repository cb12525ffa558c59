package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/uctoflow/ledger-engine/internal/core/ports/services"
	"github.com/uctoflow/ledger-engine/internal/dto"
	"github.com/uctoflow/ledger-engine/internal/middleware"
)

// reportingHandler handles HTTP requests for balance and statement reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
	}
}

// getBalances godoc
// @Summary Per-account balances over a period
// @Description Aggregates posted lines only; `from` optional for as-of queries
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param to query string true "Window end, YYYY-MM-DD"
// @Param from query string false "Window start, YYYY-MM-DD"
// @Param accountID query []string false "Narrow to specific accounts"
// @Success 200 {object} dto.BalancesResponse
// @Router /tenants/{tenantID}/reports/balances [get]
func (h *reportingHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var params dto.BalancesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	period, err := params.ToPeriod()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	balances, err := h.reportingService.Balances(c.Request.Context(), tenantID, period, params.AccountIDs)
	if err != nil {
		respondWithError(c, logger, err, "Failed to aggregate balances")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalancesResponse(balances, period))
}

// getLedgerCheck godoc
// @Summary Ledger-wide balance sanity check
// @Description Regulatory exports call this gate before building
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param to query string true "Window end, YYYY-MM-DD"
// @Param from query string false "Window start, YYYY-MM-DD"
// @Success 200 {object} dto.LedgerCheckResponse
// @Router /tenants/{tenantID}/reports/check [get]
func (h *reportingHandler) getLedgerCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	period, err := params.ToPeriod()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	check, err := h.reportingService.IsBalanced(c.Request.Context(), tenantID, period)
	if err != nil {
		respondWithError(c, logger, err, "Failed to run ledger check")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerCheckResponse(check))
}

// getTrialBalance godoc
// @Summary Trial balance as of a date
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param to query string true "As-of date, YYYY-MM-DD"
// @Success 200 {object} dto.TrialBalanceResponse
// @Router /tenants/{tenantID}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	period, err := params.ToPeriod()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), tenantID, period)
	if err != nil {
		respondWithError(c, logger, err, "Failed to build trial balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(rows, period.To))
}

// getProfitAndLoss godoc
// @Summary Profit and loss over a period
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param from query string true "Period start, YYYY-MM-DD"
// @Param to query string true "Period end, YYYY-MM-DD"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Router /tenants/{tenantID}/reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if params.From == nil || *params.From == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from is required for profit and loss"})
		return
	}
	period, err := params.ToPeriod()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), tenantID, period)
	if err != nil {
		respondWithError(c, logger, err, "Failed to build profit and loss report")
		return
	}

	var from time.Time
	if period.From != nil {
		from = *period.From
	}
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report, from, period.To))
}

// getBalanceSheet godoc
// @Summary Balance sheet as of a date
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param to query string true "As-of date, YYYY-MM-DD"
// @Success 200 {object} dto.BalanceSheetResponse
// @Router /tenants/{tenantID}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	period, err := params.ToPeriod()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), tenantID, period)
	if err != nil {
		respondWithError(c, logger, err, "Failed to build balance sheet")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report, period.To))
}

// registerReportingRoutes registers reporting routes on the tenant group.
func registerReportingRoutes(tenantGroup *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := tenantGroup.Group("/reports")
	{
		reports.GET("/balances", h.getBalances)
		reports.GET("/check", h.getLedgerCheck)
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/balance-sheet", h.getBalanceSheet)
	}
}
