package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/SscSPs/finance_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the read-only views derived from the ledger.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	now              func() time.Time
}

func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingService) {
	h := &reportingHandler{reportingService: rs, now: time.Now}

	reports := rg.Group("/reports")
	{
		reports.GET("/overview", h.overview)
		reports.GET("/budget", h.categoryBudgets)
		reports.GET("/income-sources", h.incomeSources)
		reports.GET("/income-sources/:sourceID", h.incomeSourceBalance)
		reports.GET("/goals", h.goalProgress)
		reports.GET("/monthly", h.monthlyReport)
	}
}

// overview godoc
// @Summary Budget overview
// @Description Totals, savings target progress and category budgets for the whole ledger.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OverviewResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/overview [get]
func (h *reportingHandler) overview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	overview, err := h.reportingService.Overview(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to build overview")
		return
	}
	c.JSON(http.StatusOK, dto.ToOverviewResponse(overview))
}

// categoryBudgets godoc
// @Summary Category budgets
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoryBudgetResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/budget [get]
func (h *reportingHandler) categoryBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rows, err := h.reportingService.CategoryBudgets(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to build category budgets")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryBudgetResponses(rows))
}

// incomeSources godoc
// @Summary Income source balances
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.IncomeSourceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/income-sources [get]
func (h *reportingHandler) incomeSources(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sources, err := h.reportingService.IncomeSources(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list income sources")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeSourceResponses(sources))
}

// incomeSourceBalance godoc
// @Summary Balance of one income source
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param sourceID path string true "Income transaction ID"
// @Success 200 {object} dto.IncomeSourceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/income-sources/{sourceID} [get]
func (h *reportingHandler) incomeSourceBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.IncomeSourceBalance(c.Request.Context(), userID, c.Param("sourceID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to get income source")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeSourceResponse(summary))
}

// goalProgress godoc
// @Summary Savings goal progress
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.GoalProgressResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/goals [get]
func (h *reportingHandler) goalProgress(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	progress, err := h.reportingService.GoalProgress(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to build goal progress")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalProgressResponses(progress))
}

// monthlyReport godoc
// @Summary Monthly report
// @Description Aggregates a single calendar month. Defaults to the current month.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param month query string false "Month as YYYY-MM"
// @Success 200 {object} dto.MonthlyReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/monthly [get]
func (h *reportingHandler) monthlyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.MonthlyReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "month must be formatted as YYYY-MM"})
		return
	}
	year, month, err := dto.ParseMonth(params.Month, h.now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "month must be formatted as YYYY-MM"})
		return
	}

	report, err := h.reportingService.MonthlyReport(c.Request.Context(), userID, year, month)
	if err != nil {
		respondWithError(c, logger, err, "Failed to build monthly report")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlyReportResponse(report))
}
