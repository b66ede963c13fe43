package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"moneymind/internal/analytics"
	apperrors "moneymind/internal/errors"
	"moneymind/internal/services"
)

// AnalyticsHandler handles reporting requests
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// windowQuery carries the shared window query parameter.
type windowQuery struct {
	Window string `form:"window,default=thismonth" binding:"analytics_window"`
}

// windowFromQuery reads the window query parameter, defaulting to thismonth.
func windowFromQuery(c *gin.Context) (analytics.Window, error) {
	var q windowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "window must be one of 7days, 30days, thismonth")
	}
	return analytics.Window(q.Window), nil
}

// GetSummary returns income and expense totals for a window
// @Summary     Get spending summary
// @Description Get income, expense, savings totals and savings rate for a time window
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       window query string false "Time window (7days, 30days, thismonth)" default(thismonth)
// @Success     200 {object} analytics.Summary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/summary [get]
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	window, err := windowFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.analyticsService.GetSummary(userID, window)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetCategoryBreakdown returns per-category expense totals
// @Summary     Get category breakdown
// @Description Get expense totals per category for a time window
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       window query string false "Time window (7days, 30days, thismonth)" default(thismonth)
// @Success     200 {array} analytics.CategoryTotal "Breakdown"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/categories [get]
func (h *AnalyticsHandler) GetCategoryBreakdown(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	window, err := windowFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	breakdown, err := h.analyticsService.GetCategoryBreakdown(userID, window)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": breakdown})
}

// GetMonthlyTrend returns per-month income and expense totals
// @Summary     Get monthly trend
// @Description Get per-month income, expense, and savings totals, oldest first
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       months query int false "Number of months" default(6)
// @Success     200 {array} analytics.MonthlyPoint "Trend"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/trend [get]
func (h *AnalyticsHandler) GetMonthlyTrend(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))

	trend, err := h.analyticsService.GetMonthlyTrend(userID, months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trend": trend})
}

// GetWeeklySpending returns this month's spending by week
// @Summary     Get weekly spending
// @Description Get the current month's expenses bucketed into weeks
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} analytics.WeeklyTotal "Weekly totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/weekly [get]
func (h *AnalyticsHandler) GetWeeklySpending(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	weekly, err := h.analyticsService.GetWeeklySpending(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"weekly": weekly})
}

// GetBudgetReport returns spending evaluated against all budgets
// @Summary     Get budget report
// @Description Evaluate this month's spending against every budget
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} analytics.BudgetReport "Budget report"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/budgets [get]
func (h *AnalyticsHandler) GetBudgetReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.analyticsService.GetBudgetReport(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Export downloads the user's analytics as CSV
// @Summary     Export analytics
// @Description Download the analytics report for a time window as CSV
// @Tags        analytics
// @Accept      json
// @Produce     text/csv
// @Security    BearerAuth
// @Param       window query string false "Time window (7days, 30days, thismonth)" default(thismonth)
// @Success     200 {string} string "CSV report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/export [get]
func (h *AnalyticsHandler) Export(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	window, err := windowFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	out, err := h.analyticsService.ExportCSV(userID, window)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="analytics.csv"`)
	c.Data(http.StatusOK, "text/csv", out)
}
