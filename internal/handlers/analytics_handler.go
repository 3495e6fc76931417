package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// AnalyticsHandler handles aggregation endpoints.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetTotals handles the cash-flow totals over an optional date range.
// @Summary     Cash flow totals
// @Description Income, expense, investment movement, and net over the active books, optionally bounded by dates
// @Tags        analytics
// @Produce     json
// @Param       from query string false "From date (YYYY-MM-DD)"
// @Param       to query string false "To date (YYYY-MM-DD)"
// @Success     200 {object} services.FlowTotals "Totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /analytics/totals [get]
func (h *AnalyticsHandler) GetTotals(c *gin.Context) {
	from, err := parseDateQuery(c, "from")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.analyticsService.Totals(from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totals": totals})
}

// GetMonthlySeries handles the per-month aggregation for one year.
// @Summary     Monthly cash flow series
// @Description Twelve months of income, expense, investment outflow, net, and cumulative net for the given year, zero-filled
// @Tags        analytics
// @Produce     json
// @Param       year query int true "Calendar year"
// @Success     200 {array} services.MonthlyTotal "Monthly totals"
// @Failure     400 {object} ErrorResponse "Invalid year"
// @Router      /analytics/monthly [get]
func (h *AnalyticsHandler) GetMonthlySeries(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "year is required"))
		return
	}

	series, err := h.analyticsService.MonthlySeries(year)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": series})
}

// GetLinkageReport handles the ledger/cash-flow consistency check.
// @Summary     Ledger linkage report
// @Description Verify that every ledger/cash-flow link resolves in both directions and monthly totals agree
// @Tags        analytics
// @Produce     json
// @Success     200 {object} services.LinkageReport "Linkage report"
// @Router      /analytics/linkage [get]
func (h *AnalyticsHandler) GetLinkageReport(c *gin.Context) {
	report, err := h.analyticsService.LinkageReport()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}
