package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// SimulationHandler handles what-if projection endpoints.
type SimulationHandler struct {
	simulationService services.SimulationServicer
	auditService      services.AuditServicer
}

// NewSimulationHandler creates a new SimulationHandler.
func NewSimulationHandler(simulationService services.SimulationServicer, auditService services.AuditServicer) *SimulationHandler {
	return &SimulationHandler{simulationService: simulationService, auditService: auditService}
}

// SimulateRequest represents the request payload for a projection.
type SimulateRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	MetricID  uint            `json:"metric_id" binding:"required"`
	Principal decimal.Decimal `json:"principal" binding:"required"`
	Horizon   int             `json:"horizon" binding:"omitempty,min=1,max=120"`
}

// ConfirmSimulationRequest represents the request payload for turning a
// reviewed simulation into a real buy.
type ConfirmSimulationRequest struct {
	Date             time.Time       `json:"date" binding:"required"`
	ProductID        uint            `json:"product_id" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	ChannelAccountID *uint           `json:"channel_account_id"`
	Remark           string          `json:"remark"`
	LinkCashFlow     *bool           `json:"link_cash_flow"`
}

// Simulate handles running a projection. Nothing is persisted.
// @Summary     Simulate an investment
// @Description Project a principal over the product's recent metric history
// @Tags        simulation
// @Accept      json
// @Produce     json
// @Param       request body SimulateRequest true "Simulation parameters"
// @Success     200 {object} services.SimulationResult "Projection"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Product or metric not found"
// @Failure     422 {object} ErrorResponse "Not enough metric history"
// @Router      /simulation [post]
func (h *SimulationHandler) Simulate(c *gin.Context) {
	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	// An absent principal binds to the zero decimal, which slips past the
	// required tag.
	if !req.Principal.IsPositive() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "principal must be greater than zero"))
		return
	}

	result, err := h.simulationService.Simulate(req.ProductID, req.MetricID, req.Principal, req.Horizon)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"simulation": result})
}

// Confirm handles recording a reviewed simulation as a buy.
// @Summary     Confirm a simulation
// @Description Record the simulated buy in the ledger, with its linked cash flow
// @Tags        simulation
// @Accept      json
// @Produce     json
// @Param       request body ConfirmSimulationRequest true "Confirmation details"
// @Success     201 {object} models.InvestmentLog "Buy recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Product or account not found"
// @Failure     409 {object} ErrorResponse "Paired write failed and was rolled back"
// @Router      /simulation/confirm [post]
func (h *SimulationHandler) Confirm(c *gin.Context) {
	var req ConfirmSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.simulationService.Confirm(services.ConfirmSimulationInput{
		Date:             req.Date,
		ProductID:        req.ProductID,
		Amount:           req.Amount,
		ChannelAccountID: req.ChannelAccountID,
		Remark:           req.Remark,
		LinkCashFlow:     req.LinkCashFlow,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CONFIRM_SIMULATION", "investment_log", entry.ID, c.ClientIP(),
		map[string]interface{}{"product_id": req.ProductID, "amount": req.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"investment": entry})
}
