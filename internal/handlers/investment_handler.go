package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// InvestmentHandler handles position ledger endpoints.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
	auditService      services.AuditServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer, auditService services.AuditServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService, auditService: auditService}
}

// RecordActionRequest represents the request payload for a ledger action.
// LinkCashFlow overrides the configured default when present.
type RecordActionRequest struct {
	Date             time.Time         `json:"date" binding:"required"`
	ProductID        uint              `json:"product_id" binding:"required"`
	Action           models.ActionType `json:"action" binding:"required,action_type"`
	Amount           decimal.Decimal   `json:"amount" binding:"required"`
	ChannelAccountID *uint             `json:"channel_account_id"`
	Remark           string            `json:"remark"`
	LinkCashFlow     *bool             `json:"link_cash_flow"`
	CategoryID       *uint             `json:"category_id"`
	SourceTypeID     *uint             `json:"source_type_id"`
}

// RecordAction handles writing one buy or redeem.
// @Summary     Record a ledger action
// @Description Write a buy or redeem; a linked cash flow commits atomically with it
// @Tags        investments
// @Accept      json
// @Produce     json
// @Param       request body RecordActionRequest true "Action details"
// @Success     201 {object} models.InvestmentLog "Action recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Product or account not found"
// @Failure     409 {object} ErrorResponse "Paired write failed and was rolled back"
// @Router      /investments [post]
func (h *InvestmentHandler) RecordAction(c *gin.Context) {
	var req RecordActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.investmentService.RecordAction(services.RecordActionInput{
		Date:             req.Date,
		ProductID:        req.ProductID,
		Action:           req.Action,
		Amount:           req.Amount,
		ChannelAccountID: req.ChannelAccountID,
		Remark:           req.Remark,
		LinkCashFlow:     req.LinkCashFlow,
		CategoryID:       req.CategoryID,
		SourceTypeID:     req.SourceTypeID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("RECORD_LEDGER_ACTION", "investment_log", entry.ID, c.ClientIP(),
		map[string]interface{}{"action": req.Action, "amount": req.Amount.String(), "product_id": req.ProductID})

	c.JSON(http.StatusCreated, gin.H{"investment": entry})
}

// GetActions handles listing the ledger.
// @Summary     List ledger actions
// @Tags        investments
// @Produce     json
// @Param       product_id query int false "Filter by product"
// @Param       action query string false "Filter by action (buy/redeem)"
// @Param       from query string false "From date (YYYY-MM-DD)"
// @Param       to query string false "To date (YYYY-MM-DD)"
// @Param       include_inactive query bool false "Include deactivated entries"
// @Param       page query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 50, max 200)"
// @Success     200 {object} pagination.PageResponse[models.InvestmentLog] "Paginated entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /investments [get]
func (h *InvestmentHandler) GetActions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.InvestmentFilter{IncludeInactive: c.Query("include_inactive") == "true"}
	var err error
	if filter.FromDate, err = parseDateQuery(c, "from"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.ToDate, err = parseDateQuery(c, "to"); err != nil {
		respondWithError(c, err)
		return
	}
	if v := c.Query("product_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "product_id must be an integer"))
			return
		}
		id := uint(parsed)
		filter.ProductID = &id
	}
	if v := c.Query("action"); v != "" {
		action := models.ActionType(v)
		if action != models.ActionTypeBuy && action != models.ActionTypeRedeem {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "action must be 'buy' or 'redeem'"))
			return
		}
		filter.Action = &action
	}

	result, err := h.investmentService.ListActions(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAction handles retrieving one ledger entry, deactivated ones included.
// @Summary     Get ledger action by ID
// @Tags        investments
// @Produce     json
// @Param       id path int true "Entry ID"
// @Success     200 {object} models.InvestmentLog "Entry details"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /investments/{id} [get]
func (h *InvestmentHandler) GetAction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.investmentService.GetActionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"investment": entry})
}

// DeactivateAction handles logically deleting a ledger entry.
// @Summary     Deactivate ledger action
// @Description Flip the entry and its linked cash flow to inactive together
// @Tags        investments
// @Produce     json
// @Param       id path int true "Entry ID"
// @Success     200 {object} MessageResponse "Entry deactivated"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     409 {object} ErrorResponse "Paired update failed and was rolled back"
// @Router      /investments/{id} [delete]
func (h *InvestmentHandler) DeactivateAction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investmentService.DeactivateAction(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DEACTIVATE_LEDGER_ACTION", "investment_log", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Entry deactivated"})
}

// GetHoldings handles the materialized positions.
// @Summary     List holdings
// @Description Materialized per-product positions derived from the active ledger
// @Tags        investments
// @Produce     json
// @Success     200 {array} models.HoldingStatus "Holdings"
// @Router      /holdings [get]
func (h *InvestmentHandler) GetHoldings(c *gin.Context) {
	holdings, err := h.investmentService.Holdings()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"holdings": holdings})
}

// RecomputeHolding handles rebuilding one product's position.
// @Summary     Recompute a holding
// @Description Rebuild the materialized position from the active ledger
// @Tags        investments
// @Produce     json
// @Param       product_id path int true "Product ID"
// @Success     200 {object} MessageResponse "Holding recomputed"
// @Failure     400 {object} ErrorResponse "Invalid product id"
// @Router      /holdings/{product_id}/recompute [post]
func (h *InvestmentHandler) RecomputeHolding(c *gin.Context) {
	productID, err := parsePathID(c, "product_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investmentService.RecomputeHolding(productID); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Holding recomputed"})
}
