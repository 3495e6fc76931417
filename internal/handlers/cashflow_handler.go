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

// CashFlowHandler handles cash-flow book endpoints.
type CashFlowHandler struct {
	cashFlowService services.CashFlowServicer
	auditService    services.AuditServicer
}

// NewCashFlowHandler creates a new CashFlowHandler.
func NewCashFlowHandler(cashFlowService services.CashFlowServicer, auditService services.AuditServicer) *CashFlowHandler {
	return &CashFlowHandler{cashFlowService: cashFlowService, auditService: auditService}
}

// CreateCashFlowRequest represents the request payload for creating a
// cash-flow entry.
type CreateCashFlowRequest struct {
	Date         time.Time       `json:"date" binding:"required"`
	AccountID    uint            `json:"account_id" binding:"required"`
	CategoryID   *uint           `json:"category_id"`
	FlowType     models.FlowType `json:"flow_type" binding:"required,flow_type"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	SourceTypeID *uint           `json:"source_type_id"`
	Remark       string          `json:"remark"`
}

// UpdateCashFlowRequest represents the request payload for editing a
// cash-flow entry. Absent fields stay unchanged.
type UpdateCashFlowRequest struct {
	Date         *time.Time       `json:"date"`
	AccountID    *uint            `json:"account_id"`
	CategoryID   *uint            `json:"category_id"`
	FlowType     *models.FlowType `json:"flow_type" binding:"omitempty,flow_type"`
	Amount       *decimal.Decimal `json:"amount"`
	SourceTypeID *uint            `json:"source_type_id"`
	Remark       *string          `json:"remark"`
}

// CreateCashFlow handles creating a cash-flow entry.
// @Summary     Create a cash flow entry
// @Tags        cash-flows
// @Accept      json
// @Produce     json
// @Param       request body CreateCashFlowRequest true "Entry details"
// @Success     201 {object} models.CashFlow "Entry created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Account or dimension not found"
// @Router      /cash-flows [post]
func (h *CashFlowHandler) CreateCashFlow(c *gin.Context) {
	var req CreateCashFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.cashFlowService.CreateCashFlow(req.Date, req.AccountID, req.CategoryID, req.FlowType, req.Amount, req.SourceTypeID, req.Remark)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_CASH_FLOW", "cash_flow", entry.ID, c.ClientIP(),
		map[string]interface{}{"flow_type": req.FlowType, "amount": req.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"cash_flow": entry})
}

// GetCashFlows handles listing the book.
// @Summary     List cash flow entries
// @Tags        cash-flows
// @Produce     json
// @Param       from query string false "From date (YYYY-MM-DD)"
// @Param       to query string false "To date (YYYY-MM-DD)"
// @Param       account_id query int false "Filter by account"
// @Param       category_id query int false "Filter by category"
// @Param       flow_type query string false "Filter by direction (income/expense)"
// @Param       include_inactive query bool false "Include deactivated entries"
// @Param       page query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 50, max 200)"
// @Success     200 {object} pagination.PageResponse[models.CashFlow] "Paginated entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /cash-flows [get]
func (h *CashFlowHandler) GetCashFlows(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.CashFlowFilter{IncludeInactive: c.Query("include_inactive") == "true"}
	var err error
	if filter.FromDate, err = parseDateQuery(c, "from"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.ToDate, err = parseDateQuery(c, "to"); err != nil {
		respondWithError(c, err)
		return
	}
	if v := c.Query("account_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "account_id must be an integer"))
			return
		}
		id := uint(parsed)
		filter.AccountID = &id
	}
	if v := c.Query("category_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "category_id must be an integer"))
			return
		}
		id := uint(parsed)
		filter.CategoryID = &id
	}
	if v := c.Query("flow_type"); v != "" {
		flowType := models.FlowType(v)
		if flowType != models.FlowTypeIncome && flowType != models.FlowTypeExpense {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "flow_type must be 'income' or 'expense'"))
			return
		}
		filter.FlowType = &flowType
	}

	result, err := h.cashFlowService.ListCashFlows(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetCashFlow handles retrieving one entry, deactivated ones included.
// @Summary     Get cash flow entry by ID
// @Tags        cash-flows
// @Produce     json
// @Param       id path int true "Entry ID"
// @Success     200 {object} models.CashFlow "Entry details"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /cash-flows/{id} [get]
func (h *CashFlowHandler) GetCashFlow(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.cashFlowService.GetCashFlowByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cash_flow": entry})
}

// UpdateCashFlow handles editing a manual entry.
// @Summary     Update cash flow entry
// @Description Edit a manual entry; ledger-generated entries are edited through the ledger
// @Tags        cash-flows
// @Accept      json
// @Produce     json
// @Param       id path int true "Entry ID"
// @Param       request body UpdateCashFlowRequest true "Updated fields"
// @Success     200 {object} models.CashFlow "Updated entry"
// @Failure     400 {object} ErrorResponse "Invalid input or linked entry"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /cash-flows/{id} [put]
func (h *CashFlowHandler) UpdateCashFlow(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCashFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.cashFlowService.UpdateCashFlow(id, services.CashFlowUpdate{
		Date:         req.Date,
		AccountID:    req.AccountID,
		CategoryID:   req.CategoryID,
		FlowType:     req.FlowType,
		Amount:       req.Amount,
		SourceTypeID: req.SourceTypeID,
		Remark:       req.Remark,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_CASH_FLOW", "cash_flow", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"cash_flow": entry})
}

// DeactivateCashFlow handles logically deleting a manual entry.
// @Summary     Deactivate cash flow entry
// @Description Flip an entry to inactive; it stays retrievable by id with its flag set
// @Tags        cash-flows
// @Produce     json
// @Param       id path int true "Entry ID"
// @Success     200 {object} MessageResponse "Entry deactivated"
// @Failure     400 {object} ErrorResponse "Linked entry"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /cash-flows/{id} [delete]
func (h *CashFlowHandler) DeactivateCashFlow(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.cashFlowService.DeactivateCashFlow(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DEACTIVATE_CASH_FLOW", "cash_flow", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Entry deactivated"})
}
