package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// investmentService handles the position ledger and its linked cash flows.
type investmentService struct {
	db *gorm.DB
	// autoLink decides whether a paired cash-flow entry is generated when the
	// request does not say either way.
	autoLink bool
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB, autoLink bool) InvestmentServicer {
	return &investmentService{db: db, autoLink: autoLink}
}

// RecordAction writes one buy or redeem to the ledger. When the action
// generates a linked cash flow, both rows commit in one transaction sharing
// a correlation id; a failure anywhere rolls both back and surfaces as
// PARTIAL_WRITE so the caller knows neither book changed.
func (s *investmentService) RecordAction(input RecordActionInput) (*models.InvestmentLog, error) {
	if input.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if !input.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if input.Action != models.ActionTypeBuy && input.Action != models.ActionTypeRedeem {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "action must be buy or redeem")
	}

	var product models.Product
	if err := s.db.First(&product, input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if product.Status != models.StatusActive {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "product is inactive")
	}

	link := s.autoLink
	if input.LinkCashFlow != nil {
		link = *input.LinkCashFlow
	}
	if link && input.ChannelAccountID == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "channel account is required to generate a linked cash flow")
	}
	if input.ChannelAccountID != nil {
		var account models.Account
		if err := s.db.First(&account, *input.ChannelAccountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.WithMessage(apperrors.ErrDimensionNotFound, "channel account not found")
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	entry := &models.InvestmentLog{
		Date:             input.Date,
		ProductID:        input.ProductID,
		Action:           input.Action,
		Amount:           input.Amount,
		ChannelAccountID: input.ChannelAccountID,
		Remark:           input.Remark,
		Status:           models.StatusActive,
	}
	if link {
		entry.CorrelationID = uuid.New().String()
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		if link {
			flow := &models.CashFlow{
				Date:             input.Date,
				AccountID:        *input.ChannelAccountID,
				CategoryID:       input.CategoryID,
				FlowType:         input.Action.FlowType(),
				Amount:           input.Amount,
				SourceTypeID:     input.SourceTypeID,
				Remark:           input.Remark,
				Status:           models.StatusActive,
				LinkInvestmentID: &entry.ID,
				CorrelationID:    entry.CorrelationID,
			}
			if err := tx.Create(flow).Error; err != nil {
				return err
			}
			if err := tx.Model(entry).Update("cash_flow_link_id", flow.ID).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Account{}).
				Where("id = ?", *input.ChannelAccountID).
				Update("last_used", input.Date).Error; err != nil {
				return err
			}
		}

		return s.recomputeHolding(tx, input.ProductID)
	})
	if err != nil {
		if link {
			return nil, apperrors.Wrap(apperrors.ErrPartialWrite, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("ledger action recorded",
		"id", entry.ID,
		"product_id", entry.ProductID,
		"action", entry.Action,
		"linked", link,
	)
	return entry, nil
}

// ListActions retrieves a paginated, filtered ledger slice, newest first.
func (s *investmentService) ListActions(filter InvestmentFilter, page pagination.PageRequest) (*pagination.PageResponse[models.InvestmentLog], error) {
	page.Defaults()

	base := s.db.Model(&models.InvestmentLog{})
	if !filter.IncludeInactive {
		base = base.Where("status = ?", models.StatusActive)
	}
	if filter.ProductID != nil {
		base = base.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Action != nil {
		base = base.Where("action = ?", *filter.Action)
	}
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.InvestmentLog
	if err := base.
		Preload("Product").
		Preload("ChannelAccount").
		Order("date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetActionByID retrieves a ledger entry regardless of status.
func (s *investmentService) GetActionByID(id uint) (*models.InvestmentLog, error) {
	var entry models.InvestmentLog
	err := s.db.
		Preload("Product").
		Preload("ChannelAccount").
		First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

// DeactivateAction flips a ledger entry and its linked cash flow to inactive
// in one transaction, then recomputes the product's position. Both rows stay
// retrievable by id with their flags intact.
func (s *investmentService) DeactivateAction(id uint) error {
	entry, err := s.GetActionByID(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.InvestmentLog{}).
			Where("id = ?", id).
			Update("status", models.StatusInactive).Error; err != nil {
			return err
		}
		if entry.CashFlowLinkID != nil {
			if err := tx.Model(&models.CashFlow{}).
				Where("id = ?", *entry.CashFlowLinkID).
				Update("status", models.StatusInactive).Error; err != nil {
				return err
			}
		}
		return s.recomputeHolding(tx, entry.ProductID)
	})
	if err != nil {
		if entry.CashFlowLinkID != nil {
			return apperrors.Wrap(apperrors.ErrPartialWrite, err)
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Holdings returns the materialized per-product positions.
func (s *investmentService) Holdings() ([]models.HoldingStatus, error) {
	var holdings []models.HoldingStatus
	if err := s.db.Preload("Product").Order("product_id").Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holdings, nil
}

// RecomputeHolding rebuilds one product's position row from the active
// ledger. Exposed for repair after imports.
func (s *investmentService) RecomputeHolding(productID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.recomputeHolding(tx, productID)
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// recomputeHolding derives the position from the active ledger rows:
// invested principal is buys minus redemptions, realized profit is whatever
// came back beyond the principal.
func (s *investmentService) recomputeHolding(tx *gorm.DB, productID uint) error {
	var entries []models.InvestmentLog
	if err := tx.
		Where("product_id = ? AND status = ?", productID, models.StatusActive).
		Find(&entries).Error; err != nil {
		return err
	}

	buys := decimal.Zero
	redeems := decimal.Zero
	for _, entry := range entries {
		if entry.Action == models.ActionTypeBuy {
			buys = buys.Add(entry.Amount)
		} else {
			redeems = redeems.Add(entry.Amount)
		}
	}

	totalInvest := buys.Sub(redeems)
	estProfit := decimal.Zero
	if totalInvest.IsNegative() {
		estProfit = totalInvest.Neg()
		totalInvest = decimal.Zero
	}

	avgYield := 0.0
	if buys.IsPositive() && estProfit.IsPositive() {
		avgYield, _ = estProfit.Div(buys).Float64()
	}

	var holding models.HoldingStatus
	err := tx.Where("product_id = ?", productID).Take(&holding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		holding = models.HoldingStatus{ProductID: productID}
	} else if err != nil {
		return err
	}

	holding.TotalInvest = totalInvest
	holding.EstProfit = estProfit
	holding.AvgYield = avgYield
	holding.LastUpdate = time.Now()
	return tx.Save(&holding).Error
}
