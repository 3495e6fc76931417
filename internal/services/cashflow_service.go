package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// cashFlowService handles the cash-flow book.
type cashFlowService struct {
	db *gorm.DB
}

// NewCashFlowService creates a new CashFlowServicer.
func NewCashFlowService(db *gorm.DB) CashFlowServicer {
	return &cashFlowService{db: db}
}

// CreateCashFlow records one income or expense entry and bumps the account's
// last-used timestamp.
func (s *cashFlowService) CreateCashFlow(date time.Time, accountID uint, categoryID *uint, flowType models.FlowType, amount decimal.Decimal, sourceTypeID *uint, remark string) (*models.CashFlow, error) {
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if flowType != models.FlowTypeIncome && flowType != models.FlowTypeExpense {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "flow type must be income or expense")
	}

	var account models.Account
	if err := s.db.First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrDimensionNotFound, "account not found")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if categoryID != nil {
		if err := s.dimensionExists(&models.Category{}, *categoryID, "category not found"); err != nil {
			return nil, err
		}
	}
	if sourceTypeID != nil {
		if err := s.dimensionExists(&models.SourceType{}, *sourceTypeID, "source type not found"); err != nil {
			return nil, err
		}
	}

	entry := &models.CashFlow{
		Date:         date,
		AccountID:    accountID,
		CategoryID:   categoryID,
		FlowType:     flowType,
		Amount:       amount,
		SourceTypeID: sourceTypeID,
		Remark:       remark,
		Status:       models.StatusActive,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Model(&account).Update("last_used", entry.Date).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry, nil
}

// ListCashFlows retrieves a paginated, filtered slice of the book, newest
// first. Inactive entries are hidden unless asked for.
func (s *cashFlowService) ListCashFlows(filter CashFlowFilter, page pagination.PageRequest) (*pagination.PageResponse[models.CashFlow], error) {
	page.Defaults()

	base := s.db.Model(&models.CashFlow{})
	if !filter.IncludeInactive {
		base = base.Where("status = ?", models.StatusActive)
	}
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}
	if filter.AccountID != nil {
		base = base.Where("account_id = ?", *filter.AccountID)
	}
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.FlowType != nil {
		base = base.Where("flow_type = ?", *filter.FlowType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.CashFlow
	if err := base.
		Preload("Account").
		Preload("Category").
		Preload("SourceType").
		Order("date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCashFlowByID retrieves an entry regardless of status, so a deactivated
// entry stays inspectable with its flag intact.
func (s *cashFlowService) GetCashFlowByID(id uint) (*models.CashFlow, error) {
	var entry models.CashFlow
	err := s.db.
		Preload("Account").
		Preload("Category").
		Preload("SourceType").
		First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCashFlowNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

// UpdateCashFlow edits a manual entry. Entries generated from the investment
// ledger are managed through the ledger and cannot be edited directly, or
// the two books would drift apart.
func (s *cashFlowService) UpdateCashFlow(id uint, update CashFlowUpdate) (*models.CashFlow, error) {
	entry, err := s.GetCashFlowByID(id)
	if err != nil {
		return nil, err
	}
	if entry.LinkInvestmentID != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "entry is linked to an investment action; edit the ledger entry instead")
	}

	updates := make(map[string]interface{})
	if update.Date != nil {
		updates["date"] = *update.Date
	}
	if update.AccountID != nil {
		if err := s.dimensionExists(&models.Account{}, *update.AccountID, "account not found"); err != nil {
			return nil, err
		}
		updates["account_id"] = *update.AccountID
	}
	if update.CategoryID != nil {
		if err := s.dimensionExists(&models.Category{}, *update.CategoryID, "category not found"); err != nil {
			return nil, err
		}
		updates["category_id"] = *update.CategoryID
	}
	if update.FlowType != nil {
		if *update.FlowType != models.FlowTypeIncome && *update.FlowType != models.FlowTypeExpense {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "flow type must be income or expense")
		}
		updates["flow_type"] = *update.FlowType
	}
	if update.Amount != nil {
		if !update.Amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *update.Amount
	}
	if update.SourceTypeID != nil {
		if err := s.dimensionExists(&models.SourceType{}, *update.SourceTypeID, "source type not found"); err != nil {
			return nil, err
		}
		updates["source_type_id"] = *update.SourceTypeID
	}
	if update.Remark != nil {
		updates["remark"] = *update.Remark
	}

	if len(updates) > 0 {
		if err := s.db.Model(entry).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return entry, nil
}

// DeactivateCashFlow flips a manual entry to inactive. The row stays in
// place and stays retrievable by id. Linked entries are deactivated through
// their ledger action so both sides flip together.
func (s *cashFlowService) DeactivateCashFlow(id uint) error {
	entry, err := s.GetCashFlowByID(id)
	if err != nil {
		return err
	}
	if entry.LinkInvestmentID != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "entry is linked to an investment action; deactivate the ledger entry instead")
	}
	if err := s.db.Model(entry).Update("status", models.StatusInactive).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *cashFlowService) dimensionExists(model interface{}, id uint, message string) error {
	err := s.db.First(model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.WithMessage(apperrors.ErrDimensionNotFound, message)
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
