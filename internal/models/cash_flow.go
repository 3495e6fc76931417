package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlowType is the direction of a cash flow entry.
type FlowType string

const (
	FlowTypeIncome  FlowType = "income"
	FlowTypeExpense FlowType = "expense"
)

// Sign returns the signed multiplier for the flow direction: income counts
// positive, expense negative.
func (f FlowType) Sign() decimal.Decimal {
	if f == FlowTypeExpense {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// CashFlow is one income or expense entry. Amounts are stored unsigned; the
// flow type carries the direction.
type CashFlow struct {
	Base
	Date         time.Time       `gorm:"not null;index" json:"date"`
	AccountID    uint            `gorm:"not null" json:"account_id"`
	CategoryID   *uint           `json:"category_id,omitempty"`
	FlowType     FlowType        `gorm:"not null" json:"flow_type"`
	Amount       decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	SourceTypeID *uint           `json:"source_type_id,omitempty"`
	Remark       string          `json:"remark"`
	Status       string          `gorm:"not null;default:'active'" json:"status"`

	// Set when this entry was generated from an investment action. The
	// correlation id is shared with the originating ledger entry.
	LinkInvestmentID *uint  `gorm:"index" json:"link_investment_id,omitempty"`
	CorrelationID    string `gorm:"index" json:"correlation_id,omitempty"`

	Account    Account     `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Category   *Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SourceType *SourceType `gorm:"foreignKey:SourceTypeID" json:"source_type,omitempty"`
}
