package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActionType is the kind of investment action recorded in the ledger.
type ActionType string

const (
	ActionTypeBuy    ActionType = "buy"
	ActionTypeRedeem ActionType = "redeem"
)

// FlowType returns the cash-flow direction an action materializes as: a buy
// moves cash out, a redemption brings cash back in.
func (a ActionType) FlowType() FlowType {
	if a == ActionTypeBuy {
		return FlowTypeExpense
	}
	return FlowTypeIncome
}

// InvestmentLog is one buy or redeem action against a product. Rows are
// logically deleted via the status flag so the audit trail survives.
type InvestmentLog struct {
	Base
	Date             time.Time       `gorm:"not null;index" json:"date"`
	ProductID        uint            `gorm:"not null;index" json:"product_id"`
	Action           ActionType      `gorm:"not null" json:"action"`
	Amount           decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	ChannelAccountID *uint           `json:"channel_account_id,omitempty"`
	Remark           string          `json:"remark"`
	Status           string          `gorm:"not null;default:'active'" json:"status"`

	// Set when a linked cash-flow entry was generated alongside this action.
	CashFlowLinkID *uint  `gorm:"index" json:"cash_flow_link_id,omitempty"`
	CorrelationID  string `gorm:"index" json:"correlation_id,omitempty"`

	Product        Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ChannelAccount *Account `gorm:"foreignKey:ChannelAccountID" json:"channel_account,omitempty"`
}
