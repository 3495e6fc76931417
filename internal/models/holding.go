package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoldingStatus is the materialized per-product position, recomputed from
// the investment ledger after every write. One row per product.
type HoldingStatus struct {
	Base
	ProductID   uint            `gorm:"not null;uniqueIndex" json:"product_id"`
	TotalInvest decimal.Decimal `gorm:"type:numeric;not null" json:"total_invest"`
	EstProfit   decimal.Decimal `gorm:"type:numeric;not null" json:"est_profit"`
	AvgYield    float64         `json:"avg_yield"`
	LastUpdate  time.Time       `json:"last_update"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
