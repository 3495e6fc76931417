package models

import "time"

// Product is the master record for a financial product. Identity fields are
// effectively immutable once metrics or ledger entries reference the
// product; descriptive fields may still be edited.
type Product struct {
	Base
	Name        string     `gorm:"not null;uniqueIndex" json:"name"`
	TypeID      *uint      `json:"type_id,omitempty"`
	RiskLevelID *uint      `json:"risk_level_id,omitempty"`
	LaunchDate  *time.Time `json:"launch_date,omitempty"`
	Remark      string     `json:"remark"`
	Status      string     `gorm:"not null;default:'active'" json:"status"`

	ProductType *ProductType `gorm:"foreignKey:TypeID" json:"product_type,omitempty"`
	RiskLevel   *RiskLevel   `gorm:"foreignKey:RiskLevelID" json:"risk_level,omitempty"`
}
