package models

import "time"

// Master data dimensions. Each carries a status flag for logical deletion;
// deleting never cascades to referencing rows.

// Account is a funding channel (bank account, broker, wallet).
type Account struct {
	Base
	Name     string     `gorm:"not null;uniqueIndex" json:"name"`
	LastUsed *time.Time `json:"last_used,omitempty"`
	Status   string     `gorm:"not null;default:'active'" json:"status"`
}

// Category classifies cash flows. Categories form a tree via ParentID.
type Category struct {
	Base
	Name     string `gorm:"not null" json:"name"`
	ParentID *uint  `json:"parent_id,omitempty"`
	Status   string `gorm:"not null;default:'active'" json:"status"`

	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

// SourceType describes where a cash flow originated (salary, wealth product, ...).
type SourceType struct {
	Base
	Name   string `gorm:"not null;uniqueIndex" json:"name"`
	Status string `gorm:"not null;default:'active'" json:"status"`
}

// ProductType classifies financial products (money fund, bond fund, ...).
type ProductType struct {
	Base
	Name   string `gorm:"not null;uniqueIndex" json:"name"`
	Status string `gorm:"not null;default:'active'" json:"status"`
}

// RiskLevel is a product risk rating.
type RiskLevel struct {
	Base
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`
	Status      string `gorm:"not null;default:'active'" json:"status"`
}

// Metric names a tracked time-series measure, e.g. "yield" or "nav".
type Metric struct {
	Base
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
	Status      string `gorm:"not null;default:'active'" json:"status"`
}
