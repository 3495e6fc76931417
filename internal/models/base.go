package models

import "time"

// Base contains the common columns for all tables.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Row status values for logical deletion. Rows are never physically removed
// through normal operation; listing queries filter on status while direct id
// lookups always return the row with its flag intact.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)
