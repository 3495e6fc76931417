package models

// AuditLog records a mutating action for traceability. Writes are
// best-effort and never block the originating request.
type AuditLog struct {
	Base
	Action     string `gorm:"not null" json:"action"`
	EntityType string `gorm:"not null" json:"entity_type"`
	EntityID   uint   `json:"entity_id"`
	IPAddress  string `json:"ip_address"`
	Changes    string `gorm:"type:text" json:"changes,omitempty"`
}
