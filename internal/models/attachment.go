package models

// Attachment is a pending uploaded document (bank statement screenshot,
// product sheet) waiting for a future OCR pass. Only the file path and a
// pending marker are stored; no processing happens yet.
type Attachment struct {
	Base
	Module   string `gorm:"not null" json:"module"`
	FilePath string `gorm:"not null" json:"file_path"`
	Status   string `gorm:"not null;default:'pending'" json:"status"`
	Remark   string `json:"remark"`
}

// AttachmentStatusPending marks an attachment that has not been processed.
const AttachmentStatusPending = "pending"
