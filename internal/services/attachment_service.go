package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// attachmentService stores uploaded documents on disk and records them as
// pending. No content processing happens here.
type attachmentService struct {
	db        *gorm.DB
	uploadDir string
}

// NewAttachmentService creates a new AttachmentServicer writing files under
// uploadDir.
func NewAttachmentService(db *gorm.DB, uploadDir string) AttachmentServicer {
	return &attachmentService{db: db, uploadDir: uploadDir}
}

// Save writes the uploaded content to disk, grouped under one subdirectory
// per module, and records a pending attachment row. The stored name is
// generated; the original filename only contributes its extension.
func (s *attachmentService) Save(module, filename string, content io.Reader, remark string) (*models.Attachment, error) {
	if module == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "module is required")
	}

	dir := filepath.Join(s.uploadDir, filepath.Base(module))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	name := fmt.Sprintf("%s-%s%s",
		time.Now().UTC().Format("20060102T150405"),
		uuid.New().String(),
		filepath.Ext(filename),
	)
	path := filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if _, err := io.Copy(file, content); err != nil {
		file.Close()
		os.Remove(path)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	attachment := &models.Attachment{
		Module:   module,
		FilePath: path,
		Status:   models.AttachmentStatusPending,
		Remark:   remark,
	}
	if err := s.db.Create(attachment).Error; err != nil {
		os.Remove(path)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return attachment, nil
}

// ListAttachments retrieves a paginated list of attachments, newest first.
func (s *attachmentService) ListAttachments(page pagination.PageRequest) (*pagination.PageResponse[models.Attachment], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Attachment{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var attachments []models.Attachment
	if err := s.db.
		Order("id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&attachments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(attachments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAttachmentByID retrieves a single attachment record.
func (s *attachmentService) GetAttachmentByID(id uint) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := s.db.First(&attachment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAttachmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &attachment, nil
}
