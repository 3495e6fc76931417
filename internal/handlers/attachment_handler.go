package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// AttachmentHandler handles uploaded document endpoints.
type AttachmentHandler struct {
	attachmentService services.AttachmentServicer
	auditService      services.AuditServicer
}

// NewAttachmentHandler creates a new AttachmentHandler.
func NewAttachmentHandler(attachmentService services.AttachmentServicer, auditService services.AuditServicer) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService, auditService: auditService}
}

// Upload handles storing a document for a later processing pass.
// @Summary     Upload an attachment
// @Description Store a document (statement screenshot, product sheet) as pending
// @Tags        attachments
// @Accept      multipart/form-data
// @Produce     json
// @Param       module formData string true "Originating module (cash_flow, investment, product)"
// @Param       remark formData string false "Free-form note"
// @Param       file formData file true "Document file"
// @Success     201 {object} models.Attachment "Attachment stored"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /attachments [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	module := c.PostForm("module")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "a file upload is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	attachment, err := h.attachmentService.Save(module, fileHeader.Filename, file, c.PostForm("remark"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPLOAD_ATTACHMENT", "attachment", attachment.ID, c.ClientIP(),
		map[string]interface{}{"module": module, "filename": fileHeader.Filename})

	c.JSON(http.StatusCreated, gin.H{"attachment": attachment})
}

// GetAttachments handles listing stored documents.
// @Summary     List attachments
// @Tags        attachments
// @Produce     json
// @Param       page query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 50, max 200)"
// @Success     200 {object} pagination.PageResponse[models.Attachment] "Paginated attachments"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /attachments [get]
func (h *AttachmentHandler) GetAttachments(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.attachmentService.ListAttachments(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAttachment handles retrieving one attachment record.
// @Summary     Get attachment by ID
// @Tags        attachments
// @Produce     json
// @Param       id path int true "Attachment ID"
// @Success     200 {object} models.Attachment "Attachment details"
// @Failure     404 {object} ErrorResponse "Attachment not found"
// @Router      /attachments/{id} [get]
func (h *AttachmentHandler) GetAttachment(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	attachment, err := h.attachmentService.GetAttachmentByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attachment": attachment})
}
