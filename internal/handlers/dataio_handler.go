package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// DataIOHandler handles CSV export and import endpoints.
type DataIOHandler struct {
	dataIOService services.DataIOServicer
	auditService  services.AuditServicer
}

// NewDataIOHandler creates a new DataIOHandler.
func NewDataIOHandler(dataIOService services.DataIOServicer, auditService services.AuditServicer) *DataIOHandler {
	return &DataIOHandler{dataIOService: dataIOService, auditService: auditService}
}

// Export handles streaming one table as CSV.
// @Summary     Export a table as CSV
// @Description Full dump of the entity's table, inactive rows included
// @Tags        data
// @Produce     text/csv
// @Param       entity path string true "Entity" Enums(cash_flows, investment_logs, metric_observations, products)
// @Success     200 {string} string "CSV content"
// @Failure     400 {object} ErrorResponse "Unknown entity"
// @Router      /data/export/{entity} [get]
func (h *DataIOHandler) Export(c *gin.Context) {
	entity := c.Param("entity")
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", entity))

	if err := h.dataIOService.Export(entity, c.Writer); err != nil {
		respondWithError(c, err)
		return
	}
}

// Import handles loading CSV rows into one table.
// @Summary     Import a table from CSV
// @Description Load rows from an uploaded CSV file; replace wipes the table first and keeps exported ids, append adds rows (products upsert by name). A bad row aborts the whole import.
// @Tags        data
// @Accept      multipart/form-data
// @Produce     json
// @Param       entity path string true "Entity" Enums(cash_flows, investment_logs, metric_observations, products)
// @Param       mode formData string true "Import mode" Enums(replace, append)
// @Param       file formData file true "CSV file"
// @Success     200 {object} services.ImportResult "Import result"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /data/import/{entity} [post]
func (h *DataIOHandler) Import(c *gin.Context) {
	entity := c.Param("entity")
	mode := c.PostForm("mode")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "a CSV file upload is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	result, err := h.dataIOService.Import(entity, mode, file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("IMPORT_CSV", entity, 0, c.ClientIP(),
		map[string]interface{}{"mode": mode, "inserted": result.Inserted})

	c.JSON(http.StatusOK, gin.H{"result": result})
}
