package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// MasterDataHandler handles the shared dimension table endpoints.
type MasterDataHandler struct {
	masterService services.MasterDataServicer
	auditService  services.AuditServicer
}

// NewMasterDataHandler creates a new MasterDataHandler.
func NewMasterDataHandler(masterService services.MasterDataServicer, auditService services.AuditServicer) *MasterDataHandler {
	return &MasterDataHandler{masterService: masterService, auditService: auditService}
}

// CreateMasterEntryRequest represents the request payload for creating a
// dimension entry.
type CreateMasterEntryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
	ParentID    *uint  `json:"parent_id"`
}

// RenameMasterEntryRequest represents the request payload for renaming a
// dimension entry.
type RenameMasterEntryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// ListEntries handles listing a dimension table.
// @Summary     List master data entries
// @Description List the entries of one dimension table, active by default
// @Tags        master-data
// @Produce     json
// @Param       table path string true "Dimension table" Enums(accounts, categories, source_types, product_types, risk_levels, metrics)
// @Param       include_inactive query bool false "Include deactivated entries"
// @Success     200 {array} services.MasterEntry "Entries"
// @Failure     400 {object} ErrorResponse "Unknown table"
// @Router      /master/{table} [get]
func (h *MasterDataHandler) ListEntries(c *gin.Context) {
	entries, err := h.masterService.List(c.Param("table"), c.Query("include_inactive") == "true")
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// CreateEntry handles creating a dimension entry.
// @Summary     Create a master data entry
// @Tags        master-data
// @Accept      json
// @Produce     json
// @Param       table path string true "Dimension table"
// @Param       request body CreateMasterEntryRequest true "Entry details"
// @Success     201 {object} services.MasterEntry "Entry created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /master/{table} [post]
func (h *MasterDataHandler) CreateEntry(c *gin.Context) {
	var req CreateMasterEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	table := c.Param("table")
	entry, err := h.masterService.Create(table, req.Name, services.MasterAttrs{
		Description: req.Description,
		Unit:        req.Unit,
		ParentID:    req.ParentID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_MASTER_ENTRY", table, entry.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// RenameEntry handles renaming a dimension entry.
// @Summary     Rename a master data entry
// @Description Rename an entry; referencing rows keep their id so the rename propagates
// @Tags        master-data
// @Accept      json
// @Produce     json
// @Param       table path string true "Dimension table"
// @Param       id path int true "Entry ID"
// @Param       request body RenameMasterEntryRequest true "New name"
// @Success     200 {object} services.MasterEntry "Entry renamed"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /master/{table}/{id} [put]
func (h *MasterDataHandler) RenameEntry(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RenameMasterEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	table := c.Param("table")
	entry, err := h.masterService.Rename(table, id, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("RENAME_MASTER_ENTRY", table, id, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// DeactivateEntry handles logically deleting a dimension entry.
// @Summary     Deactivate a master data entry
// @Description Flip an entry to inactive; referencing rows are untouched
// @Tags        master-data
// @Produce     json
// @Param       table path string true "Dimension table"
// @Param       id path int true "Entry ID"
// @Success     200 {object} MessageResponse "Entry deactivated"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /master/{table}/{id} [delete]
func (h *MasterDataHandler) DeactivateEntry(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	table := c.Param("table")
	if err := h.masterService.Deactivate(table, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DEACTIVATE_MASTER_ENTRY", table, id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Entry deactivated"})
}

// RestoreEntry handles re-activating a dimension entry.
// @Summary     Restore a master data entry
// @Tags        master-data
// @Produce     json
// @Param       table path string true "Dimension table"
// @Param       id path int true "Entry ID"
// @Success     200 {object} MessageResponse "Entry restored"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /master/{table}/{id}/restore [post]
func (h *MasterDataHandler) RestoreEntry(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	table := c.Param("table")
	if err := h.masterService.Restore(table, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("RESTORE_MASTER_ENTRY", table, id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Entry restored"})
}

// GetReferences handles the pre-deletion impact check.
// @Summary     Count references to a master data entry
// @Description Report how many rows reference the entry before deactivating it
// @Tags        master-data
// @Produce     json
// @Param       table path string true "Dimension table"
// @Param       id path int true "Entry ID"
// @Success     200 {object} map[string]int64 "Reference counts per table"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /master/{table}/{id}/references [get]
func (h *MasterDataHandler) GetReferences(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	counts, err := h.masterService.ReferenceCounts(c.Param("table"), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"references": counts})
}
