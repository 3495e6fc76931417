package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// MetricHandler handles metric observation endpoints.
type MetricHandler struct {
	metricService services.MetricServicer
	auditService  services.AuditServicer
}

// NewMetricHandler creates a new MetricHandler.
func NewMetricHandler(metricService services.MetricServicer, auditService services.AuditServicer) *MetricHandler {
	return &MetricHandler{metricService: metricService, auditService: auditService}
}

// RecordObservationRequest represents the request payload for recording a
// metric observation.
type RecordObservationRequest struct {
	ProductID  uint      `json:"product_id" binding:"required"`
	MetricID   uint      `json:"metric_id" binding:"required"`
	RecordDate time.Time `json:"record_date" binding:"required"`
	Value      float64   `json:"value"`
	Source     string    `json:"source"`
	Remark     string    `json:"remark"`
}

// RecordObservation handles appending one metric value.
// @Summary     Record a metric observation
// @Description Append one dated metric value for a product; the series is append-only
// @Tags        metrics
// @Accept      json
// @Produce     json
// @Param       request body RecordObservationRequest true "Observation details"
// @Success     201 {object} models.MetricObservation "Observation recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Product or metric not found"
// @Router      /observations [post]
func (h *MetricHandler) RecordObservation(c *gin.Context) {
	var req RecordObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	observation, err := h.metricService.RecordObservation(req.ProductID, req.MetricID, req.RecordDate, req.Value, req.Source, req.Remark)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("RECORD_OBSERVATION", "metric_observation", observation.ID, c.ClientIP(),
		map[string]interface{}{"product_id": req.ProductID, "metric_id": req.MetricID, "value": req.Value})

	c.JSON(http.StatusCreated, gin.H{"observation": observation})
}

// GetObservations handles listing observations.
// @Summary     List metric observations
// @Tags        metrics
// @Produce     json
// @Param       product_id query int false "Filter by product"
// @Param       metric_id query int false "Filter by metric"
// @Param       from query string false "From date (YYYY-MM-DD)"
// @Param       to query string false "To date (YYYY-MM-DD)"
// @Param       page query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 50, max 200)"
// @Success     200 {object} pagination.PageResponse[models.MetricObservation] "Paginated observations"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /observations [get]
func (h *MetricHandler) GetObservations(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.ObservationFilter
	if v := c.Query("product_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "product_id must be an integer"))
			return
		}
		id := uint(parsed)
		filter.ProductID = &id
	}
	if v := c.Query("metric_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "metric_id must be an integer"))
			return
		}
		id := uint(parsed)
		filter.MetricID = &id
	}

	var err error
	if filter.FromDate, err = parseDateQuery(c, "from"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.ToDate, err = parseDateQuery(c, "to"); err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.metricService.ListObservations(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetObservation handles retrieving one observation.
// @Summary     Get observation by ID
// @Tags        metrics
// @Produce     json
// @Param       id path int true "Observation ID"
// @Success     200 {object} models.MetricObservation "Observation details"
// @Failure     404 {object} ErrorResponse "Observation not found"
// @Router      /observations/{id} [get]
func (h *MetricHandler) GetObservation(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	observation, err := h.metricService.GetObservationByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"observation": observation})
}

// DeleteObservation handles removing a mistyped observation.
// @Summary     Delete observation
// @Description Physically remove an observation; this is the data-correction path
// @Tags        metrics
// @Produce     json
// @Param       id path int true "Observation ID"
// @Success     200 {object} MessageResponse "Observation deleted"
// @Failure     404 {object} ErrorResponse "Observation not found"
// @Router      /observations/{id} [delete]
func (h *MetricHandler) DeleteObservation(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.metricService.DeleteObservation(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_OBSERVATION", "metric_observation", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Observation deleted"})
}
