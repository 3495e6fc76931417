package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// metricService handles product metric time series.
type metricService struct {
	db *gorm.DB
}

// NewMetricService creates a new MetricServicer.
func NewMetricService(db *gorm.DB) MetricServicer {
	return &metricService{db: db}
}

// RecordObservation appends one dated metric value for a product. Duplicate
// (product, metric, date) rows are accepted; the series is append-only.
func (s *metricService) RecordObservation(productID, metricID uint, date time.Time, value float64, source, remark string) (*models.MetricObservation, error) {
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "record date is required")
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var metric models.Metric
	if err := s.db.First(&metric, metricID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrDimensionNotFound, "metric not found")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	observation := &models.MetricObservation{
		ProductID:  productID,
		MetricID:   metricID,
		RecordDate: date,
		Value:      value,
		Source:     source,
		Remark:     remark,
	}
	if err := s.db.Create(observation).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return observation, nil
}

// ListObservations retrieves a paginated, filtered slice of the series,
// newest first.
func (s *metricService) ListObservations(filter ObservationFilter, page pagination.PageRequest) (*pagination.PageResponse[models.MetricObservation], error) {
	page.Defaults()

	base := s.db.Model(&models.MetricObservation{})
	if filter.ProductID != nil {
		base = base.Where("product_id = ?", *filter.ProductID)
	}
	if filter.MetricID != nil {
		base = base.Where("metric_id = ?", *filter.MetricID)
	}
	if filter.FromDate != nil {
		base = base.Where("record_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("record_date <= ?", *filter.ToDate)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var observations []models.MetricObservation
	if err := base.
		Order("record_date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&observations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(observations, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetObservationByID retrieves a single observation.
func (s *metricService) GetObservationByID(id uint) (*models.MetricObservation, error) {
	var observation models.MetricObservation
	if err := s.db.First(&observation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMetricNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &observation, nil
}

// DeleteObservation removes a mistyped observation for good. Observations
// carry no status flag: this is the data-correction path, not a soft delete.
func (s *metricService) DeleteObservation(id uint) error {
	observation, err := s.GetObservationByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(observation).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ProductTrend returns the most recent observations of one metric for one
// product, newest first. A limit <= 0 returns the whole series.
func (s *metricService) ProductTrend(productID, metricID uint, limit int) ([]models.MetricObservation, error) {
	query := s.db.
		Where("product_id = ? AND metric_id = ?", productID, metricID).
		Order("record_date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var observations []models.MetricObservation
	if err := query.Find(&observations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return observations, nil
}
