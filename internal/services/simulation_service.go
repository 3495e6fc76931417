package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/projection"
)

// simulationService runs what-if projections over a product's metric history
// and turns confirmed ones into real ledger entries.
type simulationService struct {
	db          *gorm.DB
	investments InvestmentServicer
	// horizon is the default observation window when the caller does not
	// request one.
	horizon int
}

// NewSimulationService creates a new SimulationServicer.
func NewSimulationService(db *gorm.DB, investments InvestmentServicer, horizon int) SimulationServicer {
	if horizon <= 0 {
		horizon = projection.DefaultHorizon
	}
	return &simulationService{db: db, investments: investments, horizon: horizon}
}

// Simulate projects what a principal invested in the product would look like
// after one period, based on the metric's recent history. Nothing is
// persisted.
func (s *simulationService) Simulate(productID, metricID uint, principal decimal.Decimal, horizon int) (*SimulationResult, error) {
	var product models.Product
	err := s.db.Preload("RiskLevel").First(&product, productID).Error
	if err != nil {
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

	if horizon <= 0 {
		horizon = s.horizon
	}

	// Fetch only the window the engine will use; the engine sorts its input.
	var rows []models.MetricObservation
	if err := s.db.
		Where("product_id = ? AND metric_id = ?", productID, metricID).
		Order("record_date DESC, id DESC").
		Limit(horizon).
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	observations := make([]projection.Observation, len(rows))
	for i, row := range rows {
		observations[i] = projection.Observation{Date: row.RecordDate, Value: row.Value}
	}

	result, err := projection.Project(principal, observations, horizon)
	if err != nil {
		return nil, err
	}

	simulation := &SimulationResult{
		ProductID:   product.ID,
		ProductName: product.Name,
		MetricID:    metric.ID,
		MetricName:  metric.Name,
		Projection:  *result,
	}
	if product.RiskLevel != nil {
		simulation.RiskLevel = product.RiskLevel.Name
	}
	return simulation, nil
}

// Confirm records a reviewed simulation as a real buy through the ledger,
// inheriting its atomic paired-write behavior.
func (s *simulationService) Confirm(input ConfirmSimulationInput) (*models.InvestmentLog, error) {
	return s.investments.RecordAction(RecordActionInput{
		Date:             input.Date,
		ProductID:        input.ProductID,
		Action:           models.ActionTypeBuy,
		Amount:           input.Amount,
		ChannelAccountID: input.ChannelAccountID,
		Remark:           input.Remark,
		LinkCashFlow:     input.LinkCashFlow,
	})
}
