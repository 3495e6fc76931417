package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func simDate(month int) time.Time {
	return time.Date(2025, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

func TestSimulate(t *testing.T) {
	t.Run("projects_from_metric_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		invSvc := NewInvestmentService(db, false)
		svc := NewSimulationService(db, invSvc, 12)
		product := testutil.CreateTestProduct(t, db)
		metric := testutil.CreateTestMetric(t, db)
		testutil.CreateTestObservation(t, db, product.ID, metric.ID, simDate(1), 100)
		testutil.CreateTestObservation(t, db, product.ID, metric.ID, simDate(2), 110)
		testutil.CreateTestObservation(t, db, product.ID, metric.ID, simDate(3), 121)

		result, err := svc.Simulate(product.ID, metric.ID, decimal.NewFromInt(1000), 0)
		testutil.AssertNoError(t, err)

		if result.ProductName != product.Name {
			t.Errorf("expected product name %q, got %q", product.Name, result.ProductName)
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(1100), result.Projection.ProjectedValue)
		if result.Projection.BasisWindow != 3 {
			t.Errorf("expected basis window 3, got %d", result.Projection.BasisWindow)
		}
	})

	t.Run("no_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSimulationService(db, NewInvestmentService(db, false), 12)
		product := testutil.CreateTestProduct(t, db)
		metric := testutil.CreateTestMetric(t, db)

		_, err := svc.Simulate(product.ID, metric.ID, decimal.NewFromInt(1000), 0)
		testutil.AssertAppError(t, err, "INSUFFICIENT_DATA")
	})

	t.Run("unknown_product", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSimulationService(db, NewInvestmentService(db, false), 12)
		metric := testutil.CreateTestMetric(t, db)

		_, err := svc.Simulate(99999, metric.ID, decimal.NewFromInt(1000), 0)
		testutil.AssertAppError(t, err, "PRODUCT_NOT_FOUND")
	})

	t.Run("unknown_metric", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSimulationService(db, NewInvestmentService(db, false), 12)
		product := testutil.CreateTestProduct(t, db)

		_, err := svc.Simulate(product.ID, 99999, decimal.NewFromInt(1000), 0)
		testutil.AssertAppError(t, err, "DIMENSION_NOT_FOUND")
	})

	t.Run("zero_principal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSimulationService(db, NewInvestmentService(db, false), 12)
		product := testutil.CreateTestProduct(t, db)
		metric := testutil.CreateTestMetric(t, db)
		testutil.CreateTestObservation(t, db, product.ID, metric.ID, simDate(1), 100)

		_, err := svc.Simulate(product.ID, metric.ID, decimal.Zero, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("includes_risk_level", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSimulationService(db, NewInvestmentService(db, false), 12)

		level := &models.RiskLevel{Name: "R2", Description: "low", Status: models.StatusActive}
		testutil.AssertNoError(t, db.Create(level).Error)
		product := testutil.CreateTestProduct(t, db)
		testutil.AssertNoError(t, db.Model(product).Update("risk_level_id", level.ID).Error)
		metric := testutil.CreateTestMetric(t, db)
		testutil.CreateTestObservation(t, db, product.ID, metric.ID, simDate(1), 100)

		result, err := svc.Simulate(product.ID, metric.ID, decimal.NewFromInt(500), 0)
		testutil.AssertNoError(t, err)
		if result.RiskLevel != "R2" {
			t.Errorf("expected risk level R2, got %q", result.RiskLevel)
		}
	})
}

func TestConfirm(t *testing.T) {
	t.Run("records_a_buy", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		invSvc := NewInvestmentService(db, true)
		svc := NewSimulationService(db, invSvc, 12)
		product := testutil.CreateTestProduct(t, db)
		account := testutil.CreateTestAccount(t, db)

		entry, err := svc.Confirm(ConfirmSimulationInput{
			Date:             simDate(4),
			ProductID:        product.ID,
			Amount:           decimal.NewFromInt(1000),
			ChannelAccountID: &account.ID,
			Remark:           "after simulation",
		})
		testutil.AssertNoError(t, err)

		if entry.Action != models.ActionTypeBuy {
			t.Errorf("expected a buy, got %s", entry.Action)
		}
		if entry.CashFlowLinkID == nil {
			t.Error("expected a linked cash flow")
		}
	})
}
