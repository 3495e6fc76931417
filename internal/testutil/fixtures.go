package testutil

import (
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/models"
)

// fixtureCounter makes unique-indexed fields distinct across fixtures.
var fixtureCounter atomic.Int64

func nextSuffix() string {
	return strconv.FormatInt(fixtureCounter.Add(1), 10)
}

// CreateTestAccount creates an account with a unique name.
func CreateTestAccount(t *testing.T, db *gorm.DB) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:   "Test Account " + nextSuffix(),
		Status: models.StatusActive,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a top-level cash-flow category.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:   "Test Category " + nextSuffix(),
		Status: models.StatusActive,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestMetric creates a metric dimension row.
func CreateTestMetric(t *testing.T, db *gorm.DB) *models.Metric {
	t.Helper()

	metric := &models.Metric{
		Name:   "Test Metric " + nextSuffix(),
		Unit:   "%",
		Status: models.StatusActive,
	}
	if err := db.Create(metric).Error; err != nil {
		t.Fatalf("failed to create test metric: %v", err)
	}
	return metric
}

// CreateTestProduct creates an active product with a unique name.
func CreateTestProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:   "Test Product " + nextSuffix(),
		Status: models.StatusActive,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

// CreateTestObservation records one metric value for a product.
func CreateTestObservation(t *testing.T, db *gorm.DB, productID, metricID uint, date time.Time, value float64) *models.MetricObservation {
	t.Helper()

	observation := &models.MetricObservation{
		ProductID:  productID,
		MetricID:   metricID,
		RecordDate: date,
		Value:      value,
		Source:     "test",
	}
	if err := db.Create(observation).Error; err != nil {
		t.Fatalf("failed to create test observation: %v", err)
	}
	return observation
}

// CreateTestCashFlow creates an active cash-flow entry on the given account.
func CreateTestCashFlow(t *testing.T, db *gorm.DB, accountID uint, flowType models.FlowType, amount string) *models.CashFlow {
	t.Helper()

	value, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("invalid fixture amount %q: %v", amount, err)
	}
	entry := &models.CashFlow{
		Date:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		AccountID: accountID,
		FlowType:  flowType,
		Amount:    value,
		Status:    models.StatusActive,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test cash flow: %v", err)
	}
	return entry
}

// CreateTestInvestmentLog creates an active ledger entry for a product.
func CreateTestInvestmentLog(t *testing.T, db *gorm.DB, productID uint, action models.ActionType, amount string) *models.InvestmentLog {
	t.Helper()

	value, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("invalid fixture amount %q: %v", amount, err)
	}
	entry := &models.InvestmentLog{
		Date:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		ProductID: productID,
		Action:    action,
		Amount:    value,
		Status:    models.StatusActive,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test investment log: %v", err)
	}
	return entry
}
