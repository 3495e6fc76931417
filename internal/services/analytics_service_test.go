package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestTotals(t *testing.T) {
	t.Run("sums_active_entries_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		account := testutil.CreateTestAccount(t, db)
		testutil.CreateTestCashFlow(t, db, account.ID, models.FlowTypeIncome, "3200.50")
		testutil.CreateTestCashFlow(t, db, account.ID, models.FlowTypeExpense, "1200.25")
		inactive := testutil.CreateTestCashFlow(t, db, account.ID, models.FlowTypeExpense, "999")
		testutil.AssertNoError(t, db.Model(inactive).Update("status", models.StatusInactive).Error)

		totals, err := svc.Totals(nil, nil)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.RequireFromString("3200.50"), totals.Income)
		testutil.AssertDecimalEqual(t, decimal.RequireFromString("1200.25"), totals.Expense)
		testutil.AssertDecimalEqual(t, decimal.RequireFromString("2000.25"), totals.Net)
	})

	t.Run("invested_is_buys_minus_redeems", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		product := testutil.CreateTestProduct(t, db)
		testutil.CreateTestInvestmentLog(t, db, product.ID, models.ActionTypeBuy, "800")
		testutil.CreateTestInvestmentLog(t, db, product.ID, models.ActionTypeRedeem, "300")
		inactive := testutil.CreateTestInvestmentLog(t, db, product.ID, models.ActionTypeBuy, "999")
		testutil.AssertNoError(t, db.Model(inactive).Update("status", models.StatusInactive).Error)

		totals, err := svc.Totals(nil, nil)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(500), totals.Invested)
	})

	t.Run("date_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		flowSvc := NewCashFlowService(db)
		account := testutil.CreateTestAccount(t, db)

		_, err := flowSvc.CreateCashFlow(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), account.ID, nil, models.FlowTypeIncome, decimal.NewFromInt(100), nil, "")
		testutil.AssertNoError(t, err)
		_, err = flowSvc.CreateCashFlow(time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), account.ID, nil, models.FlowTypeIncome, decimal.NewFromInt(200), nil, "")
		testutil.AssertNoError(t, err)

		from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		totals, err := svc.Totals(&from, nil)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(200), totals.Income)
	})
}

func TestMonthlySeries(t *testing.T) {
	t.Run("dense_twelve_months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		flowSvc := NewCashFlowService(db)
		account := testutil.CreateTestAccount(t, db)

		_, err := flowSvc.CreateCashFlow(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), account.ID, nil, models.FlowTypeIncome, decimal.NewFromInt(500), nil, "")
		testutil.AssertNoError(t, err)
		_, err = flowSvc.CreateCashFlow(time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC), account.ID, nil, models.FlowTypeExpense, decimal.NewFromInt(150), nil, "")
		testutil.AssertNoError(t, err)

		series, err := svc.MonthlySeries(2025)
		testutil.AssertNoError(t, err)
		if len(series) != 12 {
			t.Fatalf("expected 12 months, got %d", len(series))
		}
		if series[0].Month != "2025-01" || series[11].Month != "2025-12" {
			t.Errorf("expected months 2025-01..2025-12, got %s..%s", series[0].Month, series[11].Month)
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(350), series[1].Net)
		testutil.AssertDecimalEqual(t, decimal.Zero, series[0].Net)
	})

	t.Run("investment_outflow_ratio_and_cumulative_net", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		flowSvc := NewCashFlowService(db)
		account := testutil.CreateTestAccount(t, db)
		product := testutil.CreateTestProduct(t, db)
		invSvc := NewInvestmentService(db, false)

		_, err := flowSvc.CreateCashFlow(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), account.ID, nil, models.FlowTypeIncome, decimal.NewFromInt(1000), nil, "")
		testutil.AssertNoError(t, err)
		_, err = flowSvc.CreateCashFlow(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), account.ID, nil, models.FlowTypeExpense, decimal.NewFromInt(400), nil, "")
		testutil.AssertNoError(t, err)
		_, err = invSvc.RecordAction(RecordActionInput{
			Date:      time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			ProductID: product.ID,
			Action:    models.ActionTypeBuy,
			Amount:    decimal.NewFromInt(250),
		})
		testutil.AssertNoError(t, err)

		series, err := svc.MonthlySeries(2025)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(250), series[0].InvestOutflow)
		if series[0].InvestRatio != 0.25 {
			t.Errorf("expected invest ratio 0.25, got %v", series[0].InvestRatio)
		}
		if series[1].InvestRatio != 0 {
			t.Errorf("expected zero invest ratio without income, got %v", series[1].InvestRatio)
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(1000), series[0].CumulativeNet)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(600), series[1].CumulativeNet)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(600), series[11].CumulativeNet)
	})

	t.Run("missing_year", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)

		_, err := svc.MonthlySeries(0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestLinkageReport(t *testing.T) {
	t.Run("consistent_after_paired_write", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		invSvc := NewInvestmentService(db, true)
		product := testutil.CreateTestProduct(t, db)
		account := testutil.CreateTestAccount(t, db)

		_, err := invSvc.RecordAction(RecordActionInput{
			Date:             time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			ProductID:        product.ID,
			Action:           models.ActionTypeBuy,
			Amount:           decimal.NewFromInt(100),
			ChannelAccountID: &account.ID,
		})
		testutil.AssertNoError(t, err)

		report, err := svc.LinkageReport()
		testutil.AssertNoError(t, err)
		if !report.Consistent {
			t.Errorf("expected consistent linkage, got %+v", report)
		}
		if len(report.Months) != 1 {
			t.Fatalf("expected 1 linkage month, got %d", len(report.Months))
		}
		month := report.Months[0]
		if month.Month != "2025-03" {
			t.Errorf("expected month 2025-03, got %s", month.Month)
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), month.LedgerBuys)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), month.LinkedExpense)
		testutil.AssertDecimalEqual(t, decimal.Zero, month.BuyDiff)
	})

	t.Run("detects_monthly_drift", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		invSvc := NewInvestmentService(db, true)
		product := testutil.CreateTestProduct(t, db)
		account := testutil.CreateTestAccount(t, db)

		entry, err := invSvc.RecordAction(RecordActionInput{
			Date:             time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			ProductID:        product.ID,
			Action:           models.ActionTypeBuy,
			Amount:           decimal.NewFromInt(100),
			ChannelAccountID: &account.ID,
		})
		testutil.AssertNoError(t, err)

		// Tamper with the linked cash flow behind the service's back so the
		// two books no longer agree on the amount.
		testutil.AssertNoError(t, db.Model(&models.CashFlow{}).
			Where("id = ?", *entry.CashFlowLinkID).
			Update("amount", decimal.NewFromInt(90)).Error)

		report, err := svc.LinkageReport()
		testutil.AssertNoError(t, err)
		if report.Consistent {
			t.Fatal("expected drift to be detected")
		}
		if len(report.OrphanLedgerIDs) != 0 || len(report.OrphanCashFlowIDs) != 0 {
			t.Errorf("expected no orphans, got %+v", report)
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(10), report.Months[0].BuyDiff)
	})

	t.Run("detects_orphaned_ledger_link", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		invSvc := NewInvestmentService(db, true)
		product := testutil.CreateTestProduct(t, db)
		account := testutil.CreateTestAccount(t, db)

		entry, err := invSvc.RecordAction(RecordActionInput{
			Date:             time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			ProductID:        product.ID,
			Action:           models.ActionTypeBuy,
			Amount:           decimal.NewFromInt(100),
			ChannelAccountID: &account.ID,
		})
		testutil.AssertNoError(t, err)

		// Simulate manual database surgery: drop the cash flow out from
		// under the ledger entry.
		testutil.AssertNoError(t, db.Delete(&models.CashFlow{}, *entry.CashFlowLinkID).Error)

		report, err := svc.LinkageReport()
		testutil.AssertNoError(t, err)
		if report.Consistent {
			t.Fatal("expected inconsistency to be detected")
		}
		if len(report.OrphanLedgerIDs) != 1 || report.OrphanLedgerIDs[0] != entry.ID {
			t.Errorf("expected orphan ledger entry %d, got %v", entry.ID, report.OrphanLedgerIDs)
		}
	})
}
