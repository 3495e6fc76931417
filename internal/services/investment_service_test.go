package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func actionDate() time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

func TestRecordAction(t *testing.T) {
	t.Run("linked_buy_writes_both_books", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, true)
		product := testutil.CreateTestProduct(t, db)
		account := testutil.CreateTestAccount(t, db)

		entry, err := svc.RecordAction(RecordActionInput{
			Date:             actionDate(),
			ProductID:        product.ID,
			Action:           models.ActionTypeBuy,
			Amount:           decimal.NewFromInt(1000),
			ChannelAccountID: &account.ID,
		})
		testutil.AssertNoError(t, err)

		if entry.CashFlowLinkID == nil {
			t.Fatal("expected a linked cash flow id")
		}
		if entry.CorrelationID == "" {
			t.Error("expected a correlation id on the ledger entry")
		}

		var flow models.CashFlow
		testutil.AssertNoError(t, db.First(&flow, *entry.CashFlowLinkID).Error)
		if flow.LinkInvestmentID == nil || *flow.LinkInvestmentID != entry.ID {
			t.Error("expected the cash flow to point back at the ledger entry")
		}
		if flow.CorrelationID != entry.CorrelationID {
			t.Errorf("expected shared correlation id, got %q and %q", flow.CorrelationID, entry.CorrelationID)
		}
		if flow.FlowType != models.FlowTypeExpense {
			t.Errorf("expected a buy to materialize as expense, got %s", flow.FlowType)
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(1000), flow.Amount)
	})

	t.Run("redeem_materializes_as_income", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, true)
		product := testutil.CreateTestProduct(t, db)
		account := testutil.CreateTestAccount(t, db)

		entry, err := svc.RecordAction(RecordActionInput{
			Date:             actionDate(),
			ProductID:        product.ID,
			Action:           models.ActionTypeRedeem,
			Amount:           decimal.NewFromInt(250),
			ChannelAccountID: &account.ID,
		})
		testutil.AssertNoError(t, err)

		var flow models.CashFlow
		testutil.AssertNoError(t, db.First(&flow, *entry.CashFlowLinkID).Error)
		if flow.FlowType != models.FlowTypeIncome {
			t.Errorf("expected a redemption to materialize as income, got %s", flow.FlowType)
		}
	})

	t.Run("unlinked_write_leaves_cash_book_untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, true)
		product := testutil.CreateTestProduct(t, db)
		noLink := false

		entry, err := svc.RecordAction(RecordActionInput{
			Date:         actionDate(),
			ProductID:    product.ID,
			Action:       models.ActionTypeBuy,
			Amount:       decimal.NewFromInt(500),
			LinkCashFlow: &noLink,
		})
		testutil.AssertNoError(t, err)

		if entry.CashFlowLinkID != nil {
			t.Error("expected no linked cash flow")
		}
		var count int64
		testutil.AssertNoError(t, db.Model(&models.CashFlow{}).Count(&count).Error)
		if count != 0 {
			t.Errorf("expected an empty cash book, got %d rows", count)
		}
	})

	t.Run("auto_link_default_off", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, false)
		product := testutil.CreateTestProduct(t, db)

		entry, err := svc.RecordAction(RecordActionInput{
			Date:      actionDate(),
			ProductID: product.ID,
			Action:    models.ActionTypeBuy,
			Amount:    decimal.NewFromInt(500),
		})
		testutil.AssertNoError(t, err)
		if entry.CashFlowLinkID != nil {
			t.Error("expected no linked cash flow with auto-link off")
		}
	})

	t.Run("rolls_back_ledger_when_cash_flow_insert_fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, true)
		product := testutil.CreateTestProduct(t, db)
		account := testutil.CreateTestAccount(t, db)

		// Sabotage the cash book so the paired insert fails after the
		// ledger insert already succeeded inside the transaction.
		testutil.AssertNoError(t, db.Migrator().DropTable(&models.CashFlow{}))

		_, err := svc.RecordAction(RecordActionInput{
			Date:             actionDate(),
			ProductID:        product.ID,
			Action:           models.ActionTypeBuy,
			Amount:           decimal.NewFromInt(1000),
			ChannelAccountID: &account.ID,
		})
		testutil.AssertAppError(t, err, "PARTIAL_WRITE")

		var ledgerCount int64
		testutil.AssertNoError(t, db.Model(&models.InvestmentLog{}).Count(&ledgerCount).Error)
		if ledgerCount != 0 {
			t.Errorf("expected the ledger insert to be rolled back, got %d rows", ledgerCount)
		}

		testutil.AssertNoError(t, db.AutoMigrate(&models.CashFlow{}))
		var flowCount int64
		testutil.AssertNoError(t, db.Model(&models.CashFlow{}).Count(&flowCount).Error)
		if flowCount != 0 {
			t.Errorf("expected an empty cash book, got %d rows", flowCount)
		}

		var holdingCount int64
		testutil.AssertNoError(t, db.Model(&models.HoldingStatus{}).Count(&holdingCount).Error)
		if holdingCount != 0 {
			t.Errorf("expected no holding row for the rolled-back buy, got %d", holdingCount)
		}
	})

	t.Run("link_requires_channel_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, true)
		product := testutil.CreateTestProduct(t, db)

		_, err := svc.RecordAction(RecordActionInput{
			Date:      actionDate(),
			ProductID: product.ID,
			Action:    models.ActionTypeBuy,
			Amount:    decimal.NewFromInt(500),
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		// Nothing may have landed in either book.
		var ledgerCount, flowCount int64
		testutil.AssertNoError(t, db.Model(&models.InvestmentLog{}).Count(&ledgerCount).Error)
		testutil.AssertNoError(t, db.Model(&models.CashFlow{}).Count(&flowCount).Error)
		if ledgerCount != 0 || flowCount != 0 {
			t.Errorf("expected no rows in either book, got ledger=%d flows=%d", ledgerCount, flowCount)
		}
	})

	t.Run("invalid_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, false)
		product := testutil.CreateTestProduct(t, db)

		_, err := svc.RecordAction(RecordActionInput{
			Date:      actionDate(),
			ProductID: product.ID,
			Action:    models.ActionTypeBuy,
			Amount:    decimal.Zero,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_product", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, false)

		_, err := svc.RecordAction(RecordActionInput{
			Date:      actionDate(),
			ProductID: 99999,
			Action:    models.ActionTypeBuy,
			Amount:    decimal.NewFromInt(100),
		})
		testutil.AssertAppError(t, err, "PRODUCT_NOT_FOUND")
	})

	t.Run("inactive_product_refused", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, false)
		product := testutil.CreateTestProduct(t, db)
		testutil.AssertNoError(t, db.Model(product).Update("status", models.StatusInactive).Error)

		_, err := svc.RecordAction(RecordActionInput{
			Date:      actionDate(),
			ProductID: product.ID,
			Action:    models.ActionTypeBuy,
			Amount:    decimal.NewFromInt(100),
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestHoldings(t *testing.T) {
	t.Run("position_tracks_buys_and_redeems", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, false)
		product := testutil.CreateTestProduct(t, db)

		_, err := svc.RecordAction(RecordActionInput{Date: actionDate(), ProductID: product.ID, Action: models.ActionTypeBuy, Amount: decimal.NewFromInt(1000)})
		testutil.AssertNoError(t, err)
		_, err = svc.RecordAction(RecordActionInput{Date: actionDate(), ProductID: product.ID, Action: models.ActionTypeRedeem, Amount: decimal.NewFromInt(300)})
		testutil.AssertNoError(t, err)

		holdings, err := svc.Holdings()
		testutil.AssertNoError(t, err)
		if len(holdings) != 1 {
			t.Fatalf("expected one holding, got %d", len(holdings))
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(700), holdings[0].TotalInvest)
		testutil.AssertDecimalEqual(t, decimal.Zero, holdings[0].EstProfit)
	})

	t.Run("over_redemption_becomes_profit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, false)
		product := testutil.CreateTestProduct(t, db)

		_, err := svc.RecordAction(RecordActionInput{Date: actionDate(), ProductID: product.ID, Action: models.ActionTypeBuy, Amount: decimal.NewFromInt(1000)})
		testutil.AssertNoError(t, err)
		_, err = svc.RecordAction(RecordActionInput{Date: actionDate(), ProductID: product.ID, Action: models.ActionTypeRedeem, Amount: decimal.NewFromInt(1100)})
		testutil.AssertNoError(t, err)

		holdings, err := svc.Holdings()
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.Zero, holdings[0].TotalInvest)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), holdings[0].EstProfit)
		if holdings[0].AvgYield != 0.1 {
			t.Errorf("expected realized yield 0.1, got %v", holdings[0].AvgYield)
		}
	})
}

func TestDeactivateAction(t *testing.T) {
	t.Run("flips_both_sides_and_recomputes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, true)
		product := testutil.CreateTestProduct(t, db)
		account := testutil.CreateTestAccount(t, db)

		entry, err := svc.RecordAction(RecordActionInput{
			Date:             actionDate(),
			ProductID:        product.ID,
			Action:           models.ActionTypeBuy,
			Amount:           decimal.NewFromInt(1000),
			ChannelAccountID: &account.ID,
		})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeactivateAction(entry.ID))

		// Both rows survive with their flags flipped.
		got, err := svc.GetActionByID(entry.ID)
		testutil.AssertNoError(t, err)
		if got.Status != models.StatusInactive {
			t.Errorf("expected inactive ledger entry, got %s", got.Status)
		}
		var flow models.CashFlow
		testutil.AssertNoError(t, db.First(&flow, *entry.CashFlowLinkID).Error)
		if flow.Status != models.StatusInactive {
			t.Errorf("expected inactive cash flow, got %s", flow.Status)
		}

		holdings, err := svc.Holdings()
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.Zero, holdings[0].TotalInvest)
	})

	t.Run("unknown_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, false)

		err := svc.DeactivateAction(12345)
		testutil.AssertAppError(t, err, "INVESTMENT_NOT_FOUND")
	})
}

func TestListActions(t *testing.T) {
	t.Run("hides_inactive_by_default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, false)
		product := testutil.CreateTestProduct(t, db)

		first, err := svc.RecordAction(RecordActionInput{Date: actionDate(), ProductID: product.ID, Action: models.ActionTypeBuy, Amount: decimal.NewFromInt(100)})
		testutil.AssertNoError(t, err)
		_, err = svc.RecordAction(RecordActionInput{Date: actionDate(), ProductID: product.ID, Action: models.ActionTypeBuy, Amount: decimal.NewFromInt(200)})
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.DeactivateAction(first.ID))

		page, err := svc.ListActions(InvestmentFilter{}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Errorf("expected 1 active entry, got %d", page.TotalItems)
		}

		all, err := svc.ListActions(InvestmentFilter{IncludeInactive: true}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if all.TotalItems != 2 {
			t.Errorf("expected 2 entries including inactive, got %d", all.TotalItems)
		}
	})
}
