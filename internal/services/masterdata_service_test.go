package services

import (
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestMasterDataCreate(t *testing.T) {
	t.Run("creates_and_lists", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMasterDataService(db)

		entry, err := svc.Create("source_types", "salary", MasterAttrs{})
		testutil.AssertNoError(t, err)
		if entry.ID == 0 {
			t.Fatal("expected non-zero id")
		}
		if entry.Status != models.StatusActive {
			t.Errorf("expected active status, got %s", entry.Status)
		}

		entries, err := svc.List("source_types", false)
		testutil.AssertNoError(t, err)
		if len(entries) != 1 || entries[0].Name != "salary" {
			t.Errorf("expected one entry named salary, got %+v", entries)
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMasterDataService(db)

		_, err := svc.Create("accounts", "Checking", MasterAttrs{})
		testutil.AssertNoError(t, err)
		_, err = svc.Create("accounts", "Checking", MasterAttrs{})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_table", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMasterDataService(db)

		_, err := svc.Create("users", "nope", MasterAttrs{})
		testutil.AssertAppError(t, err, "UNKNOWN_MASTER_TABLE")
	})

	t.Run("metric_attributes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMasterDataService(db)

		entry, err := svc.Create("metrics", "seven_day_yield", MasterAttrs{Unit: "%", Description: "annualized"})
		testutil.AssertNoError(t, err)
		if entry.Unit != "%" || entry.Description != "annualized" {
			t.Errorf("expected unit and description stored, got %+v", entry)
		}
	})

	t.Run("category_with_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMasterDataService(db)

		parent, err := svc.Create("categories", "Food", MasterAttrs{})
		testutil.AssertNoError(t, err)
		child, err := svc.Create("categories", "Groceries", MasterAttrs{ParentID: &parent.ID})
		testutil.AssertNoError(t, err)
		if child.ParentID == nil || *child.ParentID != parent.ID {
			t.Errorf("expected parent id %d, got %+v", parent.ID, child.ParentID)
		}
	})

	t.Run("parent_rejected_on_flat_table", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMasterDataService(db)
		parentID := uint(1)

		_, err := svc.Create("accounts", "Broker", MasterAttrs{ParentID: &parentID})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestMasterDataRename(t *testing.T) {
	t.Run("rename_keeps_references", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMasterDataService(db)
		account := testutil.CreateTestAccount(t, db)
		flow := testutil.CreateTestCashFlow(t, db, account.ID, models.FlowTypeExpense, "10")

		renamed, err := svc.Rename("accounts", account.ID, "Renamed Account")
		testutil.AssertNoError(t, err)
		if renamed.Name != "Renamed Account" {
			t.Errorf("expected renamed entry, got %q", renamed.Name)
		}

		// The referencing row still points at the same id.
		var got models.CashFlow
		testutil.AssertNoError(t, db.Preload("Account").First(&got, flow.ID).Error)
		if got.Account.Name != "Renamed Account" {
			t.Errorf("expected rename to propagate, got %q", got.Account.Name)
		}
	})

	t.Run("unknown_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMasterDataService(db)

		_, err := svc.Rename("accounts", 99999, "x")
		testutil.AssertAppError(t, err, "DIMENSION_NOT_FOUND")
	})
}

func TestMasterDataDeactivate(t *testing.T) {
	t.Run("hidden_from_active_listing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMasterDataService(db)
		account := testutil.CreateTestAccount(t, db)

		testutil.AssertNoError(t, svc.Deactivate("accounts", account.ID))

		active, err := svc.List("accounts", false)
		testutil.AssertNoError(t, err)
		if len(active) != 0 {
			t.Errorf("expected no active accounts, got %d", len(active))
		}

		all, err := svc.List("accounts", true)
		testutil.AssertNoError(t, err)
		if len(all) != 1 || all[0].Status != models.StatusInactive {
			t.Errorf("expected one inactive account, got %+v", all)
		}
	})

	t.Run("restore", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMasterDataService(db)
		account := testutil.CreateTestAccount(t, db)

		testutil.AssertNoError(t, svc.Deactivate("accounts", account.ID))
		testutil.AssertNoError(t, svc.Restore("accounts", account.ID))

		active, err := svc.List("accounts", false)
		testutil.AssertNoError(t, err)
		if len(active) != 1 {
			t.Errorf("expected the account back in the active list, got %d", len(active))
		}
	})
}

func TestMasterDataReferenceCounts(t *testing.T) {
	t.Run("counts_referencing_rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMasterDataService(db)
		account := testutil.CreateTestAccount(t, db)
		testutil.CreateTestCashFlow(t, db, account.ID, models.FlowTypeExpense, "10")
		testutil.CreateTestCashFlow(t, db, account.ID, models.FlowTypeIncome, "20")

		counts, err := svc.ReferenceCounts("accounts", account.ID)
		testutil.AssertNoError(t, err)
		if counts["cash_flows"] != 2 {
			t.Errorf("expected 2 cash flow references, got %d", counts["cash_flows"])
		}
		if counts["investment_logs"] != 0 {
			t.Errorf("expected 0 ledger references, got %d", counts["investment_logs"])
		}
	})
}
