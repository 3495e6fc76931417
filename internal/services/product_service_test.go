package services

import (
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestCreateProduct(t *testing.T) {
	t.Run("creates_product", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)

		product, err := svc.CreateProduct("Stable Money Fund", nil, nil, nil, "starter pick")
		testutil.AssertNoError(t, err)
		if product.ID == 0 {
			t.Fatal("expected non-zero product id")
		}
		if product.Status != models.StatusActive {
			t.Errorf("expected active status, got %s", product.Status)
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)

		_, err := svc.CreateProduct("Stable Money Fund", nil, nil, nil, "")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateProduct("Stable Money Fund", nil, nil, nil, "")
		testutil.AssertAppError(t, err, "DUPLICATE_PRODUCT")
	})

	t.Run("unknown_risk_level", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		missing := uint(99999)

		_, err := svc.CreateProduct("Bond Fund", nil, &missing, nil, "")
		testutil.AssertAppError(t, err, "DIMENSION_NOT_FOUND")
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("rename_blocked_once_referenced", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		product := testutil.CreateTestProduct(t, db)
		testutil.CreateTestInvestmentLog(t, db, product.ID, models.ActionTypeBuy, "100")

		_, err := svc.UpdateProduct(product.ID, "New Name", nil, nil, nil, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rename_allowed_when_unreferenced", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		product := testutil.CreateTestProduct(t, db)

		_, err := svc.UpdateProduct(product.ID, "New Name", nil, nil, nil, nil)
		testutil.AssertNoError(t, err)

		got, err := svc.GetProductByID(product.ID)
		testutil.AssertNoError(t, err)
		if got.Name != "New Name" {
			t.Errorf("expected renamed product, got %q", got.Name)
		}
	})

	t.Run("remark_editable_while_referenced", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		product := testutil.CreateTestProduct(t, db)
		testutil.CreateTestInvestmentLog(t, db, product.ID, models.ActionTypeBuy, "100")

		remark := "still editable"
		launch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.UpdateProduct(product.ID, "", nil, nil, &launch, &remark)
		testutil.AssertNoError(t, err)

		got, err := svc.GetProductByID(product.ID)
		testutil.AssertNoError(t, err)
		if got.Remark != remark {
			t.Errorf("expected updated remark, got %q", got.Remark)
		}
	})
}

func TestDeactivateProduct(t *testing.T) {
	t.Run("stays_retrievable_with_flag", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		product := testutil.CreateTestProduct(t, db)

		testutil.AssertNoError(t, svc.DeactivateProduct(product.ID))

		got, err := svc.GetProductByID(product.ID)
		testutil.AssertNoError(t, err)
		if got.Status != models.StatusInactive {
			t.Errorf("expected inactive status, got %s", got.Status)
		}

		page, err := svc.ListProducts(pagination.PageRequest{}, false, nil)
		testutil.AssertNoError(t, err)
		if page.TotalItems != 0 {
			t.Errorf("expected no active products, got %d", page.TotalItems)
		}
	})

	t.Run("history_survives", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		product := testutil.CreateTestProduct(t, db)
		metric := testutil.CreateTestMetric(t, db)
		testutil.CreateTestObservation(t, db, product.ID, metric.ID, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 2.5)
		testutil.CreateTestInvestmentLog(t, db, product.ID, models.ActionTypeBuy, "100")

		testutil.AssertNoError(t, svc.DeactivateProduct(product.ID))

		refs, err := svc.GetProductReferences(product.ID)
		testutil.AssertNoError(t, err)
		if refs.Observations != 1 || refs.LedgerEntries != 1 {
			t.Errorf("expected history to survive deactivation, got %+v", refs)
		}
	})
}

func TestGetProductReferences(t *testing.T) {
	t.Run("unknown_product", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)

		_, err := svc.GetProductReferences(99999)
		testutil.AssertAppError(t, err, "PRODUCT_NOT_FOUND")
	})
}
