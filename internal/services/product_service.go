package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// productService handles product master records.
type productService struct {
	db *gorm.DB
}

// NewProductService creates a new ProductServicer.
func NewProductService(db *gorm.DB) ProductServicer {
	return &productService{db: db}
}

// CreateProduct creates a new product master record.
func (s *productService) CreateProduct(name string, typeID, riskLevelID *uint, launchDate *time.Time, remark string) (*models.Product, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "product name is required")
	}

	var count int64
	if err := s.db.Model(&models.Product{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateProduct
	}

	if typeID != nil {
		if err := s.dimensionExists(&models.ProductType{}, *typeID, "product type not found"); err != nil {
			return nil, err
		}
	}
	if riskLevelID != nil {
		if err := s.dimensionExists(&models.RiskLevel{}, *riskLevelID, "risk level not found"); err != nil {
			return nil, err
		}
	}

	product := &models.Product{
		Name:        name,
		TypeID:      typeID,
		RiskLevelID: riskLevelID,
		LaunchDate:  launchDate,
		Remark:      remark,
		Status:      models.StatusActive,
	}
	if err := s.db.Create(product).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return product, nil
}

// ListProducts retrieves a paginated product list, active ones by default.
func (s *productService) ListProducts(page pagination.PageRequest, includeInactive bool, typeID *uint) (*pagination.PageResponse[models.Product], error) {
	page.Defaults()

	base := s.db.Model(&models.Product{})
	if !includeInactive {
		base = base.Where("status = ?", models.StatusActive)
	}
	if typeID != nil {
		base = base.Where("type_id = ?", *typeID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var products []models.Product
	if err := base.
		Preload("ProductType").
		Preload("RiskLevel").
		Order("name").
		Scopes(pagination.Paginate(page)).
		Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(products, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetProductByID retrieves a product regardless of its status, so a
// deactivated product stays inspectable with its flag intact.
func (s *productService) GetProductByID(id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.
		Preload("ProductType").
		Preload("RiskLevel").
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &product, nil
}

// UpdateProduct edits a product. Renaming is refused once observations or
// ledger entries reference the product; descriptive fields stay editable.
func (s *productService) UpdateProduct(id uint, name string, typeID, riskLevelID *uint, launchDate *time.Time, remark *string) (*models.Product, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if name != "" && name != product.Name {
		refs, err := s.GetProductReferences(id)
		if err != nil {
			return nil, err
		}
		if refs.Observations > 0 || refs.LedgerEntries > 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "product cannot be renamed while metric or ledger history references it")
		}

		var count int64
		if err := s.db.Model(&models.Product{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateProduct
		}
		updates["name"] = name
	}

	if typeID != nil {
		if err := s.dimensionExists(&models.ProductType{}, *typeID, "product type not found"); err != nil {
			return nil, err
		}
		updates["type_id"] = *typeID
	}
	if riskLevelID != nil {
		if err := s.dimensionExists(&models.RiskLevel{}, *riskLevelID, "risk level not found"); err != nil {
			return nil, err
		}
		updates["risk_level_id"] = *riskLevelID
	}
	if launchDate != nil {
		updates["launch_date"] = *launchDate
	}
	if remark != nil {
		updates["remark"] = *remark
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return product, nil
}

// DeactivateProduct flips the product to inactive. History referencing the
// product is never touched.
func (s *productService) DeactivateProduct(id uint) error {
	product, err := s.GetProductByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Model(product).Update("status", models.StatusInactive).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// RestoreProduct flips the product back to active.
func (s *productService) RestoreProduct(id uint) error {
	product, err := s.GetProductByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Model(product).Update("status", models.StatusActive).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetProductReferences counts the history rows that point at the product.
func (s *productService) GetProductReferences(id uint) (*ProductReferences, error) {
	if _, err := s.GetProductByID(id); err != nil {
		return nil, err
	}

	var refs ProductReferences
	if err := s.db.Model(&models.MetricObservation{}).
		Where("product_id = ?", id).
		Count(&refs.Observations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(&models.InvestmentLog{}).
		Where("product_id = ?", id).
		Count(&refs.LedgerEntries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &refs, nil
}

func (s *productService) dimensionExists(model interface{}, id uint, message string) error {
	err := s.db.First(model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.WithMessage(apperrors.ErrDimensionNotFound, message)
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
