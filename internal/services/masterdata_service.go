package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// reference names one foreign-key column pointing at a dimension table.
type reference struct {
	table  string
	column string
}

// tableDescriptor describes one dimension table: which optional columns it
// carries and which tables reference it.
type tableDescriptor struct {
	hasDescription bool
	hasUnit        bool
	hasParent      bool
	references     []reference
}

// masterTables is the registry of dimension tables editable through the
// master data endpoints. Table names double as API path segments.
var masterTables = map[string]tableDescriptor{
	"accounts": {
		references: []reference{
			{table: "cash_flows", column: "account_id"},
			{table: "investment_logs", column: "channel_account_id"},
		},
	},
	"categories": {
		hasParent: true,
		references: []reference{
			{table: "cash_flows", column: "category_id"},
			{table: "categories", column: "parent_id"},
		},
	},
	"source_types": {
		references: []reference{
			{table: "cash_flows", column: "source_type_id"},
		},
	},
	"product_types": {
		references: []reference{
			{table: "products", column: "type_id"},
		},
	},
	"risk_levels": {
		hasDescription: true,
		references: []reference{
			{table: "products", column: "risk_level_id"},
		},
	},
	"metrics": {
		hasDescription: true,
		hasUnit:        true,
		references: []reference{
			{table: "metric_observations", column: "metric_id"},
		},
	},
}

// masterDataService handles the shared dimension tables.
type masterDataService struct {
	db *gorm.DB
}

// NewMasterDataService creates a new MasterDataServicer.
func NewMasterDataService(db *gorm.DB) MasterDataServicer {
	return &masterDataService{db: db}
}

func descriptorFor(table string) (tableDescriptor, error) {
	desc, ok := masterTables[table]
	if !ok {
		return tableDescriptor{}, apperrors.ErrUnknownMasterTable
	}
	return desc, nil
}

// List returns the rows of a dimension table, active ones by default.
func (s *masterDataService) List(table string, includeInactive bool) ([]MasterEntry, error) {
	if _, err := descriptorFor(table); err != nil {
		return nil, err
	}

	query := s.db.Table(table).Order("name")
	if !includeInactive {
		query = query.Where("status = ?", models.StatusActive)
	}

	var entries []MasterEntry
	if err := query.Scan(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if entries == nil {
		entries = []MasterEntry{}
	}
	return entries, nil
}

// Create inserts a new dimension row. Names must be unique among the active
// rows of the table.
func (s *masterDataService) Create(table, name string, attrs MasterAttrs) (*MasterEntry, error) {
	desc, err := descriptorFor(table)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}

	var count int64
	if err := s.db.Table(table).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "an entry with this name already exists")
	}

	if attrs.ParentID != nil {
		if !desc.hasParent {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "this table does not support parent entries")
		}
		if _, err := s.getEntry(table, *attrs.ParentID); err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrDimensionNotFound, "parent entry not found")
		}
	}

	now := time.Now()
	row := map[string]interface{}{
		"name":       name,
		"status":     models.StatusActive,
		"created_at": now,
		"updated_at": now,
	}
	if desc.hasDescription {
		row["description"] = attrs.Description
	}
	if desc.hasUnit {
		row["unit"] = attrs.Unit
	}
	if desc.hasParent {
		row["parent_id"] = attrs.ParentID
	}

	if err := s.db.Table(table).Create(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entry MasterEntry
	if err := s.db.Table(table).Where("name = ?", name).Scan(&entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

// Rename changes the display name of a dimension row. Referencing rows keep
// pointing at the same id, so the rename propagates everywhere.
func (s *masterDataService) Rename(table string, id uint, name string) (*MasterEntry, error) {
	if _, err := descriptorFor(table); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}

	entry, err := s.getEntry(table, id)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Table(table).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "an entry with this name already exists")
	}

	if err := s.setColumns(table, id, map[string]interface{}{"name": name}); err != nil {
		return nil, err
	}
	entry.Name = name
	return entry, nil
}

// Deactivate flips a dimension row to inactive. Referencing rows are left
// untouched; the entry simply stops appearing in pick lists.
func (s *masterDataService) Deactivate(table string, id uint) error {
	if _, err := descriptorFor(table); err != nil {
		return err
	}
	if _, err := s.getEntry(table, id); err != nil {
		return err
	}
	return s.setColumns(table, id, map[string]interface{}{"status": models.StatusInactive})
}

// Restore flips a dimension row back to active.
func (s *masterDataService) Restore(table string, id uint) error {
	if _, err := descriptorFor(table); err != nil {
		return err
	}
	if _, err := s.getEntry(table, id); err != nil {
		return err
	}
	return s.setColumns(table, id, map[string]interface{}{"status": models.StatusActive})
}

// ReferenceCounts reports how many rows in each referencing table point at
// the entry, so a caller can show the impact before deactivating it.
func (s *masterDataService) ReferenceCounts(table string, id uint) (map[string]int64, error) {
	desc, err := descriptorFor(table)
	if err != nil {
		return nil, err
	}
	if _, err := s.getEntry(table, id); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(desc.references))
	for _, ref := range desc.references {
		var count int64
		if err := s.db.Table(ref.table).Where(ref.column+" = ?", id).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		counts[ref.table] = count
	}
	return counts, nil
}

func (s *masterDataService) getEntry(table string, id uint) (*MasterEntry, error) {
	var entry MasterEntry
	err := s.db.Table(table).Where("id = ?", id).Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDimensionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

func (s *masterDataService) setColumns(table string, id uint, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	if err := s.db.Table(table).Where("id = ?", id).Updates(updates).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
