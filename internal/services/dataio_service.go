package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
)

// Import modes. Replace wipes the table inside the import transaction;
// append only adds rows.
const (
	ImportModeReplace = "replace"
	ImportModeAppend  = "append"
)

const dateLayout = "2006-01-02"

// dataIOService moves the transactional tables in and out as CSV.
type dataIOService struct {
	db          *gorm.DB
	investments InvestmentServicer
}

// NewDataIOService creates a new DataIOServicer. The investment service is
// used to rebuild holdings after a ledger import.
func NewDataIOService(db *gorm.DB, investments InvestmentServicer) DataIOServicer {
	return &dataIOService{db: db, investments: investments}
}

// Export writes all rows of the entity's table as CSV, inactive rows
// included, so an export is a full backup.
func (s *dataIOService) Export(entity string, w io.Writer) error {
	writer := csv.NewWriter(w)

	switch entity {
	case "cash_flows":
		var entries []models.CashFlow
		if err := s.db.Order("id").Find(&entries).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := writer.Write([]string{"id", "date", "account_id", "category_id", "flow_type", "amount", "source_type_id", "remark", "status", "link_investment_id", "correlation_id"}); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, e := range entries {
			record := []string{
				strconv.FormatUint(uint64(e.ID), 10),
				e.Date.Format(dateLayout),
				strconv.FormatUint(uint64(e.AccountID), 10),
				formatOptionalID(e.CategoryID),
				string(e.FlowType),
				e.Amount.String(),
				formatOptionalID(e.SourceTypeID),
				e.Remark,
				e.Status,
				formatOptionalID(e.LinkInvestmentID),
				e.CorrelationID,
			}
			if err := writer.Write(record); err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

	case "investment_logs":
		var entries []models.InvestmentLog
		if err := s.db.Order("id").Find(&entries).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := writer.Write([]string{"id", "date", "product_id", "action", "amount", "channel_account_id", "remark", "status", "cash_flow_link_id", "correlation_id"}); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, e := range entries {
			record := []string{
				strconv.FormatUint(uint64(e.ID), 10),
				e.Date.Format(dateLayout),
				strconv.FormatUint(uint64(e.ProductID), 10),
				string(e.Action),
				e.Amount.String(),
				formatOptionalID(e.ChannelAccountID),
				e.Remark,
				e.Status,
				formatOptionalID(e.CashFlowLinkID),
				e.CorrelationID,
			}
			if err := writer.Write(record); err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

	case "metric_observations":
		var entries []models.MetricObservation
		if err := s.db.Order("id").Find(&entries).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := writer.Write([]string{"id", "product_id", "metric_id", "record_date", "value", "source", "remark"}); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, e := range entries {
			record := []string{
				strconv.FormatUint(uint64(e.ID), 10),
				strconv.FormatUint(uint64(e.ProductID), 10),
				strconv.FormatUint(uint64(e.MetricID), 10),
				e.RecordDate.Format(dateLayout),
				strconv.FormatFloat(e.Value, 'f', -1, 64),
				e.Source,
				e.Remark,
			}
			if err := writer.Write(record); err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

	case "products":
		var entries []models.Product
		if err := s.db.Order("id").Find(&entries).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := writer.Write([]string{"id", "name", "type_id", "risk_level_id", "launch_date", "remark", "status"}); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, e := range entries {
			launchDate := ""
			if e.LaunchDate != nil {
				launchDate = e.LaunchDate.Format(dateLayout)
			}
			record := []string{
				strconv.FormatUint(uint64(e.ID), 10),
				e.Name,
				formatOptionalID(e.TypeID),
				formatOptionalID(e.RiskLevelID),
				launchDate,
				e.Remark,
				e.Status,
			}
			if err := writer.Write(record); err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

	default:
		return apperrors.ErrUnknownImportEntity
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Import loads CSV rows into the entity's table. Replace mode wipes the
// table first and keeps the exported ids, so cross-table references
// (ledger/cash-flow links, product ids) survive a full restore; append mode
// regenerates ids. Everything runs in one transaction so a bad row aborts
// the whole import. Columns are matched by header name, so exports
// re-import directly.
func (s *dataIOService) Import(entity, mode string, r io.Reader) (*ImportResult, error) {
	if mode != ImportModeReplace && mode != ImportModeAppend {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "mode must be replace or append")
	}

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "missing CSV header row")
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	var touchedProducts map[uint]bool
	inserted := 0
	updated := 0

	err = s.db.Transaction(func(tx *gorm.DB) error {
		switch entity {
		case "cash_flows":
			if mode == ImportModeReplace {
				if err := tx.Where("1 = 1").Delete(&models.CashFlow{}).Error; err != nil {
					return err
				}
			}
			for line := 2; ; line++ {
				record, err := reader.Read()
				if err == io.EOF {
					break
				}
				if err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				entry, err := parseCashFlowRecord(columns, record)
				if err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				entry.ID, err = importID(mode, columns, record)
				if err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				if err := tx.Create(entry).Error; err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				inserted++
			}

		case "investment_logs":
			if mode == ImportModeReplace {
				if err := tx.Where("1 = 1").Delete(&models.InvestmentLog{}).Error; err != nil {
					return err
				}
				if err := tx.Where("1 = 1").Delete(&models.HoldingStatus{}).Error; err != nil {
					return err
				}
			}
			touchedProducts = make(map[uint]bool)
			for line := 2; ; line++ {
				record, err := reader.Read()
				if err == io.EOF {
					break
				}
				if err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				entry, err := parseInvestmentRecord(columns, record)
				if err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				entry.ID, err = importID(mode, columns, record)
				if err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				if err := tx.Create(entry).Error; err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				touchedProducts[entry.ProductID] = true
				inserted++
			}

		case "metric_observations":
			if mode == ImportModeReplace {
				if err := tx.Where("1 = 1").Delete(&models.MetricObservation{}).Error; err != nil {
					return err
				}
			}
			for line := 2; ; line++ {
				record, err := reader.Read()
				if err == io.EOF {
					break
				}
				if err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				entry, err := parseObservationRecord(columns, record)
				if err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				entry.ID, err = importID(mode, columns, record)
				if err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				if err := tx.Create(entry).Error; err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				inserted++
			}

		case "products":
			if mode == ImportModeReplace {
				if err := tx.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
					return err
				}
			}
			for line := 2; ; line++ {
				record, err := reader.Read()
				if err == io.EOF {
					break
				}
				if err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				entry, err := parseProductRecord(columns, record)
				if err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				entry.ID, err = importID(mode, columns, record)
				if err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				// Products carry a natural key, so appending matches on
				// name instead of tripping the unique index.
				if mode == ImportModeAppend {
					var existing models.Product
					err := tx.Where("name = ?", entry.Name).Take(&existing).Error
					if err == nil {
						entry.ID = existing.ID
						entry.CreatedAt = existing.CreatedAt
						if err := tx.Save(entry).Error; err != nil {
							return fmt.Errorf("line %d: %w", line, err)
						}
						updated++
						continue
					}
					if !errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("line %d: %w", line, err)
					}
				}
				if err := tx.Create(entry).Error; err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				inserted++
			}

		default:
			return apperrors.ErrUnknownImportEntity
		}
		return nil
	})
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			return nil, appErr
		}
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	// Ledger imports invalidate the materialized positions.
	for productID := range touchedProducts {
		if err := s.investments.RecomputeHolding(productID); err != nil {
			return nil, err
		}
	}

	logger.Get().Infow("import completed", "entity", entity, "mode", mode, "inserted", inserted, "updated", updated)
	return &ImportResult{
		Entity:   entity,
		Mode:     mode,
		Inserted: inserted,
		Updated:  updated,
		Replaced: mode == ImportModeReplace,
	}, nil
}

// importID returns the row's exported id in replace mode so cross-table
// references stay valid after a full restore. Append mode returns zero and
// lets the database assign a fresh id.
func importID(mode string, columns map[string]int, record []string) (uint, error) {
	if mode != ImportModeReplace {
		return 0, nil
	}
	raw := field(columns, record, "id")
	if raw == "" {
		return 0, nil
	}
	return parseRequiredID(raw, "id")
}

func field(columns map[string]int, record []string, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func formatOptionalID(id *uint) string {
	if id == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*id), 10)
}

func parseRequiredID(value, name string) (uint, error) {
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return uint(parsed), nil
}

func parseOptionalID(value, name string) (*uint, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := parseRequiredID(value, name)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseDate(value, name string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q, want YYYY-MM-DD", name, value)
	}
	return parsed, nil
}

func parseStatus(value string) (string, error) {
	if value == "" {
		return models.StatusActive, nil
	}
	if value != models.StatusActive && value != models.StatusInactive {
		return "", fmt.Errorf("invalid status %q", value)
	}
	return value, nil
}

func parseCashFlowRecord(columns map[string]int, record []string) (*models.CashFlow, error) {
	date, err := parseDate(field(columns, record, "date"), "date")
	if err != nil {
		return nil, err
	}
	accountID, err := parseRequiredID(field(columns, record, "account_id"), "account_id")
	if err != nil {
		return nil, err
	}
	categoryID, err := parseOptionalID(field(columns, record, "category_id"), "category_id")
	if err != nil {
		return nil, err
	}
	flowType := models.FlowType(field(columns, record, "flow_type"))
	if flowType != models.FlowTypeIncome && flowType != models.FlowTypeExpense {
		return nil, fmt.Errorf("invalid flow_type %q", flowType)
	}
	amount, err := decimal.NewFromString(field(columns, record, "amount"))
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("invalid amount %q", field(columns, record, "amount"))
	}
	sourceTypeID, err := parseOptionalID(field(columns, record, "source_type_id"), "source_type_id")
	if err != nil {
		return nil, err
	}
	status, err := parseStatus(field(columns, record, "status"))
	if err != nil {
		return nil, err
	}
	linkInvestmentID, err := parseOptionalID(field(columns, record, "link_investment_id"), "link_investment_id")
	if err != nil {
		return nil, err
	}

	return &models.CashFlow{
		Date:             date,
		AccountID:        accountID,
		CategoryID:       categoryID,
		FlowType:         flowType,
		Amount:           amount,
		SourceTypeID:     sourceTypeID,
		Remark:           field(columns, record, "remark"),
		Status:           status,
		LinkInvestmentID: linkInvestmentID,
		CorrelationID:    field(columns, record, "correlation_id"),
	}, nil
}

func parseInvestmentRecord(columns map[string]int, record []string) (*models.InvestmentLog, error) {
	date, err := parseDate(field(columns, record, "date"), "date")
	if err != nil {
		return nil, err
	}
	productID, err := parseRequiredID(field(columns, record, "product_id"), "product_id")
	if err != nil {
		return nil, err
	}
	action := models.ActionType(field(columns, record, "action"))
	if action != models.ActionTypeBuy && action != models.ActionTypeRedeem {
		return nil, fmt.Errorf("invalid action %q", action)
	}
	amount, err := decimal.NewFromString(field(columns, record, "amount"))
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("invalid amount %q", field(columns, record, "amount"))
	}
	channelAccountID, err := parseOptionalID(field(columns, record, "channel_account_id"), "channel_account_id")
	if err != nil {
		return nil, err
	}
	status, err := parseStatus(field(columns, record, "status"))
	if err != nil {
		return nil, err
	}
	cashFlowLinkID, err := parseOptionalID(field(columns, record, "cash_flow_link_id"), "cash_flow_link_id")
	if err != nil {
		return nil, err
	}

	return &models.InvestmentLog{
		Date:             date,
		ProductID:        productID,
		Action:           action,
		Amount:           amount,
		ChannelAccountID: channelAccountID,
		Remark:           field(columns, record, "remark"),
		Status:           status,
		CashFlowLinkID:   cashFlowLinkID,
		CorrelationID:    field(columns, record, "correlation_id"),
	}, nil
}

func parseObservationRecord(columns map[string]int, record []string) (*models.MetricObservation, error) {
	productID, err := parseRequiredID(field(columns, record, "product_id"), "product_id")
	if err != nil {
		return nil, err
	}
	metricID, err := parseRequiredID(field(columns, record, "metric_id"), "metric_id")
	if err != nil {
		return nil, err
	}
	date, err := parseDate(field(columns, record, "record_date"), "record_date")
	if err != nil {
		return nil, err
	}
	value, err := strconv.ParseFloat(field(columns, record, "value"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid value %q", field(columns, record, "value"))
	}

	return &models.MetricObservation{
		ProductID:  productID,
		MetricID:   metricID,
		RecordDate: date,
		Value:      value,
		Source:     field(columns, record, "source"),
		Remark:     field(columns, record, "remark"),
	}, nil
}

func parseProductRecord(columns map[string]int, record []string) (*models.Product, error) {
	name := field(columns, record, "name")
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	typeID, err := parseOptionalID(field(columns, record, "type_id"), "type_id")
	if err != nil {
		return nil, err
	}
	riskLevelID, err := parseOptionalID(field(columns, record, "risk_level_id"), "risk_level_id")
	if err != nil {
		return nil, err
	}
	var launchDate *time.Time
	if raw := field(columns, record, "launch_date"); raw != "" {
		parsed, err := parseDate(raw, "launch_date")
		if err != nil {
			return nil, err
		}
		launchDate = &parsed
	}
	status, err := parseStatus(field(columns, record, "status"))
	if err != nil {
		return nil, err
	}

	return &models.Product{
		Name:        name,
		TypeID:      typeID,
		RiskLevelID: riskLevelID,
		LaunchDate:  launchDate,
		Remark:      field(columns, record, "remark"),
		Status:      status,
	}, nil
}
