package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// analyticsService aggregates the cash-flow book and ledger and checks their
// linkage. Sums run over decimals in Go rather than SQL so SQLite's float
// arithmetic never touches the amounts.
type analyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB) AnalyticsServicer {
	return &analyticsService{db: db}
}

// Totals sums the active cash flows and ledger movement over an optional
// date range.
func (s *analyticsService) Totals(from, to *time.Time) (*FlowTotals, error) {
	flowQuery := s.db.Model(&models.CashFlow{}).Where("status = ?", models.StatusActive)
	ledgerQuery := s.db.Model(&models.InvestmentLog{}).Where("status = ?", models.StatusActive)
	if from != nil {
		flowQuery = flowQuery.Where("date >= ?", *from)
		ledgerQuery = ledgerQuery.Where("date >= ?", *from)
	}
	if to != nil {
		flowQuery = flowQuery.Where("date <= ?", *to)
		ledgerQuery = ledgerQuery.Where("date <= ?", *to)
	}

	var entries []models.CashFlow
	if err := flowQuery.Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var actions []models.InvestmentLog
	if err := ledgerQuery.Find(&actions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := &FlowTotals{Income: decimal.Zero, Expense: decimal.Zero, Invested: decimal.Zero, Net: decimal.Zero}
	for _, entry := range entries {
		if entry.FlowType == models.FlowTypeIncome {
			totals.Income = totals.Income.Add(entry.Amount)
		} else {
			totals.Expense = totals.Expense.Add(entry.Amount)
		}
	}
	for _, action := range actions {
		if action.Action == models.ActionTypeBuy {
			totals.Invested = totals.Invested.Add(action.Amount)
		} else {
			totals.Invested = totals.Invested.Sub(action.Amount)
		}
	}
	totals.Net = totals.Income.Sub(totals.Expense)
	return totals, nil
}

// MonthlySeries returns per-month totals for one calendar year. Months with
// no entries are included with zero totals so charts stay dense, and the
// cumulative net runs across the whole year.
func (s *analyticsService) MonthlySeries(year int) ([]MonthlyTotal, error) {
	if year <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "year is required")
	}

	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var entries []models.CashFlow
	if err := s.db.
		Where("status = ? AND date >= ? AND date < ?", models.StatusActive, start, end).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var actions []models.InvestmentLog
	if err := s.db.
		Where("status = ? AND date >= ? AND date < ?", models.StatusActive, start, end).
		Find(&actions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	series := make([]MonthlyTotal, 12)
	for i := range series {
		series[i] = MonthlyTotal{
			Month:         time.Date(year, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
			Income:        decimal.Zero,
			Expense:       decimal.Zero,
			InvestOutflow: decimal.Zero,
			Net:           decimal.Zero,
			CumulativeNet: decimal.Zero,
		}
	}

	for _, entry := range entries {
		idx := int(entry.Date.Month()) - 1
		if entry.FlowType == models.FlowTypeIncome {
			series[idx].Income = series[idx].Income.Add(entry.Amount)
		} else {
			series[idx].Expense = series[idx].Expense.Add(entry.Amount)
		}
	}
	for _, action := range actions {
		idx := int(action.Date.Month()) - 1
		if action.Action == models.ActionTypeBuy {
			series[idx].InvestOutflow = series[idx].InvestOutflow.Add(action.Amount)
		} else {
			series[idx].InvestOutflow = series[idx].InvestOutflow.Sub(action.Amount)
		}
	}

	running := decimal.Zero
	for i := range series {
		series[i].Net = series[i].Income.Sub(series[i].Expense)
		running = running.Add(series[i].Net)
		series[i].CumulativeNet = running
		if series[i].Income.IsPositive() {
			series[i].InvestRatio, _ = series[i].InvestOutflow.Div(series[i].Income).Float64()
		}
	}
	return series, nil
}

// LinkageReport verifies that every ledger/cash-flow link resolves in both
// directions and that monthly totals of the two books agree. Orphans indicate
// a past bug or manual database surgery; normal operation cannot produce them
// because paired writes are transactional.
func (s *analyticsService) LinkageReport() (*LinkageReport, error) {
	report := &LinkageReport{
		OrphanLedgerIDs:   []uint{},
		OrphanCashFlowIDs: []uint{},
		Months:            []LinkageMonth{},
	}

	// Ledger entries whose linked cash flow is gone or points elsewhere.
	var ledgerEntries []models.InvestmentLog
	if err := s.db.
		Where("cash_flow_link_id IS NOT NULL").
		Find(&ledgerEntries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, entry := range ledgerEntries {
		var flow models.CashFlow
		err := s.db.Take(&flow, *entry.CashFlowLinkID).Error
		if err != nil || flow.LinkInvestmentID == nil || *flow.LinkInvestmentID != entry.ID {
			report.OrphanLedgerIDs = append(report.OrphanLedgerIDs, entry.ID)
		}
	}

	// Cash flows claiming an investment origin that is gone or unlinked.
	var flows []models.CashFlow
	if err := s.db.
		Where("link_investment_id IS NOT NULL").
		Find(&flows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, flow := range flows {
		var entry models.InvestmentLog
		err := s.db.Take(&entry, *flow.LinkInvestmentID).Error
		if err != nil || entry.CashFlowLinkID == nil || *entry.CashFlowLinkID != flow.ID {
			report.OrphanCashFlowIDs = append(report.OrphanCashFlowIDs, flow.ID)
		}
	}

	// Monthly totals of the linked, active rows on both sides.
	months := make(map[string]*LinkageMonth)
	monthFor := func(date time.Time) *LinkageMonth {
		key := date.Format("2006-01")
		m, ok := months[key]
		if !ok {
			m = &LinkageMonth{
				Month:         key,
				LedgerBuys:    decimal.Zero,
				LinkedExpense: decimal.Zero,
				LedgerRedeems: decimal.Zero,
				LinkedIncome:  decimal.Zero,
			}
			months[key] = m
		}
		return m
	}
	for _, entry := range ledgerEntries {
		if entry.Status != models.StatusActive {
			continue
		}
		m := monthFor(entry.Date)
		if entry.Action == models.ActionTypeBuy {
			m.LedgerBuys = m.LedgerBuys.Add(entry.Amount)
		} else {
			m.LedgerRedeems = m.LedgerRedeems.Add(entry.Amount)
		}
	}
	for _, flow := range flows {
		if flow.Status != models.StatusActive {
			continue
		}
		m := monthFor(flow.Date)
		if flow.FlowType == models.FlowTypeExpense {
			m.LinkedExpense = m.LinkedExpense.Add(flow.Amount)
		} else {
			m.LinkedIncome = m.LinkedIncome.Add(flow.Amount)
		}
	}

	keys := make([]string, 0, len(months))
	for key := range months {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	balanced := true
	for _, key := range keys {
		m := months[key]
		m.BuyDiff = m.LedgerBuys.Sub(m.LinkedExpense)
		m.RedeemDiff = m.LedgerRedeems.Sub(m.LinkedIncome)
		if !m.BuyDiff.IsZero() || !m.RedeemDiff.IsZero() {
			balanced = false
		}
		report.Months = append(report.Months, *m)
	}

	report.Consistent = balanced &&
		len(report.OrphanLedgerIDs) == 0 &&
		len(report.OrphanCashFlowIDs) == 0
	return report, nil
}
