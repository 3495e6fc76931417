package services

import (
	"io"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/projection"
)

// MasterEntry is the common shape of a master data row, regardless of which
// dimension table it lives in.
type MasterEntry struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Unit        string `json:"unit,omitempty"`
	ParentID    *uint  `json:"parent_id,omitempty"`
	Status      string `json:"status"`
}

// MasterAttrs carries the optional attributes a dimension row may have.
// Fields not supported by the target table are ignored.
type MasterAttrs struct {
	Description string
	Unit        string
	ParentID    *uint
}

// MasterDataServicer defines the contract for the shared dimension tables
// (accounts, categories, source types, product types, risk levels, metrics).
type MasterDataServicer interface {
	List(table string, includeInactive bool) ([]MasterEntry, error)
	Create(table, name string, attrs MasterAttrs) (*MasterEntry, error)
	Rename(table string, id uint, name string) (*MasterEntry, error)
	Deactivate(table string, id uint) error
	Restore(table string, id uint) error
	ReferenceCounts(table string, id uint) (map[string]int64, error)
}

// ProductReferences counts the rows that point at a product.
type ProductReferences struct {
	Observations  int64 `json:"observations"`
	LedgerEntries int64 `json:"ledger_entries"`
}

// ProductServicer defines the contract for product master records.
type ProductServicer interface {
	CreateProduct(name string, typeID, riskLevelID *uint, launchDate *time.Time, remark string) (*models.Product, error)
	ListProducts(page pagination.PageRequest, includeInactive bool, typeID *uint) (*pagination.PageResponse[models.Product], error)
	GetProductByID(id uint) (*models.Product, error)
	UpdateProduct(id uint, name string, typeID, riskLevelID *uint, launchDate *time.Time, remark *string) (*models.Product, error)
	DeactivateProduct(id uint) error
	RestoreProduct(id uint) error
	GetProductReferences(id uint) (*ProductReferences, error)
}

// ObservationFilter holds optional filter parameters for listing metric
// observations.
type ObservationFilter struct {
	ProductID *uint
	MetricID  *uint
	FromDate  *time.Time
	ToDate    *time.Time
}

// MetricServicer defines the contract for product metric time series.
type MetricServicer interface {
	RecordObservation(productID, metricID uint, date time.Time, value float64, source, remark string) (*models.MetricObservation, error)
	ListObservations(filter ObservationFilter, page pagination.PageRequest) (*pagination.PageResponse[models.MetricObservation], error)
	GetObservationByID(id uint) (*models.MetricObservation, error)
	DeleteObservation(id uint) error
	ProductTrend(productID, metricID uint, limit int) ([]models.MetricObservation, error)
}

// CashFlowFilter holds optional filter parameters for listing cash flows.
type CashFlowFilter struct {
	FromDate        *time.Time
	ToDate          *time.Time
	AccountID       *uint
	CategoryID      *uint
	FlowType        *models.FlowType
	IncludeInactive bool
}

// CashFlowUpdate carries the editable fields of a cash-flow entry. Nil
// pointers leave the stored value untouched.
type CashFlowUpdate struct {
	Date         *time.Time
	AccountID    *uint
	CategoryID   *uint
	FlowType     *models.FlowType
	Amount       *decimal.Decimal
	SourceTypeID *uint
	Remark       *string
}

// CashFlowServicer defines the contract for the cash-flow book.
type CashFlowServicer interface {
	CreateCashFlow(date time.Time, accountID uint, categoryID *uint, flowType models.FlowType, amount decimal.Decimal, sourceTypeID *uint, remark string) (*models.CashFlow, error)
	ListCashFlows(filter CashFlowFilter, page pagination.PageRequest) (*pagination.PageResponse[models.CashFlow], error)
	GetCashFlowByID(id uint) (*models.CashFlow, error)
	UpdateCashFlow(id uint, update CashFlowUpdate) (*models.CashFlow, error)
	DeactivateCashFlow(id uint) error
}

// RecordActionInput is the request for writing one ledger action. When
// LinkCashFlow is nil the configured default decides whether a paired
// cash-flow entry is generated.
type RecordActionInput struct {
	Date             time.Time
	ProductID        uint
	Action           models.ActionType
	Amount           decimal.Decimal
	ChannelAccountID *uint
	Remark           string
	LinkCashFlow     *bool
	CategoryID       *uint
	SourceTypeID     *uint
}

// InvestmentFilter holds optional filter parameters for listing ledger
// entries.
type InvestmentFilter struct {
	ProductID       *uint
	Action          *models.ActionType
	FromDate        *time.Time
	ToDate          *time.Time
	IncludeInactive bool
}

// InvestmentServicer defines the contract for the position ledger. Writes
// that generate a linked cash flow are atomic: either both rows commit or
// neither does.
type InvestmentServicer interface {
	RecordAction(input RecordActionInput) (*models.InvestmentLog, error)
	ListActions(filter InvestmentFilter, page pagination.PageRequest) (*pagination.PageResponse[models.InvestmentLog], error)
	GetActionByID(id uint) (*models.InvestmentLog, error)
	DeactivateAction(id uint) error
	Holdings() ([]models.HoldingStatus, error)
	RecomputeHolding(productID uint) error
}

// SimulationResult decorates a raw projection with the product context the
// caller asked about.
type SimulationResult struct {
	ProductID   uint              `json:"product_id"`
	ProductName string            `json:"product_name"`
	MetricID    uint              `json:"metric_id"`
	MetricName  string            `json:"metric_name"`
	RiskLevel   string            `json:"risk_level,omitempty"`
	Projection  projection.Result `json:"projection"`
}

// ConfirmSimulationInput turns a reviewed simulation into a real buy.
type ConfirmSimulationInput struct {
	Date             time.Time
	ProductID        uint
	Amount           decimal.Decimal
	ChannelAccountID *uint
	Remark           string
	LinkCashFlow     *bool
}

// SimulationServicer defines the contract for what-if projections. Simulate
// never writes; Confirm records the buy through the ledger.
type SimulationServicer interface {
	Simulate(productID, metricID uint, principal decimal.Decimal, horizon int) (*SimulationResult, error)
	Confirm(input ConfirmSimulationInput) (*models.InvestmentLog, error)
}

// FlowTotals aggregates the active cash-flow book and ledger over a date
// range. Invested is the net investment movement (buys minus redemptions).
type FlowTotals struct {
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Invested decimal.Decimal `json:"invested"`
	Net      decimal.Decimal `json:"net"`
}

// MonthlyTotal is one month of aggregated cash flows and ledger movement.
// InvestRatio is the share of the month's income that went into investments;
// zero when there was no income.
type MonthlyTotal struct {
	Month         string          `json:"month"`
	Income        decimal.Decimal `json:"income"`
	Expense       decimal.Decimal `json:"expense"`
	InvestOutflow decimal.Decimal `json:"invest_outflow"`
	InvestRatio   float64         `json:"invest_ratio"`
	Net           decimal.Decimal `json:"net"`
	CumulativeNet decimal.Decimal `json:"cumulative_net"`
}

// LinkageMonth compares one month's linked ledger actions against the cash
// flows they generated. A nonzero diff means the two books disagree.
type LinkageMonth struct {
	Month         string          `json:"month"`
	LedgerBuys    decimal.Decimal `json:"ledger_buys"`
	LinkedExpense decimal.Decimal `json:"linked_expense"`
	BuyDiff       decimal.Decimal `json:"buy_diff"`
	LedgerRedeems decimal.Decimal `json:"ledger_redeems"`
	LinkedIncome  decimal.Decimal `json:"linked_income"`
	RedeemDiff    decimal.Decimal `json:"redeem_diff"`
}

// LinkageReport lists ledger/cash-flow link inconsistencies: links that do
// not resolve both ways, and monthly totals that drifted apart.
type LinkageReport struct {
	OrphanLedgerIDs   []uint         `json:"orphan_ledger_ids"`
	OrphanCashFlowIDs []uint         `json:"orphan_cash_flow_ids"`
	Months            []LinkageMonth `json:"months"`
	Consistent        bool           `json:"consistent"`
}

// AnalyticsServicer defines the contract for read-only aggregation.
type AnalyticsServicer interface {
	Totals(from, to *time.Time) (*FlowTotals, error)
	MonthlySeries(year int) ([]MonthlyTotal, error)
	LinkageReport() (*LinkageReport, error)
}

// ImportResult reports what a CSV import did. Updated counts rows matched by
// natural key in append mode; only products have one.
type ImportResult struct {
	Entity   string `json:"entity"`
	Mode     string `json:"mode"`
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
	Replaced bool   `json:"replaced"`
}

// DataIOServicer defines the contract for CSV export and import of the
// transactional tables and the product master.
type DataIOServicer interface {
	Export(entity string, w io.Writer) error
	Import(entity, mode string, r io.Reader) (*ImportResult, error)
}

// AttachmentServicer defines the contract for uploaded documents awaiting a
// future processing pass.
type AttachmentServicer interface {
	Save(module, filename string, content io.Reader, remark string) (*models.Attachment, error)
	ListAttachments(page pagination.PageRequest) (*pagination.PageResponse[models.Attachment], error)
	GetAttachmentByID(id uint) (*models.Attachment, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, entityType string, entityID uint, ipAddress string, changes map[string]interface{})
}
