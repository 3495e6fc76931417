// Package errors provides the structured error types used across the
// service layer. Every error surfaced to a client goes through AppError so
// responses carry a stable machine-readable code and never leak internals.
package errors

import "net/http"

// AppError is a structured application error with an error code, a
// human-readable message, an HTTP status code, and an optional wrapped
// internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the sentinel's code/message/status that
// wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Projection errors.
var (
	ErrInsufficientData = &AppError{Code: "INSUFFICIENT_DATA", Message: "Not enough metric history to project a return", StatusCode: http.StatusUnprocessableEntity}
)

// Ledger errors. PARTIAL_WRITE means the paired ledger/cash-flow insert
// could not complete atomically; both rows were rolled back.
var (
	ErrPartialWrite = &AppError{Code: "PARTIAL_WRITE", Message: "Linked ledger and cash-flow entries could not be written together", StatusCode: http.StatusConflict}
)

// Entity lookup errors.
var (
	ErrProductNotFound     = &AppError{Code: "PRODUCT_NOT_FOUND", Message: "Product not found", StatusCode: http.StatusNotFound}
	ErrMetricNotFound      = &AppError{Code: "METRIC_NOT_FOUND", Message: "Metric observation not found", StatusCode: http.StatusNotFound}
	ErrCashFlowNotFound    = &AppError{Code: "CASH_FLOW_NOT_FOUND", Message: "Cash flow entry not found", StatusCode: http.StatusNotFound}
	ErrInvestmentNotFound  = &AppError{Code: "INVESTMENT_NOT_FOUND", Message: "Investment log entry not found", StatusCode: http.StatusNotFound}
	ErrDimensionNotFound   = &AppError{Code: "DIMENSION_NOT_FOUND", Message: "Master data entry not found", StatusCode: http.StatusNotFound}
	ErrAttachmentNotFound  = &AppError{Code: "ATTACHMENT_NOT_FOUND", Message: "Attachment not found", StatusCode: http.StatusNotFound}
	ErrUnknownMasterTable  = &AppError{Code: "UNKNOWN_MASTER_TABLE", Message: "Unsupported master data table", StatusCode: http.StatusBadRequest}
	ErrDuplicateProduct    = &AppError{Code: "DUPLICATE_PRODUCT", Message: "A product with this name already exists", StatusCode: http.StatusConflict}
	ErrUnknownImportEntity = &AppError{Code: "UNKNOWN_IMPORT_ENTITY", Message: "Unsupported import/export entity", StatusCode: http.StatusBadRequest}
)
