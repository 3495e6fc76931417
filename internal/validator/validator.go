// Package validator registers custom validation functions with Gin's
// binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("flow_type", validateFlowType)
		_ = v.RegisterValidation("action_type", validateActionType)
		_ = v.RegisterValidation("master_table", validateMasterTable)
		_ = v.RegisterValidation("import_mode", validateImportMode)
		_ = v.RegisterValidation("row_status", validateRowStatus)
	}
}

func validateFlowType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateActionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "buy", "redeem":
		return true
	}
	return false
}

func validateMasterTable(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "accounts", "categories", "source_types", "product_types", "risk_levels", "metrics":
		return true
	}
	return false
}

func validateImportMode(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "replace", "append":
		return true
	}
	return false
}

func validateRowStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "inactive":
		return true
	}
	return false
}
