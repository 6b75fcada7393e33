// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var weekdays = map[string]bool{
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("weekday", validateWeekday)
		_ = v.RegisterValidation("export_format", validateExportFormat)
	}
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateWeekday(fl validator.FieldLevel) bool {
	return weekdays[fl.Field().String()]
}

func validateExportFormat(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "xlsx", "csv":
		return true
	}
	return false
}
