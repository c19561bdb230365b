// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("transaction_category", validateTransactionCategory)
		_ = v.RegisterValidation("budget_rule", validateBudgetRule)
	}
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateTransactionCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "needs", "wants", "savings":
		return true
	}
	return false
}

func validateBudgetRule(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "fifty_thirty_twenty", "sixty_twenty_twenty", "seventy_twenty_ten", "custom":
		return true
	}
	return false
}
