package handlers

import (
	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validExpenseCategory reports whether the field holds a known expense category.
func validExpenseCategory(fl validator.FieldLevel) bool {
	return domain.ExpenseCategory(fl.Field().String()).IsValid()
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("expensecategory", validExpenseCategory)
	}
}
