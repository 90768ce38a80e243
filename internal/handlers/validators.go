package handlers

import (
	"reflect"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// registerCustomValidators teaches gin's validator about the ledger enums and decimal amounts.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Decimals are validated through their string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("decimal_gt0", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive() && domain.HasMoneyScale(d)
	})
	_ = v.RegisterValidation("txtype", func(fl validator.FieldLevel) bool {
		t := domain.TransactionType(fl.Field().String())
		return t == domain.Income || t == domain.Expense
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return domain.Category(fl.Field().String()).IsKnown()
	})
	_ = v.RegisterValidation("period", func(fl validator.FieldLevel) bool {
		return domain.RecurringPeriod(fl.Field().String()).IsValid()
	})
}
