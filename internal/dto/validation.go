package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators installs the enum validators used by the binding
// tags in this package. Call once at startup.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("documentkind", oneOfValidator(
		"PAYABLE", "SALES_INVOICE", "APPROVAL_QUOTE", "MEMBERSHIP_CHARGE")); err != nil {
		return err
	}
	if err := v.RegisterValidation("paymentmethod", oneOfValidator(
		"CASH", "CARD", "TRANSFER", "CHEQUE")); err != nil {
		return err
	}
	return v.RegisterValidation("approvalaction", oneOfValidator("APPROVE", "REJECT"))
}

func oneOfValidator(allowed ...string) validator.Func {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		_, ok := set[fl.Field().String()]
		return ok
	}
}
