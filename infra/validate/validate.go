package validate

import (
	"github.com/go-playground/validator/v10"
	"github.com/mstgnz/goepay/provider/epay"
)

// CustomValidate registers the epay field tags on v:
//
//	epay_invoice   digits only
//	epay_amount    non-negative decimal, up to two fraction digits
//	epay_exptime   DD.MM.YYYY HH:MM:SS
//	epay_currency  BGN, USD or EUR
//	epay_desc      at most 100 bytes, single line
func CustomValidate(v *validator.Validate) {
	_ = v.RegisterValidation("epay_invoice", stringRule(epay.ValidateInvoice))
	_ = v.RegisterValidation("epay_amount", stringRule(epay.ValidateAmount))
	_ = v.RegisterValidation("epay_exptime", stringRule(epay.ValidateExpiration))
	_ = v.RegisterValidation("epay_currency", stringRule(epay.ValidateCurrency))
	_ = v.RegisterValidation("epay_desc", stringRule(epay.ValidateDescription))
}

func stringRule(check func(string) error) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return check(fl.Field().String()) == nil
	}
}
