package model

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/pitchfund/internal/validation"
)

const (
	maxDecimalDigits = 10
	maxDecimalPlaces = 2
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// checkDecimal enforces NUMERIC(10,2) input limits.
func checkDecimal(d decimal.Decimal) string {
	digits := len(new(big.Int).Abs(d.Coefficient()).String())
	exp := int(d.Exponent())

	var total, places int
	switch {
	case exp >= 0:
		total, places = digits+exp, 0
	case -exp > digits:
		total, places = -exp, -exp
	default:
		total, places = digits, -exp
	}

	if total > maxDecimalDigits {
		return fmt.Sprintf("Ensure that there are no more than %d digits in total.", maxDecimalDigits)
	}
	if places > maxDecimalPlaces {
		return fmt.Sprintf("Ensure that there are no more than %d decimal places.", maxDecimalPlaces)
	}
	return ""
}

type fieldChecks validation.CustomValidationErrors

func (f *fieldChecks) decimal(field string, d *decimal.Decimal) {
	if d == nil {
		return
	}
	if msg := checkDecimal(*d); msg != "" {
		f.add(field, msg)
	}
}

func (f *fieldChecks) add(field, msg string) {
	*f = append(*f, validation.CustomValidationError{Field: field, Message: msg})
}

func (f fieldChecks) err() error {
	if len(f) == 0 {
		return nil
	}
	return validation.CustomValidationErrors(f)
}
