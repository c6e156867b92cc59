package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Money is a decimal that serialises as a two-place JSON string, e.g. "950.00".
type Money decimal.Decimal

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(decimal.Decimal(m).StringFixed(2))), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*m = Money(d)
	return nil
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.Decimal(m)
}
