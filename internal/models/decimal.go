package models

import (
	"encoding/json"
	"reflect"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits every monetary value carries.
const MoneyScale int32 = 2

// Decimal is a custom type for decimal.Decimal
// the difference from `shopspring` is the json representation is without quotes
// and always carries MoneyScale fractional digits, e.g. -100.00 instead of "-100"
//
// WARNING: if client side is using javascript and unmarshalling this type, the precision will be lost
// since javascript will unmarshal JSON numbers to IEEE 754 double-precision floating point numbers
type Decimal struct {
	decimal.Decimal
}

func NewDecimalFromExternal(d decimal.Decimal) Decimal {
	return Decimal{d}
}

func NewDecimal(value string) (Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Decimal{}, err
	}

	return Decimal{d}, nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.StringFixed(MoneyScale)), nil
}

// UnmarshalJSON accepts a number or a quoted number. Anything else fails as a
// type error, which the decoder annotates with the field name.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	if err := d.Decimal.UnmarshalJSON(data); err != nil {
		return &json.UnmarshalTypeError{
			Value: jsonKind(data),
			Type:  reflect.TypeOf(Decimal{}),
		}
	}
	return nil
}

func jsonKind(data []byte) string {
	if len(data) == 0 {
		return "value"
	}
	switch data[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	default:
		return "number"
	}
}

// HasMoneyScale reports whether d has no more than MoneyScale fractional digits.
func HasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}
