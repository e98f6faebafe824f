package billing

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/govalues/decimal"
)

var errNotNumeric = errors.New("must be a number or numeric string")

// Decimal is an exact decimal quantity used for money, units and thresholds.
// It never passes through float64: JSON numbers are parsed from their literal
// text and written back as bare JSON numbers with the same digits.
type Decimal struct {
	v decimal.Decimal
}

// maxDigits is the widest coefficient and scale the decimal type holds
// without rounding.
const maxDigits = 19

// ParseDecimal parses a numeric string such as "123.45". Input that would
// need more than 19 digits of coefficient or scale is rejected, never rounded.
func ParseDecimal(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	if !fitsExactly(s) {
		return Decimal{}, errNotNumeric
	}
	v, err := decimal.Parse(s)
	if err != nil {
		return Decimal{}, errNotNumeric
	}
	return Decimal{v: v}, nil
}

// fitsExactly reports whether the literal s can be stored without rounding.
// Malformed input passes through so that the parser reports it.
func fitsExactly(s string) bool {
	s = strings.TrimLeft(s, "+-")
	exp := 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		e, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return true
		}
		exp, s = e, s[:i]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	digits := strings.TrimLeft(intPart+fracPart, "0")
	scale := len(fracPart) - exp
	if scale < 0 {
		return len(digits)-scale <= maxDigits
	}
	return len(digits) <= maxDigits && scale <= maxDigits
}

// MustDecimal is ParseDecimal for literals known to be valid.
func MustDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic("billing: invalid decimal " + s)
	}
	return d
}

// String returns the digits as stored, trailing zeros included.
func (d Decimal) String() string { return d.v.String() }

// Cmp compares numerically: 42 and 42.00 are equal.
func (d Decimal) Cmp(o Decimal) int { return d.v.Cmp(o.v) }

// Equal reports numeric equality.
func (d Decimal) Equal(o Decimal) bool { return d.Cmp(o) == 0 }

// MarshalJSON writes the value as a bare JSON number with the stored digits.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.v.String()), nil
}

// UnmarshalJSON accepts a JSON number or a string holding a number.
func (d *Decimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errNotNumeric
	}
	var lit string
	switch b[0] {
	case '"':
		if err := json.Unmarshal(b, &lit); err != nil {
			return errNotNumeric
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		lit = string(b)
	default:
		return errNotNumeric
	}
	v, err := ParseDecimal(lit)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
