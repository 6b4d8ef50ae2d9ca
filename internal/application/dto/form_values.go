package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Los formularios envían los números como texto. Estos tipos aceptan número o string JSON
// y convierten vacío o inválido en 0 en vez de fallar, como hace el navegador con esos campos.

// FormInt entero con parseo tolerante (semántica de parseInt: toma el prefijo entero).
type FormInt int

// UnmarshalJSON acepta 12, 12.9, "12", " 12abc", "" o null.
func (v *FormInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*v = 0
			return nil
		}
		*v = FormInt(ParseQuantity(s))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*v = 0
		return nil
	}
	f = math.Max(math.MinInt32, math.Min(math.MaxInt32, math.Trunc(f)))
	*v = FormInt(f)
	return nil
}

// FormDecimal decimal con parseo tolerante (semántica de parseFloat: toma el prefijo numérico).
type FormDecimal struct {
	decimal.Decimal
}

// UnmarshalJSON acepta 9.99, "9.99", "9.99 USD", "" o null.
func (v *FormDecimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		v.Decimal = decimal.Zero
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			v.Decimal = decimal.Zero
			return nil
		}
		v.Decimal = ParsePrice(s)
		return nil
	}
	v.Decimal = ParsePrice(string(data))
	return nil
}

// MarshalJSON serializa como número.
func (v FormDecimal) MarshalJSON() ([]byte, error) {
	return []byte(v.Decimal.String()), nil
}

var (
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
	floatPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?`)
)

// ParseQuantity interpreta una cantidad escrita en un formulario. Vacío o sin dígitos
// iniciales devuelve 0; "12.7" devuelve 12; desbordes se saturan al rango int32.
func ParseQuantity(s string) int {
	m := intPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	n, err := strconv.ParseInt(m, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			if m[0] == '-' {
				return math.MinInt32
			}
			return math.MaxInt32
		}
		return 0
	}
	return int(n)
}

// ParsePrice interpreta un precio escrito en un formulario. Vacío o inválido devuelve 0.
func ParsePrice(s string) decimal.Decimal {
	m := floatPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(m, "+"))
	if err != nil {
		return decimal.Zero
	}
	return d
}
