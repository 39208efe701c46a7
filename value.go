package peers

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Value is an optional metric value. The zero Value is Absent.
//
// Missing metrics are never represented as zero: a company with no known
// funding and a company with zero funding are different facts.
type Value struct {
	value decimal.Decimal
	ok    bool
}

// Absent is the missing value.
var Absent = Value{}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// V returns a present Value.
func V[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Value {
	return Value{value: newDecimal(value), ok: true}
}

// ParseValue reads a cell as found in company datasets.
//
// It accepts plain numbers ("20000000", "12,500", "1_000"), an optional
// leading currency symbol and a magnitude suffix ("$20M", "1.5B", "30k").
// Anything else, including "", "nan", "n/a" and free text, is Absent.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "$€£")
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	if s == "" {
		return Absent
	}
	shift := int32(0)
	switch s[len(s)-1] {
	case 'k', 'K':
		shift = 3
	case 'm', 'M':
		shift = 6
	case 'b', 'B':
		shift = 9
	case 't', 'T':
		shift = 12
	}
	if shift > 0 {
		s = s[:len(s)-1]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Absent
	}
	return Value{value: d.Shift(shift), ok: true}
}

func (v Value) IsAbsent() bool           { return !v.ok }
func (v Value) IsPresent() bool          { return v.ok }
func (v Value) Decimal() decimal.Decimal { return v.value }
func (v Value) IsZero() bool             { return v.ok && v.value.IsZero() }

// Float64 returns the value as a float, and 0 if absent.
func (v Value) Float64() float64 { return v.value.InexactFloat64() }

// Equal reports whether both values are absent or both hold the same number.
func (v Value) Equal(w Value) bool {
	if v.ok != w.ok {
		return false
	}
	return !v.ok || v.value.Equal(w.value)
}

// Cmp compares two present values. Absent sorts before any present value.
func (v Value) Cmp(w Value) int {
	switch {
	case !v.ok && !w.ok:
		return 0
	case !v.ok:
		return -1
	case !w.ok:
		return 1
	}
	return v.value.Cmp(w.value)
}

// Scale multiplies a present value by a float factor. Absent stays absent.
func (v Value) Scale(f float64) Value {
	if !v.ok {
		return Absent
	}
	return Value{value: v.value.Mul(decimal.NewFromFloat(f)), ok: true}
}

// Div divides v by w. The result is absent if either is absent or w is zero.
func (v Value) Div(w Value) Value {
	if !v.ok || !w.ok || w.value.IsZero() {
		return Absent
	}
	return Value{value: v.value.Div(w.value), ok: true}
}

// String returns the decimal representation, or "" when absent.
func (v Value) String() string {
	if !v.ok {
		return ""
	}
	return v.value.String()
}

// MarshalJSON encodes absent values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return v.value.MarshalJSON()
}

// UnmarshalJSON accepts null, a number or a string. Unparsable strings are
// absent, not errors, as they are in tabular sources.
func (v *Value) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*v = Absent
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		*v = ParseValue(strings.Trim(s, `"`))
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*v = Value{value: d, ok: true}
	return nil
}
