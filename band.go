package peers

import (
	"fmt"
	"math"
)

var inf = math.Inf(1)

// Band is a multiplicative inclusion range around the subject's value of a
// field: [Lower × subject, Upper × subject].
//
// Upper may be +Inf for an open upper bound. Lower = 0 with Upper = +Inf is
// the degenerate band that accepts any present value, whatever the subject's
// value. Floor, when present, is an absolute minimum applied on top of the
// multiplicative lower bound (e.g. at least one employee).
type Band struct {
	Field Field
	Lower float64
	Upper float64
	Floor Value
}

// NewBand returns the band [lower×s, upper×s] on f.
func NewBand(f Field, lower, upper float64) Band {
	return Band{Field: f, Lower: lower, Upper: upper}
}

// Unbounded returns the band accepting any present value of f.
func Unbounded(f Field) Band {
	return Band{Field: f, Lower: 0, Upper: inf}
}

// WithFloor returns a copy of b with an absolute lower bound.
func (b Band) WithFloor(floor Value) Band {
	b.Floor = floor
	return b
}

// IsUnbounded reports whether the band accepts any present value.
func (b Band) IsUnbounded() bool {
	return b.Lower <= 0 && math.IsInf(b.Upper, 1) && b.Floor.IsAbsent()
}

// Limits returns the absolute bounds of the band for a given subject value.
// hi is Absent when the band has no upper bound.
//
// When the subject value is negative the multiplied bounds are swapped so
// that lo <= hi always holds.
func (b Band) Limits(subject Value) (lo, hi Value) {
	lo = subject.Scale(b.Lower)
	if !math.IsInf(b.Upper, 1) {
		hi = subject.Scale(b.Upper)
	}
	if hi.IsPresent() && lo.Cmp(hi) > 0 {
		lo, hi = hi, lo
	}
	if b.Floor.IsPresent() && b.Floor.Cmp(lo) > 0 {
		lo = b.Floor
	}
	return lo, hi
}

// Contains reports whether v is inside the band built around subject.
// An absent v is never inside.
func (b Band) Contains(subject, v Value) bool {
	if v.IsAbsent() {
		return false
	}
	if b.IsUnbounded() {
		return true
	}
	lo, hi := b.Limits(subject)
	if v.Cmp(lo) < 0 {
		return false
	}
	return hi.IsAbsent() || v.Cmp(hi) <= 0
}

// Validate checks that the multiples describe a usable band.
func (b Band) Validate() error {
	if b.Field == "" {
		return fmt.Errorf("band has no field")
	}
	if math.IsNaN(b.Lower) || math.IsNaN(b.Upper) || math.IsInf(b.Lower, 0) || math.IsInf(b.Upper, -1) {
		return fmt.Errorf("band on %q has invalid multiples [%v, %v]", b.Field, b.Lower, b.Upper)
	}
	if b.Lower > b.Upper {
		return fmt.Errorf("band on %q has lower multiple %v above upper multiple %v", b.Field, b.Lower, b.Upper)
	}
	return nil
}

func (b Band) String() string {
	if b.IsUnbounded() {
		return fmt.Sprintf("%s present", b.Field)
	}
	s := fmt.Sprintf("%s in [%v×, %v×]", b.Field, b.Lower, b.Upper)
	if b.Floor.IsPresent() {
		s += fmt.Sprintf(" (>= %s)", b.Floor)
	}
	return s
}
