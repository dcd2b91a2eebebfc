package emissions

import (
	"fmt"
	"math"

	"github.com/rshade/footprint/internal/units"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, comparable with errors.Is.
var (
	// ErrInvalidUnit is returned for a unit or option selector outside its
	// enumerated set. It is the same value as units.ErrInvalidUnit.
	ErrInvalidUnit = units.ErrInvalidUnit

	// ErrInvalidQuantity is returned for negative, NaN or infinite inputs.
	// It is the same value as units.ErrInvalidQuantity.
	ErrInvalidQuantity = units.ErrInvalidQuantity

	// ErrDivisionByZero is returned when a formula would divide by zero:
	// a household of zero people or a zero fuel economy in mpg.
	ErrDivisionByZero = constError("division by zero")

	// ErrUnknownCategory is returned by ParseCategory for unknown keys.
	ErrUnknownCategory = constError("unknown category")
)

// checkQuantity validates a single named input quantity.
func checkQuantity(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s is not finite", ErrInvalidQuantity, name)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s is negative (%v)", ErrInvalidQuantity, name, v)
	}
	return nil
}

// checkResult validates a calculator output.
func checkResult(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: result is not finite", ErrInvalidQuantity)
	}
	if v < 0 {
		return fmt.Errorf("%w: result is negative (%v)", ErrInvalidQuantity, v)
	}
	return nil
}
