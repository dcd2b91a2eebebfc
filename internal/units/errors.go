package units

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, comparable with errors.Is.
var (
	// ErrInvalidUnit indicates a unit that is not in the conversion table
	// for the requested quantity kind.
	ErrInvalidUnit = constError("invalid unit")

	// ErrInvalidQuantity indicates a negative, NaN or infinite quantity.
	ErrInvalidQuantity = constError("invalid quantity")
)
