package dice

import "errors"

// Validation failures surfaced verbatim to the user as command rejections.
// Wrap with fmt.Errorf("%w: ...") to attach the offending value.
var (
	ErrInvalidNotation          = errors.New("invalid dice notation")
	ErrInvalidDiceCount         = errors.New("invalid dice count")
	ErrInvalidDiceSides         = errors.New("invalid dice sides")
	ErrInvalidKeepCount         = errors.New("invalid keep count")
	ErrConflictingModifiers     = errors.New("cannot use both advantage and disadvantage")
	ErrUnsupportedModifierShape = errors.New("advantage/disadvantage only works with a single die")
)
