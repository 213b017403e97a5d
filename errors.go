package vswf

import "errors"

// The error kinds reported by this package. All are synchronous and
// permanent: the caller has to fix its inputs or pick a more
// permissive truncation policy. Wrap sites add context, so test with
// errors.Is.
var (
	// ErrDimensionMismatch reports disagreeing operand or array
	// sizes in algebra and broadcasting.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidModeIndex reports a malformed (n,m) pair or a
	// coefficient vector whose length fits no truncation order.
	ErrInvalidModeIndex = errors.New("invalid mode index")

	// ErrTruncation reports power loss beyond the configured
	// tolerance while shrinking a beam.
	ErrTruncation = errors.New("truncation lost too much power")

	// ErrUnsupportedBasis reports a Basis value a call cannot use.
	ErrUnsupportedBasis = errors.New("unsupported basis")
)
