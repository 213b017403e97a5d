package vswf

import "gonum.org/v1/gonum/mat"

// Basis selects the radial function family a field representation is
// built on: spherical Bessel j for beams finite at the origin, or one
// of the two spherical Hankel kinds for fields converging on or
// diverging from it.
type Basis int

const (
	Regular Basis = iota // spherical Bessel j_n
	Incoming             // spherical Hankel h(2)_n
	Outgoing             // spherical Hankel h(1)_n
	NumBases
)

func (b Basis) String() string {
	return []string{
		"Regular",
		"Incoming",
		"Outgoing",
	}[b]
}

// PowerLoss is the action taken when truncation discards more relative
// power than ResizeOptions.RelTol allows.
type PowerLoss int

const (
	PowerLossWarn PowerLoss = iota // the default
	PowerLossIgnore
	PowerLossError
)

func (p PowerLoss) String() string {
	return []string{
		"Warn",
		"Ignore",
		"Error",
	}[p]
}

// Default tolerances shared by the resizing operations.
const (
	DefaultRelTol = 1e-15
	DefaultAbsTol = 0.0
)

// ResizeOptions controls WithNmax. The zero value warns when the
// relative power lost to truncation exceeds DefaultRelTol.
type ResizeOptions struct {
	AbsTol      float64 // per-coefficient |c|^2 floor, 0 disables
	RelTol      float64 // relative power-loss tolerance, 0 means DefaultRelTol
	OnPowerLoss PowerLoss
}

func (o ResizeOptions) relTol() float64 {
	if o.RelTol == 0 {
		return DefaultRelTol
	}
	return o.RelTol
}

// ShrinkOptions controls Shrink. AbsTol, when positive, seeds the
// scan's lower bound from the largest degree whose coefficient power
// still exceeds it.
type ShrinkOptions struct {
	AbsTol float64
	RelTol float64 // 0 means DefaultRelTol
}

func (o ShrinkOptions) relTol() float64 {
	if o.RelTol == 0 {
		return DefaultRelTol
	}
	return o.RelTol
}

// SparseOptions controls MakeSparse. Entries are dropped only when
// below every tolerance that is set (AND semantics); with neither set
// only exact zeros are dropped.
type SparseOptions struct {
	AbsTol float64 // |c|^2 threshold per entry
	RelTol float64 // threshold relative to total beam power
}

// FieldOptions controls the field evaluation entry points. Cache, when
// non-nil, must have been built for the same coordinates; the same
// pointer is returned so repeated evaluations skip the special
// function work.
type FieldOptions struct {
	Basis Basis
	Cache *Cache
}

// RotateOptions controls Rotated. D, when non-nil, is reused instead
// of rebuilding the Wigner matrix and must come from a previous call
// at the same Nmax.
type RotateOptions struct {
	Nmax int // 0 means the beam's own Nmax
	D    *mat.CDense
}

// TranslateOptions controls TranslatedZ and TranslatedXYZ. A and B,
// when both non-nil, are reused instead of rebuilding the translation
// matrices.
type TranslateOptions struct {
	Nmax  int // 0 means the beam's own Nmax
	Basis Basis
	A, B  *mat.CDense
}
