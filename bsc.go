package vswf

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Bsc holds the truncated vector spherical wave expansion of one beam:
// the TE amplitude a and TM amplitude b per mode, indexed by combined
// index. The truncation order is derived from the vector length, never
// stored. Every operation returns a new value; a Bsc is never mutated
// after construction.
type Bsc struct {
	size int // TotalOrders(Nmax)

	// dense storage
	a, b []complex128

	// sparse storage: sorted combined indices paired with values.
	// Exactly one of the two storage forms is populated.
	idx    []int
	sa, sb []complex128
}

// New builds a beam from equal-length coefficient vectors whose length
// is TotalOrders(Nmax) for some Nmax. The slices are copied.
func New(a, b []complex128) (Bsc, error) {
	if len(a) != len(b) {
		return Bsc{}, fmt.Errorf("%w: len(a) %d != len(b) %d",
			ErrDimensionMismatch, len(a), len(b))
	}
	if _, err := nmaxFromLength(len(a)); err != nil {
		return Bsc{}, err
	}
	return Bsc{size: len(a), a: copyC(a), b: copyC(b)}, nil
}

// FromDense scatters per-mode coefficients into combined-index layout.
// Row i of a and b belongs to the mode (n[i], m[i]); the result is
// truncated at the largest degree present.
func FromDense(a, b []complex128, n, m []int) (Bsc, error) {
	if len(a) != len(b) || len(a) != len(n) || len(n) != len(m) {
		return Bsc{}, fmt.Errorf("%w: coefficient and index rows disagree",
			ErrDimensionMismatch)
	}
	nmax := 0
	for i := range n {
		if n[i] < 1 || m[i] < -n[i] || m[i] > n[i] {
			return Bsc{}, fmt.Errorf("%w: (n,m) = (%d,%d)",
				ErrInvalidModeIndex, n[i], m[i])
		}
		if n[i] > nmax {
			nmax = n[i]
		}
	}
	out := Bsc{size: TotalOrders(nmax)}
	out.a = make([]complex128, out.size)
	out.b = make([]complex128, out.size)
	for i := range n {
		ci := CombinedIndex(n[i], m[i])
		out.a[ci-1] = a[i]
		out.b[ci-1] = b[i]
	}
	return out, nil
}

// BasisSet returns, for each requested combined index, a unit TE beam
// (a=1 at the index) followed after all TE beams by the matching unit
// TM beams: 2*len(ci) single-mode beams in total. These are the probe
// beams used to build response operators mode by mode.
func BasisSet(ci []int) ([]Bsc, error) {
	nmax := 0
	for _, c := range ci {
		n, _, err := ModeIndices(c)
		if err != nil {
			return nil, err
		}
		if n > nmax {
			nmax = n
		}
	}
	size := TotalOrders(nmax)
	out := make([]Bsc, 0, 2*len(ci))
	for pol := 0; pol < 2; pol++ {
		for _, c := range ci {
			z := Bsc{size: size, idx: []int{c},
				sa: []complex128{0}, sb: []complex128{0}}
			if pol == 0 {
				z.sa[0] = 1
			} else {
				z.sb[0] = 1
			}
			out = append(out, z)
		}
	}
	return out, nil
}

// Nmax returns the truncation order implied by the vector length.
func (z Bsc) Nmax() int {
	n, _ := nmaxFromLength(z.size)
	return n
}

// Len returns the coefficient vector length.
func (z Bsc) Len() int { return z.size }

// IsSparse reports whether the beam uses sparse storage.
func (z Bsc) IsSparse() bool { return z.a == nil && z.size > 0 }

// at returns the coefficients at combined index ci, zero past the
// truncation.
func (z Bsc) at(ci int) (a, b complex128) {
	if ci < 1 || ci > z.size {
		return 0, 0
	}
	if !z.IsSparse() {
		return z.a[ci-1], z.b[ci-1]
	}
	k := sort.SearchInts(z.idx, ci)
	if k < len(z.idx) && z.idx[k] == ci {
		return z.sa[k], z.sb[k]
	}
	return 0, 0
}

// Coefficients returns copies of the dense coefficient vectors.
func (z Bsc) Coefficients() (a, b []complex128) {
	a = make([]complex128, z.size)
	b = make([]complex128, z.size)
	if !z.IsSparse() {
		copy(a, z.a)
		copy(b, z.b)
		return a, b
	}
	for k, ci := range z.idx {
		a[ci-1], b[ci-1] = z.sa[k], z.sb[k]
	}
	return a, b
}

// Power returns the beam power sum |a_i|^2 + |b_i|^2. Non-normalizable
// beams (plane waves) fall outside this representation, so the sum is
// always finite.
func (z Bsc) Power() float64 {
	var p []float64
	if z.IsSparse() {
		p = make([]float64, 0, 2*len(z.idx))
		for k := range z.idx {
			p = append(p, abs2(z.sa[k]), abs2(z.sb[k]))
		}
	} else {
		p = make([]float64, 0, 2*z.size)
		for i := range z.a {
			p = append(p, abs2(z.a[i]), abs2(z.b[i]))
		}
	}
	return floats.Sum(p)
}

// WithPower rescales the beam so Power returns want.
func (z Bsc) WithPower(want float64) Bsc {
	have := z.Power()
	if have == 0 {
		return z
	}
	return z.Scaled(complex(math.Sqrt(want/have), 0))
}

// WithNmax truncates or zero-extends the beam to the given truncation
// order. Growth always zero-pads. Truncation compares the power before
// and after: relative loss above RelTol (and absolute loss above
// AbsTol) fires the configured OnPowerLoss action.
func (z Bsc) WithNmax(nmax int, opt ResizeOptions) (Bsc, error) {
	if nmax < 0 {
		return Bsc{}, fmt.Errorf("%w: Nmax %d < 0", ErrInvalidModeIndex, nmax)
	}
	size := TotalOrders(nmax)
	if size == z.size {
		return z, nil
	}
	a, b := z.Coefficients()
	out := Bsc{size: size}
	out.a = make([]complex128, size)
	out.b = make([]complex128, size)
	copy(out.a, a)
	copy(out.b, b)
	if size > z.size {
		return out, nil
	}
	p0, p1 := z.Power(), out.Power()
	if p0 > 0 {
		lost := p0 - p1
		if lost/p0 > opt.relTol() && lost > opt.AbsTol {
			switch opt.OnPowerLoss {
			case PowerLossError:
				return Bsc{}, fmt.Errorf("%w: relative loss %v at Nmax %d",
					ErrTruncation, lost/p0, nmax)
			case PowerLossWarn:
				Warn("truncation to Nmax %d lost %v of beam power",
					nmax, lost/p0)
			}
		}
	}
	return out, nil
}

// Shrink reduces the truncation order to the first Nmax, scanning
// upward from a heuristic lower bound, whose relative power deviation
// from the original stays below RelTol. The scan is linear on purpose:
// power deviation need not be monotone in the truncation order, and
// the first satisfying order is the documented answer, minimal or not.
func (z Bsc) Shrink(opt ShrinkOptions) (Bsc, error) {
	nmax := z.Nmax()
	lo := 1
	if opt.AbsTol > 0 {
		a, b := z.Coefficients()
		for ci := z.size; ci >= 1; ci-- {
			if abs2(a[ci-1])+abs2(b[ci-1]) > opt.AbsTol {
				lo, _, _ = ModeIndices(ci)
				break
			}
		}
	}
	p0 := z.Power()
	if p0 == 0 {
		return z.WithNmax(lo, ResizeOptions{})
	}
	for n := lo; n <= nmax; n++ {
		cand, err := z.WithNmax(n, ResizeOptions{OnPowerLoss: PowerLossIgnore})
		if err != nil {
			return Bsc{}, err
		}
		if math.Abs(p0-cand.Power())/p0 <= opt.relTol() {
			return cand, nil
		}
	}
	return z, nil
}

// MakeSparse converts to sparse storage, first zeroing modes whose
// power contribution is below every tolerance that is set. With no
// tolerances set only exact zeros are dropped, making Full a perfect
// inverse.
func (z Bsc) MakeSparse(opt SparseOptions) Bsc {
	a, b := z.Coefficients()
	p := z.Power()
	out := Bsc{size: z.size}
	for ci := 1; ci <= z.size; ci++ {
		c := abs2(a[ci-1]) + abs2(b[ci-1])
		if c == 0 {
			continue
		}
		drop := opt.AbsTol > 0 || opt.RelTol > 0
		if opt.AbsTol > 0 && c >= opt.AbsTol {
			drop = false
		}
		if opt.RelTol > 0 && c >= opt.RelTol*p {
			drop = false
		}
		if drop {
			continue
		}
		out.idx = append(out.idx, ci)
		out.sa = append(out.sa, a[ci-1])
		out.sb = append(out.sb, b[ci-1])
	}
	if out.idx == nil {
		out.idx = []int{}
		out.sa, out.sb = []complex128{}, []complex128{}
	}
	return out
}

// Full converts to dense storage.
func (z Bsc) Full() Bsc {
	a, b := z.Coefficients()
	return Bsc{size: z.size, a: a, b: b}
}

func abs2(c complex128) float64 {
	return real(c)*real(c) + imag(c)*imag(c)
}
