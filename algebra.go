package vswf

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Plus adds two beams. The shorter operand is zero-padded to the union
// of the mode sets first, so the result's length is the larger of the
// two.
func (z Bsc) Plus(w Bsc) Bsc {
	size := z.size
	if w.size > size {
		size = w.size
	}
	za, zb := z.Coefficients()
	wa, wb := w.Coefficients()
	out := Bsc{size: size,
		a: make([]complex128, size), b: make([]complex128, size)}
	for i := 0; i < size; i++ {
		if i < len(za) {
			out.a[i] += za[i]
			out.b[i] += zb[i]
		}
		if i < len(wa) {
			out.a[i] += wa[i]
			out.b[i] += wb[i]
		}
	}
	return out
}

// Minus subtracts w from z under the same padding rules as Plus.
func (z Bsc) Minus(w Bsc) Bsc {
	return z.Plus(w.Scaled(-1))
}

// Scaled multiplies every coefficient by s.
func (z Bsc) Scaled(s complex128) Bsc {
	if z.IsSparse() {
		out := Bsc{size: z.size, idx: append([]int{}, z.idx...),
			sa: copyC(z.sa), sb: copyC(z.sb)}
		for k := range out.sa {
			out.sa[k] *= s
			out.sb[k] *= s
		}
		return out
	}
	out := Bsc{size: z.size, a: copyC(z.a), b: copyC(z.b)}
	for i := range out.a {
		out.a[i] *= s
		out.b[i] *= s
	}
	return out
}

// Transformed left-multiplies the coefficients by M. A matrix with as
// many columns as the coefficient length applies to a and b
// independently; one with twice as many columns applies to the stacked
// [a;b] vector, which is how the translation operators mix the two
// polarizations.
func (z Bsc) Transformed(M *mat.CDense) (Bsc, error) {
	r, c := M.Dims()
	a, b := z.Coefficients()
	switch c {
	case z.size:
		if _, err := nmaxFromLength(r); err != nil {
			return Bsc{}, err
		}
		out := Bsc{size: r,
			a: cmatVec(M, a), b: cmatVec(M, b)}
		return out, nil
	case 2 * z.size:
		if r%2 != 0 {
			return Bsc{}, fmt.Errorf("%w: stacked operator with odd row count %d",
				ErrDimensionMismatch, r)
		}
		if _, err := nmaxFromLength(r / 2); err != nil {
			return Bsc{}, err
		}
		ab := append(copyC(a), b...)
		res := cmatVec(M, ab)
		out := Bsc{size: r / 2, a: res[:r/2], b: res[r/2:]}
		return out, nil
	}
	return Bsc{}, fmt.Errorf("%w: %dx%d operator against length %d",
		ErrDimensionMismatch, r, c, z.size)
}

// cmatVec is a plain dense complex matrix-vector product.
func cmatVec(M *mat.CDense, v []complex128) []complex128 {
	r, c := M.Dims()
	out := make([]complex128, r)
	for i := 0; i < r; i++ {
		var acc complex128
		for j := 0; j < c; j++ {
			acc += M.At(i, j) * v[j]
		}
		out[i] = acc
	}
	return out
}

// SumBeams reduces a beam array by repeated pairwise Plus.
func SumBeams(beams []Bsc) (Bsc, error) {
	if len(beams) == 0 {
		return Bsc{}, fmt.Errorf("%w: empty beam array", ErrDimensionMismatch)
	}
	out := beams[0]
	for _, w := range beams[1:] {
		out = out.Plus(w)
	}
	return out, nil
}

// Real takes the real part of every complex amplitude.
func (z Bsc) Real() Bsc {
	return z.mapped(func(c complex128) complex128 { return complex(real(c), 0) })
}

// Imag takes the imaginary part of every complex amplitude.
func (z Bsc) Imag() Bsc {
	return z.mapped(func(c complex128) complex128 { return complex(imag(c), 0) })
}

// Abs takes the magnitude of every complex amplitude. This is the
// amplitude's modulus, not a power.
func (z Bsc) Abs() Bsc {
	return z.mapped(func(c complex128) complex128 { return complex(cmplx.Abs(c), 0) })
}

func (z Bsc) mapped(f func(complex128) complex128) Bsc {
	a, b := z.Coefficients()
	for i := range a {
		a[i] = f(a[i])
		b[i] = f(b[i])
	}
	return Bsc{size: z.size, a: a, b: b}
}

// TotalField combines an incident beam with a scattered beam into the
// total-field expansion 2*scattered + incident that the force and
// torque sums expect.
func TotalField(incident, scattered Bsc) Bsc {
	return scattered.Scaled(2).Plus(incident)
}

// ScatteredField recovers the scattered beam from a total-field
// expansion, inverting TotalField.
func ScatteredField(incident, total Bsc) Bsc {
	return total.Minus(incident).Scaled(0.5)
}
