package vswf

import (
	"fmt"
	"math"
)

// tinyRadius substitutes for an exactly zero radius so field
// evaluation stays total over its inputs. Near-origin asymptotics
// survive: j_n underflows to its limit and the Hankel singularity
// shows up as an overflowed magnitude instead of NaN.
const tinyRadius = 1e-100

// sbesselJ returns the spherical Bessel functions j_0(x)..j_nmax(x).
// Downward (Miller) recurrence with rescaling, normalized against
// j_0 = sin(x)/x, which is stable for every order/argument ratio.
func sbesselJ(nmax int, x float64) []float64 {
	out := make([]float64, nmax+1)
	if x < 1e-5 {
		// series limit, high orders underflow to zero
		fall := 1.0
		for n := 0; n <= nmax; n++ {
			if n > 0 {
				fall *= x / float64(2*n+1)
			}
			out[n] = fall * (1 - x*x/float64(2*(2*n+3)))
		}
		return out
	}
	if nmax == 0 {
		out[0] = math.Sin(x) / x
		return out
	}
	start := nmax + int(math.Sqrt(40*float64(nmax+1))) + int(x) + 20
	var fp, f float64 = 0, 1e-30
	for n := start; n >= 0; n-- {
		fm := float64(2*n+3)/x*f - fp
		fp, f = f, fm
		if n <= nmax {
			out[n] = f
		}
		if math.Abs(f) > 1e250 {
			f /= 1e250
			fp /= 1e250
			for i := n; i <= nmax; i++ {
				out[i] /= 1e250
			}
		}
	}
	// normalize against whichever low order is farther from a zero
	j0 := math.Sin(x) / x
	j1 := math.Sin(x)/(x*x) - math.Cos(x)/x
	scale := j0 / out[0]
	if nmax >= 1 && math.Abs(j1) > math.Abs(j0) {
		scale = j1 / out[1]
	}
	for n := range out {
		out[n] *= scale
	}
	return out
}

// sbesselY returns the spherical Neumann functions y_0(x)..y_nmax(x)
// by upward recurrence, which is the stable direction for y. High
// orders at small argument overflow to -Inf, matching the genuine
// divergence.
func sbesselY(nmax int, x float64) []float64 {
	out := make([]float64, nmax+1)
	out[0] = -math.Cos(x) / x
	if nmax == 0 {
		return out
	}
	out[1] = -math.Cos(x)/(x*x) - math.Sin(x)/x
	for n := 1; n < nmax; n++ {
		out[n+1] = float64(2*n+1)/x*out[n] - out[n-1]
	}
	return out
}

// sbesselDeriv fills derivatives from the standard relation
// f'_n = f_{n-1} - (n+1)/x f_n, valid for j, y and both Hankel kinds.
func sbesselDeriv(f []float64, x float64) []float64 {
	df := make([]float64, len(f))
	if len(f) == 0 {
		return df
	}
	if len(f) > 1 {
		df[0] = -f[1]
	}
	for n := 1; n < len(f); n++ {
		df[n] = f[n-1] - float64(n+1)/x*f[n]
	}
	return df
}

// evaluateRadial returns f_n(x) and f'_n(x) for n = 0..nmax in the
// requested basis. A zero x is replaced by tinyRadius.
func evaluateRadial(nmax int, x float64, basis Basis) (f, df []complex128, err error) {
	if x == 0 {
		x = tinyRadius
	}
	if x < 0 {
		return nil, nil, fmt.Errorf("radial argument %v < 0", x)
	}
	j := sbesselJ(nmax, x)
	dj := sbesselDeriv(j, x)
	f = make([]complex128, nmax+1)
	df = make([]complex128, nmax+1)
	switch basis {
	case Regular:
		for n := range f {
			f[n] = complex(j[n], 0)
			df[n] = complex(dj[n], 0)
		}
	case Outgoing, Incoming:
		y := sbesselY(nmax, x)
		dy := sbesselDeriv(y, x)
		s := 1.0
		if basis == Incoming {
			s = -1
		}
		for n := range f {
			f[n] = complex(j[n], s*y[n])
			df[n] = complex(dj[n], s*dy[n])
		}
	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedBasis, basis)
	}
	return f, df, nil
}
