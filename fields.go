package vswf

import (
	"fmt"
	"math"
)

// electric/magnetic selector for the shared field loop. The magnetic
// field is the a<->b dual of the electric one times an overall -i,
// which is the M/N wave duality.
type fieldKind int

const (
	electric fieldKind = iota
	magnetic
)

// NearField evaluates the electric field at finite-radius points given
// in spherical coordinates, radii in medium wavelength units. The
// returned cache can be passed back in for further evaluations at the
// same coordinates. The beam is never mutated.
func (z Bsc) NearField(r, theta, phi []float64, opt FieldOptions) (FieldVector, *Cache, error) {
	return z.nearField(r, theta, phi, opt, electric)
}

// NearFieldH evaluates the magnetic field under the same conventions
// as NearField.
func (z Bsc) NearFieldH(r, theta, phi []float64, opt FieldOptions) (FieldVector, *Cache, error) {
	return z.nearField(r, theta, phi, opt, magnetic)
}

func (z Bsc) nearField(r, theta, phi []float64, opt FieldOptions, kind fieldKind) (FieldVector, *Cache, error) {
	if len(r) != len(theta) || len(theta) != len(phi) {
		return FieldVector{}, nil, fmt.Errorf("%w: coordinate rows %d/%d/%d",
			ErrDimensionMismatch, len(r), len(theta), len(phi))
	}
	nmax := z.Nmax()
	cache := opt.Cache
	if !cache.fits(nmax, len(r), true) {
		kr := make([]float64, len(r))
		for i, ri := range r {
			kr[i] = 2 * math.Pi * ri
		}
		cache = newCache(kr, theta, phi)
	}
	cache.ensureHarmonics(nmax)
	if err := cache.ensureRadial(nmax, opt.Basis); err != nil {
		return FieldVector{}, nil, err
	}

	ns := len(r)
	er := make([]complex128, ns)
	et := make([]complex128, ns)
	ep := make([]complex128, ns)
	f, df := cache.f[opt.Basis], cache.df[opt.Basis]
	for ci := 1; ci <= z.size; ci++ {
		a, b := z.at(ci)
		if a == 0 && b == 0 {
			continue
		}
		n, _, _ := ModeIndices(ci)
		if kind == magnetic {
			a, b = b, a
		}
		nn := complex(1/sqrtGamma(n), 0)
		rad := complex(float64(n*(n+1)), 0)
		for s := 0; s < ns; s++ {
			kr := complex(cache.kr[s], 0)
			if kr == 0 {
				kr = tinyRadius
			}
			fn, f1 := f[n][s], df[n][s]+f[n][s]/kr
			y := cache.y[ci-1][s]
			yth := cache.yth[ci-1][s]
			yph := cache.yph[ci-1][s]
			er[s] += nn * rad / kr * fn * y * b
			et[s] += nn * (a*yph*fn + b*yth*f1)
			ep[s] += nn * (-a*yth*fn + b*yph*f1)
		}
	}
	if kind == magnetic {
		for s := 0; s < ns; s++ {
			er[s] *= complex(0, -1)
			et[s] *= complex(0, -1)
			ep[s] *= complex(0, -1)
		}
	}
	fv := FieldVector{
		Frame: Spherical,
		V:     [3][]complex128{er, et, ep},
		Loc: [3][]float64{
			append([]float64{}, r...),
			append([]float64{}, theta...),
			append([]float64{}, phi...),
		},
	}
	return fv, cache, nil
}

// FarField evaluates the transverse electric far field in the given
// directions. The radial component vanishes in the far zone and is
// dropped; amplitudes carry the asymptotic Hankel phases (-i)^(n+1)
// and (-i)^n for an outgoing beam, their conjugates for an incoming
// one. A Regular beam has no single asymptotic phase, so that basis is
// rejected. Positions on the returned value are unit-radius
// directions.
func (z Bsc) FarField(theta, phi []float64, opt FieldOptions) (FieldVector, *Cache, error) {
	return z.farField(theta, phi, opt, electric)
}

// FarFieldH is the magnetic dual of FarField.
func (z Bsc) FarFieldH(theta, phi []float64, opt FieldOptions) (FieldVector, *Cache, error) {
	return z.farField(theta, phi, opt, magnetic)
}

func (z Bsc) farField(theta, phi []float64, opt FieldOptions, kind fieldKind) (FieldVector, *Cache, error) {
	if len(theta) != len(phi) {
		return FieldVector{}, nil, fmt.Errorf("%w: coordinate rows %d/%d",
			ErrDimensionMismatch, len(theta), len(phi))
	}
	var base complex128
	switch opt.Basis {
	case Outgoing:
		base = complex(0, -1)
	case Incoming:
		base = complex(0, 1)
	default:
		return FieldVector{}, nil, fmt.Errorf("%w: far field needs Incoming or Outgoing, got %v",
			ErrUnsupportedBasis, opt.Basis)
	}
	nmax := z.Nmax()
	cache := opt.Cache
	if !cache.fits(nmax, len(theta), false) {
		cache = newCache(nil, theta, phi)
	}
	cache.ensureHarmonics(nmax)

	ns := len(theta)
	et := make([]complex128, ns)
	ep := make([]complex128, ns)
	for ci := 1; ci <= z.size; ci++ {
		a, b := z.at(ci)
		if a == 0 && b == 0 {
			continue
		}
		n, _, _ := ModeIndices(ci)
		if kind == magnetic {
			a, b = b, a
		}
		nn := complex(1/sqrtGamma(n), 0)
		pa := ipow(base, n+1)
		pb := ipow(base, n)
		for s := 0; s < ns; s++ {
			yth := cache.yth[ci-1][s]
			yph := cache.yph[ci-1][s]
			et[s] += nn * (a*yph*pa + b*yth*pb)
			ep[s] += nn * (-a*yth*pa + b*yph*pb)
		}
	}
	if kind == magnetic {
		for s := 0; s < ns; s++ {
			et[s] *= complex(0, -1)
			ep[s] *= complex(0, -1)
		}
	}
	ones := make([]float64, ns)
	for i := range ones {
		ones[i] = 1
	}
	fv := FieldVector{
		Frame: Spherical,
		V:     [3][]complex128{make([]complex128, ns), et, ep},
		Loc: [3][]float64{
			ones,
			append([]float64{}, theta...),
			append([]float64{}, phi...),
		},
	}
	return fv, cache, nil
}
