package vswf

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// aAxial is the cos(theta) recurrence coefficient
// sqrt((n+1-m)(n+1+m)/((2n+1)(2n+3))), zero outside n >= |m|.
func aAxial(m, n int) float64 {
	if m < 0 {
		m = -m
	}
	if n < m {
		return 0
	}
	return math.Sqrt(float64((n+1-m)*(n+1+m)) /
		float64((2*n+1)*(2*n+3)))
}

// cPlus is the order-raising coefficient
// sqrt((n+m+1)(n+m+2)/((2n+1)(2n+3))).
func cPlus(m, n int) float64 {
	if n < 0 {
		return 0
	}
	return math.Sqrt(float64((n+m+1)*(n+m+2)) /
		float64((2*n+1)*(2*n+3)))
}

// cMinus is the order-raising coefficient
// sqrt((n-m)(n-m-1)/((2n-1)(2n+1))), zero for n-m < 2.
func cMinus(m, n int) float64 {
	if n-m < 2 {
		return 0
	}
	return math.Sqrt(float64((n-m)*(n-m-1)) /
		float64((2*n-1)*(2*n+1)))
}

// scalarAxialCoeffs computes the scalar wavefunction translation
// coefficients C^m_{nu,n}(kd) for 0 <= m <= nmax, nu up to a working
// band and n up to nmax+1, by ladder-operator recurrences: the m = 0,
// n = 0 column is seeded from the Gegenbauer expansion, each order
// block starts from its sectorial column, and degrees advance with the
// four-term relation. The band is wide enough that every advance stays
// clear of the truncated edge; column n of any block is valid for
// nu <= nbig - n. Coefficients for -m equal those for m.
//
// Layout: c[m][n][nu], n = 0..nmax+1, nu = 0..nbig.
func scalarAxialCoeffs(nmax int, kd float64, basis Basis) ([][][]complex128, error) {
	nbig := 3*nmax + 5
	f, _, err := evaluateRadial(nbig, kd, basis)
	if err != nil {
		return nil, err
	}
	c := make([][][]complex128, nmax+1)
	for m := 0; m <= nmax; m++ {
		c[m] = make([][]complex128, nmax+2)
		for n := range c[m] {
			c[m][n] = make([]complex128, nbig+1)
		}
	}
	for nu := 0; nu <= nbig; nu++ {
		c[0][0][nu] = complex(powNeg1(nu)*math.Sqrt(float64(2*nu+1)), 0) * f[nu]
	}
	for m := 0; m <= nmax; m++ {
		if m > 0 {
			// sectorial column from the previous order block
			prev := c[m-1][m-1]
			div := complex(cPlus(m-1, m-1), 0)
			for nu := m; nu <= nbig-m; nu++ {
				v := complex(cPlus(m-1, nu-1), 0) * prev[nu-1]
				if nu+1 <= nbig {
					v += complex(cMinus(m-1, nu+1), 0) * prev[nu+1]
				}
				c[m][m][nu] = v / div
			}
		}
		for n := m; n <= nmax; n++ {
			div := complex(aAxial(m, n), 0)
			var lower []complex128
			if n-1 >= 0 {
				lower = c[m][n-1]
			}
			for nu := m; nu <= nbig-(n+1); nu++ {
				v := -complex(aAxial(m, nu), 0) * c[m][n][nu+1]
				if nu-1 >= 0 {
					v += complex(aAxial(m, nu-1), 0) * c[m][n][nu-1]
				}
				if lower != nil && n-1 >= m {
					v += complex(aAxial(m, n-1), 0) * lower[nu]
				}
				c[m][n+1][nu] = v / div
			}
		}
	}
	return c, nil
}

// TranslationZ builds the axial translation operators for VSWF
// coefficients at truncation order nmax and displacement dz in medium
// wavelength units. A couples like polarizations and B cross-couples
// them; the translated coefficients are a' = A a + B b, b' = A b + B a.
// The basis picks the radial family of the kernel: Regular re-expands
// an ordinary beam, the Hankel bases re-expand scattered fields.
func TranslationZ(nmax int, dz float64, basis Basis) (A, B *mat.CDense, err error) {
	kd := 2 * math.Pi * math.Abs(dz)
	c, err := scalarAxialCoeffs(nmax, kd, basis)
	if err != nil {
		return nil, nil, err
	}
	total := TotalOrders(nmax)
	A = mat.NewCDense(total, total, nil)
	B = mat.NewCDense(total, total, nil)
	flip := dz < 0
	for m := -nmax; m <= nmax; m++ {
		am := m
		if am < 0 {
			am = -am
		}
		lo := am
		if lo < 1 {
			lo = 1
		}
		cm := c[am]
		for n := lo; n <= nmax; n++ {
			for nu := lo; nu <= nmax; nu++ {
				gg := sqrtGamma(n) * sqrtGamma(nu)
				av := complex(sqrtGamma(nu)/sqrtGamma(n), 0) * cm[n][nu]
				av += complex(kd/gg, 0) *
					(complex(float64(nu+1)*aAxial(am, nu-1), 0)*cm[n][nu-1] +
						complex(float64(nu)*aAxial(am, nu), 0)*cm[n][nu+1])
				bv := complex(0, kd*float64(m)/gg) * cm[n][nu]
				if flip && (n+nu)%2 == 1 {
					av = -av
				}
				if flip && (n+nu)%2 == 0 {
					bv = -bv
				}
				A.Set(CombinedIndex(nu, m)-1, CombinedIndex(n, m)-1, av)
				B.Set(CombinedIndex(nu, m)-1, CombinedIndex(n, m)-1, bv)
			}
		}
	}
	return A, B, nil
}

// TranslatedZ re-expresses the beam about an origin displaced by dz
// along the polar axis, returning the new beam and the operators for
// reuse. Zero displacement is an identity with no operator
// construction. Precomputed operators in opt skip the rebuild.
func (z Bsc) TranslatedZ(dz float64, opt TranslateOptions) (Bsc, *mat.CDense, *mat.CDense, error) {
	if dz == 0 {
		return z, nil, nil, nil
	}
	nmax := opt.Nmax
	if nmax == 0 {
		nmax = z.Nmax()
	}
	A, B := opt.A, opt.B
	if A == nil || B == nil {
		var err error
		A, B, err = TranslationZ(nmax, dz, opt.Basis)
		if err != nil {
			return Bsc{}, nil, nil, err
		}
	}
	w, err := z.WithNmax(nmax, ResizeOptions{})
	if err != nil {
		return Bsc{}, nil, nil, err
	}
	a, b := w.Coefficients()
	na := cmatVec(A, a)
	nb := cmatVec(B, b)
	for i := range na {
		na[i] += nb[i]
	}
	nb = cmatVec(A, b)
	ba := cmatVec(B, a)
	for i := range nb {
		nb[i] += ba[i]
	}
	out := Bsc{size: len(na), a: na, b: nb}
	return out, A, B, nil
}

// TranslatedXYZ translates the beam by an arbitrary displacement by
// rotating the displacement onto the polar axis, translating along it,
// and rotating back. A zero displacement is an identity.
func (z Bsc) TranslatedXYZ(dx, dy, dz float64, opt TranslateOptions) (Bsc, error) {
	rho := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if rho == 0 {
		return z, nil
	}
	if dx == 0 && dy == 0 {
		out, _, _, err := z.TranslatedZ(dz, opt)
		return out, err
	}
	theta := math.Acos(clamp(dz/rho, -1, 1))
	phi := math.Atan2(dy, dx)
	var R mat.Dense
	R.Mul(RotationZ(phi), RotationY(theta))
	var Rt mat.Dense
	Rt.CloneFrom(R.T())

	nmax := opt.Nmax
	if nmax == 0 {
		nmax = z.Nmax()
	}
	ropt := RotateOptions{Nmax: nmax}
	aligned, _, err := z.Rotated(&Rt, ropt)
	if err != nil {
		return Bsc{}, err
	}
	moved, _, _, err := aligned.TranslatedZ(rho, opt)
	if err != nil {
		return Bsc{}, err
	}
	out, _, err := moved.Rotated(&R, ropt)
	if err != nil {
		return Bsc{}, err
	}
	return out, nil
}
