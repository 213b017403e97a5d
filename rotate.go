package vswf

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// RotationX returns the 3x3 rotation matrix about the x axis.
func RotationX(x float64) *mat.Dense {
	c, s := math.Cos(x), math.Sin(x)
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	})
}

// RotationY returns the 3x3 rotation matrix about the y axis.
func RotationY(x float64) *mat.Dense {
	c, s := math.Cos(x), math.Sin(x)
	return mat.NewDense(3, 3, []float64{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	})
}

// RotationZ returns the 3x3 rotation matrix about the z axis.
func RotationZ(x float64) *mat.Dense {
	c, s := math.Cos(x), math.Sin(x)
	return mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

// zyzAngles factors R = Rz(alpha) Ry(beta) Rz(gamma). At the gimbal
// singularities only alpha+gamma (or alpha-gamma) is determined, so
// gamma is fixed to zero there.
func zyzAngles(R *mat.Dense) (alpha, beta, gamma float64) {
	beta = math.Acos(clamp(R.At(2, 2), -1, 1))
	if math.Abs(math.Sin(beta)) < 1e-10 {
		if R.At(2, 2) > 0 {
			return math.Atan2(R.At(1, 0), R.At(0, 0)), 0, 0
		}
		return math.Atan2(-R.At(1, 0), -R.At(0, 0)), math.Pi, 0
	}
	alpha = math.Atan2(R.At(1, 2), R.At(0, 2))
	gamma = math.Atan2(R.At(2, 1), -R.At(2, 0))
	return alpha, beta, gamma
}

// littleD computes the Wigner d^n(beta) blocks for n = 1..nmax. Each
// block is (2n+1)x(2n+1), row/column offset by n so index 0 is m=-n.
// Per (m1,m2) pair the degree recurrence runs upward from the corner
// closed form, which keeps every entry stable without factorials.
func littleD(nmax int, beta float64) [][][]float64 {
	c2, s2 := math.Cos(beta/2), math.Sin(beta/2)
	x := math.Cos(beta)
	d := make([][][]float64, nmax+1)
	for n := 1; n <= nmax; n++ {
		d[n] = make([][]float64, 2*n+1)
		for i := range d[n] {
			d[n][i] = make([]float64, 2*n+1)
		}
	}
	// sqrt of the binomial C(2L, L-m) built as a running product
	sqBinom := func(L, m int) float64 {
		v := 1.0
		// C(2L, k) with k = L-m
		k := L - m
		for i := 1; i <= k; i++ {
			v *= float64(2*L-k+i) / float64(i)
		}
		return math.Sqrt(v)
	}
	var corner func(L, m1, m2 int) float64
	corner = func(L, m1, m2 int) float64 {
		// seed degree L = max(|m1|,|m2|)
		switch {
		case m1 == L:
			return sqBinom(L, m2) *
				math.Pow(c2, float64(L+m2)) * math.Pow(-s2, float64(L-m2))
		case m1 == -L:
			return sqBinom(L, m2) *
				math.Pow(c2, float64(L-m2)) * math.Pow(s2, float64(L+m2))
		case m2 == L:
			return powNeg1(m1-L) * corner(L, L, m1)
		default: // m2 == -L
			return powNeg1(m1+L) * corner(L, -L, m1)
		}
	}
	for m1 := -nmax; m1 <= nmax; m1++ {
		for m2 := -nmax; m2 <= nmax; m2++ {
			L := m1
			if m1 < 0 {
				L = -m1
			}
			if m2 > L {
				L = m2
			} else if -m2 > L {
				L = -m2
			}
			prev, cur := 0.0, 0.0
			if L == 0 {
				// (0,0) seeds the Legendre sequence directly,
				// the corner form starts at degree 1 here
				L, prev, cur = 1, 1, x
			} else {
				cur = corner(L, m1, m2)
			}
			if L <= nmax {
				d[L][m1+L][m2+L] = cur
			}
			for l := L; l < nmax; l++ {
				fl := float64(l)
				num := (2*fl + 1) * ((fl*(fl+1))*x - float64(m1*m2)) * cur
				num -= (fl + 1) *
					math.Sqrt(float64(l*l-m1*m1)*float64(l*l-m2*m2)) * prev
				den := fl * math.Sqrt(float64((l+1)*(l+1)-m1*m1)*
					float64((l+1)*(l+1)-m2*m2))
				prev, cur = cur, num/den
				d[l+1][m1+l+1][m2+l+1] = cur
			}
		}
	}
	return d
}

// WignerD builds the block-diagonal rotation operator for VSWF
// coefficients up to nmax. The operator is unitary and couples only
// orders within a degree; rotating a beam applies it to a and b
// independently.
func WignerD(nmax int, R *mat.Dense) (*mat.CDense, error) {
	if r, c := R.Dims(); r != 3 || c != 3 {
		return nil, fmt.Errorf("%w: rotation matrix is %dx%d, want 3x3",
			ErrDimensionMismatch, r, c)
	}
	alpha, beta, gamma := zyzAngles(R)
	d := littleD(nmax, beta)
	total := TotalOrders(nmax)
	D := mat.NewCDense(total, total, nil)
	for n := 1; n <= nmax; n++ {
		for m1 := -n; m1 <= n; m1++ {
			ea := cis(-float64(m1) * alpha)
			for m2 := -n; m2 <= n; m2++ {
				eg := cis(-float64(m2) * gamma)
				v := ea * complex(d[n][m1+n][m2+n], 0) * eg
				D.Set(CombinedIndex(n, m1)-1, CombinedIndex(n, m2)-1, v)
			}
		}
	}
	return D, nil
}

// Rotated re-expresses the beam under the spatial rotation R, returning
// the rotated beam and the Wigner operator for reuse. A precomputed
// operator in opt.D skips the rebuild.
func (z Bsc) Rotated(R *mat.Dense, opt RotateOptions) (Bsc, *mat.CDense, error) {
	nmax := opt.Nmax
	if nmax == 0 {
		nmax = z.Nmax()
	}
	D := opt.D
	if D == nil {
		var err error
		D, err = WignerD(nmax, R)
		if err != nil {
			return Bsc{}, nil, err
		}
	}
	w, err := z.WithNmax(nmax, ResizeOptions{})
	if err != nil {
		return Bsc{}, nil, err
	}
	out, err := w.Transformed(D)
	if err != nil {
		return Bsc{}, nil, err
	}
	return out, D, nil
}

// RotateBeams rotates an array of beams by an array of rotations with
// scalar broadcast: either side may have length one, otherwise the
// counts must match.
func RotateBeams(beams []Bsc, Rs []*mat.Dense, opt RotateOptions) ([]Bsc, error) {
	if len(beams) != len(Rs) && len(beams) != 1 && len(Rs) != 1 {
		return nil, fmt.Errorf("%w: %d beams against %d rotations",
			ErrDimensionMismatch, len(beams), len(Rs))
	}
	n := len(beams)
	if len(Rs) > n {
		n = len(Rs)
	}
	out := make([]Bsc, n)
	for i := 0; i < n; i++ {
		z := beams[min(i, len(beams)-1)]
		R := Rs[min(i, len(Rs)-1)]
		w, _, err := z.Rotated(R, opt)
		if err != nil {
			return nil, err
		}
		out[i] = w
	}
	return out, nil
}

func cis(x float64) complex128 {
	return complex(math.Cos(x), math.Sin(x))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
