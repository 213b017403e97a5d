package vswf

import (
	"errors"
	"math"
	"testing"
)

func singleMode(t *testing.T, n, m int, a, b complex128) Bsc {
	t.Helper()
	z, err := FromDense([]complex128{a}, []complex128{b}, []int{n}, []int{m})
	if err != nil {
		t.Fatal(err)
	}
	return z
}

// A lone (1,-1) TE mode at r=1, theta=pi/2, phi=0 has a closed-form
// outgoing field: no radial or theta component and a phi-polarized
// amplitude built from h1_1(2pi).
func TestNearFieldDipole(t *testing.T) {
	z := singleMode(t, 1, -1, 1, 0)
	fv, _, err := z.NearField([]float64{1}, []float64{math.Pi / 2}, []float64{0},
		FieldOptions{Basis: Outgoing})
	if err != nil {
		t.Fatal(err)
	}
	if fv.Frame != Spherical {
		t.Fatalf("got frame %v, wanted Spherical", fv.Frame)
	}
	kr := 2 * math.Pi
	h1 := complex(-1/kr, -1/(kr*kr))
	wantTheta := complex(0, -math.Sqrt(3/(16*math.Pi))) * h1
	if !cEqual(fv.V[0][0], 0, 1e-14) {
		t.Errorf("Er: got %v, wanted 0", fv.V[0][0])
	}
	if !cEqual(fv.V[1][0], wantTheta, 1e-13) {
		t.Errorf("Etheta: got %v, wanted %v", fv.V[1][0], wantTheta)
	}
	if !cEqual(fv.V[2][0], 0, 1e-14) {
		t.Errorf("Ephi: got %v, wanted 0", fv.V[2][0])
	}
}

// A lone (1,0) TM mode on the polar axis has a purely radial outgoing
// component there.
func TestNearFieldRadial(t *testing.T) {
	z := singleMode(t, 1, 0, 0, 1)
	r := 0.75
	fv, _, err := z.NearField([]float64{r}, []float64{0}, []float64{0},
		FieldOptions{Basis: Outgoing})
	if err != nil {
		t.Fatal(err)
	}
	kr := 2 * math.Pi * r
	j1 := math.Sin(kr)/(kr*kr) - math.Cos(kr)/kr
	y1 := -math.Cos(kr)/(kr*kr) - math.Sin(kr)/kr
	h1 := complex(j1, y1)
	want := complex(2/(math.Sqrt2*kr)*math.Sqrt(3/(4*math.Pi)), 0) * h1
	if !cEqual(fv.V[0][0], want, 1e-13) {
		t.Errorf("Er: got %v, wanted %v", fv.V[0][0], want)
	}
}

// H of (a,b) is -i times E of (b,a), the M/N duality.
func TestMagneticDuality(t *testing.T) {
	z := testBeam(t, 2)
	a, b := z.Coefficients()
	dual, err := New(b, a)
	if err != nil {
		t.Fatal(err)
	}
	r := []float64{0.4, 1.3}
	theta := []float64{0.9, 2.1}
	phi := []float64{0.2, 4.4}
	opt := FieldOptions{Basis: Regular}
	h, _, err := z.NearFieldH(r, theta, phi, opt)
	if err != nil {
		t.Fatal(err)
	}
	e, _, err := dual.NearField(r, theta, phi, opt)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		for s := range r {
			want := complex(0, -1) * e.V[i][s]
			if !cEqual(h.V[i][s], want, 1e-13) {
				t.Errorf("component %d sample %d: got %v, wanted %v",
					i, s, h.V[i][s], want)
			}
		}
	}
}

// At kr a large multiple of 2pi the outgoing near field approaches
// FarField/kr with no leftover phase. The leading asymptotic correction
// is O(n(n+1)/2kr), a few 1e-3 at this radius, which sets the tolerance.
func TestFarFieldAsymptotics(t *testing.T) {
	z := testBeam(t, 2)
	r := 1000.0
	kr := 2 * math.Pi * r
	theta := []float64{0.7, 1.9}
	phi := []float64{0.3, 2.5}
	near, _, err := z.NearField([]float64{r, r}, theta, phi,
		FieldOptions{Basis: Outgoing})
	if err != nil {
		t.Fatal(err)
	}
	far, _, err := z.FarField(theta, phi, FieldOptions{Basis: Outgoing})
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < 3; i++ {
		for s := range theta {
			want := far.V[i][s] / complex(kr, 0)
			d := near.V[i][s] - want
			scale := math.Hypot(real(want), imag(want))
			if math.Hypot(real(d), imag(d)) > 5e-3*scale+1e-12 {
				t.Errorf("component %d sample %d: got %v, wanted %v",
					i, s, near.V[i][s], want)
			}
		}
	}
	for s := range theta {
		if far.V[0][s] != 0 {
			t.Errorf("far radial component: got %v, wanted 0", far.V[0][s])
		}
		if far.Loc[0][s] != 1 {
			t.Errorf("far direction radius: got %v, wanted 1", far.Loc[0][s])
		}
	}
}

func TestFarFieldRejectsRegular(t *testing.T) {
	z := testBeam(t, 1)
	if _, _, err := z.FarField([]float64{0}, []float64{0}, FieldOptions{}); !errors.Is(err, ErrUnsupportedBasis) {
		t.Errorf("got %v, wanted ErrUnsupportedBasis", err)
	}
}

func TestNearFieldCoordinateMismatch(t *testing.T) {
	z := testBeam(t, 1)
	_, _, err := z.NearField([]float64{1}, []float64{0, 1}, []float64{0},
		FieldOptions{Basis: Regular})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, wanted ErrDimensionMismatch", err)
	}
}

func TestNearFieldOriginFinite(t *testing.T) {
	z := testBeam(t, 2)
	fv, _, err := z.NearField([]float64{0}, []float64{0.5}, []float64{0.5},
		FieldOptions{Basis: Regular})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		v := fv.V[i][0]
		if math.IsNaN(real(v)) || math.IsNaN(imag(v)) {
			t.Errorf("component %d at the origin: got NaN", i)
		}
	}
}

// A cache built by FarField has no radii; feeding it to NearField must
// fall back to a fresh one instead of evaluating over empty rows.
func TestFarFieldCacheIntoNearField(t *testing.T) {
	z := testBeam(t, 2)
	theta := []float64{0.6, 1.4}
	phi := []float64{0.1, 2.8}
	r := []float64{0.5, 1.5}
	_, farCache, err := z.FarField(theta, phi, FieldOptions{Basis: Outgoing})
	if err != nil {
		t.Fatal(err)
	}
	got, cache, err := z.NearField(r, theta, phi,
		FieldOptions{Basis: Outgoing, Cache: farCache})
	if err != nil {
		t.Fatal(err)
	}
	if cache == farCache {
		t.Errorf("got the radius-free cache back, wanted a fresh one")
	}
	want, _, err := z.NearField(r, theta, phi, FieldOptions{Basis: Outgoing})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		for s := range r {
			if got.V[i][s] != want.V[i][s] {
				t.Errorf("component %d sample %d: got %v, wanted %v",
					i, s, got.V[i][s], want.V[i][s])
			}
		}
	}
}

func TestNearFieldCacheReuse(t *testing.T) {
	z := testBeam(t, 3)
	r := []float64{0.5, 2}
	theta := []float64{1, 0.2}
	phi := []float64{0, 3}
	first, cache, err := z.NearField(r, theta, phi, FieldOptions{Basis: Outgoing})
	if err != nil {
		t.Fatal(err)
	}
	if cache == nil {
		t.Fatalf("got nil cache")
	}
	second, cache2, err := z.NearField(r, theta, phi,
		FieldOptions{Basis: Outgoing, Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if cache2 != cache {
		t.Errorf("got a fresh cache, wanted the one passed in")
	}
	for i := 0; i < 3; i++ {
		for s := range r {
			if first.V[i][s] != second.V[i][s] {
				t.Errorf("component %d sample %d: cached %v, fresh %v",
					i, s, second.V[i][s], first.V[i][s])
			}
		}
	}
}
