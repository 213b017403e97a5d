package vswf

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func testBeam(t *testing.T, nmax int) Bsc {
	t.Helper()
	size := TotalOrders(nmax)
	a := make([]complex128, size)
	b := make([]complex128, size)
	for ci := 1; ci <= size; ci++ {
		n, m, _ := ModeIndices(ci)
		a[ci-1] = complex(1/float64(n*n), float64(m)/10)
		b[ci-1] = complex(float64(m)/float64(n+3), -1/float64(ci))
	}
	z, err := New(a, b)
	if err != nil {
		t.Fatal(err)
	}
	return z
}

func beamsEqual(x, y Bsc, tol float64) bool {
	if x.Len() != y.Len() {
		return false
	}
	xa, xb := x.Coefficients()
	ya, yb := y.Coefficients()
	for i := range xa {
		if math.Hypot(real(xa[i]-ya[i]), imag(xa[i]-ya[i])) > tol ||
			math.Hypot(real(xb[i]-yb[i]), imag(xb[i]-yb[i])) > tol {
			return false
		}
	}
	return true
}

func TestNewValidation(t *testing.T) {
	if _, err := New(make([]complex128, 3), make([]complex128, 8)); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, wanted ErrDimensionMismatch", err)
	}
	if _, err := New(make([]complex128, 7), make([]complex128, 7)); !errors.Is(err, ErrInvalidModeIndex) {
		t.Errorf("got %v, wanted ErrInvalidModeIndex", err)
	}
	z, err := New(make([]complex128, 15), make([]complex128, 15))
	if err != nil {
		t.Fatal(err)
	}
	if got := z.Nmax(); got != 3 {
		t.Errorf("got Nmax %d, wanted 3", got)
	}
}

func TestFromDense(t *testing.T) {
	z, err := FromDense(
		[]complex128{1, 2i},
		[]complex128{0, 3},
		[]int{1, 2},
		[]int{-1, 2},
	)
	if err != nil {
		t.Fatal(err)
	}
	if got := z.Nmax(); got != 2 {
		t.Errorf("got Nmax %d, wanted 2", got)
	}
	a, b := z.Coefficients()
	if a[CombinedIndex(1, -1)-1] != 1 || a[CombinedIndex(2, 2)-1] != 2i {
		t.Errorf("a coefficients landed at the wrong modes: %v", a)
	}
	if b[CombinedIndex(2, 2)-1] != 3 {
		t.Errorf("b coefficients landed at the wrong modes: %v", b)
	}
	if _, err := FromDense([]complex128{1}, []complex128{1}, []int{2}, []int{3}); !errors.Is(err, ErrInvalidModeIndex) {
		t.Errorf("got %v, wanted ErrInvalidModeIndex", err)
	}
}

func TestResizeRoundTrip(t *testing.T) {
	z := testBeam(t, 3)
	big, err := z.WithNmax(7, ResizeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinRel(big.Power(), z.Power(), 1e-14) {
		t.Errorf("zero-padding changed power: got %v, wanted %v",
			big.Power(), z.Power())
	}
	back, err := big.WithNmax(3, ResizeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !beamsEqual(back, z, 0) {
		t.Errorf("grow/truncate round trip did not restore the beam")
	}
}

func TestTruncationPolicy(t *testing.T) {
	z := testBeam(t, 4)
	if _, err := z.WithNmax(2, ResizeOptions{OnPowerLoss: PowerLossError}); !errors.Is(err, ErrTruncation) {
		t.Errorf("got %v, wanted ErrTruncation", err)
	}
	if _, err := z.WithNmax(2, ResizeOptions{OnPowerLoss: PowerLossIgnore}); err != nil {
		t.Errorf("got %v, wanted nil", err)
	}
	// loss below the tolerance is not an error
	if _, err := z.WithNmax(2, ResizeOptions{OnPowerLoss: PowerLossError, RelTol: 1}); err != nil {
		t.Errorf("got %v, wanted nil", err)
	}
}

func TestShrink(t *testing.T) {
	z := testBeam(t, 2)
	big, err := z.WithNmax(9, ResizeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	small, err := big.Shrink(ShrinkOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if got := small.Nmax(); got != 2 {
		t.Errorf("got Nmax %d, wanted 2", got)
	}
	if !scalar.EqualWithinRel(small.Power(), z.Power(), 1e-14) {
		t.Errorf("got power %v, wanted %v", small.Power(), z.Power())
	}
}

func TestSparseRoundTrip(t *testing.T) {
	a := make([]complex128, 15)
	b := make([]complex128, 15)
	a[CombinedIndex(1, 0)-1] = 2
	b[CombinedIndex(3, -2)-1] = 1i
	z, err := New(a, b)
	if err != nil {
		t.Fatal(err)
	}
	sp := z.MakeSparse(SparseOptions{})
	if !sp.IsSparse() {
		t.Fatalf("got dense, wanted sparse")
	}
	if ga, _ := sp.at(CombinedIndex(1, 0)); ga != 2 {
		t.Errorf("got a = %v, wanted 2", ga)
	}
	if _, gb := sp.at(CombinedIndex(3, -2)); gb != 1i {
		t.Errorf("got b = %v, wanted 1i", gb)
	}
	if sp.Power() != z.Power() {
		t.Errorf("got power %v, wanted %v", sp.Power(), z.Power())
	}
	full := sp.Full()
	if full.IsSparse() || !beamsEqual(full, z, 0) {
		t.Errorf("sparse/full round trip did not restore the beam")
	}
}

func TestMakeSparseThresholds(t *testing.T) {
	a := make([]complex128, 8)
	b := make([]complex128, 8)
	a[0] = 1
	a[4] = 1e-9
	z, err := New(a, b)
	if err != nil {
		t.Fatal(err)
	}
	// below AbsTol but above RelTol*p: kept, dropping needs both
	sp := z.MakeSparse(SparseOptions{AbsTol: 1e-12, RelTol: 1e-30})
	if len(sp.idx) != 2 {
		t.Errorf("got %d stored modes, wanted 2", len(sp.idx))
	}
	sp = z.MakeSparse(SparseOptions{AbsTol: 1e-12, RelTol: 1e-6})
	if len(sp.idx) != 1 {
		t.Errorf("got %d stored modes, wanted 1", len(sp.idx))
	}
}

func TestBasisSet(t *testing.T) {
	set, err := BasisSet([]int{1, CombinedIndex(2, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != 4 {
		t.Fatalf("got %d beams, wanted 4", len(set))
	}
	for i, z := range set {
		if got := z.Power(); got != 1 {
			t.Errorf("beam %d: got power %v, wanted 1", i, got)
		}
		if got := z.Nmax(); got != 2 {
			t.Errorf("beam %d: got Nmax %d, wanted 2", i, got)
		}
	}
	a, _ := set[0].at(1)
	_, b := set[2].at(1)
	if a != 1 || b != 1 {
		t.Errorf("TE then TM ordering broken: a=%v b=%v", a, b)
	}
	if _, err := BasisSet([]int{0}); !errors.Is(err, ErrInvalidModeIndex) {
		t.Errorf("got %v, wanted ErrInvalidModeIndex", err)
	}
}

func TestTruncationWarns(t *testing.T) {
	z := testBeam(t, 4)
	before := Warnings
	if _, err := z.WithNmax(1, ResizeOptions{}); err != nil {
		t.Fatal(err)
	}
	if Warnings != before+1 {
		t.Errorf("got %d warnings, wanted %d", Warnings, before+1)
	}
}

func TestWithPower(t *testing.T) {
	z := testBeam(t, 2)
	w := z.WithPower(3.5)
	if !scalar.EqualWithinRel(w.Power(), 3.5, 1e-14) {
		t.Errorf("got power %v, wanted 3.5", w.Power())
	}
}
