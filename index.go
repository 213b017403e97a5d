package vswf

import (
	"fmt"
	"math"
)

// CombinedIndex converts a (degree, order) mode pair to its linear
// position in a coefficient vector. Degrees count from 1 and |m| <= n,
// so the first index is 1 at (1,-1).
func CombinedIndex(n, m int) int {
	return n*(n+1) + m
}

// ModeIndices is the inverse of CombinedIndex. It fails with
// ErrInvalidModeIndex for ci < 1.
func ModeIndices(ci int) (n, m int, err error) {
	if ci < 1 {
		return 0, 0, fmt.Errorf("%w: combined index %d < 1", ErrInvalidModeIndex, ci)
	}
	n = int(math.Floor(math.Sqrt(float64(ci))))
	m = ci - n*(n+1)
	return n, m, nil
}

// TotalOrders returns the coefficient vector length needed to hold all
// modes up to degree nmax.
func TotalOrders(nmax int) int {
	return nmax * (nmax + 2)
}

// nmaxFromLength recovers the truncation order from a coefficient
// vector length, or fails if the length is not Nmax*(Nmax+2) for some
// non-negative Nmax.
func nmaxFromLength(l int) (int, error) {
	if l == 0 {
		return 0, nil
	}
	n := int(math.Round(math.Sqrt(float64(l+1)))) - 1
	if n < 1 || n*(n+2) != l {
		return 0, fmt.Errorf("%w: coefficient length %d is not Nmax*(Nmax+2)",
			ErrInvalidModeIndex, l)
	}
	return n, nil
}

// Shifted mode positions needed by the force recurrences. Each returns
// the combined index of the shifted pair and whether that pair is a
// valid mode; callers zero the out-of-range entries instead of
// indexing past the end of a vector.

// shiftN1 is the index of (n+1, m).
func shiftN1(n, m int) (int, bool) {
	return CombinedIndex(n+1, m), true
}

// shiftN1M1 is the index of (n+1, m+1).
func shiftN1M1(n, m int) (int, bool) {
	return CombinedIndex(n+1, m+1), m+1 <= n+1
}

// shiftN1Mm1 is the index of (n+1, m-1).
func shiftN1Mm1(n, m int) (int, bool) {
	return CombinedIndex(n+1, m-1), -(n+1) <= m-1
}

// shiftM1 is the index of (n, m+1).
func shiftM1(n, m int) (int, bool) {
	return CombinedIndex(n, m+1), m+1 <= n
}
