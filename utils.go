package vswf

import (
	"log"
	"math"
)

// Warnings counts the warnings emitted by the package, mostly from
// truncation with OnPowerLoss = PowerLossWarn.
var Warnings int

// Warn prints a warning message and increments the package warning
// counter
func Warn(format string, a ...interface{}) {
	log.Printf("warning: "+format, a...)
	Warnings++
}

// clamp limits x to [lo, hi]
func clamp(x, lo, hi float64) float64 {
	switch {
	case x < lo:
		return lo
	case x > hi:
		return hi
	}
	return x
}

// sqrtGamma returns sqrt(n*(n+1)), the VSWF degree normalization
func sqrtGamma(n int) float64 {
	return math.Sqrt(float64(n) * float64(n+1))
}

// powNeg1 returns (-1)^k without calling math.Pow
func powNeg1(k int) float64 {
	if k&1 == 1 {
		return -1
	}
	return 1
}

// ipow returns s^k for s on the unit circle, which is all the phase
// factors the far-field formulas need
func ipow(s complex128, k int) complex128 {
	out := complex(1, 0)
	for i := 0; i < k; i++ {
		out *= s
	}
	return out
}

// conj is the complex conjugate, free of the cmplx import at the
// formula-heavy call sites
func conj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}

// copyC copies a complex slice
func copyC(v []complex128) []complex128 {
	out := make([]complex128, len(v))
	copy(out, v)
	return out
}
