package vswf

import "math"

// legendreTable computes the fully normalized associated Legendre
// values sqrt((2n+1)/4pi (n-m)!/(n+m)!) P_n^m(cos theta), with the
// Condon-Shortley phase, for every 0 <= n <= nmax and |m| <= n at one
// angle. Entries are laid out at n*(n+1)+m, so the table has
// (nmax+1)^2 values starting with (0,0) at position 0.
func legendreTable(nmax int, theta float64) []float64 {
	p := make([]float64, (nmax+1)*(nmax+1))
	ct, st := math.Cos(theta), math.Sin(theta)
	at := func(n, m int) int { return n*(n+1) + m }
	p[0] = math.Sqrt(1 / (4 * math.Pi))
	for m := 1; m <= nmax; m++ {
		p[at(m, m)] = -math.Sqrt(float64(2*m+1)/float64(2*m)) * st * p[at(m-1, m-1)]
	}
	for m := 0; m < nmax; m++ {
		p[at(m+1, m)] = math.Sqrt(float64(2*m+3)) * ct * p[at(m, m)]
	}
	for m := 0; m <= nmax; m++ {
		for n := m + 2; n <= nmax; n++ {
			f := math.Sqrt(float64(4*n*n-1) / float64(n*n-m*m))
			g := math.Sqrt(float64((n-1)*(n-1)-m*m) / float64(4*(n-1)*(n-1)-1))
			p[at(n, m)] = f * (ct*p[at(n-1, m)] - g*p[at(n-2, m)])
		}
	}
	for n := 1; n <= nmax; n++ {
		for m := 1; m <= n; m++ {
			p[at(n, -m)] = powNeg1(m) * p[at(n, m)]
		}
	}
	return p
}

// harmonicPoint evaluates Y, dY/dtheta and the phi gradient component
// i*m*Y/sin(theta) for one mode at one angle, given that angle's
// Legendre table. The theta derivative uses the half-difference
// identity over orders and the phi component the degree-lowering
// identity, so both stay finite at the poles.
func harmonicPoint(p []float64, n, m int, phi float64) (y, yth, yph complex128) {
	at := func(n, m int) int { return n*(n+1) + m }
	e := complex(math.Cos(float64(m)*phi), math.Sin(float64(m)*phi))
	y = complex(p[at(n, m)], 0) * e

	var dth float64
	if m+1 <= n {
		dth += 0.5 * math.Sqrt(float64((n-m)*(n+m+1))) * p[at(n, m+1)]
	}
	if m-1 >= -n {
		dth -= 0.5 * math.Sqrt(float64((n+m)*(n-m+1))) * p[at(n, m-1)]
	}
	yth = complex(dth, 0) * e

	// m*P/sin(theta) in terms of degree n-1 values
	var mps float64
	if n >= 1 {
		c := -0.5 * math.Sqrt(float64(2*n+1)/float64(2*n-1))
		if m-1 >= -(n-1) && m-1 <= n-1 {
			mps += c * math.Sqrt(float64((n+m)*(n+m-1))) * p[at(n-1, m-1)]
		}
		if m+1 <= n-1 && m+1 >= -(n-1) {
			mps += c * math.Sqrt(float64((n-m)*(n-m-1))) * p[at(n-1, m+1)]
		}
	}
	yph = complex(0, mps) * e
	return y, yth, yph
}

// evaluateHarmonics returns the Y, dY/dtheta and i*m*Y/sin(theta)
// rows, one per requested mode, across the angle samples. It is a
// pure function of its inputs; Cache wraps it so repeated field
// evaluations at the same coordinates reuse the result.
func evaluateHarmonics(n, m []int, theta, phi []float64) (y, yth, yph [][]complex128) {
	nmax := 0
	for _, nn := range n {
		if nn > nmax {
			nmax = nn
		}
	}
	y = make([][]complex128, len(n))
	yth = make([][]complex128, len(n))
	yph = make([][]complex128, len(n))
	for i := range n {
		y[i] = make([]complex128, len(theta))
		yth[i] = make([]complex128, len(theta))
		yph[i] = make([]complex128, len(theta))
	}
	for s := range theta {
		p := legendreTable(nmax, theta[s])
		for i := range n {
			y[i][s], yth[i][s], yph[i][s] = harmonicPoint(p, n[i], m[i], phi[s])
		}
	}
	return y, yth, yph
}
