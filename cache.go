package vswf

// Cache memoizes the special function values behind field evaluation:
// harmonic rows per mode and radial functions per degree, one column
// per coordinate sample. Pass the cache returned by one evaluation
// into the next at the same coordinates to skip recomputation; results
// are bit-identical either way. There is no invalidation: build a
// fresh cache for new coordinates. A cache is not safe for concurrent
// mutation and belongs to a single call chain.
type Cache struct {
	nmax           int
	kr, theta, phi []float64

	// harmonic rows indexed ci-1
	y, yth, yph [][]complex128

	// radial values and derivatives per basis, indexed [n][sample]
	f, df [NumBases][][]complex128
}

// newCache allocates an empty cache for the given coordinate batch.
// kr is the already wavenumber-scaled radius.
func newCache(kr, theta, phi []float64) *Cache {
	return &Cache{kr: kr, theta: theta, phi: phi}
}

// fits reports whether c already covers nsamp samples up to degree
// nmax, and, when radial is set, whether it carries radii for them. A
// far-field cache has no radii and never fits a near-field call.
// Coordinate values are trusted per the cache contract.
func (c *Cache) fits(nmax, nsamp int, radial bool) bool {
	if c == nil || c.nmax < nmax || len(c.theta) != nsamp {
		return false
	}
	return !radial || len(c.kr) == nsamp
}

// ensureHarmonics fills the harmonic rows for every mode up to nmax.
func (c *Cache) ensureHarmonics(nmax int) {
	if c.nmax >= nmax && c.y != nil {
		return
	}
	total := TotalOrders(nmax)
	ns := make([]int, total)
	ms := make([]int, total)
	for ci := 1; ci <= total; ci++ {
		n, m, _ := ModeIndices(ci)
		ns[ci-1], ms[ci-1] = n, m
	}
	c.y, c.yth, c.yph = evaluateHarmonics(ns, ms, c.theta, c.phi)
	c.nmax = nmax
	// radial tables were sized for the old nmax
	for b := range c.f {
		c.f[b], c.df[b] = nil, nil
	}
}

// ensureRadial fills f_n(kr) and f'_n(kr) for n = 0..nmax in the
// given basis.
func (c *Cache) ensureRadial(nmax int, basis Basis) error {
	if basis < 0 || basis >= NumBases {
		return ErrUnsupportedBasis
	}
	if len(c.f[basis]) >= nmax+1 {
		return nil
	}
	f := make([][]complex128, nmax+1)
	df := make([][]complex128, nmax+1)
	for n := range f {
		f[n] = make([]complex128, len(c.kr))
		df[n] = make([]complex128, len(c.kr))
	}
	for s, x := range c.kr {
		fs, dfs, err := evaluateRadial(nmax, x, basis)
		if err != nil {
			return err
		}
		for n := 0; n <= nmax; n++ {
			f[n][s] = fs[n]
			df[n][s] = dfs[n]
		}
	}
	c.f[basis], c.df[basis] = f, df
	return nil
}
