package vswf

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// gather returns the coefficient at a shifted mode position, zero when
// the shift walked off the valid mode range or past the padded
// truncation. Explicit bounds checks here replace the oversized padded
// backing array the formulas are usually written against.
func gather(v []complex128, ci int, ok bool) complex128 {
	if !ok || ci < 1 || ci > len(v) {
		return 0
	}
	return v[ci-1]
}

// ForceTorque computes the optical force, torque and spin transfer
// between an incident beam and a total-field scattered beam, as
// Cartesian components in normalized beam-momentum units. The caller
// must supply the scattered beam in the combined incoming+outgoing
// (total field) form, e.g. via TotalField; that precondition is not
// checked beyond resizing both beams to the common truncation, which
// is pure zero-padding and lossless. The closed-form sums follow
// Crichton & Marsden (2000); the results are real up to floating
// error and the stray imaginary residue is discarded here.
func ForceTorque(incident, scattered Bsc) (force, torque, spin [3]float64) {
	nmax := incident.Nmax()
	if s := scattered.Nmax(); s > nmax {
		nmax = s
	}
	ib, _ := incident.WithNmax(nmax, ResizeOptions{OnPowerLoss: PowerLossIgnore})
	sb, _ := scattered.WithNmax(nmax, ResizeOptions{OnPowerLoss: PowerLossIgnore})
	a, b := ib.Coefficients()
	p, q := sb.Coefficients()
	// the recurrence phase convention wants the TM amplitudes
	// pre-twisted by i
	for i := range b {
		b[i] *= complex(0, 1)
		q[i] *= complex(0, 1)
	}

	total := TotalOrders(nmax)
	az := make([]float64, 0, total)
	bz := make([]float64, 0, total)
	cz := make([]float64, 0, total)
	dz := make([]float64, 0, total)
	tzs := make([]float64, 0, total)
	var fxy, txy, sxy complex128
	for ci := 1; ci <= total; ci++ {
		n, m, _ := ModeIndices(ci)
		fn, fm := float64(n), float64(m)
		an, bn, pn, qn := a[ci-1], b[ci-1], p[ci-1], q[ci-1]

		i1, ok1 := shiftN1(n, m)
		anp1, bnp1 := gather(a, i1, ok1), gather(b, i1, ok1)
		pnp1, qnp1 := gather(p, i1, ok1), gather(q, i1, ok1)
		i2, ok2 := shiftN1M1(n, m)
		anp1mp1, bnp1mp1 := gather(a, i2, ok2), gather(b, i2, ok2)
		pnp1mp1, qnp1mp1 := gather(p, i2, ok2), gather(q, i2, ok2)
		i3, ok3 := shiftN1Mm1(n, m)
		anp1mm1, bnp1mm1 := gather(a, i3, ok3), gather(b, i3, ok3)
		pnp1mm1, qnp1mm1 := gather(p, i3, ok3), gather(q, i3, ok3)
		i4, ok4 := shiftM1(n, m)
		amp1, bmp1 := gather(a, i4, ok4), gather(b, i4, ok4)
		pmp1, qmp1 := gather(p, i4, ok4), gather(q, i4, ok4)

		couple := math.Sqrt(fn*(fn-fm+1)*(fn+fm+1)*(fn+2)/
			((2*fn+3)*(2*fn+1))) / (fn + 1)
		ladder := math.Sqrt((fn - fm) * (fn + fm + 1))
		mix := math.Sqrt(fn*(fn+2)) /
			math.Sqrt((2*fn+1)*(2*fn+3)) / (fn + 1)
		up := math.Sqrt((fn + fm + 1) * (fn + fm + 2))
		down := math.Sqrt((fn - fm + 1) * (fn - fm + 2))

		az = append(az, fm/(fn*(fn+1))*
			imag(-an*conj(bn)+conj(qn)*pn))
		bz = append(bz, couple*
			imag(anp1*conj(an)+bnp1*conj(bn)-
				pnp1*conj(pn)-qnp1*conj(qn)))
		fxy += complex(0, 1) / complex(fn*(fn+1), 0) * complex(ladder, 0) *
			(conj(pmp1)*qn - conj(amp1)*bn - conj(qmp1)*pn + conj(bmp1)*an)
		fxy += complex(0, mix) *
			(complex(up, 0)*(pn*conj(pnp1mp1)+qn*conj(qnp1mp1)-
				an*conj(anp1mp1)-bn*conj(bnp1mp1)) +
				complex(down, 0)*(pnp1mm1*conj(pn)+qnp1mm1*conj(qn)-
					anp1mm1*conj(an)-bnp1mm1*conj(bn)))

		tzs = append(tzs, fm*(abs2(an)+abs2(bn)-abs2(pn)-abs2(qn)))
		txy += complex(ladder, 0) *
			(an*conj(amp1) + bn*conj(bmp1) - pn*conj(pmp1) - qn*conj(qmp1))

		cz = append(cz, fm/(fn*(fn+1))*
			(abs2(qn)+abs2(pn)-abs2(an)-abs2(bn)))
		dz = append(dz, -2*couple*
			real(anp1*conj(bn)-bnp1*conj(an)-
				pnp1*conj(qn)+qnp1*conj(pn)))
		sxy += complex(0, 1) / complex(fn*(fn+1), 0) * complex(ladder, 0) *
			(conj(pmp1)*pn - conj(amp1)*an + conj(qmp1)*qn - conj(bmp1)*bn)
		sxy += complex(0, mix) *
			(complex(up, 0)*(qn*conj(pnp1mp1)-pn*conj(qnp1mp1)-
				bn*conj(anp1mp1)+an*conj(bnp1mp1)) +
				complex(down, 0)*(qnp1mm1*conj(pn)-pnp1mm1*conj(qn)-
					bnp1mm1*conj(an)+anp1mm1*conj(bn)))
	}
	force = [3]float64{real(fxy), imag(fxy),
		2 * (floats.Sum(az) + floats.Sum(bz))}
	torque = [3]float64{real(txy), imag(txy), floats.Sum(tzs)}
	spin = [3]float64{real(sxy), imag(sxy),
		floats.Sum(cz) + floats.Sum(dz)}
	return force, torque, spin
}
