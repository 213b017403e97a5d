package vswf

import (
	"fmt"
	"math"
)

// Frame tags which coordinate system a FieldVector's components are
// expressed in.
type Frame int

const (
	Cartesian Frame = iota
	Spherical
)

func (f Frame) String() string {
	return []string{
		"Cartesian",
		"Spherical",
	}[f]
}

// FieldVector is a batch of 3-component field values tagged with their
// coordinate frame, optionally carrying the sample positions in the
// same frame. Components are complex amplitudes; positions are real.
type FieldVector struct {
	Frame Frame
	V     [3][]complex128 // x,y,z or r,theta,phi component rows
	Loc   [3][]float64    // sample positions, nil when unknown
}

// Len returns the number of samples.
func (fv FieldVector) Len() int { return len(fv.V[0]) }

// ToCartesian re-expresses the components (and positions, when
// present) in the Cartesian frame. Converting spherical components
// requires positions for the local basis vectors.
func (fv FieldVector) ToCartesian() (FieldVector, error) {
	if fv.Frame == Cartesian {
		return fv, nil
	}
	if fv.Loc[0] == nil {
		return FieldVector{}, fmt.Errorf("%w: spherical components without positions",
			ErrDimensionMismatch)
	}
	n := fv.Len()
	out := FieldVector{Frame: Cartesian}
	for i := range out.V {
		out.V[i] = make([]complex128, n)
		out.Loc[i] = make([]float64, n)
	}
	for s := 0; s < n; s++ {
		r, th, ph := fv.Loc[0][s], fv.Loc[1][s], fv.Loc[2][s]
		st, ct := math.Sin(th), math.Cos(th)
		sp, cp := math.Sin(ph), math.Cos(ph)
		vr, vt, vp := fv.V[0][s], fv.V[1][s], fv.V[2][s]
		out.V[0][s] = complex(st*cp, 0)*vr + complex(ct*cp, 0)*vt - complex(sp, 0)*vp
		out.V[1][s] = complex(st*sp, 0)*vr + complex(ct*sp, 0)*vt + complex(cp, 0)*vp
		out.V[2][s] = complex(ct, 0)*vr - complex(st, 0)*vt
		out.Loc[0][s] = r * st * cp
		out.Loc[1][s] = r * st * sp
		out.Loc[2][s] = r * ct
	}
	return out, nil
}

// ToSpherical re-expresses Cartesian components in the spherical frame
// at their own positions.
func (fv FieldVector) ToSpherical() (FieldVector, error) {
	if fv.Frame == Spherical {
		return fv, nil
	}
	if fv.Loc[0] == nil {
		return FieldVector{}, fmt.Errorf("%w: cartesian components without positions",
			ErrDimensionMismatch)
	}
	n := fv.Len()
	out := FieldVector{Frame: Spherical}
	for i := range out.V {
		out.V[i] = make([]complex128, n)
		out.Loc[i] = make([]float64, n)
	}
	for s := 0; s < n; s++ {
		x, y, z := fv.Loc[0][s], fv.Loc[1][s], fv.Loc[2][s]
		r := math.Sqrt(x*x + y*y + z*z)
		th := 0.0
		if r > 0 {
			th = math.Acos(clamp(z/r, -1, 1))
		}
		ph := math.Atan2(y, x)
		st, ct := math.Sin(th), math.Cos(th)
		sp, cp := math.Sin(ph), math.Cos(ph)
		vx, vy, vz := fv.V[0][s], fv.V[1][s], fv.V[2][s]
		out.V[0][s] = complex(st*cp, 0)*vx + complex(st*sp, 0)*vy + complex(ct, 0)*vz
		out.V[1][s] = complex(ct*cp, 0)*vx + complex(ct*sp, 0)*vy - complex(st, 0)*vz
		out.V[2][s] = -complex(sp, 0)*vx + complex(cp, 0)*vy
		out.Loc[0][s], out.Loc[1][s], out.Loc[2][s] = r, th, ph
	}
	return out, nil
}

// Plus adds two field batches. Both are converted to Cartesian first
// and the positions are dropped, since a sum of fields sampled at
// different points has no single location.
func (fv FieldVector) Plus(w FieldVector) (FieldVector, error) {
	return fv.combine(w, 1)
}

// Minus subtracts w from fv under the same rules as Plus.
func (fv FieldVector) Minus(w FieldVector) (FieldVector, error) {
	return fv.combine(w, -1)
}

func (fv FieldVector) combine(w FieldVector, sign float64) (FieldVector, error) {
	if fv.Len() != w.Len() {
		return FieldVector{}, fmt.Errorf("%w: %d vs %d samples",
			ErrDimensionMismatch, fv.Len(), w.Len())
	}
	a, err := fv.ToCartesian()
	if err != nil {
		return FieldVector{}, err
	}
	b, err := w.ToCartesian()
	if err != nil {
		return FieldVector{}, err
	}
	out := FieldVector{Frame: Cartesian}
	for i := range out.V {
		out.V[i] = make([]complex128, a.Len())
		for s := range out.V[i] {
			out.V[i][s] = a.V[i][s] + complex(sign, 0)*b.V[i][s]
		}
	}
	return out, nil
}

// Scaled multiplies every component by s, keeping the frame and the
// positions. The positions are copied, not shared.
func (fv FieldVector) Scaled(s complex128) FieldVector {
	out := FieldVector{Frame: fv.Frame}
	for i := range out.Loc {
		if fv.Loc[i] != nil {
			out.Loc[i] = append([]float64{}, fv.Loc[i]...)
		}
	}
	for i := range out.V {
		out.V[i] = make([]complex128, fv.Len())
		for k := range out.V[i] {
			out.V[i][k] = s * fv.V[i][k]
		}
	}
	return out
}
