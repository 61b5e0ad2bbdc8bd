package coordxform

import (
	"math"
)

// Mercator is the normal aspect conformal cylindrical projection. The
// spherical form is used when the ellipsoid is a sphere or when spherical
// semantics are forced, as for the Popular Visualisation Pseudo Mercator.
type Mercator struct {
	a         float64
	e         float64
	k0        float64
	spherical bool
}

const (
	mercatorMaxIter   = 15
	mercatorTolerance = 1e-10
)

// NewMercator builds Mercator_1SP, or Mercator_2SP when standard_parallel_1
// is present.
func NewMercator(params *Parameters) (*Projection, error) {
	class := "Mercator_1SP"
	if params.Has(ParamStandardParallel1) {
		class = "Mercator_2SP"
	}
	return NewProjection(class, params, newMercator)
}

func newMercator(base *ProjectionBase, params *Parameters) (Projector, error) {
	m := &Mercator{a: base.SemiMajor, e: base.E, k0: base.ScaleFactor, spherical: base.IsSpherical()}
	if sp, ok := params.Lookup(ParamStandardParallel1); ok {
		if math.Abs(sp) >= 90 {
			return nil, configErrorf("mercator: standard parallel %g out of range", sp)
		}
		phits := toRadians(math.Abs(sp))
		if m.spherical {
			m.k0 = math.Cos(phits)
		} else {
			m.k0 = msfn(math.Sin(phits), math.Cos(phits), base.Es)
		}
	}
	return m, nil
}

// NewPseudoMercator builds Popular_Visualisation_Pseudo_Mercator: the
// spherical formulas evaluated with the semi-major axis as radius,
// whatever the ellipsoid.
func NewPseudoMercator(params *Parameters) (*Projection, error) {
	return NewProjection("Popular_Visualisation_Pseudo_Mercator", params, func(base *ProjectionBase, _ *Parameters) (Projector, error) {
		return &Mercator{a: base.SemiMajor, k0: base.ScaleFactor, spherical: true}, nil
	})
}

func (m *Mercator) Project(lam, phi float64) (float64, float64, error) {
	if math.Abs(math.Abs(phi)-halfPi) <= epsilon10 {
		return 0, 0, domainErrorf("mercator: latitude %g projects to infinity", toDegrees(phi))
	}
	x := m.a * m.k0 * lam
	if m.spherical {
		return x, m.a * m.k0 * math.Log(math.Tan(quarterPi+0.5*phi)), nil
	}
	return x, -m.a * m.k0 * math.Log(tsfn(phi, math.Sin(phi), m.e)), nil
}

func (m *Mercator) Unproject(x, y float64) (float64, float64, error) {
	lam := x / (m.a * m.k0)
	if m.spherical {
		return lam, halfPi - 2*math.Atan(math.Exp(-y/(m.a*m.k0))), nil
	}
	phi, err := phi2z(m.e, math.Exp(-y/(m.a*m.k0)), mercatorMaxIter, mercatorTolerance)
	if err != nil {
		return 0, 0, err
	}
	return lam, phi, nil
}
