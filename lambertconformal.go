package coordxform

import (
	"math"
)

// LambertConformalConic is the Lambert conformal conic projection with one
// or two standard parallels.
type LambertConformalConic struct {
	a    float64
	e    float64
	n    float64
	f    float64 // a * k0 * F
	rho0 float64
}

const (
	lccMaxIter   = 15
	lccTolerance = 1e-10
)

// NewLambertConformalConic2SP builds Lambert_Conformal_Conic_2SP.
func NewLambertConformalConic2SP(params *Parameters) (*Projection, error) {
	return NewProjection("Lambert_Conformal_Conic_2SP", params, func(base *ProjectionBase, params *Parameters) (Projector, error) {
		sp1, err := params.Required(ParamStandardParallel1)
		if err != nil {
			return nil, err
		}
		sp2, err := params.Required(ParamStandardParallel2)
		if err != nil {
			return nil, err
		}
		return newLambertConformalConic(base, toRadians(sp1), toRadians(sp2))
	})
}

// NewLambertConformalConic1SP builds Lambert_Conformal_Conic_1SP, where the
// latitude of origin is the single standard parallel.
func NewLambertConformalConic1SP(params *Parameters) (*Projection, error) {
	return NewProjection("Lambert_Conformal_Conic_1SP", params, func(base *ProjectionBase, _ *Parameters) (Projector, error) {
		return newLambertConformalConic(base, base.LatitudeOfOrigin, base.LatitudeOfOrigin)
	})
}

func newLambertConformalConic(base *ProjectionBase, phi1, phi2 float64) (*LambertConformalConic, error) {
	if math.Abs(phi1+phi2) < epsilon10 {
		return nil, configErrorf("lambert conformal conic: standard parallels %g and %g are opposite",
			toDegrees(phi1), toDegrees(phi2))
	}
	if math.Abs(math.Abs(phi1)-halfPi) < epsilon10 || math.Abs(math.Abs(phi2)-halfPi) < epsilon10 {
		return nil, configErrorf("lambert conformal conic: standard parallel at a pole")
	}
	l := &LambertConformalConic{a: base.SemiMajor, e: base.E}
	sin1, cos1 := math.Sincos(phi1)
	m1 := msfn(sin1, cos1, base.Es)
	t1 := tsfn(phi1, sin1, base.E)
	if math.Abs(phi1-phi2) >= epsilon10 {
		sin2, cos2 := math.Sincos(phi2)
		m2 := msfn(sin2, cos2, base.Es)
		t2 := tsfn(phi2, sin2, base.E)
		l.n = math.Log(m1/m2) / math.Log(t1/t2)
	} else {
		l.n = sin1
	}
	l.f = base.SemiMajor * base.ScaleFactor * m1 / (l.n * math.Pow(t1, l.n))
	if math.Abs(math.Abs(base.LatitudeOfOrigin)-halfPi) < epsilon10 {
		l.rho0 = 0
	} else {
		l.rho0 = l.f * math.Pow(tsfn(base.LatitudeOfOrigin, math.Sin(base.LatitudeOfOrigin), base.E), l.n)
	}
	return l, nil
}

func (l *LambertConformalConic) Project(lam, phi float64) (float64, float64, error) {
	var rho float64
	if math.Abs(math.Abs(phi)-halfPi) < epsilon10 {
		if phi*l.n <= 0 {
			return 0, 0, domainErrorf("lambert conformal conic: pole %g is not projectable", toDegrees(phi))
		}
	} else {
		rho = l.f * math.Pow(tsfn(phi, math.Sin(phi), l.e), l.n)
	}
	theta := l.n * lam
	return rho * math.Sin(theta), l.rho0 - rho*math.Cos(theta), nil
}

func (l *LambertConformalConic) Unproject(x, y float64) (float64, float64, error) {
	y = l.rho0 - y
	rho := math.Hypot(x, y)
	if rho == 0 {
		return 0, math.Copysign(halfPi, l.n), nil
	}
	if l.n < 0 {
		rho, x, y = -rho, -x, -y
	}
	phi, err := phi2z(l.e, math.Pow(rho/l.f, 1/l.n), lccMaxIter, lccTolerance)
	if err != nil {
		return 0, 0, err
	}
	return math.Atan2(x, y) / l.n, phi, nil
}
