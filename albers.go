package coordxform

import (
	"math"
)

// AlbersEqualArea is the Albers equal-area conic projection.
type AlbersEqualArea struct {
	a     float64
	e     float64
	oneEs float64
	n     float64
	c     float64
	rho0  float64
}

const (
	albersMaxIter   = 25
	albersTolerance = 1e-6
)

// NewAlbersEqualArea builds Albers_Conic_Equal_Area from two standard
// parallels.
func NewAlbersEqualArea(params *Parameters) (*Projection, error) {
	return NewProjection("Albers_Conic_Equal_Area", params, newAlbersEqualArea)
}

func newAlbersEqualArea(base *ProjectionBase, params *Parameters) (Projector, error) {
	sp1, err := params.Required(ParamStandardParallel1)
	if err != nil {
		return nil, err
	}
	sp2, err := params.Required(ParamStandardParallel2)
	if err != nil {
		return nil, err
	}
	phi1, phi2 := toRadians(sp1), toRadians(sp2)
	if math.Abs(phi1+phi2) < epsilon10 {
		return nil, configErrorf("albers: standard parallels %g and %g are opposite", sp1, sp2)
	}
	p := &AlbersEqualArea{a: base.SemiMajor, e: base.E, oneEs: base.OneEs}

	sin1, cos1 := math.Sincos(phi1)
	m1 := msfn(sin1, cos1, base.Es)
	q1 := qsfn(sin1, base.E, base.OneEs)
	if math.Abs(phi1-phi2) >= epsilon10 {
		sin2, cos2 := math.Sincos(phi2)
		m2 := msfn(sin2, cos2, base.Es)
		q2 := qsfn(sin2, base.E, base.OneEs)
		p.n = (m1*m1 - m2*m2) / (q2 - q1)
	} else {
		p.n = sin1
	}
	p.c = m1*m1 + p.n*q1
	q0 := qsfn(math.Sin(base.LatitudeOfOrigin), base.E, base.OneEs)
	p.rho0 = p.a * math.Sqrt(p.c-p.n*q0) / p.n
	return p, nil
}

func (p *AlbersEqualArea) Project(lam, phi float64) (float64, float64, error) {
	rho := p.c - p.n*qsfn(math.Sin(phi), p.e, p.oneEs)
	if rho < 0 {
		return 0, 0, domainErrorf("albers: latitude %g outside projection domain", toDegrees(phi))
	}
	rho = p.a * math.Sqrt(rho) / p.n
	theta := p.n * lam
	return rho * math.Sin(theta), p.rho0 - rho*math.Cos(theta), nil
}

func (p *AlbersEqualArea) Unproject(x, y float64) (float64, float64, error) {
	y = p.rho0 - y
	rho := math.Hypot(x, y)
	con := 1.0
	if p.n < 0 {
		rho, con = -rho, -1
	}
	var theta float64
	if rho != 0 {
		theta = math.Atan2(con*x, con*y)
	}
	rn := rho * p.n / p.a
	q := (p.c - rn*rn) / p.n
	phi, err := p.phi1z(q)
	if err != nil {
		return 0, 0, err
	}
	return theta / p.n, phi, nil
}

// phi1z recovers the latitude from the authalic q value.
func (p *AlbersEqualArea) phi1z(q float64) (float64, error) {
	if p.e < 1e-7 {
		if math.Abs(q) > 2 {
			return 0, domainErrorf("albers: q %g outside projection domain", q)
		}
		return math.Asin(0.5 * q), nil
	}
	phi := math.Asin(math.Max(-1, math.Min(1, 0.5*q)))
	for i := 0; i < albersMaxIter; i++ {
		sinPhi, cosPhi := math.Sincos(phi)
		con := p.e * sinPhi
		com := 1 - con*con
		dphi := 0.5 * com * com / cosPhi * (q/p.oneEs - sinPhi/com + 0.5/p.e*math.Log((1-con)/(1+con)))
		phi += dphi
		if math.Abs(dphi) <= albersTolerance {
			return phi, nil
		}
	}
	return 0, convergenceErrorf("albers: latitude iteration did not converge for q=%g", q)
}
