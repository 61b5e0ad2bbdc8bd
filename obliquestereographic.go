package coordxform

import (
	"math"
)

// ObliqueStereographic is the double stereographic projection: the
// ellipsoid is mapped conformally onto a sphere which is then projected
// stereographically.
type ObliqueStereographic struct {
	e      float64
	c      float64
	k      float64
	ratexp float64
	sinC0  float64
	cosC0  float64
	twoR   float64 // 2 * conformal sphere radius * k0 * a
}

const (
	stereaMaxIter   = 15
	stereaTolerance = 1e-14
)

// NewObliqueStereographic builds Oblique_Stereographic.
func NewObliqueStereographic(params *Parameters) (*Projection, error) {
	return NewProjection("Oblique_Stereographic", params, func(base *ProjectionBase, _ *Parameters) (Projector, error) {
		return newObliqueStereographic(base), nil
	})
}

func newObliqueStereographic(base *ProjectionBase) *ObliqueStereographic {
	es := base.Es
	sinPhi0 := math.Sin(base.LatitudeOfOrigin)
	cosPhi0 := math.Cos(base.LatitudeOfOrigin)
	cos2 := cosPhi0 * cosPhi0
	s := &ObliqueStereographic{e: base.E}
	rc := math.Sqrt(1-es) / (1 - es*sinPhi0*sinPhi0)
	s.c = math.Sqrt(1 + es*cos2*cos2/(1-es))
	chi0 := math.Asin(sinPhi0 / s.c)
	s.ratexp = 0.5 * s.c * base.E
	s.k = math.Tan(0.5*chi0+quarterPi) /
		(math.Pow(math.Tan(0.5*base.LatitudeOfOrigin+quarterPi), s.c) * srat(base.E*sinPhi0, s.ratexp))
	s.sinC0, s.cosC0 = math.Sincos(chi0)
	s.twoR = 2 * rc * base.ScaleFactor * base.SemiMajor
	return s
}

func (s *ObliqueStereographic) Project(lam, phi float64) (float64, float64, error) {
	chi := 2*math.Atan(s.k*math.Pow(math.Tan(0.5*phi+quarterPi), s.c)*srat(s.e*math.Sin(phi), s.ratexp)) - halfPi
	lam *= s.c
	sinC, cosC := math.Sincos(chi)
	cosL := math.Cos(lam)
	denom := 1 + s.sinC0*sinC + s.cosC0*cosC*cosL
	if denom < epsilon10 {
		return 0, 0, domainErrorf("oblique stereographic: antipode of the origin is not projectable")
	}
	k := s.twoR / denom
	return k * cosC * math.Sin(lam), k * (s.cosC0*sinC - s.sinC0*cosC*cosL), nil
}

func (s *ObliqueStereographic) Unproject(x, y float64) (float64, float64, error) {
	rho := math.Hypot(x, y)
	var phi, lam float64
	if rho == 0 {
		phi = math.Asin(s.sinC0)
	} else {
		c := 2 * math.Atan2(rho, s.twoR)
		sinC, cosC := math.Sincos(c)
		phi = math.Asin(cosC*s.sinC0 + y*sinC*s.cosC0/rho)
		lam = math.Atan2(x*sinC, rho*s.cosC0*cosC-y*s.sinC0*sinC)
	}
	lam /= s.c
	num := math.Pow(math.Tan(0.5*phi+quarterPi)/s.k, 1/s.c)
	for i := 0; i < stereaMaxIter; i++ {
		next := 2*math.Atan(num*srat(s.e*math.Sin(phi), -0.5*s.e)) - halfPi
		if math.Abs(next-phi) < stereaTolerance {
			return lam, next, nil
		}
		phi = next
	}
	return 0, 0, convergenceErrorf("oblique stereographic: latitude iteration did not converge")
}
