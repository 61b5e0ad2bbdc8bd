package coordxform

import (
	"math"

	"github.com/golang/geo/r3"
)

type orthoMode int

const (
	orthoNorthPole orthoMode = iota
	orthoSouthPole
	orthoEquatorial
	orthoOblique
)

// Orthographic is the ellipsoidal orthographic projection: a parallel view
// of the hemisphere facing the origin.
type Orthographic struct {
	mode    orthoMode
	a       float64
	es      float64
	sinPhi0 float64
	cosPhi0 float64
	nu0     float64
	normal0 r3.Vector // ellipsoid normal at the origin
}

const (
	orthoMaxIter   = 20
	orthoTolerance = 1e-12
)

// NewOrthographic builds Orthographic.
func NewOrthographic(params *Parameters) (*Projection, error) {
	return NewProjection("Orthographic", params, func(base *ProjectionBase, _ *Parameters) (Projector, error) {
		return newOrthographic(base), nil
	})
}

func newOrthographic(base *ProjectionBase) *Orthographic {
	o := &Orthographic{a: base.SemiMajor, es: base.Es}
	phi0 := base.LatitudeOfOrigin
	o.sinPhi0, o.cosPhi0 = math.Sincos(phi0)
	o.nu0 = o.nu(o.sinPhi0)
	o.normal0 = r3.Vector{X: o.cosPhi0, Y: 0, Z: o.sinPhi0}
	switch {
	case math.Abs(phi0-halfPi) < epsilon10:
		o.mode = orthoNorthPole
	case math.Abs(phi0+halfPi) < epsilon10:
		o.mode = orthoSouthPole
	case math.Abs(phi0) < epsilon10:
		o.mode = orthoEquatorial
	default:
		o.mode = orthoOblique
	}
	return o
}

func (o *Orthographic) nu(sinPhi float64) float64 {
	return o.a / math.Sqrt(1-o.es*sinPhi*sinPhi)
}

func (o *Orthographic) Project(lam, phi float64) (float64, float64, error) {
	sinPhi, cosPhi := math.Sincos(phi)
	sinLam, cosLam := math.Sincos(lam)
	normal := r3.Vector{X: cosPhi * cosLam, Y: cosPhi * sinLam, Z: sinPhi}
	if normal.Dot(o.normal0) < 0 {
		return 0, 0, domainErrorf("orthographic: point (%g, %g) is on the far side of the ellipsoid",
			toDegrees(lam), toDegrees(phi))
	}
	x, y := o.project(sinPhi, cosPhi, sinLam, cosLam)
	return x, y, nil
}

func (o *Orthographic) project(sinPhi, cosPhi, sinLam, cosLam float64) (float64, float64) {
	nu := o.nu(sinPhi)
	x := nu * cosPhi * sinLam
	y := nu*(sinPhi*o.cosPhi0-cosPhi*o.sinPhi0*cosLam) + o.es*(o.nu0*o.sinPhi0-nu*sinPhi)*o.cosPhi0
	return x, y
}

func (o *Orthographic) Unproject(x, y float64) (float64, float64, error) {
	rho := math.Hypot(x, y)
	if rho > o.a*(1+epsilon10) {
		return 0, 0, domainErrorf("orthographic: point (%g, %g) is outside the visible disk", x, y)
	}
	if rho == 0 {
		return 0, math.Asin(o.sinPhi0), nil
	}
	switch o.mode {
	case orthoNorthPole, orthoSouthPole:
		// rho = nu cos(phi), solved for sin(phi)
		s2 := (o.a*o.a - rho*rho) / (o.a*o.a - o.es*rho*rho)
		phi := math.Asin(math.Sqrt(math.Max(0, s2)))
		if o.mode == orthoSouthPole {
			return math.Atan2(x, y), -phi, nil
		}
		return math.Atan2(x, -y), phi, nil
	case orthoEquatorial:
		// y = nu sin(phi) (1 - es)
		yy := y / (1 - o.es)
		sinPhi := yy / math.Sqrt(o.a*o.a+o.es*yy*yy)
		if math.Abs(sinPhi) > 1 {
			return 0, 0, domainErrorf("orthographic: point (%g, %g) is outside the visible disk", x, y)
		}
		phi := math.Asin(sinPhi)
		r := o.nu(sinPhi) * math.Cos(phi)
		if r < epsilon10 {
			return 0, phi, nil
		}
		sinLam := x / r
		if math.Abs(sinLam) > 1+epsilon10 {
			return 0, 0, domainErrorf("orthographic: point (%g, %g) is outside the visible disk", x, y)
		}
		return math.Asin(math.Max(-1, math.Min(1, sinLam))), phi, nil
	}
	return o.unprojectOblique(x, y, rho)
}

// unprojectOblique solves the forward equations with Newton-Raphson,
// starting from the spherical solution.
func (o *Orthographic) unprojectOblique(x, y, rho float64) (float64, float64, error) {
	c := math.Asin(math.Min(1, rho/o.a))
	sinC, cosC := math.Sincos(c)
	phi := math.Asin(cosC*o.sinPhi0 + y*sinC*o.cosPhi0/rho)
	lam := math.Atan2(x*sinC, rho*o.cosPhi0*cosC-y*o.sinPhi0*sinC)
	if o.es == 0 {
		return lam, phi, nil
	}
	for i := 0; i < orthoMaxIter; i++ {
		sinPhi, cosPhi := math.Sincos(phi)
		sinLam, cosLam := math.Sincos(lam)
		w := 1 - o.es*sinPhi*sinPhi
		nu := o.a / math.Sqrt(w)
		rhoM := o.a * (1 - o.es) / (w * math.Sqrt(w))
		fx, fy := o.project(sinPhi, cosPhi, sinLam, cosLam)

		j11 := -rhoM * sinPhi * sinLam
		j12 := nu * cosPhi * cosLam
		j21 := rhoM * (cosPhi*o.cosPhi0 + sinPhi*o.sinPhi0*cosLam)
		j22 := nu * cosPhi * o.sinPhi0 * sinLam
		det := j11*j22 - j12*j21
		if det == 0 {
			break
		}
		rx, ry := x-fx, y-fy
		dphi := (rx*j22 - ry*j12) / det
		dlam := (j11*ry - j21*rx) / det
		phi += dphi
		lam += dlam
		if math.Abs(dphi) < orthoTolerance && math.Abs(dlam) < orthoTolerance {
			return lam, phi, nil
		}
	}
	return 0, 0, convergenceErrorf("orthographic: no convergence for (%g, %g)", x, y)
}
