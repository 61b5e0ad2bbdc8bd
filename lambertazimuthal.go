package coordxform

import (
	"math"
)

type azimuthalMode int

const (
	modeNorthPole azimuthalMode = iota
	modeSouthPole
	modeEquatorial
	modeOblique
)

func azimuthalModeOf(phi0 float64) azimuthalMode {
	t := math.Abs(phi0)
	switch {
	case math.Abs(t-halfPi) < epsilon10:
		if phi0 < 0 {
			return modeSouthPole
		}
		return modeNorthPole
	case t < epsilon10:
		return modeEquatorial
	}
	return modeOblique
}

// LambertAzimuthalEqualArea is the Lambert azimuthal equal-area projection.
// The aspect and the spherical or ellipsoidal formulas are chosen once at
// construction.
type LambertAzimuthalEqualArea struct {
	mode      azimuthalMode
	spherical bool
	a         float64
	e         float64
	oneEs     float64
	phi0      float64
	sinPhi0   float64
	cosPhi0   float64

	// ellipsoidal constants
	qp    float64
	rq    float64
	dd    float64
	xmf   float64
	ymf   float64
	sinB1 float64
	cosB1 float64
	apa   [3]float64
}

// NewLambertAzimuthalEqualArea builds Lambert_Azimuthal_Equal_Area.
func NewLambertAzimuthalEqualArea(params *Parameters) (*Projection, error) {
	return NewProjection("Lambert_Azimuthal_Equal_Area", params, func(base *ProjectionBase, _ *Parameters) (Projector, error) {
		return newLambertAzimuthalEqualArea(base), nil
	})
}

func newLambertAzimuthalEqualArea(base *ProjectionBase) *LambertAzimuthalEqualArea {
	l := &LambertAzimuthalEqualArea{
		mode:      azimuthalModeOf(base.LatitudeOfOrigin),
		spherical: base.IsSpherical(),
		a:         base.SemiMajor,
		e:         base.E,
		oneEs:     base.OneEs,
		phi0:      base.LatitudeOfOrigin,
	}
	l.sinPhi0, l.cosPhi0 = math.Sincos(l.phi0)
	if l.spherical {
		return l
	}
	l.qp = qsfn(1, l.e, l.oneEs)
	l.apa = authset(base.Es)
	switch l.mode {
	case modeNorthPole, modeSouthPole:
		l.dd = 1
	case modeEquatorial:
		l.rq = math.Sqrt(0.5 * l.qp)
		l.dd = 1 / l.rq
		l.xmf = 1
		l.ymf = 0.5 * l.qp
	case modeOblique:
		l.rq = math.Sqrt(0.5 * l.qp)
		l.sinB1 = qsfn(l.sinPhi0, l.e, l.oneEs) / l.qp
		l.cosB1 = math.Sqrt(1 - l.sinB1*l.sinB1)
		l.dd = l.cosPhi0 / (math.Sqrt(1-base.Es*l.sinPhi0*l.sinPhi0) * l.rq * l.cosB1)
		l.xmf = l.rq * l.dd
		l.ymf = l.rq / l.dd
	}
	return l
}

func (l *LambertAzimuthalEqualArea) Project(lam, phi float64) (float64, float64, error) {
	var x, y float64
	var err error
	if l.spherical {
		x, y, err = l.projectSphere(lam, phi)
	} else {
		x, y, err = l.projectEllipsoid(lam, phi)
	}
	return l.a * x, l.a * y, err
}

func (l *LambertAzimuthalEqualArea) projectEllipsoid(lam, phi float64) (float64, float64, error) {
	sinLam, cosLam := math.Sincos(lam)
	q := qsfn(math.Sin(phi), l.e, l.oneEs)
	var sinB, cosB, b float64
	if l.mode == modeOblique || l.mode == modeEquatorial {
		sinB = q / l.qp
		cosB = math.Sqrt(math.Max(0, 1-sinB*sinB))
	}
	switch l.mode {
	case modeOblique:
		b = 1 + l.sinB1*sinB + l.cosB1*cosB*cosLam
	case modeEquatorial:
		b = 1 + cosB*cosLam
	case modeNorthPole:
		b = halfPi + phi
		q = l.qp - q
	case modeSouthPole:
		b = phi - halfPi
		q = l.qp + q
	}
	if math.Abs(b) < epsilon10 {
		return 0, 0, domainErrorf("lambert azimuthal: antipode of the origin is not projectable")
	}
	switch l.mode {
	case modeOblique:
		b = math.Sqrt(2 / b)
		return l.xmf * b * cosB * sinLam, l.ymf * b * (l.cosB1*sinB - l.sinB1*cosB*cosLam), nil
	case modeEquatorial:
		b = math.Sqrt(2 / b)
		return l.xmf * b * cosB * sinLam, l.ymf * b * sinB, nil
	}
	if q < 0 {
		return 0, 0, nil
	}
	b = math.Sqrt(q)
	if l.mode == modeSouthPole {
		return b * sinLam, b * cosLam, nil
	}
	return b * sinLam, -b * cosLam, nil
}

func (l *LambertAzimuthalEqualArea) projectSphere(lam, phi float64) (float64, float64, error) {
	sinPhi, cosPhi := math.Sincos(phi)
	sinLam, cosLam := math.Sincos(lam)
	switch l.mode {
	case modeOblique, modeEquatorial:
		var y float64
		if l.mode == modeOblique {
			y = 1 + l.sinPhi0*sinPhi + l.cosPhi0*cosPhi*cosLam
		} else {
			y = 1 + cosPhi*cosLam
		}
		if y <= epsilon10 {
			return 0, 0, domainErrorf("lambert azimuthal: antipode of the origin is not projectable")
		}
		y = math.Sqrt(2 / y)
		x := y * cosPhi * sinLam
		if l.mode == modeEquatorial {
			return x, y * sinPhi, nil
		}
		return x, y * (l.cosPhi0*sinPhi - l.sinPhi0*cosPhi*cosLam), nil
	}
	if math.Abs(phi+l.phi0) < epsilon10 {
		return 0, 0, domainErrorf("lambert azimuthal: antipode of the origin is not projectable")
	}
	y := quarterPi - phi*0.5
	if l.mode == modeSouthPole {
		y = 2 * math.Cos(y)
	} else {
		y = 2 * math.Sin(y)
		cosLam = -cosLam
	}
	return y * sinLam, y * cosLam, nil
}

func (l *LambertAzimuthalEqualArea) Unproject(x, y float64) (float64, float64, error) {
	x /= l.a
	y /= l.a
	if l.spherical {
		return l.unprojectSphere(x, y)
	}
	var ab float64
	switch l.mode {
	case modeEquatorial, modeOblique:
		x /= l.dd
		y *= l.dd
		rho := math.Hypot(x, y)
		if rho < epsilon10 {
			return 0, l.phi0, nil
		}
		arg := 0.5 * rho / l.rq
		if arg > 1 {
			return 0, 0, domainErrorf("lambert azimuthal: point outside projection domain")
		}
		sCe := 2 * math.Asin(arg)
		sinCe, cosCe := math.Sincos(sCe)
		x *= sinCe
		if l.mode == modeOblique {
			ab = cosCe*l.sinB1 + y*sinCe*l.cosB1/rho
			y = rho*l.cosB1*cosCe - y*l.sinB1*sinCe
		} else {
			ab = y * sinCe / rho
			y = rho * cosCe
		}
	case modeNorthPole, modeSouthPole:
		if l.mode == modeNorthPole {
			y = -y
		}
		q := x*x + y*y
		if q == 0 {
			return 0, l.phi0, nil
		}
		ab = 1 - q/l.qp
		if l.mode == modeSouthPole {
			ab = -ab
		}
	}
	if math.Abs(ab) > 1 {
		return 0, 0, domainErrorf("lambert azimuthal: point outside projection domain")
	}
	return math.Atan2(x, y), authlat(math.Asin(ab), &l.apa), nil
}

func (l *LambertAzimuthalEqualArea) unprojectSphere(x, y float64) (float64, float64, error) {
	rh := math.Hypot(x, y)
	phi := rh * 0.5
	if phi > 1 {
		return 0, 0, domainErrorf("lambert azimuthal: point outside projection domain")
	}
	phi = 2 * math.Asin(phi)
	var sinZ, cosZ float64
	if l.mode == modeOblique || l.mode == modeEquatorial {
		sinZ, cosZ = math.Sincos(phi)
	}
	switch l.mode {
	case modeEquatorial:
		if math.Abs(rh) <= epsilon10 {
			phi = 0
		} else {
			phi = math.Asin(y * sinZ / rh)
		}
		x *= sinZ
		y = cosZ * rh
	case modeOblique:
		if math.Abs(rh) <= epsilon10 {
			phi = l.phi0
		} else {
			phi = math.Asin(cosZ*l.sinPhi0 + y*sinZ*l.cosPhi0/rh)
		}
		x *= sinZ * l.cosPhi0
		y = (cosZ - math.Sin(phi)*l.sinPhi0) * rh
	case modeNorthPole:
		y = -y
		phi = halfPi - phi
	case modeSouthPole:
		phi -= halfPi
	}
	if y == 0 && (l.mode == modeEquatorial || l.mode == modeOblique) {
		return 0, phi, nil
	}
	return math.Atan2(x, y), phi, nil
}
