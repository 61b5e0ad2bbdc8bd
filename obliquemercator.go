package coordxform

import (
	"math"
)

// HotineVariant selects where the Hotine oblique Mercator grid origin lies.
type HotineVariant int

// Hotine variants, keyed by their EPSG method codes.
const (
	// HotineNaturalOrigin places the origin where the central line meets
	// the aposphere equator (EPSG 9812).
	HotineNaturalOrigin HotineVariant = 9812
	// HotineCenterOrigin places the origin at the projection centre
	// (EPSG 9815).
	HotineCenterOrigin HotineVariant = 9815
)

// ObliqueMercator is the Hotine rectified skew orthomorphic projection.
type ObliqueMercator struct {
	variant HotineVariant

	e            float64
	a            float64 // A
	b            float64 // B
	h            float64 // H
	dlam0        float64 // longitude of origin relative to the centre
	sinG0, cosG0 float64 // aposphere azimuth of the central line
	sinGc, cosGc float64 // rectified grid angle
	uc           float64 // offset of the centre along the central line
}

const (
	hotineMaxIter   = 15
	hotineTolerance = 1e-10
)

// NewHotineObliqueMercator builds Hotine_Oblique_Mercator (variant A).
func NewHotineObliqueMercator(params *Parameters) (*Projection, error) {
	return newObliqueMercatorProjection("Hotine_Oblique_Mercator", HotineNaturalOrigin, params)
}

// NewObliqueMercator builds Oblique_Mercator (variant B), also known as
// Hotine_Oblique_Mercator_Azimuth_Center.
func NewObliqueMercator(params *Parameters) (*Projection, error) {
	return newObliqueMercatorProjection("Oblique_Mercator", HotineCenterOrigin, params)
}

func newObliqueMercatorProjection(class string, variant HotineVariant, params *Parameters) (*Projection, error) {
	return NewProjection(class, params, func(base *ProjectionBase, params *Parameters) (Projector, error) {
		return newObliqueMercator(base, params, variant)
	})
}

func newObliqueMercator(base *ProjectionBase, params *Parameters, variant HotineVariant) (*ObliqueMercator, error) {
	azimuth, err := params.Required("azimuth")
	if err != nil {
		return nil, err
	}
	gammaC := toRadians(params.Optional(azimuth, "rectified_grid_angle"))
	alphaC := toRadians(azimuth)
	phiC := base.LatitudeOfOrigin
	if math.Abs(phiC) > halfPi-epsilon10 {
		return nil, configErrorf("oblique mercator: latitude of centre %g out of range", toDegrees(phiC))
	}
	alongMeridian := math.Abs(math.Cos(alphaC)) < epsilon10
	if alongMeridian && variant == HotineCenterOrigin && math.Abs(phiC) < epsilon10 {
		return nil, configErrorf("oblique mercator: central line along the equator is undefined")
	}

	es := base.Es
	o := &ObliqueMercator{variant: variant, e: base.E}
	sinC, cosC := math.Sincos(phiC)
	com := math.Sqrt(1 - es)
	o.b = math.Sqrt(1 + es*math.Pow(cosC, 4)/(1-es))
	o.a = base.SemiMajor * o.b * base.ScaleFactor * com / (1 - es*sinC*sinC)
	t0 := tsfn(phiC, sinC, base.E)
	d := o.b * com / (cosC * math.Sqrt(1-es*sinC*sinC))
	if d < 1 {
		d = 1
	}
	f := d + math.Sqrt(d*d-1)*math.Copysign(1, phiC)
	o.h = f * math.Pow(t0, o.b)
	g := (f - 1/f) / 2
	gamma0 := math.Asin(math.Sin(alphaC) / d)
	o.sinG0, o.cosG0 = math.Sincos(gamma0)
	o.sinGc, o.cosGc = math.Sincos(gammaC)
	arg := g * math.Tan(gamma0)
	if math.Abs(arg) > 1 && math.Abs(arg) < 1+epsilon10 {
		arg = math.Copysign(1, arg)
	}
	if math.Abs(arg) > 1 {
		return nil, configErrorf("oblique mercator: azimuth %g incompatible with latitude of centre", azimuth)
	}
	o.dlam0 = math.Asin(arg) / o.b
	if variant == HotineCenterOrigin {
		if alongMeridian {
			// Central line at right angles to the meridian through the centre.
			o.uc = o.a * o.dlam0
		} else {
			o.uc = math.Abs((o.a / o.b) * math.Atan(math.Sqrt(d*d-1)/math.Cos(alphaC)))
			o.uc = math.Copysign(o.uc, phiC)
		}
	}
	return o, nil
}

// Variant returns the origin convention.
func (o *ObliqueMercator) Variant() HotineVariant { return o.variant }

func (o *ObliqueMercator) Project(lam, phi float64) (float64, float64, error) {
	lam += o.dlam0
	var u, v float64
	if math.Abs(math.Abs(phi)-halfPi) > epsilon10 {
		q := o.h / math.Pow(tsfn(phi, math.Sin(phi), o.e), o.b)
		s := (q - 1/q) / 2
		t := (q + 1/q) / 2
		vv := math.Sin(o.b * lam)
		uu := (-vv*o.cosG0 + s*o.sinG0) / t
		if math.Abs(math.Abs(uu)-1) < epsilon10 {
			return 0, 0, domainErrorf("oblique mercator: point (%g, %g) projects to infinity", toDegrees(lam), toDegrees(phi))
		}
		v = o.a * math.Log((1-uu)/(1+uu)) / (2 * o.b)
		cosBl := math.Cos(o.b * lam)
		if math.Abs(cosBl) < epsilon10 {
			u = o.a * lam
		} else {
			u = o.a * math.Atan2(s*o.cosG0+vv*o.sinG0, cosBl) / o.b
		}
	} else {
		uu := math.Copysign(o.sinG0, phi)
		v = o.a * math.Log((1-uu)/(1+uu)) / (2 * o.b)
		u = o.a * phi / o.b
	}
	u -= o.uc
	return v*o.cosGc + u*o.sinGc, u*o.cosGc - v*o.sinGc, nil
}

func (o *ObliqueMercator) Unproject(x, y float64) (float64, float64, error) {
	v := x*o.cosGc - y*o.sinGc
	u := y*o.cosGc + x*o.sinGc + o.uc
	q := math.Exp(-o.b * v / o.a)
	s := (q - 1/q) / 2
	t := (q + 1/q) / 2
	vv := math.Sin(o.b * u / o.a)
	uu := (vv*o.cosG0 + s*o.sinG0) / t
	if math.Abs(math.Abs(uu)-1) < epsilon10 {
		return 0, math.Copysign(halfPi, uu), nil
	}
	ts := math.Pow(o.h/math.Sqrt((1+uu)/(1-uu)), 1/o.b)
	phi, err := phi2z(o.e, ts, hotineMaxIter, hotineTolerance)
	if err != nil {
		return 0, 0, err
	}
	lam := -math.Atan2(s*o.cosG0-vv*o.sinG0, math.Cos(o.b*u/o.a)) / o.b
	return lam - o.dlam0, phi, nil
}
