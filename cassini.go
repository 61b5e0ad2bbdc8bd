package coordxform

import (
	"math"
)

const (
	cassC1 = 0.16666666666666666666
	cassC2 = 0.008333333333333333333
	cassC3 = 0.041666666666666666666
	cassC4 = 0.33333333333333333333
	cassC5 = 0.066666666666666666666
)

// CassiniSoldner is the transverse aspect of the equidistant cylindrical
// projection.
type CassiniSoldner struct {
	base *ProjectionBase
	m0   float64
}

// NewCassiniSoldner builds Cassini_Soldner.
func NewCassiniSoldner(params *Parameters) (*Projection, error) {
	return NewProjection("Cassini_Soldner", params, func(base *ProjectionBase, _ *Parameters) (Projector, error) {
		return &CassiniSoldner{base: base, m0: base.Mlfn(base.LatitudeOfOrigin)}, nil
	})
}

func (c *CassiniSoldner) Project(lam, phi float64) (float64, float64, error) {
	a := c.base.SemiMajor
	if c.base.IsSpherical() {
		x := math.Asin(math.Cos(phi) * math.Sin(lam))
		y := math.Atan2(math.Tan(phi), math.Cos(lam)) - c.base.LatitudeOfOrigin
		return a * x, a * y, nil
	}
	es := c.base.Es
	sinPhi, cosPhi := math.Sincos(phi)
	y := mlfn(phi, sinPhi, cosPhi, &c.base.en)
	n := 1 / math.Sqrt(1-es*sinPhi*sinPhi)
	tn := math.Tan(phi)
	t := tn * tn
	a1 := lam * cosPhi
	cc := es * cosPhi * cosPhi / (1 - es)
	a2 := a1 * a1
	x := n * a1 * (1 - a2*t*(cassC1-(8-t+8*cc)*a2*cassC2))
	y -= c.m0 - n*tn*a2*(0.5+(5-t+6*cc)*a2*cassC3)
	return a * x, a * y, nil
}

func (c *CassiniSoldner) Unproject(x, y float64) (float64, float64, error) {
	a := c.base.SemiMajor
	x /= a
	y /= a
	if c.base.IsSpherical() {
		dd := y + c.base.LatitudeOfOrigin
		phi := math.Asin(math.Sin(dd) * math.Cos(x))
		lam := math.Atan2(math.Tan(x), math.Cos(dd))
		return lam, phi, nil
	}
	es := c.base.Es
	phi1, err := c.base.InvMlfn(c.m0 + y)
	if err != nil {
		return 0, 0, err
	}
	if math.Abs(math.Abs(phi1)-halfPi) < epsilon10 {
		return 0, phi1, nil
	}
	tn := math.Tan(phi1)
	t := tn * tn
	n := math.Sin(phi1)
	r := 1 / (1 - es*n*n)
	n = math.Sqrt(r)
	r *= (1 - es) * n
	dd := x / n
	d2 := dd * dd
	phi := phi1 - (n*tn/r)*d2*(0.5-(1+3*t)*d2*cassC3)
	lam := dd * (1 + t*d2*(-cassC4+(1+3*t)*d2*cassC5)) / math.Cos(phi1)
	return lam, phi, nil
}
