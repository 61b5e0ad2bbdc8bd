package coordxform

import (
	"math"
)

// Krovak is the oblique conformal conic projection used for the Czech and
// Slovak S-JTSK grid. Output axes point south and west as in the national
// grid, negated so the values are the usual negative easting and northing.
type Krovak struct {
	e      float64
	alphaC float64 // azimuth of the cone axis
	b      float64
	t0     float64
	n      float64
	r0     float64
	tanP   float64 // tan(Pi/4 + phiP/2)
}

const (
	krovakMaxIter   = 15
	krovakTolerance = 1e-11
)

// NewKrovak builds the Krovak projection.
func NewKrovak(params *Parameters) (*Projection, error) {
	return NewProjection("Krovak", params, newKrovak)
}

func newKrovak(base *ProjectionBase, params *Parameters) (Projector, error) {
	if _, err := params.Required(ParamLatitudeOfOrigin, latitudeOfOriginAlternates...); err != nil {
		return nil, err
	}
	if _, err := params.Required(ParamCentralMeridian, centralMeridianAlternates...); err != nil {
		return nil, err
	}
	azimuth, err := params.Required("azimuth", "co_latitude_of_cone_axis")
	if err != nil {
		return nil, err
	}
	pseudo, err := params.Required("pseudo_standard_parallel_1", "latitude_of_pseudo_standard_parallel")
	if err != nil {
		return nil, err
	}
	phiC := base.LatitudeOfOrigin
	phiP := toRadians(pseudo)
	if math.Abs(phiP) < epsilon10 || math.Abs(math.Abs(phiP)-halfPi) < epsilon10 {
		return nil, configErrorf("krovak: pseudo standard parallel %g out of range", pseudo)
	}
	sinC, cosC := math.Sincos(phiC)
	es := base.Es
	k := &Krovak{e: base.E, alphaC: toRadians(azimuth)}

	a := base.SemiMajor * math.Sqrt(1-es) / (1 - es*sinC*sinC)
	k.b = math.Sqrt(1 + es*math.Pow(cosC, 4)/(1-es))
	gamma0 := math.Asin(sinC / k.b)
	k.t0 = math.Tan(quarterPi+gamma0/2) *
		math.Pow((1+k.e*sinC)/(1-k.e*sinC), k.e*k.b/2) /
		math.Pow(math.Tan(quarterPi+phiC/2), k.b)
	k.n = math.Sin(phiP)
	k.r0 = base.ScaleFactor * a / math.Tan(phiP)
	k.tanP = math.Tan(quarterPi + phiP/2)
	return k, nil
}

func (k *Krovak) Project(lam, phi float64) (float64, float64, error) {
	esin := k.e * math.Sin(phi)
	u := 2 * (math.Atan(k.t0*math.Pow(math.Tan(phi/2+quarterPi), k.b)/
		math.Pow((1+esin)/(1-esin), k.e*k.b/2)) - quarterPi)
	v := -k.b * lam
	t := math.Asin(math.Cos(k.alphaC)*math.Sin(u) + math.Sin(k.alphaC)*math.Cos(u)*math.Cos(v))
	cosT := math.Cos(t)
	if cosT < epsilon10 {
		return 0, 0, domainErrorf("krovak: point on the cone axis")
	}
	d := math.Asin(math.Cos(u) * math.Sin(v) / cosT)
	theta := k.n * d
	r := k.r0 * math.Pow(k.tanP/math.Tan(t/2+quarterPi), k.n)
	xp := r * math.Cos(theta)
	yp := r * math.Sin(theta)
	return -yp, -xp, nil
}

func (k *Krovak) Unproject(x, y float64) (float64, float64, error) {
	xp, yp := -y, -x
	r := math.Hypot(xp, yp)
	if r == 0 {
		return 0, 0, domainErrorf("krovak: point at the cone apex")
	}
	theta := math.Atan2(yp, xp)
	d := theta / k.n
	t := 2 * (math.Atan(math.Pow(k.r0/r, 1/k.n)*k.tanP) - quarterPi)
	u := math.Asin(math.Cos(k.alphaC)*math.Sin(t) - math.Sin(k.alphaC)*math.Cos(t)*math.Cos(d))
	v := math.Asin(math.Cos(t) * math.Sin(d) / math.Cos(u))
	lam := -v / k.b

	invB := 1 / k.b
	scale := math.Pow(k.t0, -invB) * math.Pow(math.Tan(u/2+quarterPi), invB)
	phi := u
	for i := 0; i < krovakMaxIter; i++ {
		esin := k.e * math.Sin(phi)
		next := 2 * (math.Atan(scale*math.Pow((1+esin)/(1-esin), k.e/2)) - quarterPi)
		if math.Abs(next-phi) < krovakTolerance {
			return lam, next, nil
		}
		phi = next
	}
	return 0, 0, convergenceErrorf("krovak: latitude iteration did not converge")
}
