package coordxform

import (
	"math"

	"github.com/golang/geo/s1"
)

const (
	halfPi    = math.Pi / 2
	quarterPi = math.Pi / 4
	twoPi     = 2 * math.Pi
	epsilon10 = 1.0e-10
)

func toRadians(degrees float64) float64 {
	return (s1.Angle(degrees) * s1.Degree).Radians()
}

func toDegrees(radians float64) float64 {
	return s1.Angle(radians).Degrees()
}

// adjustLon wraps a longitude in radians into (-Pi, Pi].
func adjustLon(lam float64) float64 {
	return s1.Angle(lam).Normalized().Radians()
}

func aTanH(x float64) float64 {
	return (0.5 * math.Log((1+x)/(1-x)))
}

// msfn is the parallel radius at a latitude divided by the semi-major axis.
func msfn(sinPhi, cosPhi, es float64) float64 {
	return cosPhi / math.Sqrt(1-es*sinPhi*sinPhi)
}

// tsfn is the isometric-latitude function t used by the conformal
// projections: tan(Pi/4 - phi/2) / ((1 - e sin phi)/(1 + e sin phi))^(e/2).
func tsfn(phi, sinPhi, e float64) float64 {
	sinPhi *= e
	return math.Tan(0.5*(halfPi-phi)) / math.Pow((1-sinPhi)/(1+sinPhi), 0.5*e)
}

// phi2z inverts tsfn.
func phi2z(e, ts float64, maxIter int, tolerance float64) (float64, error) {
	eccnth := 0.5 * e
	phi := halfPi - 2*math.Atan(ts)
	for i := 0; i < maxIter; i++ {
		con := e * math.Sin(phi)
		dphi := halfPi - 2*math.Atan(ts*math.Pow((1-con)/(1+con), eccnth)) - phi
		phi += dphi
		if math.Abs(dphi) <= tolerance {
			return phi, nil
		}
	}
	return math.NaN(), convergenceErrorf("phi2z: no convergence after %d iterations (ts=%g)", maxIter, ts)
}

// qsfn is the authalic q function.
func qsfn(sinPhi, e, oneEs float64) float64 {
	if e < 1.0e-7 {
		return 2 * sinPhi
	}
	con := e * sinPhi
	return oneEs * (sinPhi/(1-con*con) - (0.5/e)*math.Log((1-con)/(1+con)))
}

func srat(esinp, exp float64) float64 {
	return math.Pow((1-esinp)/(1+esinp), exp)
}

// Meridian arc series coefficients.
const (
	c00 = 1.0
	c02 = 0.25
	c04 = 0.046875
	c06 = 0.01953125
	c08 = 0.01068115234375
	c22 = 0.75
	c44 = 0.46875
	c46 = 0.01302083333333333333
	c48 = 0.00712890625
	c66 = 0.36458333333333333333
	c68 = 0.00569661458333333333
	c88 = 0.3076171875
)

// enfn computes the en0..en4 coefficients of the meridian distance series
// for an ellipsoid with eccentricity squared es.
func enfn(es float64) [5]float64 {
	var en [5]float64
	en[0] = c00 - es*(c02+es*(c04+es*(c06+es*c08)))
	en[1] = es * (c22 - es*(c04+es*(c06+es*c08)))
	t := es * es
	en[2] = t * (c44 - es*(c46+es*c48))
	t *= es
	en[3] = t * (c66 - es*c68)
	en[4] = t * es * c88
	return en
}

// mlfn returns the meridian distance from the equator to phi on an
// ellipsoid with a unit semi-major axis.
func mlfn(phi, sinPhi, cosPhi float64, en *[5]float64) float64 {
	cosPhi *= sinPhi
	sinPhi *= sinPhi
	return en[0]*phi - cosPhi*(en[1]+sinPhi*(en[2]+sinPhi*(en[3]+sinPhi*en[4])))
}

const (
	invMlfnMaxIter   = 10
	invMlfnTolerance = 1e-11
)

// invMlfn returns the latitude whose meridian distance (unit semi-major
// axis) is arg.
func invMlfn(arg, es float64, en *[5]float64) (float64, error) {
	k := 1 / (1 - es)
	phi := arg
	for i := 0; i < invMlfnMaxIter; i++ {
		s := math.Sin(phi)
		t := 1 - es*s*s
		t = (mlfn(phi, s, math.Cos(phi), en) - arg) * (t * math.Sqrt(t)) * k
		phi -= t
		if math.Abs(t) < invMlfnTolerance {
			return phi, nil
		}
	}
	return math.NaN(), convergenceErrorf("inverse meridian distance: no convergence for %g", arg)
}

// Authalic latitude series coefficients.
const (
	p00 = 0.33333333333333333333
	p01 = 0.17222222222222222222
	p02 = 0.10257936507936507936
	p10 = 0.06388888888888888888
	p11 = 0.06640211640211640211
	p20 = 0.01641501294219154443
)

func authset(es float64) [3]float64 {
	var apa [3]float64
	apa[0] = es * p00
	t := es * es
	apa[0] += t * p01
	apa[1] = t * p10
	t *= es
	apa[0] += t * p02
	apa[1] += t * p11
	apa[2] = t * p20
	return apa
}

// authlat converts an authalic latitude back to a geodetic latitude.
func authlat(beta float64, apa *[3]float64) float64 {
	t := beta + beta
	return beta + apa[0]*math.Sin(t) + apa[1]*math.Sin(t+t) + apa[2]*math.Sin(t+t+t)
}
