package coordxform

import (
	"math"
)

const nTerms = 8

// TransverseMercator implements the Krüger series form of the Transverse
// Mercator projection.
type TransverseMercator struct {
	base *ProjectionBase

	tranMercK0R4    float64 // SCALE_FACTOR*R4
	tranMercK0R4inv float64 // 1/(SCALE_FACTOR*R4)

	tranMercACoeff [nTerms]float64
	tranMercBCoeff [nTerms]float64

	// northing of the latitude of origin on the central meridian
	originNorthing float64

	// Maximum variance for easting and northing values
	tranMercDeltaEasting  float64
	tranMercDeltaNorthing float64
}

// NewTransverseMercator builds the Transverse_Mercator projection.
func NewTransverseMercator(params *Parameters) (*Projection, error) {
	return NewProjection("Transverse_Mercator", params, func(base *ProjectionBase, _ *Parameters) (Projector, error) {
		return newTransverseMercator(base)
	})
}

func newTransverseMercator(base *ProjectionBase) (*TransverseMercator, error) {
	const minScaleFactor = 0.1
	const maxScaleFactor = 10.0
	if (base.ScaleFactor < minScaleFactor) || (base.ScaleFactor > maxScaleFactor) {
		return nil, configErrorf("transverse mercator: scale factor %g out of range", base.ScaleFactor)
	}
	t := &TransverseMercator{
		base:                  base,
		tranMercDeltaEasting:  20000000.0,
		tranMercDeltaNorthing: 10000000.0,
	}

	n1 := (base.SemiMajor - base.SemiMinor) / (base.SemiMajor + base.SemiMinor)
	R4oa := generateCoefficients(n1, &t.tranMercACoeff, &t.tranMercBCoeff)

	t.tranMercK0R4 = R4oa * base.ScaleFactor * base.SemiMajor
	t.tranMercK0R4inv = 1.0 / t.tranMercK0R4

	// The origin may move from (0,0) and this is represented by a change in
	// the northing of the natural origin.
	_, t.originNorthing = t.latLonToNorthingEasting(base.LatitudeOfOrigin, 0)
	return t, nil
}

// generateCoefficients returns R4/a and fills the coefficients of omega
// (rectifying latitude) as a trig series in chi (conformal latitude) and of
// chi as a trig series in omega. n1 is Helmert's n = (a - b)/(a + b). The
// values depend only on the shape of the ellipsoid.
//
// aCoeff and bCoeff hold the coefficients for k = 2, 4, ... 16.
func generateCoefficients(n1 float64, aCoeff, bCoeff *[nTerms]float64) float64 {
	n2 := n1 * n1
	n3 := n2 * n1
	n4 := n3 * n1
	n5 := n4 * n1
	n6 := n5 * n1
	n7 := n6 * n1
	n8 := n7 * n1
	n9 := n8 * n1
	n10 := n9 * n1

	// Computation of coefficient a2
	coeff := 0.0
	coeff += (-18975107.0) * n8 / 50803200.0
	coeff += (72161.0) * n7 / 387072.0
	coeff += (7891.0) * n6 / 37800.0
	coeff += (-127.0) * n5 / 288.0
	coeff += (41.0) * n4 / 180.0
	coeff += (5.0) * n3 / 16.0
	coeff += (-2.0) * n2 / 3.0
	coeff += (1.0) * n1 / 2.0

	aCoeff[0] = coeff

	//   Computation of coefficient a4
	coeff = 0.0
	coeff += (148003883.0) * n8 / 174182400.0
	coeff += (13769.0) * n7 / 28800.0
	coeff += (-1983433.0) * n6 / 1935360.0
	coeff += (281.0) * n5 / 630.0
	coeff += (557.0) * n4 / 1440.0
	coeff += (-3.0) * n3 / 5.0
	coeff += (13.0) * n2 / 48.0

	aCoeff[1] = coeff

	//   Computation of coefficient a6
	coeff = 0.0
	coeff += (79682431.0) * n8 / 79833600.0
	coeff += (-67102379.0) * n7 / 29030400.0
	coeff += (167603.0) * n6 / 181440.0
	coeff += (15061.0) * n5 / 26880.0
	coeff += (-103.0) * n4 / 140.0
	coeff += (61.0) * n3 / 240.0

	aCoeff[2] = coeff

	//   Computation of coefficient a8
	coeff = 0.0
	coeff += (-40176129013.0) * n8 / 7664025600.0
	coeff += (97445.0) * n7 / 49896.0
	coeff += (6601661.0) * n6 / 7257600.0
	coeff += (-179.0) * n5 / 168.0
	coeff += (49561.0) * n4 / 161280.0

	aCoeff[3] = coeff

	//   Computation of coefficient a10
	coeff = 0.0
	coeff += (2605413599.0) * n8 / 622702080.0
	coeff += (14644087.0) * n7 / 9123840.0
	coeff += (-3418889.0) * n6 / 1995840.0
	coeff += (34729.0) * n5 / 80640.0

	aCoeff[4] = coeff

	//   Computation of coefficient a12
	coeff = 0.0
	coeff += (175214326799.0) * n8 / 58118860800.0
	coeff += (-30705481.0) * n7 / 10378368.0
	coeff += (212378941.0) * n6 / 319334400.0

	aCoeff[5] = coeff

	//   Computation of coefficient a14
	coeff = 0.0
	coeff += (-16759934899.0) * n8 / 3113510400.0
	coeff += (1522256789.0) * n7 / 1383782400.0

	aCoeff[6] = coeff

	//   Computation of coefficient a16
	coeff = 0.0
	coeff += (1424729850961.0) * n8 / 743921418240.0

	aCoeff[7] = coeff

	//   Computation of coefficient b2
	coeff = 0.0
	coeff += (-7944359.0) * n8 / 67737600.0
	coeff += (5406467.0) * n7 / 38707200.0
	coeff += (-96199.0) * n6 / 604800.0
	coeff += (81.0) * n5 / 512.0
	coeff += (1.0) * n4 / 360.0
	coeff += (-37.0) * n3 / 96.0
	coeff += (2.0) * n2 / 3.0
	coeff += (-1.0) * n1 / 2.0

	bCoeff[0] = coeff

	//   Computation of coefficient b4
	coeff = 0.0
	coeff += (-24749483.0) * n8 / 348364800.0
	coeff += (-51841.0) * n7 / 1209600.0
	coeff += (1118711.0) * n6 / 3870720.0
	coeff += (-46.0) * n5 / 105.0
	coeff += (437.0) * n4 / 1440.0
	coeff += (-1.0) * n3 / 15.0
	coeff += (-1.0) * n2 / 48.0

	bCoeff[1] = coeff

	//   Computation of coefficient b6
	coeff = 0.0
	coeff += (6457463.0) * n8 / 17740800.0
	coeff += (-9261899.0) * n7 / 58060800.0
	coeff += (-5569.0) * n6 / 90720.0
	coeff += (209.0) * n5 / 4480.0
	coeff += (37.0) * n4 / 840.0
	coeff += (-17.0) * n3 / 480.0

	bCoeff[2] = coeff

	//   Computation of coefficient b8
	coeff = 0.0
	coeff += (-324154477.0) * n8 / 7664025600.0
	coeff += (-466511.0) * n7 / 2494800.0
	coeff += (830251.0) * n6 / 7257600.0
	coeff += (11.0) * n5 / 504.0
	coeff += (-4397.0) * n4 / 161280.0

	bCoeff[3] = coeff

	//   Computation of coefficient b10
	coeff = 0.0
	coeff += (-22894433.0) * n8 / 124540416.0
	coeff += (8005831.0) * n7 / 63866880.0
	coeff += (108847.0) * n6 / 3991680.0
	coeff += (-4583.0) * n5 / 161280.0

	bCoeff[4] = coeff

	//   Computation of coefficient b12
	coeff = 0.0
	coeff += (2204645983.0) * n8 / 12915302400.0
	coeff += (16363163.0) * n7 / 518918400.0
	coeff += (-20648693.0) * n6 / 638668800.0

	bCoeff[5] = coeff

	//   Computation of coefficient b14
	coeff = 0.0
	coeff += (497323811.0) * n8 / 12454041600.0
	coeff += (-219941297.0) * n7 / 5535129600.0

	bCoeff[6] = coeff

	//   Computation of coefficient b16
	coeff = 0.0
	coeff += (-191773887257.0) * n8 / 3719607091200.0

	bCoeff[7] = coeff

	coeff = 0.0
	coeff += 49 * n10 / 65536.0
	coeff += 25 * n8 / 16384.0
	coeff += n6 / 256.0
	coeff += n4 / 64.0
	coeff += n2 / 4
	coeff++
	return coeff / (1 + n1)
}

func checkLatLon(latitude, deltaLon float64) error {
	// test is based on distance from central meridian = deltaLon
	testAngle := math.Abs(deltaLon)

	delta := math.Abs(deltaLon - math.Pi)
	if delta < testAngle {
		testAngle = delta
	}

	delta = math.Abs(deltaLon + math.Pi)
	if delta < testAngle {
		testAngle = delta
	}

	// Away from the equator, is also valid
	delta = halfPi - latitude
	if delta < testAngle {
		testAngle = delta
	}

	delta = halfPi + latitude
	if delta < testAngle {
		testAngle = delta
	}
	const maxDeltaLong = ((math.Pi * 70) / 180.0)
	if testAngle > maxDeltaLong {
		return domainErrorf("transverse mercator: longitude %g out of range", toDegrees(deltaLon))
	}
	return nil
}

// latLonToNorthingEasting projects a point given its latitude and its
// longitude from the central meridian, without any origin offset.
func (t *TransverseMercator) latLonToNorthingEasting(latitude, lambda float64) (easting, northing float64) {
	cosLam := math.Cos(lambda)
	sinLam := math.Sin(lambda)
	cosPhi := math.Cos(latitude)
	sinPhi := math.Sin(latitude)
	eps := t.base.E

	var c2ku, s2ku [nTerms]float64
	var c2kv, s2kv [nTerms]float64

	//  Ellipsoid to sphere
	//  --------- -- ------

	//  Convert geodetic latitude, Phi, to conformal latitude, Chi
	//  Only the cosine and sine of Chi are actually needed.
	P := math.Exp(eps * aTanH(eps*sinPhi))
	part1 := (1 + sinPhi) / P
	part2 := (1 - sinPhi) * P
	denom := part1 + part2
	cosChi := 2 * cosPhi / denom
	sinChi := (part1 - part2) / denom

	//  Sphere to first plane
	//  ------ -- ----- -----

	// Apply spherical theory of transverse Mercator to get (u,v) coord.s
	U := aTanH(cosChi * sinLam)
	V := math.Atan2(sinChi, cosChi*cosLam)

	// Use trig identities to compute cosh(2kU), sinh(2kU), cos(2kV), sin(2kV)
	computeHyperbolicSeries(2.0*U, &c2ku, &s2ku)
	computeTrigSeries(2.0*V, &c2kv, &s2kv)

	//  First plane to second plane
	//  Accumulate terms for X and Y
	xStar := 0.0
	yStar := 0.0

	for k := nTerms - 1; k >= 0; k-- {
		xStar += t.tranMercACoeff[k] * s2ku[k] * c2kv[k]
		yStar += t.tranMercACoeff[k] * c2ku[k] * s2kv[k]
	}

	xStar += U
	yStar += V

	// Apply isoperimetric radius and scale adjustment
	return t.tranMercK0R4 * xStar, t.tranMercK0R4 * yStar
}

func (t *TransverseMercator) Project(lam, phi float64) (float64, float64, error) {
	if err := checkLatLon(phi, lam); err != nil {
		return 0, 0, err
	}
	easting, northing := t.latLonToNorthingEasting(phi, lam)
	return easting, northing - t.originNorthing, nil
}

func (t *TransverseMercator) Unproject(easting, northing float64) (float64, float64, error) {
	if math.Abs(easting) > t.tranMercDeltaEasting {
		return 0, 0, domainErrorf("transverse mercator: easting %g out of range", easting)
	}
	northing += t.originNorthing
	if math.Abs(northing) > t.tranMercDeltaNorthing {
		return 0, 0, domainErrorf("transverse mercator: northing %g out of range", northing)
	}
	latitude, lambda := t.northingEastingToLatLon(northing, easting)
	return lambda, latitude, nil
}

func (t *TransverseMercator) northingEastingToLatLon(northing, easting float64) (latitude, lambda float64) {
	var c2kx, s2kx, c2ky, s2ky [nTerms]float64

	//  Undo scale change and factor R4
	//  ---- -----  ------ --- ------ --
	xStar := t.tranMercK0R4inv * (easting)
	yStar := t.tranMercK0R4inv * (northing)

	// Use trig identities to compute cosh(2kU), sinh(2kU), cos(2kV), sin(2kV)
	computeHyperbolicSeries(2.0*xStar, &c2kx, &s2kx)
	computeTrigSeries(2.0*yStar, &c2ky, &s2ky)

	//  Second plane (x*, y*) to first plane (u, v)
	//  ------ ----- -------- -- ----- ----- ------
	U := 0.0
	V := 0.0

	for k := nTerms - 1; k >= 0; k-- {
		U += t.tranMercBCoeff[k] * s2kx[k] * c2ky[k]
		V += t.tranMercBCoeff[k] * c2kx[k] * s2ky[k]
	}

	U += xStar
	V += yStar

	//  First plane to sphere
	//  ----- ----- -- ------
	coshU := math.Cosh(U)
	sinhU := math.Sinh(U)
	cosV := math.Cos(V)
	sinV := math.Sin(V)

	//   Longitude from central meridian
	if (math.Abs(cosV) < 10e-12) && (math.Abs(coshU) < 10e-12) {
		lambda = 0
	} else {
		lambda = math.Atan2(sinhU, cosV)
	}

	//   Conformal latitude
	sinChi := sinV / coshU
	latitude = geodeticLat(sinChi, t.base.E)
	return latitude, lambda
}

func geodeticLat(sinChi, e float64) float64 {
	sOld := 1.0e99
	s := sinChi
	onePlusSinChi := 1.0 + sinChi
	oneMinusSinChi := 1.0 - sinChi

	for n := 0; n < 30; n++ {
		p := math.Exp(e * aTanH(e*s))
		pSq := p * p
		s = (onePlusSinChi*pSq - oneMinusSinChi) /
			(onePlusSinChi*pSq + oneMinusSinChi)

		if math.Abs(s-sOld) < 1.0e-12 {
			break
		}
		sOld = s
	}
	return math.Asin(s)
}

func computeHyperbolicSeries(twoX float64, c2kx, s2kx *[nTerms]float64) {
	// Use trig identities to compute
	// c2kx[k] = cosh(2kX), s2kx[k] = sinh(2kX)   for k = 0 .. 8
	c2kx[0] = math.Cosh(twoX)
	s2kx[0] = math.Sinh(twoX)
	c2kx[1] = 2.0*c2kx[0]*c2kx[0] - 1.0
	s2kx[1] = 2.0 * c2kx[0] * s2kx[0]
	c2kx[2] = c2kx[0]*c2kx[1] + s2kx[0]*s2kx[1]
	s2kx[2] = c2kx[1]*s2kx[0] + c2kx[0]*s2kx[1]
	c2kx[3] = 2.0*c2kx[1]*c2kx[1] - 1.0
	s2kx[3] = 2.0 * c2kx[1] * s2kx[1]
	c2kx[4] = c2kx[0]*c2kx[3] + s2kx[0]*s2kx[3]
	s2kx[4] = c2kx[3]*s2kx[0] + c2kx[0]*s2kx[3]
	c2kx[5] = 2.0*c2kx[2]*c2kx[2] - 1.0
	s2kx[5] = 2.0 * c2kx[2] * s2kx[2]
	c2kx[6] = c2kx[0]*c2kx[5] + s2kx[0]*s2kx[5]
	s2kx[6] = c2kx[5]*s2kx[0] + c2kx[0]*s2kx[5]
	c2kx[7] = 2.0*c2kx[3]*c2kx[3] - 1.0
	s2kx[7] = 2.0 * c2kx[3] * s2kx[3]
}

func computeTrigSeries(twoY float64, c2ky, s2ky *[nTerms]float64) {
	// Use trig identities to compute
	// c2ky[k] = cos(2kY), s2ky[k] = sin(2kY)   for k = 0 .. 8
	c2ky[0] = math.Cos(twoY)
	s2ky[0] = math.Sin(twoY)
	c2ky[1] = 2.0*c2ky[0]*c2ky[0] - 1.0
	s2ky[1] = 2.0 * c2ky[0] * s2ky[0]
	c2ky[2] = c2ky[1]*c2ky[0] - s2ky[1]*s2ky[0]
	s2ky[2] = c2ky[1]*s2ky[0] + c2ky[0]*s2ky[1]
	c2ky[3] = 2.0*c2ky[1]*c2ky[1] - 1.0
	s2ky[3] = 2.0 * c2ky[1] * s2ky[1]
	c2ky[4] = c2ky[3]*c2ky[0] - s2ky[3]*s2ky[0]
	s2ky[4] = c2ky[3]*s2ky[0] + c2ky[0]*s2ky[3]
	c2ky[5] = 2.0*c2ky[2]*c2ky[2] - 1.0
	s2ky[5] = 2.0 * c2ky[2] * s2ky[2]
	c2ky[6] = c2ky[5]*c2ky[0] - s2ky[5]*s2ky[0]
	s2ky[6] = c2ky[5]*s2ky[0] + c2ky[0]*s2ky[5]
	c2ky[7] = 2.0*c2ky[3]*c2ky[3] - 1.0
	s2ky[7] = 2.0 * c2ky[3] * s2ky[3]
}
