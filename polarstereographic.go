package coordxform

import (
	"math"
)

// PolarStereographic implements the polar aspect of the ellipsoidal
// stereographic projection. Variant A is defined by a scale factor at the
// pole, variant B by a latitude of true scale.
type PolarStereographic struct {
	base                 *ProjectionBase
	esOverTwo            float64 // es / 2.0
	isSouthernHemisphere bool    // Flag variable
	trueScaleAtPole      bool
	polarTC              float64
	polarK90             float64
	polaraMc             float64 // Polar_a * mc
	twoPolarAK0          float64 // 2.0 * Polar_a * k0

	// Latitude of true scale in radians, always positive
	polarStandardParallel float64

	// Maximum distance from the pole for WGS 84 sized ellipsoids.
	polarDeltaRadius float64
}

// NewPolarStereographic builds the Polar_Stereographic projection. When
// standard_parallel_1 is present the latitude of true scale defines the
// projection and its sign selects the hemisphere; otherwise latitude_of_origin
// must be +90 or -90 and scale_factor applies at the pole.
func NewPolarStereographic(params *Parameters) (*Projection, error) {
	return NewProjection("Polar_Stereographic", params, newPolarStereographic)
}

func newPolarStereographic(base *ProjectionBase, params *Parameters) (Projector, error) {
	p := &PolarStereographic{
		base:      base,
		polarTC:   1.0,
		esOverTwo: base.E / 2.0,
	}

	onePlusEs := 1.0 + base.E
	oneMinusEs := 1.0 - base.E
	p.polarK90 = math.Sqrt(math.Pow(onePlusEs, onePlusEs) * math.Pow(oneMinusEs, oneMinusEs))

	if sp, ok := params.Lookup(ParamStandardParallel1, "latitude_of_true_scale"); ok {
		if math.Abs(sp) > 90 || sp == 0 {
			return nil, configErrorf("polar stereographic: standard parallel %g out of range", sp)
		}
		standardParallel := toRadians(sp)
		p.isSouthernHemisphere = standardParallel < 0
		p.polarStandardParallel = math.Abs(standardParallel)
		p.twoPolarAK0 = 2.0 * base.SemiMajor
		if math.Abs(p.polarStandardParallel-halfPi) > 1.0e-10 {
			p.trueScaleAtPole = false
			sinolat := math.Sin(p.polarStandardParallel)
			essin := base.E * sinolat
			powEs := p.polarPow(essin)
			cosolat := math.Cos(p.polarStandardParallel)
			mc := cosolat / math.Sqrt(1.0-essin*essin)
			p.polaraMc = base.SemiMajor * mc
			p.polarTC = math.Tan(quarterPi-p.polarStandardParallel/2.0) / powEs
		} else {
			p.trueScaleAtPole = true
		}
	} else {
		const minScaleFactor = 0.1
		const maxScaleFactor = 3.0
		if (base.ScaleFactor < minScaleFactor) || (base.ScaleFactor > maxScaleFactor) {
			return nil, configErrorf("polar stereographic: scale factor %g out of range", base.ScaleFactor)
		}
		switch {
		case math.Abs(base.LatitudeOfOrigin-halfPi) < epsilon10:
			p.isSouthernHemisphere = false
		case math.Abs(base.LatitudeOfOrigin+halfPi) < epsilon10:
			p.isSouthernHemisphere = true
		default:
			return nil, configErrorf("polar stereographic: latitude of origin must be a pole, got %g",
				toDegrees(base.LatitudeOfOrigin))
		}
		p.trueScaleAtPole = true
		p.polarStandardParallel = halfPi
		p.twoPolarAK0 = 2.0 * base.SemiMajor * base.ScaleFactor
	}

	// Calculate Radius
	x, y := p.project(0, 0)
	p.polarDeltaRadius = math.Hypot(x, y) * 1.01 * math.Sqrt2
	return p, nil
}

func (p *PolarStereographic) project(lam, phi float64) (easting, northing float64) {
	if math.Abs(math.Abs(phi)-halfPi) < 1.0e-10 {
		return 0, 0
	}
	if p.isSouthernHemisphere {
		lam *= -1.0
		phi *= -1.0
	}
	t := tsfn(phi, math.Sin(phi), p.base.E)

	var rho float64
	if p.trueScaleAtPole {
		rho = p.twoPolarAK0 * t / p.polarK90
	} else {
		rho = p.polaraMc * t / p.polarTC
	}

	if p.isSouthernHemisphere {
		easting = -(rho * math.Sin(lam))
		northing = rho * math.Cos(lam)
	} else {
		easting = rho * math.Sin(lam)
		northing = -rho * math.Cos(lam)
	}
	return easting, northing
}

func (p *PolarStereographic) Project(lam, phi float64) (float64, float64, error) {
	if (phi < 0) && (!p.isSouthernHemisphere) {
		return 0, 0, domainErrorf("polar stereographic: latitude %g and origin latitude in different hemispheres", toDegrees(phi))
	} else if (phi > 0) && (p.isSouthernHemisphere) {
		return 0, 0, domainErrorf("polar stereographic: latitude %g and origin latitude in different hemispheres", toDegrees(phi))
	}
	x, y := p.project(lam, phi)
	return x, y, nil
}

const (
	polarMaxIter   = 15
	polarTolerance = 1e-14
)

func (p *PolarStereographic) Unproject(dx, dy float64) (float64, float64, error) {
	// Radius of point with origin of false easting, false northing
	rho := math.Hypot(dx, dy)
	if rho > p.polarDeltaRadius {
		return 0, 0, domainErrorf("polar stereographic: point (%g, %g) is outside of projection area", dx, dy)
	}

	var latitude, longitude float64
	if (dy == 0.0) && (dx == 0.0) {
		latitude = halfPi
	} else {
		if p.isSouthernHemisphere {
			dy *= -1.0
			dx *= -1.0
		}

		var t float64
		if p.trueScaleAtPole {
			t = rho * p.polarK90 / p.twoPolarAK0
		} else {
			t = rho * p.polarTC / p.polaraMc
		}
		var err error
		if latitude, err = phi2z(p.base.E, t, polarMaxIter, polarTolerance); err != nil {
			return 0, 0, err
		}
		longitude = math.Atan2(dx, -dy)
	}
	if p.isSouthernHemisphere {
		latitude *= -1.0
		longitude *= -1.0
	}
	return longitude, latitude, nil
}

func (p *PolarStereographic) polarPow(esSin float64) float64 {
	return math.Pow((1.0-esSin)/(1.0+esSin), p.esOverTwo)
}
