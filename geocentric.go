package coordxform

import (
	"math"

	"github.com/golang/geo/r3"
)

// Bowring's method constants.
const (
	bowringADC = 1.0026000           // auxiliary latitude scale
	cos67p5    = 0.38268343236508977 // cosine of 67.5 degrees
)

// GeocentricConversion converts geographic longitude, latitude (degrees)
// and ellipsoidal height (metres) to earth-centred X, Y, Z.
type GeocentricConversion struct {
	a             float64
	b             float64
	es            float64
	ep2           float64 // second eccentricity squared
	metersPerUnit float64
	geogDim       int
}

// NewGeocentricConversion builds the conversion for an ellipsoid. The
// geocentric side is expressed in unit; geogDim is the dimension of the
// geographic side, 2 or 3. With 2 the height is taken as zero and dropped
// on the way back.
func NewGeocentricConversion(ellipsoid Ellipsoid, unit LinearUnit, geogDim int) (*GeocentricConversion, error) {
	if err := ellipsoid.validate(); err != nil {
		return nil, err
	}
	if !(unit.MetersPerUnit > 0) {
		return nil, configErrorf("geocentric: invalid unit %q", unit.Name)
	}
	if geogDim != 2 && geogDim != 3 {
		return nil, configErrorf("geocentric: invalid geographic dimension %d", geogDim)
	}
	a, b := ellipsoid.SemiMajor, ellipsoid.SemiMinor
	return &GeocentricConversion{
		a:             a,
		b:             b,
		es:            ellipsoid.EccentricitySquared(),
		ep2:           (a*a - b*b) / (b * b),
		metersPerUnit: unit.MetersPerUnit,
		geogDim:       geogDim,
	}, nil
}

func (g *GeocentricConversion) Name() string { return "Geocentric" }

func (g *GeocentricConversion) Kind() Kind { return KindConversion }

func (g *GeocentricConversion) Dimensions() (int, int) { return g.geogDim, 3 }

// Forward converts (lon, lat, h) to (X, Y, Z).
func (g *GeocentricConversion) Forward(lon, lat, h float64) (float64, float64, float64, error) {
	if math.IsNaN(lon) || math.IsNaN(lat) || math.Abs(lat) > 90 {
		return 0, 0, 0, domainErrorf("geocentric: latitude %g out of range", lat)
	}
	if g.geogDim == 2 {
		h = 0
	}
	sinLat, cosLat := math.Sincos(toRadians(lat))
	sinLon, cosLon := math.Sincos(toRadians(lon))
	rn := g.a / math.Sqrt(1-g.es*sinLat*sinLat)
	v := r3.Vector{
		X: (rn + h) * cosLat * cosLon,
		Y: (rn + h) * cosLat * sinLon,
		Z: (rn*(1-g.es) + h) * sinLat,
	}
	if g.metersPerUnit != 1 {
		v = v.Mul(1 / g.metersPerUnit)
	}
	return v.X, v.Y, v.Z, nil
}

// Reverse converts (X, Y, Z) to (lon, lat, h) using Bowring's closed form.
func (g *GeocentricConversion) Reverse(x, y, z float64) (float64, float64, float64, error) {
	x *= g.metersPerUnit
	y *= g.metersPerUnit
	z *= g.metersPerUnit

	var longitude, latitude, height float64
	atPole := false
	if x != 0 {
		longitude = math.Atan2(y, x)
	} else {
		switch {
		case y > 0:
			longitude = halfPi
		case y < 0:
			longitude = -halfPi
		default:
			atPole = true
			longitude = 0
			switch {
			case z > 0:
				latitude = halfPi
			case z < 0:
				latitude = -halfPi
			default:
				// centre of the earth
				return 0, 90, g.height(-g.b), nil
			}
		}
	}
	w2 := x*x + y*y
	w := math.Sqrt(w2)
	t0 := z * bowringADC
	s0 := math.Sqrt(t0*t0 + w2)
	sinB0 := t0 / s0
	cosB0 := w / s0
	sin3B0 := sinB0 * sinB0 * sinB0
	t1 := z + g.b*g.ep2*sin3B0
	sum := w - g.a*g.es*cosB0*cosB0*cosB0
	s1 := math.Sqrt(t1*t1 + sum*sum)
	sinP1 := t1 / s1
	cosP1 := sum / s1
	rn := g.a / math.Sqrt(1-g.es*sinP1*sinP1)
	switch {
	case cosP1 >= cos67p5:
		height = w/cosP1 - rn
	case cosP1 <= -cos67p5:
		height = w/-cosP1 - rn
	default:
		height = z/sinP1 + rn*(g.es-1)
	}
	if !atPole {
		latitude = math.Atan(sinP1 / cosP1)
	}
	return toDegrees(longitude), toDegrees(latitude), g.height(height), nil
}

func (g *GeocentricConversion) height(h float64) float64 {
	if g.geogDim == 2 {
		return 0
	}
	return h
}
