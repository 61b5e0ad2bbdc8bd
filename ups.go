package coordxform

import (
	"fmt"

	"github.com/golang/geo/s2"
)

// Hemisphere represents the hemisphere, north or south
type Hemisphere byte

// Hemisphere constants
const (
	HemisphereInvalid Hemisphere = iota
	HemisphereNorth
	HemisphereSouth
)

func (h Hemisphere) String() string {
	switch h {
	case HemisphereNorth:
		return "north"
	case HemisphereSouth:
		return "south"
	}
	return fmt.Sprintf("Hemisphere(%d)", byte(h))
}

func (h Hemisphere) letter() string {
	if h == HemisphereSouth {
		return "S"
	}
	return "N"
}

const upsScaleFactor = 0.994
const upsFalseEasting = 2000000
const upsFalseNorthing = 2000000

const upsMinNorthLat = 83.5  // degrees
const upsMaxSouthLat = -79.5 // degrees

// UPSHemisphere returns the polar zone containing ll. Points between the
// UPS zones, which UTM covers, are a domain error.
func UPSHemisphere(ll s2.LatLng) (Hemisphere, error) {
	latitude := ll.Lat.Degrees()
	switch {
	case latitude > 90 || latitude < -90:
		return HemisphereInvalid, domainErrorf("ups: latitude %g out of range", latitude)
	case latitude < 0 && latitude >= upsMaxSouthLat+epsilonDegrees:
		return HemisphereInvalid, domainErrorf("ups: latitude %g is outside the south polar zone", latitude)
	case latitude >= 0 && latitude < upsMinNorthLat-epsilonDegrees:
		return HemisphereInvalid, domainErrorf("ups: latitude %g is outside the north polar zone", latitude)
	case latitude < 0:
		return HemisphereSouth, nil
	}
	return HemisphereNorth, nil
}

// NewUPSCRS returns the Universal Polar Stereographic system for hemisphere
// on base.
func NewUPSCRS(base *GeographicCRS, hemisphere Hemisphere) (*ProjectedCRS, error) {
	if base == nil {
		return nil, configErrorf("ups: no base system")
	}
	var originLatitude float64
	switch hemisphere {
	case HemisphereNorth:
		originLatitude = 90
	case HemisphereSouth:
		originLatitude = -90
	default:
		return nil, configErrorf("ups: invalid hemisphere %v", hemisphere)
	}
	params := NewParameters().
		Set(ParamLatitudeOfOrigin, originLatitude).
		Set(ParamCentralMeridian, 0).
		Set(ParamScaleFactor, upsScaleFactor).
		Set(ParamFalseEasting, upsFalseEasting).
		Set(ParamFalseNorthing, upsFalseNorthing)
	return &ProjectedCRS{
		Name:       fmt.Sprintf("%s / UPS %s", base.Name, hemisphere.letter()),
		Base:       base,
		Projection: ProjectionDef{Class: "Polar_Stereographic", Parameters: params},
		Unit:       Metre,
	}, nil
}
