package coordxform

import (
	"fmt"

	"github.com/golang/geo/s2"
)

const utmMinLat = -80.5 // degrees
const utmMaxLat = 84.5  // degrees
const utmScaleFactor = 0.9996
const utmFalseEasting = 500000.0
const utmSouthFalseNorthing = 10000000.0
const epsilonDegrees = 1.0e-5 // ~1 meter

// UTMZone returns the UTM zone and hemisphere containing ll, taking the
// southern Norway and Svalbard exceptions into account.
func UTMZone(ll s2.LatLng) (int, Hemisphere, error) {
	latitude := ll.Lat.Degrees()
	longitude := ll.Lng.Degrees()
	if (latitude < (utmMinLat - epsilonDegrees)) ||
		(latitude >= (utmMaxLat + epsilonDegrees)) {
		return 0, HemisphereInvalid, domainErrorf("utm: latitude %g out of range", latitude)
	}
	if (longitude < (-180 - epsilonDegrees)) ||
		(longitude > (360 + epsilonDegrees)) {
		return 0, HemisphereInvalid, domainErrorf("utm: longitude %g out of range", longitude)
	}

	if (latitude > -1.0e-9) && (latitude < 0) {
		latitude = 0.0
	}
	if longitude < 0 {
		longitude += 360
	}

	latDegrees := int(latitude)
	lonDegrees := int(longitude)

	var zone int
	if longitude < 180 {
		zone = int(31 + ((longitude + 1.0e-8) / 6.0))
	} else {
		zone = int(((longitude + 1.0e-8) / 6.0) - 29)
	}
	if zone > 60 {
		zone = 1
	}

	// special zone cases over southern Norway and Svalbard
	if (latDegrees > 55) && (latDegrees < 64) && (lonDegrees > -1) &&
		(lonDegrees < 3) {
		zone = 31
	}
	if (latDegrees > 55) && (latDegrees < 64) && (lonDegrees > 2) &&
		(lonDegrees < 12) {
		zone = 32
	}
	if (latDegrees > 71) && (lonDegrees > -1) && (lonDegrees < 9) {
		zone = 31
	}
	if (latDegrees > 71) && (lonDegrees > 8) && (lonDegrees < 21) {
		zone = 33
	}
	if (latDegrees > 71) && (lonDegrees > 20) && (lonDegrees < 33) {
		zone = 35
	}
	if (latDegrees > 71) && (lonDegrees > 32) && (lonDegrees < 42) {
		zone = 37
	}

	if latitude < 0 {
		return zone, HemisphereSouth, nil
	}
	return zone, HemisphereNorth, nil
}

// UTMCentralMeridian returns the central meridian of zone in degrees, in
// the range -177..177.
func UTMCentralMeridian(zone int) float64 {
	return float64(6*zone - 183)
}

// NewUTMCRS returns the UTM projected system for zone and hemisphere on
// base.
func NewUTMCRS(base *GeographicCRS, zone int, hemisphere Hemisphere) (*ProjectedCRS, error) {
	if base == nil {
		return nil, configErrorf("utm: no base system")
	}
	if (zone < 1) || (zone > 60) {
		return nil, configErrorf("utm: zone %d out of range", zone)
	}
	falseNorthing := 0.0
	switch hemisphere {
	case HemisphereNorth:
	case HemisphereSouth:
		falseNorthing = utmSouthFalseNorthing
	default:
		return nil, configErrorf("utm: invalid hemisphere %v", hemisphere)
	}
	params := NewParameters().
		Set(ParamLatitudeOfOrigin, 0).
		Set(ParamCentralMeridian, UTMCentralMeridian(zone)).
		Set(ParamScaleFactor, utmScaleFactor).
		Set(ParamFalseEasting, utmFalseEasting).
		Set(ParamFalseNorthing, falseNorthing)
	return &ProjectedCRS{
		Name:       fmt.Sprintf("%s / UTM zone %d%s", base.Name, zone, hemisphere.letter()),
		Base:       base,
		Projection: ProjectionDef{Class: "Transverse_Mercator", Parameters: params},
		Unit:       Metre,
	}, nil
}
