package coordxform

import (
	"math"
)

// Units.
var (
	Degree = AngularUnit{Name: "degree", RadiansPerUnit: math.Pi / 180}
	Radian = AngularUnit{Name: "radian", RadiansPerUnit: 1}
	Grad   = AngularUnit{Name: "grad", RadiansPerUnit: math.Pi / 200}

	Metre        = LinearUnit{Name: "metre", MetersPerUnit: 1}
	Foot         = LinearUnit{Name: "foot", MetersPerUnit: 0.3048}
	USSurveyFoot = LinearUnit{Name: "US survey foot", MetersPerUnit: 1200.0 / 3937.0}
)

// Greenwich is the international reference meridian.
var Greenwich = PrimeMeridian{Name: "Greenwich", Longitude: 0, Unit: Degree}

// WGS84Ellipsoid is the WGS 84 reference ellipsoid.
var WGS84Ellipsoid = NewEllipsoid("WGS 84", 6378137, 298.257223563)

// WGS84Datum is the World Geodetic System 1984 datum.
var WGS84Datum = Datum{Name: "WGS_1984", Ellipsoid: WGS84Ellipsoid, ToWGS84: &ShiftParameters{}}

// WGS84 is the WGS 84 geographic system in degrees.
var WGS84 = &GeographicCRS{Name: "WGS 84", Datum: WGS84Datum, PrimeMeridian: Greenwich, Unit: Degree}

// WGS84Geocentric is the WGS 84 earth-centred system in metres.
var WGS84Geocentric = &GeocentricCRS{Name: "WGS 84 (geocentric)", Datum: WGS84Datum, PrimeMeridian: Greenwich, Unit: Metre}

// WebMercator is WGS 84 / Pseudo-Mercator.
var WebMercator = &ProjectedCRS{
	Name: "WGS 84 / Pseudo-Mercator",
	Base: WGS84,
	Projection: ProjectionDef{
		Class:      "Popular_Visualisation_Pseudo_Mercator",
		Parameters: NewParameters(),
	},
	Unit: Metre,
}
