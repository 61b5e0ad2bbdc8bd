package coordxform_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tzneal/coordxform"
)

// dms converts degrees, minutes and seconds to decimal degrees.
func dms(d, m, s float64) float64 {
	return math.Copysign(math.Abs(d)+m/60+s/3600, d)
}

// ellipsoidParams returns parameters holding the axes of the ellipsoid with
// semi-major axis a and inverse flattening invf.
func ellipsoidParams(a, invf float64) *coordxform.Parameters {
	e := coordxform.NewEllipsoid("", a, invf)
	return coordxform.NewParameters().
		Set(coordxform.ParamSemiMajor, e.SemiMajor).
		Set(coordxform.ParamSemiMinor, e.SemiMinor)
}

func requireXY(t *testing.T, wantX, wantY, gotX, gotY, tol float64) {
	t.Helper()
	require.InDelta(t, wantX, gotX, tol, "x")
	require.InDelta(t, wantY, gotY, tol, "y")
}

func mustFactory(t *testing.T) *coordxform.Factory {
	t.Helper()
	f, err := coordxform.NewFactory()
	require.NoError(t, err)
	return f
}

var (
	grs80   = coordxform.NewEllipsoid("GRS 1980", 6378137, 298.257222101)
	bessel  = coordxform.NewEllipsoid("Bessel 1841", 6377397.155, 299.1528128)
	clarke  = coordxform.NewEllipsoidFromAxes("Clarke 1880 (IGN)", 6378249.2, 6356515)
	paris   = coordxform.PrimeMeridian{Name: "Paris", Longitude: 2.5969213, Unit: coordxform.Grad}
	etrs89  = coordxform.Datum{Name: "ETRS89", Ellipsoid: grs80, ToWGS84: &coordxform.ShiftParameters{}}
	sjtskTo = coordxform.ShiftParameters{Dx: 570.8, Dy: 85.7, Dz: 462.8, Ex: 4.998, Ey: 1.587, Ez: 5.261, Ppm: 3.56}
	sjtsk   = coordxform.Datum{Name: "S-JTSK", Ellipsoid: bessel, ToWGS84: &sjtskTo}
	ntf     = coordxform.Datum{Name: "NTF", Ellipsoid: clarke,
		ToWGS84: &coordxform.ShiftParameters{Dx: -168, Dy: -60, Dz: 320}}
)

var (
	etrs89Geographic = &coordxform.GeographicCRS{Name: "ETRS89", Datum: etrs89,
		PrimeMeridian: coordxform.Greenwich, Unit: coordxform.Degree, WithHeight: true}
	etrs89Geocentric = &coordxform.GeocentricCRS{Name: "ETRS89 (geocentric)", Datum: etrs89,
		PrimeMeridian: coordxform.Greenwich, Unit: coordxform.Metre}
	sjtskGeographic = &coordxform.GeographicCRS{Name: "S-JTSK", Datum: sjtsk,
		PrimeMeridian: coordxform.Greenwich, Unit: coordxform.Degree}
	sjtskKrovak = &coordxform.ProjectedCRS{
		Name: "S-JTSK / Krovak",
		Base: sjtskGeographic,
		Projection: coordxform.ProjectionDef{
			Class: "Krovak",
			Parameters: coordxform.NewParameters().
				Set("latitude_of_center", 49.5).
				Set("longitude_of_center", 24.83333333333333).
				Set("azimuth", 30.28813972222222).
				Set("pseudo_standard_parallel_1", 78.5).
				Set("scale_factor", 0.9999),
		},
		Unit: coordxform.Metre,
	}
	ntfParis = &coordxform.GeographicCRS{Name: "NTF (Paris)", Datum: ntf,
		PrimeMeridian: paris, Unit: coordxform.Grad}
)
