package coordxform_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/coordxform"
)

type projectionCase struct {
	name     string
	ctor     func(*coordxform.Parameters) (*coordxform.Projection, error)
	params   *coordxform.Parameters
	lon, lat float64
	x, y     float64
	tol      float64
}

func projectionCases() []projectionCase {
	return []projectionCase{
		{
			name: "transverse mercator (OSGB 1936 / British National Grid)",
			ctor: coordxform.NewTransverseMercator,
			params: coordxform.NewParameters().
				Set("semi_major", 6377563.396).
				Set("semi_minor", 6356256.909).
				Set("latitude_of_origin", 49).
				Set("central_meridian", -2).
				Set("scale_factor", 0.9996012717).
				Set("false_easting", 400000).
				Set("false_northing", -100000),
			lon: 0.5, lat: 50.5,
			x: 577274.98, y: 69740.49, tol: 0.01,
		},
		{
			name: "albers equal area (NAD27 / USA contiguous)",
			ctor: coordxform.NewAlbersEqualArea,
			params: ellipsoidParams(6378206.4, 294.9786982138982).
				Set("latitude_of_center", 23).
				Set("longitude_of_center", -96).
				Set("standard_parallel_1", 29.5).
				Set("standard_parallel_2", 45.5),
			lon: -75, lat: 35,
			x: 1885472.7, y: 1535925.0, tol: 0.05,
		},
		{
			name: "lambert conformal conic 2SP (NAD27 / Texas South Central)",
			ctor: coordxform.NewLambertConformalConic2SP,
			params: ellipsoidParams(6378206.4, 294.9786982).
				Set("latitude_of_origin", dms(27, 50, 0)).
				Set("central_meridian", -99).
				Set("standard_parallel_1", dms(28, 23, 0)).
				Set("standard_parallel_2", dms(30, 17, 0)).
				Set("false_easting", 2000000).
				Set("unit", 0.3048006096012192),
			lon: -96, lat: 28.5,
			x: 2963503.91, y: 254759.80, tol: 0.01,
		},
		{
			name: "mercator 1SP (Batavia / NEIEZ)",
			ctor: coordxform.NewMercator,
			params: ellipsoidParams(6377397.155, 299.1528128).
				Set("central_meridian", 110).
				Set("scale_factor", 0.997).
				Set("false_easting", 3900000).
				Set("false_northing", 900000),
			lon: 120, lat: -3,
			x: 5009726.58, y: 569150.82, tol: 0.01,
		},
		{
			name:   "popular visualisation pseudo mercator",
			ctor:   coordxform.NewPseudoMercator,
			params: ellipsoidParams(6378137, 298.257223563),
			lon:    23.57892, lat: 37.94712,
			x: 2624793.3678553342, y: 4571958.333297424, tol: 1e-6,
		},
		{
			name: "krovak (S-JTSK)",
			ctor: coordxform.NewKrovak,
			params: ellipsoidParams(6377397.155, 299.1528128).
				Set("latitude_of_center", 49.5).
				Set("longitude_of_center", 24.83333333333333).
				Set("azimuth", 30.28813972222222).
				Set("pseudo_standard_parallel_1", 78.5).
				Set("scale_factor", 0.9999),
			lon: 12, lat: 48,
			x: -953172.26, y: -1245573.32, tol: 0.01,
		},
		{
			name: "oblique mercator, centre origin (Timbalai 1948 / RSO Borneo)",
			ctor: coordxform.NewObliqueMercator,
			params: ellipsoidParams(6377298.556, 300.8017).
				Set("latitude_of_center", 4).
				Set("longitude_of_center", 115).
				Set("azimuth", dms(53, 18, 56.9537)).
				Set("rectified_grid_angle", dms(53, 7, 48.3685)).
				Set("scale_factor", 0.99984).
				Set("false_easting", 590476.87).
				Set("false_northing", 442857.65),
			lon: dms(115, 48, 19.8196), lat: dms(5, 23, 14.1129),
			x: 679245.73, y: 596562.78, tol: 0.01,
		},
		{
			name: "hotine oblique mercator, natural origin",
			ctor: coordxform.NewHotineObliqueMercator,
			params: ellipsoidParams(6377298.556, 300.8017).
				Set("latitude_of_center", 4).
				Set("longitude_of_center", 115).
				Set("azimuth", dms(53, 18, 56.9537)).
				Set("rectified_grid_angle", dms(53, 7, 48.3685)).
				Set("scale_factor", 0.99984).
				Set("false_easting", 590476.87).
				Set("false_northing", 442857.65),
			lon: dms(115, 48, 19.8196), lat: dms(5, 23, 14.1129),
			x: 1269722.60, y: 1039420.43, tol: 0.01,
		},
		{
			name: "oblique stereographic (Amersfoort / RD New)",
			ctor: coordxform.NewObliqueStereographic,
			params: ellipsoidParams(6377397.155, 299.15281).
				Set("latitude_of_origin", dms(52, 9, 22.178)).
				Set("central_meridian", dms(5, 23, 15.5)).
				Set("scale_factor", 0.9999079).
				Set("false_easting", 155000).
				Set("false_northing", 463000),
			lon: 6, lat: 53,
			x: 196105.28, y: 557057.74, tol: 0.01,
		},
		{
			name: "polar stereographic variant A (UPS north)",
			ctor: coordxform.NewPolarStereographic,
			params: ellipsoidParams(6378137, 298.257223563).
				Set("latitude_of_origin", 90).
				Set("scale_factor", 0.994).
				Set("false_easting", 2000000).
				Set("false_northing", 2000000),
			lon: 44, lat: 73,
			x: 3320416.75, y: 632668.43, tol: 0.01,
		},
		{
			name: "lambert azimuthal equal area (ETRS89 / LAEA Europe)",
			ctor: coordxform.NewLambertAzimuthalEqualArea,
			params: ellipsoidParams(6378137, 298.257222101).
				Set("latitude_of_center", 52).
				Set("longitude_of_center", 10).
				Set("false_easting", 4321000).
				Set("false_northing", 3210000),
			lon: 5, lat: 50,
			x: 3962799.45, y: 2999718.85, tol: 0.01,
		},
		{
			name: "orthographic",
			ctor: coordxform.NewOrthographic,
			params: ellipsoidParams(6378137, 298.257223563).
				Set("latitude_of_origin", 55).
				Set("central_meridian", 5),
			lon: 2.5, lat: 53,
			x: -167789.81, y: -219565.67, tol: 0.01,
		},
		{
			name: "cassini soldner",
			ctor: coordxform.NewCassiniSoldner,
			params: ellipsoidParams(6378137, 298.257223563).
				Set("latitude_of_origin", 10),
			lon: 2, lat: 12,
			x: 217803.39, y: 222020.38, tol: 0.01,
		},
		{
			name: "polyconic",
			ctor: coordxform.NewPolyconic,
			params: ellipsoidParams(6378137, 298.257223563).
				Set("latitude_of_origin", 10),
			lon: 5, lat: 30,
			x: 482278.34, y: 2224781.92, tol: 0.01,
		},
	}
}

func krovakParams() *coordxform.Parameters {
	return ellipsoidParams(6377397.155, 299.1528128).
		Set("latitude_of_center", 49.5).
		Set("longitude_of_center", 24.83333333333333).
		Set("azimuth", 30.28813972222222).
		Set("pseudo_standard_parallel_1", 78.5).
		Set("scale_factor", 0.9999)
}

func borneoParams() *coordxform.Parameters {
	return ellipsoidParams(6377298.556, 300.8017).
		Set("latitude_of_center", 4).
		Set("longitude_of_center", 115).
		Set("azimuth", dms(53, 18, 56.9537)).
		Set("rectified_grid_angle", dms(53, 7, 48.3685)).
		Set("scale_factor", 0.99984)
}

// eastWestParams has the central line running due east through the centre.
func eastWestParams() *coordxform.Parameters {
	return ellipsoidParams(6378137, 298.257223563).
		Set("latitude_of_center", 45).
		Set("longitude_of_center", 30).
		Set("azimuth", 90)
}

func TestProjectionForward(t *testing.T) {
	for _, tc := range projectionCases() {
		t.Run(tc.name, func(t *testing.T) {
			p, err := tc.ctor(tc.params)
			require.NoError(t, err)
			x, y, z, err := p.Forward(tc.lon, tc.lat, 0)
			require.NoError(t, err)
			requireXY(t, tc.x, tc.y, x, y, tc.tol)
			require.Zero(t, z)
		})
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	for _, tc := range projectionCases() {
		t.Run(tc.name, func(t *testing.T) {
			p, err := tc.ctor(tc.params)
			require.NoError(t, err)
			x, y, _, err := p.Forward(tc.lon, tc.lat, 0)
			require.NoError(t, err)
			lon, lat, _, err := p.Reverse(x, y, 0)
			require.NoError(t, err)
			requireXY(t, tc.lon, tc.lat, lon, lat, 1e-6)
		})
	}
}

func TestProjectionRoundTripGrid(t *testing.T) {
	tests := []struct {
		name   string
		ctor   func(*coordxform.Parameters) (*coordxform.Projection, error)
		params *coordxform.Parameters
		lons   [2]float64
		lats   [2]float64
	}{
		{"transverse mercator", coordxform.NewTransverseMercator,
			ellipsoidParams(6378137, 298.257223563).Set("central_meridian", 9).Set("scale_factor", 0.9996),
			[2]float64{6, 12}, [2]float64{-70, 70}},
		{"mercator", coordxform.NewMercator, ellipsoidParams(6378137, 298.257223563),
			[2]float64{-179, 179}, [2]float64{-85, 85}},
		{"albers", coordxform.NewAlbersEqualArea,
			ellipsoidParams(6378137, 298.257223563).Set("standard_parallel_1", 20).Set("standard_parallel_2", 60),
			[2]float64{-60, 60}, [2]float64{-10, 80}},
		{"lambert conformal conic 1SP", coordxform.NewLambertConformalConic1SP,
			ellipsoidParams(6378137, 298.257223563).Set("latitude_of_origin", 46.5).Set("central_meridian", 3),
			[2]float64{-10, 15}, [2]float64{35, 60}},
		{"cassini", coordxform.NewCassiniSoldner,
			ellipsoidParams(6378137, 298.257223563).Set("latitude_of_origin", 10),
			[2]float64{-3, 3}, [2]float64{0, 40}},
		{"polyconic", coordxform.NewPolyconic,
			ellipsoidParams(6378137, 298.257223563).Set("latitude_of_origin", 10),
			[2]float64{-20, 20}, [2]float64{-40, 40}},
		{"polyconic sphere", coordxform.NewPolyconic,
			ellipsoidParams(6371000, 0).Set("latitude_of_origin", 10),
			[2]float64{-20, 20}, [2]float64{-40, 40}},
		{"polar stereographic south", coordxform.NewPolarStereographic,
			ellipsoidParams(6378137, 298.257223563).Set("latitude_of_origin", -90).Set("scale_factor", 0.994),
			[2]float64{-175, 175}, [2]float64{-89, -60}},
		{"polar stereographic variant B", coordxform.NewPolarStereographic,
			ellipsoidParams(6378137, 298.257223563).Set("standard_parallel_1", -71).Set("central_meridian", 70),
			[2]float64{-175, 175}, [2]float64{-89, -50}},
		{"lambert azimuthal equal area", coordxform.NewLambertAzimuthalEqualArea,
			ellipsoidParams(6378137, 298.257222101).Set("latitude_of_center", 52).Set("longitude_of_center", 10),
			[2]float64{-30, 40}, [2]float64{30, 75}},
		{"lambert azimuthal equal area sphere", coordxform.NewLambertAzimuthalEqualArea,
			ellipsoidParams(6371000, 0).Set("latitude_of_center", 90),
			[2]float64{-175, 175}, [2]float64{10, 89}},
		{"oblique stereographic", coordxform.NewObliqueStereographic,
			ellipsoidParams(6377397.155, 299.15281).Set("latitude_of_origin", 52).Set("central_meridian", 5),
			[2]float64{-5, 15}, [2]float64{45, 60}},
		{"orthographic", coordxform.NewOrthographic,
			ellipsoidParams(6378137, 298.257223563).Set("latitude_of_origin", 55).Set("central_meridian", 5),
			[2]float64{-30, 40}, [2]float64{30, 80}},
		{"orthographic equatorial", coordxform.NewOrthographic,
			ellipsoidParams(6378137, 298.257223563),
			[2]float64{-80, 80}, [2]float64{-80, 80}},
		{"transverse mercator with latitude of origin", coordxform.NewTransverseMercator,
			ellipsoidParams(6378137, 298.257223563).Set("latitude_of_origin", 49).Set("scale_factor", 0.9996),
			[2]float64{-3, 3}, [2]float64{-70, 70}},
		{"krovak", coordxform.NewKrovak, krovakParams(),
			[2]float64{12, 24}, [2]float64{47, 52}},
		{"oblique mercator", coordxform.NewObliqueMercator, borneoParams(),
			[2]float64{109, 119}, [2]float64{0, 7}},
		{"hotine oblique mercator", coordxform.NewHotineObliqueMercator, borneoParams(),
			[2]float64{109, 119}, [2]float64{0, 7}},
		{"oblique mercator, azimuth 90", coordxform.NewObliqueMercator, eastWestParams(),
			[2]float64{20, 40}, [2]float64{40, 50}},
		{"hotine oblique mercator, azimuth 90", coordxform.NewHotineObliqueMercator, eastWestParams(),
			[2]float64{20, 40}, [2]float64{40, 50}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := tc.ctor(tc.params)
			require.NoError(t, err)
			for lon := tc.lons[0]; lon <= tc.lons[1]; lon += (tc.lons[1] - tc.lons[0]) / 8 {
				for lat := tc.lats[0]; lat <= tc.lats[1]; lat += (tc.lats[1] - tc.lats[0]) / 8 {
					x, y, _, err := p.Forward(lon, lat, 0)
					require.NoError(t, err, "forward (%g, %g)", lon, lat)
					lon2, lat2, _, err := p.Reverse(x, y, 0)
					require.NoError(t, err, "reverse (%g, %g)", lon, lat)
					require.InDelta(t, lat, lat2, 1e-6, "latitude at (%g, %g)", lon, lat)
					require.InDelta(t, lon, lon2, 1e-6, "longitude at (%g, %g)", lon, lat)
				}
			}
		})
	}
}

func TestProjectionMissingParameter(t *testing.T) {
	_, err := coordxform.NewAlbersEqualArea(ellipsoidParams(6378137, 298.257223563).Set("standard_parallel_1", 20))
	require.True(t, errors.Is(err, coordxform.ErrConfiguration), "%v", err)
	require.Contains(t, err.Error(), "standard_parallel_2")

	_, err = coordxform.NewKrovak(ellipsoidParams(6377397.155, 299.1528128).
		Set("latitude_of_center", 49.5).
		Set("longitude_of_center", 24.83333333333333).
		Set("pseudo_standard_parallel_1", 78.5))
	require.True(t, errors.Is(err, coordxform.ErrConfiguration), "%v", err)
	require.Contains(t, err.Error(), `"azimuth"`)
	require.Contains(t, err.Error(), "co_latitude_of_cone_axis")

	_, err = coordxform.NewTransverseMercator(coordxform.NewParameters().Set("semi_major", 6378137))
	require.True(t, errors.Is(err, coordxform.ErrConfiguration), "%v", err)
	require.Contains(t, err.Error(), "semi_minor")
}

func TestProjectionIgnoresUnknownParameters(t *testing.T) {
	p, err := coordxform.NewMercator(ellipsoidParams(6378137, 298.257223563).Set("not_a_parameter", 42))
	require.NoError(t, err)
	x, y, _, err := p.Forward(0, 0, 0)
	require.NoError(t, err)
	requireXY(t, 0, 0, x, y, 1e-9)
}

func TestProjectionAlbersOppositeParallels(t *testing.T) {
	_, err := coordxform.NewAlbersEqualArea(ellipsoidParams(6378137, 298.257223563).
		Set("standard_parallel_1", 30).
		Set("standard_parallel_2", -30))
	require.True(t, errors.Is(err, coordxform.ErrConfiguration), "%v", err)
}

func TestProjectionDomainErrors(t *testing.T) {
	merc, err := coordxform.NewMercator(ellipsoidParams(6378137, 298.257223563))
	require.NoError(t, err)
	_, _, _, err = merc.Forward(0, 90, 0)
	require.True(t, errors.Is(err, coordxform.ErrDomain), "%v", err)
	_, _, _, err = merc.Forward(0, 91, 0)
	require.True(t, errors.Is(err, coordxform.ErrDomain), "%v", err)

	ortho, err := coordxform.NewOrthographic(ellipsoidParams(6378137, 298.257223563).
		Set("latitude_of_origin", 55).
		Set("central_meridian", 5))
	require.NoError(t, err)
	_, _, _, err = ortho.Forward(-175, -40, 0)
	require.True(t, errors.Is(err, coordxform.ErrDomain), "%v", err)
	_, _, _, err = ortho.Reverse(7e6, 0, 0)
	require.True(t, errors.Is(err, coordxform.ErrDomain), "%v", err)

	polar, err := coordxform.NewPolarStereographic(ellipsoidParams(6378137, 298.257223563).
		Set("latitude_of_origin", 90).
		Set("scale_factor", 0.994))
	require.NoError(t, err)
	_, _, _, err = polar.Forward(0, -10, 0)
	require.True(t, errors.Is(err, coordxform.ErrDomain), "%v", err)
}

func TestProjectionOrthographicCentre(t *testing.T) {
	p, err := coordxform.NewOrthographic(ellipsoidParams(6378137, 298.257223563).
		Set("latitude_of_origin", 55).
		Set("central_meridian", 5))
	require.NoError(t, err)
	lon, lat, _, err := p.Reverse(0, 0, 0)
	require.NoError(t, err)
	requireXY(t, 5, 55, lon, lat, 1e-9)
}

func TestProjectionAccessors(t *testing.T) {
	params := ellipsoidParams(6378137, 298.257223563).Set("Central_Meridian", 9)
	p, err := coordxform.NewTransverseMercator(params)
	require.NoError(t, err)
	require.Equal(t, "Transverse_Mercator", p.Class())
	require.Equal(t, coordxform.KindConversion, p.Kind())
	require.InDelta(t, 9*3.141592653589793/180, p.Base().CentralMeridian, 1e-15)
	require.True(t, p.Parameters().Equal(params))
	src, dst := p.Dimensions()
	require.Equal(t, 2, src)
	require.Equal(t, 2, dst)

	params.Set("central_meridian", 3)
	require.InDelta(t, 9*3.141592653589793/180, p.Base().CentralMeridian, 1e-15)
}

func TestObliqueMercatorCentreAtFalseOrigin(t *testing.T) {
	// CH1903 / LV03
	lv03 := ellipsoidParams(6377397.155, 299.1528128).
		Set("latitude_of_center", dms(46, 57, 8.66)).
		Set("longitude_of_center", dms(7, 26, 22.5)).
		Set("azimuth", 90).
		Set("rectified_grid_angle", 90).
		Set("scale_factor", 1).
		Set("false_easting", 600000).
		Set("false_northing", 200000)
	p, err := coordxform.NewObliqueMercator(lv03)
	require.NoError(t, err)
	x, y, _, err := p.Forward(dms(7, 26, 22.5), dms(46, 57, 8.66), 0)
	require.NoError(t, err)
	requireXY(t, 600000, 200000, x, y, 1e-3)

	p, err = coordxform.NewObliqueMercator(eastWestParams())
	require.NoError(t, err)
	x, y, _, err = p.Forward(30, 45, 0)
	require.NoError(t, err)
	requireXY(t, 0, 0, x, y, 1e-3)

	// points on the meridian through the centre
	for _, lat := range []float64{40, 44, 46, 50} {
		x, y, _, err = p.Forward(30, lat, 0)
		require.NoError(t, err)
		require.InDelta(t, 0, x, 1e-3, "latitude %g", lat)
		lon, lat2, _, err := p.Reverse(x, y, 0)
		require.NoError(t, err)
		requireXY(t, 30, lat, lon, lat2, 1e-9)
	}
}

func TestTransverseMercatorFarFromOrigin(t *testing.T) {
	p, err := coordxform.NewTransverseMercator(ellipsoidParams(6378137, 298.257223563).
		Set("latitude_of_origin", 49).
		Set("scale_factor", 0.9996))
	require.NoError(t, err)
	x, y, _, err := p.Forward(0, -45, 0)
	require.NoError(t, err)
	require.Less(t, y, -1e7)
	lon, lat, _, err := p.Reverse(x, y, 0)
	require.NoError(t, err)
	requireXY(t, 0, -45, lon, lat, 1e-9)
}
