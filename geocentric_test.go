package coordxform_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/coordxform"
)

func TestGeocentricForward(t *testing.T) {
	g, err := coordxform.NewGeocentricConversion(grs80, coordxform.Metre, 3)
	require.NoError(t, err)
	x, y, z, err := g.Forward(dms(2, 7, 46.38), dms(53, 48, 33.82), 73)
	require.NoError(t, err)
	require.InDelta(t, 3771793.97, x, 0.01)
	require.InDelta(t, 140253.34, y, 0.01)
	require.InDelta(t, 5124304.35, z, 0.01)

	lon, lat, h, err := g.Reverse(x, y, z)
	require.NoError(t, err)
	require.InDelta(t, dms(2, 7, 46.38), lon, 1e-9)
	require.InDelta(t, dms(53, 48, 33.82), lat, 1e-7)
	require.InDelta(t, 73, h, 0.01)
}

func TestGeocentricRoundTrip(t *testing.T) {
	g, err := coordxform.NewGeocentricConversion(coordxform.WGS84Ellipsoid, coordxform.Metre, 3)
	require.NoError(t, err)
	for lat := -89.0; lat <= 89; lat += 11 {
		for lon := -179.0; lon <= 179; lon += 17 {
			for _, h := range []float64{-100, 0, 2500} {
				x, y, z, err := g.Forward(lon, lat, h)
				require.NoError(t, err)
				lon2, lat2, h2, err := g.Reverse(x, y, z)
				require.NoError(t, err)
				require.InDelta(t, lon, lon2, 1e-9)
				require.InDelta(t, lat, lat2, 1e-7)
				require.InDelta(t, h, h2, 0.01)
			}
		}
	}
}

func TestGeocentricUnitsAndDimensions(t *testing.T) {
	km := coordxform.LinearUnit{Name: "kilometre", MetersPerUnit: 1000}
	g, err := coordxform.NewGeocentricConversion(coordxform.WGS84Ellipsoid, km, 2)
	require.NoError(t, err)
	x, y, z, err := g.Forward(0, 0, 500)
	require.NoError(t, err)
	require.InDelta(t, 6378.137, x, 1e-9)
	require.InDelta(t, 0, y, 1e-9)
	require.InDelta(t, 0, z, 1e-9)

	// two dimensional input drops the height on the way back
	_, _, h, err := g.Reverse(6400, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, h)
}

func TestGeocentricPoles(t *testing.T) {
	g, err := coordxform.NewGeocentricConversion(coordxform.WGS84Ellipsoid, coordxform.Metre, 3)
	require.NoError(t, err)
	b := coordxform.WGS84Ellipsoid.SemiMinor

	lon, lat, h, err := g.Reverse(0, 0, b+10)
	require.NoError(t, err)
	require.Equal(t, 0.0, lon)
	require.InDelta(t, 90, lat, 1e-12)
	require.InDelta(t, 10, h, 1e-6)

	_, lat, _, err = g.Reverse(0, 0, -b)
	require.NoError(t, err)
	require.InDelta(t, -90, lat, 1e-12)

	_, lat, h, err = g.Reverse(0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 90.0, lat)
	require.InDelta(t, -b, h, 1e-6)
}

func TestGeocentricErrors(t *testing.T) {
	_, err := coordxform.NewGeocentricConversion(coordxform.Ellipsoid{Name: "bad", SemiMajor: 1, SemiMinor: 2}, coordxform.Metre, 3)
	require.True(t, errors.Is(err, coordxform.ErrConfiguration))
	_, err = coordxform.NewGeocentricConversion(grs80, coordxform.Metre, 4)
	require.True(t, errors.Is(err, coordxform.ErrConfiguration))

	g, err := coordxform.NewGeocentricConversion(grs80, coordxform.Metre, 3)
	require.NoError(t, err)
	_, _, _, err = g.Forward(0, 90.5, 0)
	require.True(t, errors.Is(err, coordxform.ErrDomain))
}

func TestDatumShiftRoundTrip(t *testing.T) {
	d := coordxform.NewDatumShift(sjtskTo)
	g, err := coordxform.NewGeocentricConversion(bessel, coordxform.Metre, 3)
	require.NoError(t, err)
	for _, p := range [][2]float64{{12, 48}, {18.5, 49.5}, {-120, -35}, {90, 80}} {
		x, y, z, err := g.Forward(p[0], p[1], 300)
		require.NoError(t, err)
		sx, sy, sz, err := d.Forward(x, y, z)
		require.NoError(t, err)
		require.Greater(t, abs(sx-x)+abs(sy-y)+abs(sz-z), 100.0)
		rx, ry, rz, err := d.Reverse(sx, sy, sz)
		require.NoError(t, err)
		require.InDelta(t, x, rx, 0.01)
		require.InDelta(t, y, ry, 0.01)
		require.InDelta(t, z, rz, 0.01)
	}
}

func TestDatumShiftTranslation(t *testing.T) {
	d := coordxform.NewDatumShift(coordxform.ShiftParameters{Dx: -168, Dy: -60, Dz: 320})
	x, y, z, err := d.Forward(4000000, 100000, 4800000)
	require.NoError(t, err)
	require.Equal(t, []float64{3999832, 99940, 4800320}, []float64{x, y, z})
	x, y, z, err = d.Reverse(x, y, z)
	require.NoError(t, err)
	require.Equal(t, []float64{4000000, 100000, 4800000}, []float64{x, y, z})
	require.Equal(t, "Datum shift(-168,-60,320,0,0,0,0)", d.Name())
	require.Equal(t, coordxform.KindTransformation, d.Kind())
}

func TestLinearScale(t *testing.T) {
	_, err := coordxform.NewLinearScale(0)
	require.True(t, errors.Is(err, coordxform.ErrConfiguration))
	s, err := coordxform.NewLinearScale(0.001)
	require.NoError(t, err)
	x, _, _, err := s.Forward(2000, 0, 0)
	require.NoError(t, err)
	require.InDelta(t, 2, x, 1e-12)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
