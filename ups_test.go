package coordxform_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/coordxform"
)

func mustUPS(t *testing.T, h coordxform.Hemisphere) *coordxform.ProjectedCRS {
	t.Helper()
	c, err := coordxform.NewUPSCRS(coordxform.WGS84, h)
	require.NoError(t, err)
	return c
}

func TestUPSRoundTrip(t *testing.T) {
	f := mustFactory(t)
	transforms := map[coordxform.Hemisphere][2]coordxform.Transform{}
	for _, h := range []coordxform.Hemisphere{coordxform.HemisphereNorth, coordxform.HemisphereSouth} {
		fwd, err := f.Create(coordxform.WGS84, mustUPS(t, h))
		require.NoError(t, err)
		rev, err := fwd.Inverse()
		require.NoError(t, err)
		transforms[h] = [2]coordxform.Transform{fwd, rev}
	}
	const latInc = 0.25
	const lngInc = 5
	for lng := -180.0; lng < 180; lng += lngInc {
		for lat := -90.0; lat <= 90; lat += latInc {
			geo := s2.LatLngFromDegrees(lat, lng)
			h, err := coordxform.UPSHemisphere(geo)
			if err != nil {
				continue
			}
			tr := transforms[h]
			mc, err := coordxform.TransformLatLng(tr[0], geo)
			if err != nil {
				t.Fatalf("expected no error projecting %s (%s)", geo, err)
			}
			geo2, err := coordxform.TransformMapCoords(tr[1], mc)
			if err != nil {
				t.Fatalf("expected no error in round trip, got one at %s (%s)", geo, err)
			}
			// longitude is undefined at the poles
			if lat == 90 || lat == -90 {
				require.InDelta(t, lat, geo2.Lat.Degrees(), 1e-9)
				continue
			}
			if geo.Distance(geo2) > 1e-10*s1.Radian {
				t.Fatalf("expected %s, got %s", geo, geo2)
			}
		}
	}
}

func TestUPSKnownValues(t *testing.T) {
	f := mustFactory(t)
	north, err := f.Create(coordxform.WGS84, mustUPS(t, coordxform.HemisphereNorth))
	require.NoError(t, err)
	x, y, _, err := north.Transform(0, 90, 0)
	require.NoError(t, err)
	requireXY(t, 2000000, 2000000, x, y, 1e-6)
	x, y, _, err = north.Transform(30, 85, 0)
	require.NoError(t, err)
	requireXY(t, 2277728.6957, 1518959.7883, x, y, 1e-3)

	south, err := f.Create(coordxform.WGS84, mustUPS(t, coordxform.HemisphereSouth))
	require.NoError(t, err)
	x, y, _, err = south.Transform(-45, -80, 0)
	require.NoError(t, err)
	requireXY(t, 1213024.7039, 2786975.2961, x, y, 1e-3)

	_, _, _, err = south.Transform(0, 10, 0)
	require.True(t, errors.Is(err, coordxform.ErrDomain))
}

func TestUPSHemisphere(t *testing.T) {
	h, err := coordxform.UPSHemisphere(s2.LatLngFromDegrees(84, 0))
	require.NoError(t, err)
	require.Equal(t, coordxform.HemisphereNorth, h)
	h, err = coordxform.UPSHemisphere(s2.LatLngFromDegrees(-80, 0))
	require.NoError(t, err)
	require.Equal(t, coordxform.HemisphereSouth, h)
	_, err = coordxform.UPSHemisphere(s2.LatLngFromDegrees(45, 0))
	require.True(t, errors.Is(err, coordxform.ErrDomain))

	require.Equal(t, "WGS 84 / UPS S", mustUPS(t, coordxform.HemisphereSouth).Name)
	require.Equal(t, "north", coordxform.HemisphereNorth.String())
	_, err = coordxform.NewUPSCRS(coordxform.WGS84, coordxform.HemisphereInvalid)
	require.True(t, errors.Is(err, coordxform.ErrConfiguration))
}
