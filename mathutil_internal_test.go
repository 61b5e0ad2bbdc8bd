package coordxform

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestPhi2zConvergence(t *testing.T) {
	e := math.Sqrt(WGS84Ellipsoid.EccentricitySquared())
	phi, err := phi2z(e, 0.5, 15, 1e-10)
	require.NoError(t, err)
	require.InDelta(t, 0.5, tsfn(phi, math.Sin(phi), e), 1e-12)

	_, err = phi2z(e, 0.5, 1, 0)
	require.True(t, errors.Is(err, ErrConvergence), "%v", err)
	require.False(t, errors.Is(err, ErrDomain))
}

func TestInvMlfnConvergence(t *testing.T) {
	es := WGS84Ellipsoid.EccentricitySquared()
	en := enfn(es)
	phi := toRadians(52)
	m := mlfn(phi, math.Sin(phi), math.Cos(phi), &en)
	got, err := invMlfn(m, es, &en)
	require.NoError(t, err)
	require.InDelta(t, phi, got, 1e-11)

	_, err = invMlfn(math.NaN(), es, &en)
	require.True(t, errors.Is(err, ErrConvergence), "%v", err)
}
