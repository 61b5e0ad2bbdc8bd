package coordxform

import (
	"fmt"
)

// PrimeMeridianShift moves longitudes in degrees from one prime meridian to
// another.
type PrimeMeridianShift struct {
	from, to PrimeMeridian
	delta    float64 // degrees added by the forward direction
	dim      int
}

// NewPrimeMeridianShift returns the shift for coordinates of dimension dim.
// Both meridians must be expressed in the same angular unit.
func NewPrimeMeridianShift(from, to PrimeMeridian, dim int) (*PrimeMeridianShift, error) {
	if !from.Unit.Equal(to.Unit) {
		return nil, configErrorf("prime meridians %q and %q use different angular units (%s, %s)",
			from.Name, to.Name, from.Unit.Name, to.Unit.Name)
	}
	return &PrimeMeridianShift{
		from:  from,
		to:    to,
		delta: from.Unit.toDegrees(from.Longitude - to.Longitude),
		dim:   dim,
	}, nil
}

func (p *PrimeMeridianShift) Name() string {
	return fmt.Sprintf("Prime meridian shift(%s -> %s)", p.from.Name, p.to.Name)
}

func (p *PrimeMeridianShift) Kind() Kind { return KindConversion }

func (p *PrimeMeridianShift) Dimensions() (int, int) { return p.dim, p.dim }

func (p *PrimeMeridianShift) Forward(lon, lat, z float64) (float64, float64, float64, error) {
	return lon + p.delta, lat, z, nil
}

func (p *PrimeMeridianShift) Reverse(lon, lat, z float64) (float64, float64, float64, error) {
	return lon - p.delta, lat, z, nil
}

// GeographicConversion converts between two geographic systems on the same
// datum that differ only in angular unit or prime meridian. Between
// identical systems it is the identity.
type GeographicConversion struct {
	src, dst *GeographicCRS
	delta    float64 // prime meridian difference in degrees
}

// NewGeographicConversion returns the normaliser from src to dst.
func NewGeographicConversion(src, dst *GeographicCRS) (*GeographicConversion, error) {
	if !src.Datum.Equal(dst.Datum) {
		return nil, configErrorf("geographic conversion between different datums %q and %q", src.Datum.Name, dst.Datum.Name)
	}
	for _, u := range []AngularUnit{src.Unit, dst.Unit} {
		if !(u.RadiansPerUnit > 0) {
			return nil, configErrorf("invalid angular unit %q", u.Name)
		}
	}
	return &GeographicConversion{
		src:   src,
		dst:   dst,
		delta: src.PrimeMeridian.Degrees() - dst.PrimeMeridian.Degrees(),
	}, nil
}

func (g *GeographicConversion) Name() string {
	return fmt.Sprintf("Geographic(%s %s -> %s %s)",
		g.src.Unit.Name, g.src.PrimeMeridian.Name, g.dst.Unit.Name, g.dst.PrimeMeridian.Name)
}

func (g *GeographicConversion) Kind() Kind { return KindConversion }

func (g *GeographicConversion) Dimensions() (int, int) { return g.src.Dimension(), g.dst.Dimension() }

func (g *GeographicConversion) Forward(lon, lat, z float64) (float64, float64, float64, error) {
	return g.convert(g.src, g.dst, g.delta, lon, lat, z)
}

func (g *GeographicConversion) Reverse(lon, lat, z float64) (float64, float64, float64, error) {
	return g.convert(g.dst, g.src, -g.delta, lon, lat, z)
}

func (g *GeographicConversion) convert(src, dst *GeographicCRS, delta, lon, lat, z float64) (float64, float64, float64, error) {
	lon = src.Unit.toDegrees(lon) + delta
	lat = src.Unit.toDegrees(lat)
	if !dst.WithHeight {
		z = 0
	}
	return dst.Unit.fromDegrees(lon), dst.Unit.fromDegrees(lat), z, nil
}
