package coordxform

import (
	"fmt"
	"math"
)

// CRSKind identifies the kind of a coordinate reference system.
type CRSKind int

// CRS kinds.
const (
	CRSGeographic CRSKind = iota + 1
	CRSProjected
	CRSGeocentric
	CRSFitted
	CRSCompound
)

func (k CRSKind) String() string {
	switch k {
	case CRSGeographic:
		return "geographic"
	case CRSProjected:
		return "projected"
	case CRSGeocentric:
		return "geocentric"
	case CRSFitted:
		return "fitted"
	case CRSCompound:
		return "compound"
	}
	return fmt.Sprintf("CRSKind(%d)", int(k))
}

// CRS describes a coordinate reference system. The engine only reads the
// kind specific fields of the concrete types below.
type CRS interface {
	Kind() CRSKind
	Dimension() int
	// AxisUnit returns the size of the unit of axis i: radians per unit for
	// angular axes, metres per unit for linear ones.
	AxisUnit(i int) float64
	String() string
}

// Ellipsoid is a reference ellipsoid.
type Ellipsoid struct {
	Name              string
	SemiMajor         float64
	SemiMinor         float64
	InverseFlattening float64 // zero for a sphere
}

// NewEllipsoid builds an ellipsoid from its semi-major axis and inverse
// flattening. An inverse flattening of zero (or infinity) gives a sphere.
func NewEllipsoid(name string, semiMajor, inverseFlattening float64) Ellipsoid {
	e := Ellipsoid{Name: name, SemiMajor: semiMajor, SemiMinor: semiMajor}
	if inverseFlattening != 0 && !math.IsInf(inverseFlattening, 0) {
		e.InverseFlattening = inverseFlattening
		e.SemiMinor = semiMajor * (1 - 1/inverseFlattening)
	}
	return e
}

// NewEllipsoidFromAxes builds an ellipsoid from both semi-axes.
func NewEllipsoidFromAxes(name string, semiMajor, semiMinor float64) Ellipsoid {
	e := Ellipsoid{Name: name, SemiMajor: semiMajor, SemiMinor: semiMinor}
	if semiMajor != semiMinor {
		e.InverseFlattening = semiMajor / (semiMajor - semiMinor)
	}
	return e
}

// Flattening returns (a - b) / a.
func (e Ellipsoid) Flattening() float64 {
	return (e.SemiMajor - e.SemiMinor) / e.SemiMajor
}

// EccentricitySquared returns (a² - b²) / a².
func (e Ellipsoid) EccentricitySquared() float64 {
	return (e.SemiMajor*e.SemiMajor - e.SemiMinor*e.SemiMinor) / (e.SemiMajor * e.SemiMajor)
}

// Equal compares the axes. Names are ignored.
func (e Ellipsoid) Equal(o Ellipsoid) bool {
	return floatsEqual(e.SemiMajor, o.SemiMajor) && floatsEqual(e.SemiMinor, o.SemiMinor)
}

func (e Ellipsoid) validate() error {
	if !(e.SemiMajor > 0) || !(e.SemiMinor > 0) || e.SemiMinor > e.SemiMajor {
		return configErrorf("ellipsoid %q: invalid axes a=%g b=%g", e.Name, e.SemiMajor, e.SemiMinor)
	}
	return nil
}

// AngularUnit is a unit of angle.
type AngularUnit struct {
	Name           string
	RadiansPerUnit float64
}

// Equal compares the unit sizes.
func (u AngularUnit) Equal(o AngularUnit) bool {
	return floatsEqual(u.RadiansPerUnit, o.RadiansPerUnit)
}

func (u AngularUnit) toDegrees(v float64) float64 {
	if u.Equal(Degree) {
		return v
	}
	return toDegrees(v * u.RadiansPerUnit)
}

func (u AngularUnit) fromDegrees(v float64) float64 {
	if u.Equal(Degree) {
		return v
	}
	return toRadians(v) / u.RadiansPerUnit
}

// LinearUnit is a unit of length.
type LinearUnit struct {
	Name          string
	MetersPerUnit float64
}

// Equal compares the unit sizes.
func (u LinearUnit) Equal(o LinearUnit) bool { return floatsEqual(u.MetersPerUnit, o.MetersPerUnit) }

// PrimeMeridian is the zero meridian of a geographic system, given as a
// longitude from Greenwich in Unit.
type PrimeMeridian struct {
	Name      string
	Longitude float64
	Unit      AngularUnit
}

// Degrees returns the longitude from Greenwich in degrees.
func (p PrimeMeridian) Degrees() float64 { return p.Unit.toDegrees(p.Longitude) }

// Equal compares the meridian positions.
func (p PrimeMeridian) Equal(o PrimeMeridian) bool { return floatsEqual(p.Degrees(), o.Degrees()) }

// Datum is a geodetic datum. ToWGS84 nil means the relation to WGS 84 is
// unknown; a zero set means the datum coincides with WGS 84. When Grid is
// set the datum is related to WGS 84 through the grid instead.
type Datum struct {
	Name      string
	Ellipsoid Ellipsoid
	ToWGS84   *ShiftParameters
	Grid      GridShifter
}

// Equal compares ellipsoid, shift parameters and grid.
func (d Datum) Equal(o Datum) bool {
	if !d.Ellipsoid.Equal(o.Ellipsoid) || d.Grid != o.Grid {
		return false
	}
	if d.ToWGS84 == nil || o.ToWGS84 == nil {
		return d.ToWGS84 == nil && o.ToWGS84 == nil
	}
	return d.ToWGS84.Equal(*o.ToWGS84)
}

// GeographicCRS is a longitude/latitude system, with optional ellipsoidal
// height.
type GeographicCRS struct {
	Name          string
	Datum         Datum
	PrimeMeridian PrimeMeridian
	Unit          AngularUnit
	WithHeight    bool
}

func (g *GeographicCRS) Kind() CRSKind { return CRSGeographic }

func (g *GeographicCRS) Dimension() int {
	if g.WithHeight {
		return 3
	}
	return 2
}

func (g *GeographicCRS) AxisUnit(i int) float64 {
	if i == 2 {
		return 1
	}
	return g.Unit.RadiansPerUnit
}

func (g *GeographicCRS) String() string { return g.Name }

// sameFrame reports whether g and o share datum, prime meridian and unit.
func (g *GeographicCRS) sameFrame(o *GeographicCRS) bool {
	return g.Datum.Equal(o.Datum) && g.PrimeMeridian.Equal(o.PrimeMeridian) && g.Unit.Equal(o.Unit)
}

// ProjectionDef names a projection class and its parameters.
type ProjectionDef struct {
	Class      string
	Parameters *Parameters
}

// ProjectedCRS is a planar system defined by a projection of a geographic
// system.
type ProjectedCRS struct {
	Name       string
	Base       *GeographicCRS
	Projection ProjectionDef
	Unit       LinearUnit
}

func (p *ProjectedCRS) Kind() CRSKind { return CRSProjected }

func (p *ProjectedCRS) Dimension() int { return 2 }

func (p *ProjectedCRS) AxisUnit(int) float64 { return p.Unit.MetersPerUnit }

func (p *ProjectedCRS) String() string { return p.Name }

// GeocentricCRS is an earth-centred cartesian system.
type GeocentricCRS struct {
	Name          string
	Datum         Datum
	PrimeMeridian PrimeMeridian
	Unit          LinearUnit
}

func (g *GeocentricCRS) Kind() CRSKind { return CRSGeocentric }

func (g *GeocentricCRS) Dimension() int { return 3 }

func (g *GeocentricCRS) AxisUnit(int) float64 { return g.Unit.MetersPerUnit }

func (g *GeocentricCRS) String() string { return g.Name }

// FittedCRS is a local system related to Base by an affine transform.
type FittedCRS struct {
	Name   string
	Base   CRS
	ToBase AffineParams
}

func (f *FittedCRS) Kind() CRSKind { return CRSFitted }

func (f *FittedCRS) Dimension() int { return 2 }

func (f *FittedCRS) AxisUnit(i int) float64 {
	if isNilCRS(f.Base) {
		return 1
	}
	return f.Base.AxisUnit(i)
}

func (f *FittedCRS) String() string { return f.Name }

// CompoundCRS joins a horizontal and a vertical system.
type CompoundCRS struct {
	Name string
	Head CRS
	Tail CRS
}

func (c *CompoundCRS) Kind() CRSKind { return CRSCompound }

func (c *CompoundCRS) Dimension() int { return c.Head.Dimension() + c.Tail.Dimension() }

func (c *CompoundCRS) AxisUnit(i int) float64 {
	if n := c.Head.Dimension(); i >= n {
		return c.Tail.AxisUnit(i - n)
	}
	return c.Head.AxisUnit(i)
}

func (c *CompoundCRS) String() string { return c.Name }

// isNilCRS reports whether c is nil or a nil pointer of a known kind.
func isNilCRS(c CRS) bool {
	switch c := c.(type) {
	case nil:
		return true
	case *GeographicCRS:
		return c == nil
	case *ProjectedCRS:
		return c == nil
	case *GeocentricCRS:
		return c == nil
	case *FittedCRS:
		return c == nil
	case *CompoundCRS:
		return c == nil
	}
	return false
}

// checkCRS rejects descriptors with missing parts.
func checkCRS(c CRS) error {
	if isNilCRS(c) {
		return configErrorf("missing coordinate reference system")
	}
	switch c := c.(type) {
	case *ProjectedCRS:
		if isNilCRS(c.Base) {
			return configErrorf("projected system %q has no base geographic system", c.Name)
		}
	case *FittedCRS:
		if isNilCRS(c.Base) {
			return configErrorf("fitted system %q has no base system", c.Name)
		}
		return checkCRS(c.Base)
	case *CompoundCRS:
		if isNilCRS(c.Head) || isNilCRS(c.Tail) {
			return configErrorf("compound system %q is incomplete", c.Name)
		}
	}
	return nil
}

// EqualCRS reports whether a and b describe the same system. Names are
// ignored and numeric values are compared to within a few ULPs.
func EqualCRS(a, b CRS) bool {
	if isNilCRS(a) || isNilCRS(b) {
		return isNilCRS(a) && isNilCRS(b)
	}
	if a.Kind() != b.Kind() || a.Dimension() != b.Dimension() {
		return false
	}
	switch a := a.(type) {
	case *GeographicCRS:
		return a.sameFrame(b.(*GeographicCRS))
	case *ProjectedCRS:
		b := b.(*ProjectedCRS)
		return normalizeName(a.Projection.Class) == normalizeName(b.Projection.Class) &&
			a.Projection.Parameters.Equal(b.Projection.Parameters) &&
			a.Unit.Equal(b.Unit) && EqualCRS(a.Base, b.Base)
	case *GeocentricCRS:
		b := b.(*GeocentricCRS)
		return a.Datum.Equal(b.Datum) && a.PrimeMeridian.Equal(b.PrimeMeridian) && a.Unit.Equal(b.Unit)
	case *FittedCRS:
		b := b.(*FittedCRS)
		return a.ToBase.Equal(b.ToBase) && EqualCRS(a.Base, b.Base)
	case *CompoundCRS:
		b := b.(*CompoundCRS)
		return EqualCRS(a.Head, b.Head) && EqualCRS(a.Tail, b.Tail)
	}
	return false
}
