package coordxform

import (
	"github.com/cockroachdb/errors"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Kind describes how exact a transform is.
type Kind uint8

// Kind values. A conversion is exact and defined by parameters (a
// projection); a transformation is empirically fitted (a datum shift).
const (
	KindConversion Kind = 1 << iota
	KindTransformation

	KindConversionTransformation = KindConversion | KindTransformation
)

func (k Kind) String() string {
	switch k {
	case KindConversion:
		return "conversion"
	case KindTransformation:
		return "transformation"
	case KindConversionTransformation:
		return "conversion+transformation"
	}
	return "unknown"
}

// Transform converts points from a source coordinate system to a target
// coordinate system.
type Transform interface {
	Name() string
	Kind() Kind
	SourceDimension() int
	TargetDimension() int
	// IsInverse reports whether the transform currently runs in the reverse
	// direction of the operation it was built from.
	IsInverse() bool
	// Transform converts a single point. z is ignored and returned as zero
	// by two dimensional transforms.
	Transform(x, y, z float64) (float64, float64, float64, error)
	// TransformPoints converts the points held in xs, ys and zs in place.
	// Points are read every stride elements; zs may be nil.
	TransformPoints(xs, ys, zs []float64, stride int) error
	// Inverse returns the transform running in the opposite direction.
	Inverse() (Transform, error)
	// Invert reverses the direction of the transform in place.
	Invert()
}

// Operation is the numeric core of an elementary transform.
type Operation interface {
	Name() string
	Kind() Kind
	Dimensions() (source, target int)
	Forward(x, y, z float64) (float64, float64, float64, error)
	Reverse(x, y, z float64) (float64, float64, float64, error)
}

// pair owns both halves of an elementary transform. The halves share one
// direction flag so inverting either one inverts both exactly once.
type pair struct {
	halves  [2]Elementary
	flipped bool
}

// Elementary is a single Operation exposed as a Transform.
type Elementary struct {
	op   Operation
	p    *pair
	side int
}

// NewElementary returns the forward half of a transform pair for op. The
// reverse half is built at the same time and returned by Inverse.
func NewElementary(op Operation) *Elementary {
	p := &pair{}
	p.halves[0] = Elementary{op: op, p: p, side: 0}
	p.halves[1] = Elementary{op: op, p: p, side: 1}
	return &p.halves[0]
}

// Operation returns the wrapped operation.
func (e *Elementary) Operation() Operation { return e.op }

func (e *Elementary) Name() string {
	if e.IsInverse() {
		return "inverse(" + e.op.Name() + ")"
	}
	return e.op.Name()
}

func (e *Elementary) Kind() Kind { return e.op.Kind() }

func (e *Elementary) IsInverse() bool { return (e.side == 1) != e.p.flipped }

func (e *Elementary) SourceDimension() int {
	src, dst := e.op.Dimensions()
	if e.IsInverse() {
		return dst
	}
	return src
}

func (e *Elementary) TargetDimension() int {
	src, dst := e.op.Dimensions()
	if e.IsInverse() {
		return src
	}
	return dst
}

func (e *Elementary) Transform(x, y, z float64) (float64, float64, float64, error) {
	if e.IsInverse() {
		return e.op.Reverse(x, y, z)
	}
	return e.op.Forward(x, y, z)
}

func (e *Elementary) TransformPoints(xs, ys, zs []float64, stride int) error {
	return transformPoints(e, xs, ys, zs, stride)
}

// Inverse returns the other half of the pair.
func (e *Elementary) Inverse() (Transform, error) {
	return &e.p.halves[1-e.side], nil
}

// Invert flips the direction of both halves of the pair.
func (e *Elementary) Invert() { e.p.flipped = !e.p.flipped }

// clone returns the matching half of a new, independent pair.
func (e *Elementary) clone() *Elementary {
	c := NewElementary(e.op)
	if e.IsInverse() {
		c.Invert()
	}
	return c
}

func transformPoints(t Transform, xs, ys, zs []float64, stride int) error {
	if stride < 1 {
		return argumentErrorf("stride must be positive, got %d", stride)
	}
	if len(xs) != len(ys) {
		return argumentErrorf("x and y buffers differ in length (%d != %d)", len(xs), len(ys))
	}
	if zs != nil && len(zs) != len(xs) {
		return argumentErrorf("z buffer length %d does not match %d", len(zs), len(xs))
	}
	for i := 0; i < len(xs); i += stride {
		var z float64
		if zs != nil {
			z = zs[i]
		}
		x, y, z, err := t.Transform(xs[i], ys[i], z)
		if err != nil {
			return errors.Wrapf(err, "point %d", i/stride)
		}
		xs[i], ys[i] = x, y
		if zs != nil {
			zs[i] = z
		}
	}
	return nil
}

// TransformCoords transforms an interleaved coordinate buffer in place.
// dim is the number of ordinates per point, 2 or 3.
func TransformCoords(t Transform, coords []float64, dim int) error {
	if dim != 2 && dim != 3 {
		return argumentErrorf("unsupported point dimension %d", dim)
	}
	if len(coords)%dim != 0 {
		return argumentErrorf("buffer length %d is not a multiple of %d", len(coords), dim)
	}
	n := len(coords)
	if n == 0 {
		return nil
	}
	if dim == 3 {
		return transformPoints(t, coords[:n-2], coords[1:n-1], coords[2:], dim)
	}
	return transformPoints(t, coords[:n-1], coords[1:], nil, dim)
}

// TransformCoordsTo transforms src into dst, which must have the same
// length. src is left untouched unless it aliases dst.
func TransformCoordsTo(t Transform, dst, src []float64, dim int) error {
	if len(dst) != len(src) {
		return argumentErrorf("output buffer length %d does not match input length %d", len(dst), len(src))
	}
	copy(dst, src)
	return TransformCoords(t, dst, dim)
}

// MapCoords represents a coordinate on a planar map.
type MapCoords struct {
	Easting  float64
	Northing float64
}

// TransformLatLng runs t on a geographic coordinate and returns the planar
// result.
func TransformLatLng(t Transform, ll s2.LatLng) (MapCoords, error) {
	x, y, _, err := t.Transform(ll.Lng.Degrees(), ll.Lat.Degrees(), 0)
	if err != nil {
		return MapCoords{}, err
	}
	return MapCoords{Easting: x, Northing: y}, nil
}

// TransformMapCoords runs t on a planar coordinate and returns the
// geographic result.
func TransformMapCoords(t Transform, mc MapCoords) (s2.LatLng, error) {
	lon, lat, _, err := t.Transform(mc.Easting, mc.Northing, 0)
	if err != nil {
		return s2.LatLng{}, err
	}
	return s2.LatLng{Lat: s1.Angle(lat) * s1.Degree, Lng: s1.Angle(lon) * s1.Degree}, nil
}

// Identity is the operation that leaves points unchanged.
type Identity struct {
	dim int
}

// NewIdentity returns the identity for points of dimension dim.
func NewIdentity(dim int) *Identity { return &Identity{dim: dim} }

func (i *Identity) Name() string { return "Identity" }

func (i *Identity) Kind() Kind { return KindConversion }

func (i *Identity) Dimensions() (int, int) { return i.dim, i.dim }

func (i *Identity) Forward(x, y, z float64) (float64, float64, float64, error) {
	if i.dim < 3 {
		z = 0
	}
	return x, y, z, nil
}

func (i *Identity) Reverse(x, y, z float64) (float64, float64, float64, error) {
	return i.Forward(x, y, z)
}
