package coordxform

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// arcSecond is one second of arc in radians.
const arcSecond = math.Pi / (180 * 3600)

// ShiftParameters is a seven parameter Helmert (Bursa-Wolf) transform to
// WGS 84 in the position vector convention. Translations are metres,
// rotations arc-seconds and the scale difference parts per million.
type ShiftParameters struct {
	Dx, Dy, Dz float64
	Ex, Ey, Ez float64
	Ppm        float64
}

// IsZero reports whether every parameter is zero.
func (s ShiftParameters) IsZero() bool {
	return s == ShiftParameters{}
}

// Equal compares the parameters to within a few ULPs.
func (s ShiftParameters) Equal(o ShiftParameters) bool {
	return floatsEqual(s.Dx, o.Dx) && floatsEqual(s.Dy, o.Dy) && floatsEqual(s.Dz, o.Dz) &&
		floatsEqual(s.Ex, o.Ex) && floatsEqual(s.Ey, o.Ey) && floatsEqual(s.Ez, o.Ez) &&
		floatsEqual(s.Ppm, o.Ppm)
}

func (s ShiftParameters) String() string {
	return fmt.Sprintf("%g,%g,%g,%g,%g,%g,%g", s.Dx, s.Dy, s.Dz, s.Ex, s.Ey, s.Ez, s.Ppm)
}

// DatumShift applies a Helmert transform to geocentric coordinates in
// metres:
//
//	p' = (1 + ppm·1e-6)·(p + ω×p) + t
//
// The reverse undoes the translation and scale and applies the rotation
// with its sign flipped. This is the small angle inverse, not the exact
// matrix inverse.
type DatumShift struct {
	params ShiftParameters
	t      r3.Vector
	omega  r3.Vector
	rs     float64
}

// NewDatumShift builds the shift for params.
func NewDatumShift(params ShiftParameters) *DatumShift {
	return &DatumShift{
		params: params,
		t:      r3.Vector{X: params.Dx, Y: params.Dy, Z: params.Dz},
		omega:  r3.Vector{X: params.Ex * arcSecond, Y: params.Ey * arcSecond, Z: params.Ez * arcSecond},
		rs:     1 + params.Ppm*1e-6,
	}
}

// Parameters returns the Helmert parameters.
func (d *DatumShift) Parameters() ShiftParameters { return d.params }

func (d *DatumShift) Name() string { return "Datum shift(" + d.params.String() + ")" }

func (d *DatumShift) Kind() Kind { return KindTransformation }

func (d *DatumShift) Dimensions() (int, int) { return 3, 3 }

func (d *DatumShift) Forward(x, y, z float64) (float64, float64, float64, error) {
	p := r3.Vector{X: x, Y: y, Z: z}
	q := p.Add(d.omega.Cross(p)).Mul(d.rs).Add(d.t)
	return q.X, q.Y, q.Z, nil
}

func (d *DatumShift) Reverse(x, y, z float64) (float64, float64, float64, error) {
	q := r3.Vector{X: x, Y: y, Z: z}.Sub(d.t).Mul(1 / d.rs)
	p := q.Sub(d.omega.Cross(q))
	return p.X, p.Y, p.Z, nil
}

// LinearScale multiplies all three ordinates by a factor. It converts
// geocentric coordinates between length units.
type LinearScale struct {
	factor float64
}

// NewLinearScale returns a scale by factor, which must be non-zero.
func NewLinearScale(factor float64) (*LinearScale, error) {
	if factor == 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, configErrorf("invalid scale factor %g", factor)
	}
	return &LinearScale{factor: factor}, nil
}

func (s *LinearScale) Name() string { return fmt.Sprintf("Scale(%g)", s.factor) }

func (s *LinearScale) Kind() Kind { return KindConversion }

func (s *LinearScale) Dimensions() (int, int) { return 3, 3 }

func (s *LinearScale) Forward(x, y, z float64) (float64, float64, float64, error) {
	return x * s.factor, y * s.factor, z * s.factor, nil
}

func (s *LinearScale) Reverse(x, y, z float64) (float64, float64, float64, error) {
	return x / s.factor, y / s.factor, z / s.factor, nil
}
