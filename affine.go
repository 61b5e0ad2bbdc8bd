package coordxform

import (
	"fmt"
)

// AffineParams maps (x, y) to (A*x + B*y + C, D*x + E*y + F).
type AffineParams struct {
	A, B, C float64
	D, E, F float64
}

// IdentityAffine leaves points unchanged.
var IdentityAffine = AffineParams{A: 1, E: 1}

// Apply transforms a single point.
func (p AffineParams) Apply(x, y float64) (float64, float64) {
	return p.A*x + p.B*y + p.C, p.D*x + p.E*y + p.F
}

func (p AffineParams) det() float64 { return p.A*p.E - p.B*p.D }

// IsInvertible reports whether the linear part is non-singular.
func (p AffineParams) IsInvertible() bool { return p.det() != 0 }

// Invert returns the inverse mapping.
func (p AffineParams) Invert() (AffineParams, error) {
	det := p.det()
	if det == 0 {
		return AffineParams{}, configErrorf("affine transform %v is not invertible", p)
	}
	idet := 1 / det
	inv := AffineParams{
		A: p.E * idet, B: -p.B * idet,
		D: -p.D * idet, E: p.A * idet,
	}
	c, f := inv.Apply(-p.C, -p.F)
	inv.C, inv.F = c, f
	return inv, nil
}

// Then returns the mapping that applies p and then q.
func (p AffineParams) Then(q AffineParams) AffineParams {
	return AffineParams{
		A: q.A*p.A + q.B*p.D,
		B: q.A*p.B + q.B*p.E,
		C: q.A*p.C + q.B*p.F + q.C,
		D: q.D*p.A + q.E*p.D,
		E: q.D*p.B + q.E*p.E,
		F: q.D*p.C + q.E*p.F + q.F,
	}
}

// Equal compares the coefficients to within a few ULPs.
func (p AffineParams) Equal(o AffineParams) bool {
	return floatsEqual(p.A, o.A) && floatsEqual(p.B, o.B) && floatsEqual(p.C, o.C) &&
		floatsEqual(p.D, o.D) && floatsEqual(p.E, o.E) && floatsEqual(p.F, o.F)
}

func (p AffineParams) String() string {
	return fmt.Sprintf("[%g %g %g; %g %g %g]", p.A, p.B, p.C, p.D, p.E, p.F)
}

// Affine is a two dimensional affine operation.
type Affine struct {
	fwd, inv AffineParams
}

// NewAffine returns the operation for p. p must be invertible.
func NewAffine(p AffineParams) (*Affine, error) {
	inv, err := p.Invert()
	if err != nil {
		return nil, err
	}
	return &Affine{fwd: p, inv: inv}, nil
}

// Parameters returns the forward coefficients.
func (a *Affine) Parameters() AffineParams { return a.fwd }

func (a *Affine) Name() string { return "Affine" + a.fwd.String() }

func (a *Affine) Kind() Kind { return KindConversion }

func (a *Affine) Dimensions() (int, int) { return 2, 2 }

func (a *Affine) Forward(x, y, _ float64) (float64, float64, float64, error) {
	x, y = a.fwd.Apply(x, y)
	return x, y, 0, nil
}

func (a *Affine) Reverse(x, y, _ float64) (float64, float64, float64, error) {
	x, y = a.inv.Apply(x, y)
	return x, y, 0, nil
}
