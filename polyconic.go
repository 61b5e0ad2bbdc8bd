package coordxform

import (
	"math"
)

// Polyconic is the American polyconic projection.
type Polyconic struct {
	a      float64
	es     float64
	en     *[5]float64
	ml0    float64
	sphere bool
}

const (
	polyMaxIter   = 20
	polyTolerance = 1e-12
)

// NewPolyconic builds Polyconic.
func NewPolyconic(params *Parameters) (*Projection, error) {
	return NewProjection("Polyconic", params, func(base *ProjectionBase, _ *Parameters) (Projector, error) {
		return &Polyconic{
			a:      base.SemiMajor,
			es:     base.Es,
			en:     &base.en,
			ml0:    base.Mlfn(base.LatitudeOfOrigin),
			sphere: base.IsSpherical(),
		}, nil
	})
}

func (p *Polyconic) Project(lam, phi float64) (float64, float64, error) {
	if p.sphere {
		if math.Abs(phi) <= epsilon10 {
			return p.a * lam, -p.a * p.ml0, nil
		}
		cot := 1 / math.Tan(phi)
		e := lam * math.Sin(phi)
		return p.a * cot * math.Sin(e), p.a * (phi - p.ml0 + cot*(1-math.Cos(e))), nil
	}
	if math.Abs(phi) <= epsilon10 {
		return p.a * lam, -p.a * p.ml0, nil
	}
	sinPhi, cosPhi := math.Sincos(phi)
	var ms float64
	if math.Abs(cosPhi) > epsilon10 {
		ms = msfn(sinPhi, cosPhi, p.es) / sinPhi
	}
	lam *= sinPhi
	x := ms * math.Sin(lam)
	y := (mlfn(phi, sinPhi, cosPhi, p.en) - p.ml0) + ms*(1-math.Cos(lam))
	return p.a * x, p.a * y, nil
}

func (p *Polyconic) Unproject(x, y float64) (float64, float64, error) {
	x /= p.a
	y /= p.a
	if p.sphere {
		return p.unprojectSphere(x, y)
	}
	y += p.ml0
	if math.Abs(y) <= epsilon10 {
		return x, 0, nil
	}
	r := y*y + x*x
	phi := y
	converged := false
	for i := 0; i < polyMaxIter; i++ {
		sinPhi, cosPhi := math.Sincos(phi)
		s2ph := sinPhi * cosPhi
		if math.Abs(cosPhi) < epsilon10 {
			return 0, 0, domainErrorf("polyconic: point (%g, %g) outside projection domain", x, y)
		}
		mlp := math.Sqrt(1 - p.es*sinPhi*sinPhi)
		c := sinPhi * mlp / cosPhi
		ml := mlfn(phi, sinPhi, cosPhi, p.en)
		mlb := ml*ml + r
		mlp = (1 - p.es) / (mlp * mlp * mlp)
		dphi := (ml + ml + c*mlb - 2*y*(c*ml+1)) /
			(p.es*s2ph*(mlb-2*y*ml)/c + 2*(y-ml)*(c*mlp-1/s2ph) - mlp - mlp)
		phi += dphi
		if math.Abs(dphi) <= polyTolerance {
			converged = true
			break
		}
	}
	if !converged {
		return 0, 0, convergenceErrorf("polyconic: latitude iteration did not converge")
	}
	c := math.Sin(phi)
	arg := x * math.Tan(phi) * math.Sqrt(1-p.es*c*c)
	if math.Abs(arg) > 1 {
		return 0, 0, domainErrorf("polyconic: point outside projection domain")
	}
	return math.Asin(arg) / c, phi, nil
}

func (p *Polyconic) unprojectSphere(x, y float64) (float64, float64, error) {
	y = p.ml0 + y
	if math.Abs(y) <= epsilon10 {
		return x, 0, nil
	}
	phi := y
	b := x*x + y*y
	for i := 0; i < polyMaxIter; i++ {
		tp := math.Tan(phi)
		dphi := (y*(phi*tp+1) - phi - 0.5*(phi*phi+b)*tp) / ((phi-y)/tp - 1)
		phi -= dphi
		if math.Abs(dphi) <= polyTolerance {
			return math.Asin(x*math.Tan(phi)) / math.Sin(phi), phi, nil
		}
	}
	return 0, 0, convergenceErrorf("polyconic: latitude iteration did not converge")
}
