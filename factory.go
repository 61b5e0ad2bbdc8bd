package coordxform

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Factory plans transforms between coordinate reference systems.
type Factory struct {
	registry *Registry
	logger   *zap.Logger
}

// NewFactory returns a factory. Without WithRegistry it builds a registry
// of its own holding the built-in projections.
func NewFactory(opts ...Option) (*Factory, error) {
	o := applyOptions(opts)
	r := o.registry
	if r == nil {
		var err error
		if r, err = NewRegistry(WithLogger(o.logger)); err != nil {
			return nil, err
		}
	}
	return &Factory{registry: r, logger: o.logger}, nil
}

// Registry returns the registry projections are looked up in.
func (f *Factory) Registry() *Registry { return f.registry }

// Create returns a transform from source to target coordinates. A plan of
// a single operation is returned as an *Elementary, longer plans as a
// *Composite whose steps record the systems they connect.
func (f *Factory) Create(source, target CRS) (Transform, error) {
	if source == nil || target == nil {
		return nil, argumentErrorf("source and target systems are required")
	}
	if err := checkCRS(source); err != nil {
		return nil, errors.Wrap(err, "source")
	}
	if err := checkCRS(target); err != nil {
		return nil, errors.Wrap(err, "target")
	}
	steps, err := f.plan(source, target)
	if err != nil {
		return nil, errors.Wrapf(err, "transform %s -> %s", source, target)
	}
	var t Transform
	switch len(steps) {
	case 0:
		if t, err = f.identity(source, target); err != nil {
			return nil, err
		}
	case 1:
		t = steps[0].Transform
	default:
		t = newPlannedComposite(steps)
	}
	f.logger.Debug("planned transform",
		zap.Stringer("source", source),
		zap.Stringer("target", target),
		zap.Int("steps", len(steps)),
		zap.String("transform", t.Name()))
	return t, nil
}

// identity handles source and target that need no operation.
func (f *Factory) identity(source, target CRS) (Transform, error) {
	if s, ok := source.(*GeographicCRS); ok {
		if d, ok := target.(*GeographicCRS); ok {
			step, err := newStep(s, d, false, func() (Operation, error) {
				return NewGeographicConversion(s, d)
			})
			if err != nil {
				return nil, err
			}
			return step.Transform, nil
		}
	}
	return NewElementary(NewIdentity(source.Dimension())), nil
}

func (f *Factory) plan(src, dst CRS) ([]Step, error) {
	if src.Kind() == CRSCompound || dst.Kind() == CRSCompound {
		return nil, unsupportedErrorf("compound systems are not supported")
	}
	if EqualCRS(src, dst) {
		return nil, nil
	}
	if s, ok := src.(*FittedCRS); ok {
		if d, ok := dst.(*FittedCRS); ok && s.Base != nil && EqualCRS(s.Base, d.Base) {
			return f.betweenFitted(s, d)
		}
		return f.fromFitted(s, dst)
	}
	if d, ok := dst.(*FittedCRS); ok {
		return f.toFitted(src, d)
	}
	if s, ok := src.(*ProjectedCRS); ok {
		return f.fromProjected(s, dst)
	}
	if d, ok := dst.(*ProjectedCRS); ok {
		return f.toProjected(src, d)
	}
	return f.planGeodetic(src, dst)
}

// newStep builds a step whose transform is derived by build. The same
// derivation is used again when the step has to be inverted without
// touching the original.
func newStep(src, dst CRS, inverse bool, build func() (Operation, error)) (Step, error) {
	derive := func() (Transform, error) {
		op, err := build()
		if err != nil {
			return nil, err
		}
		e := NewElementary(op)
		if inverse {
			e.Invert()
		}
		return e, nil
	}
	t, err := derive()
	if err != nil {
		return Step{}, err
	}
	return Step{Source: src, Target: dst, Transform: t, derive: derive}, nil
}

// reversed turns a freshly planned a -> b chain into b -> a.
func reversed(steps []Step) []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		s.Transform.Invert()
		out[len(steps)-1-i] = Step{Source: s.Target, Target: s.Source, Transform: s.Transform, derive: s.inverseDerive()}
	}
	return out
}

func concatSteps(parts ...[]Step) []Step {
	var out []Step
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func checkFittedBase(c *FittedCRS) error {
	if c.Base == nil {
		return configErrorf("fitted system %s has no base system", c)
	}
	if c.Base.Dimension() != 2 {
		return unsupportedErrorf("fitted system %s: base %s is not two dimensional", c, c.Base)
	}
	return nil
}

func (f *Factory) fromFitted(src *FittedCRS, dst CRS) ([]Step, error) {
	if err := checkFittedBase(src); err != nil {
		return nil, err
	}
	toBase := src.ToBase
	step, err := newStep(src, src.Base, false, func() (Operation, error) { return NewAffine(toBase) })
	if err != nil {
		return nil, err
	}
	rest, err := f.plan(src.Base, dst)
	if err != nil {
		return nil, err
	}
	return concatSteps([]Step{step}, rest), nil
}

func (f *Factory) toFitted(src CRS, dst *FittedCRS) ([]Step, error) {
	if err := checkFittedBase(dst); err != nil {
		return nil, err
	}
	steps, err := f.plan(src, dst.Base)
	if err != nil {
		return nil, err
	}
	toBase := dst.ToBase
	step, err := newStep(dst.Base, dst, true, func() (Operation, error) { return NewAffine(toBase) })
	if err != nil {
		return nil, err
	}
	return concatSteps(steps, []Step{step}), nil
}

// betweenFitted merges the two affine transforms of fitted systems that
// share a base.
func (f *Factory) betweenFitted(src, dst *FittedCRS) ([]Step, error) {
	if err := checkFittedBase(src); err != nil {
		return nil, err
	}
	fromBase, err := dst.ToBase.Invert()
	if err != nil {
		return nil, err
	}
	merged := src.ToBase.Then(fromBase)
	step, err := newStep(src, dst, false, func() (Operation, error) { return NewAffine(merged) })
	if err != nil {
		return nil, err
	}
	return []Step{step}, nil
}

// projectionBase is the geographic system a projection consumes: the
// projected system's base in degrees, without height.
func projectionBase(p *ProjectedCRS) *GeographicCRS {
	b := p.Base
	if b.Unit.Equal(Degree) && !b.WithHeight {
		return b
	}
	return &GeographicCRS{Name: b.Name, Datum: b.Datum, PrimeMeridian: b.PrimeMeridian, Unit: Degree}
}

// projection builds the projection of p. The ellipsoid axes and the linear
// unit are taken from the descriptor unless the parameters set them.
func (f *Factory) projection(p *ProjectedCRS) (*Projection, error) {
	params := p.Projection.Parameters.Clone()
	e := p.Base.Datum.Ellipsoid
	if !params.Has(ParamSemiMajor) {
		params.Set(ParamSemiMajor, e.SemiMajor)
	}
	if !params.Has(ParamSemiMinor) {
		params.Set(ParamSemiMinor, e.SemiMinor)
	}
	if !params.Has(ParamUnit) {
		params.Set(ParamUnit, p.Unit.MetersPerUnit)
	}
	return f.registry.New(p.Projection.Class, params)
}

func (f *Factory) projectionStep(p *ProjectedCRS, inverse bool) (Step, error) {
	if p.Base == nil {
		return Step{}, configErrorf("projected system %s has no base system", p)
	}
	build := func() (Operation, error) { return f.projection(p) }
	if inverse {
		return newStep(p, projectionBase(p), true, build)
	}
	return newStep(projectionBase(p), p, false, build)
}

func (f *Factory) fromProjected(src *ProjectedCRS, dst CRS) ([]Step, error) {
	step, err := f.projectionStep(src, true)
	if err != nil {
		return nil, err
	}
	rest, err := f.plan(projectionBase(src), dst)
	if err != nil {
		return nil, err
	}
	return concatSteps([]Step{step}, rest), nil
}

func (f *Factory) toProjected(src CRS, dst *ProjectedCRS) ([]Step, error) {
	step, err := f.projectionStep(dst, false)
	if err != nil {
		return nil, err
	}
	steps, err := f.plan(src, projectionBase(dst))
	if err != nil {
		return nil, err
	}
	return concatSteps(steps, []Step{step}), nil
}

func datumOf(c CRS) (Datum, bool) {
	switch c := c.(type) {
	case *GeographicCRS:
		return c.Datum, true
	case *GeocentricCRS:
		return c.Datum, true
	}
	return Datum{}, false
}

// canonicalFrame is the earth-centred frame in metres in which datum
// shifts of d are expressed.
func canonicalFrame(d Datum) *GeocentricCRS {
	if d.Equal(WGS84Datum) {
		return WGS84Geocentric
	}
	return &GeocentricCRS{Name: d.Name + " (geocentric)", Datum: d, PrimeMeridian: Greenwich, Unit: Metre}
}

// planGeodetic connects geographic and geocentric systems.
func (f *Factory) planGeodetic(src, dst CRS) ([]Step, error) {
	sd, ok := datumOf(src)
	if !ok {
		return nil, unsupportedErrorf("%s systems are not supported", src.Kind())
	}
	dd, ok := datumOf(dst)
	if !ok {
		return nil, unsupportedErrorf("%s systems are not supported", dst.Kind())
	}
	if sd.Equal(dd) {
		return f.sameDatum(src, dst)
	}
	if sd.Grid != nil {
		return f.viaGrid(src, sd, dst)
	}
	if dd.Grid != nil {
		steps, err := f.viaGrid(dst, dd, src)
		if err != nil {
			return nil, err
		}
		return reversed(steps), nil
	}
	shift, err := shiftSteps(sd, dd)
	if err != nil {
		return nil, err
	}
	head, err := f.sameDatum(src, canonicalFrame(sd))
	if err != nil {
		return nil, err
	}
	tail, err := f.sameDatum(canonicalFrame(dd), dst)
	if err != nil {
		return nil, err
	}
	return concatSteps(head, shift, tail), nil
}

// shiftSteps returns the Helmert steps from the canonical frame of sd to
// that of dd, through WGS 84. Datums that coincide with WGS 84 contribute
// no step.
func shiftSteps(sd, dd Datum) ([]Step, error) {
	if sd.ToWGS84 == nil || dd.ToWGS84 == nil {
		return nil, unsupportedErrorf("no relation between datums %q and %q: shift to WGS 84 unknown", sd.Name, dd.Name)
	}
	var steps []Step
	from := canonicalFrame(sd)
	if !sd.ToWGS84.IsZero() {
		params := *sd.ToWGS84
		step, err := newStep(from, WGS84Geocentric, false, func() (Operation, error) { return NewDatumShift(params), nil })
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
		from = WGS84Geocentric
	}
	if !dd.ToWGS84.IsZero() {
		params := *dd.ToWGS84
		step, err := newStep(from, canonicalFrame(dd), true, func() (Operation, error) { return NewDatumShift(params), nil })
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// viaGrid plans src -> dst where src's datum d is related to WGS 84 by a
// grid: src is brought to degrees on d, shifted onto WGS 84 and planned on
// from there.
func (f *Factory) viaGrid(src CRS, d Datum, dst CRS) ([]Step, error) {
	withHeight := src.Dimension() == 3
	onGrid := &GeographicCRS{Name: d.Name, Datum: d, PrimeMeridian: Greenwich, Unit: Degree, WithHeight: withHeight}
	wgs := WGS84
	if withHeight {
		wgs = &GeographicCRS{Name: WGS84.Name, Datum: WGS84Datum, PrimeMeridian: Greenwich, Unit: Degree, WithHeight: true}
	}
	head, err := f.sameDatum(src, onGrid)
	if err != nil {
		return nil, err
	}
	grid, dim := d.Grid, onGrid.Dimension()
	step, err := newStep(onGrid, wgs, false, func() (Operation, error) { return NewGridShift(d.Name, grid, dim) })
	if err != nil {
		return nil, err
	}
	rest, err := f.plan(wgs, dst)
	if err != nil {
		return nil, err
	}
	return concatSteps(head, []Step{step}, rest), nil
}

// sameDatum connects geodetic systems on one datum.
func (f *Factory) sameDatum(src, dst CRS) ([]Step, error) {
	if EqualCRS(src, dst) {
		return nil, nil
	}
	switch s := src.(type) {
	case *GeographicCRS:
		switch d := dst.(type) {
		case *GeographicCRS:
			step, err := newStep(s, d, false, func() (Operation, error) { return NewGeographicConversion(s, d) })
			if err != nil {
				return nil, err
			}
			return []Step{step}, nil
		case *GeocentricCRS:
			return f.geographicToGeocentric(s, d)
		}
	case *GeocentricCRS:
		switch d := dst.(type) {
		case *GeographicCRS:
			steps, err := f.geographicToGeocentric(d, s)
			if err != nil {
				return nil, err
			}
			return reversed(steps), nil
		case *GeocentricCRS:
			return f.geocentricToGeocentric(s, d)
		}
	}
	return nil, unsupportedErrorf("%s to %s is not supported", src.Kind(), dst.Kind())
}

// geographicToGeocentric brings src to degrees, moves it onto the prime
// meridian of dst when they differ and converts. A prime meridian given in
// another angular unit is changed along with the unit.
func (f *Factory) geographicToGeocentric(src *GeographicCRS, dst *GeocentricCRS) ([]Step, error) {
	var steps []Step
	cur := src
	pmUnitDiffers := !cur.PrimeMeridian.Unit.Equal(dst.PrimeMeridian.Unit)
	if !cur.Unit.Equal(Degree) || (pmUnitDiffers && !cur.PrimeMeridian.Equal(dst.PrimeMeridian)) {
		pm := cur.PrimeMeridian
		if pmUnitDiffers {
			pm = dst.PrimeMeridian
		}
		next := &GeographicCRS{Name: cur.Name, Datum: cur.Datum, PrimeMeridian: pm, Unit: Degree, WithHeight: cur.WithHeight}
		from := cur
		step, err := newStep(from, next, false, func() (Operation, error) { return NewGeographicConversion(from, next) })
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
		cur = next
	}
	if !cur.PrimeMeridian.Equal(dst.PrimeMeridian) {
		next := &GeographicCRS{Name: cur.Name, Datum: cur.Datum, PrimeMeridian: dst.PrimeMeridian, Unit: Degree, WithHeight: cur.WithHeight}
		from, to, dim := cur.PrimeMeridian, dst.PrimeMeridian, cur.Dimension()
		step, err := newStep(cur, next, false, func() (Operation, error) { return NewPrimeMeridianShift(from, to, dim) })
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
		cur = next
	}
	ellipsoid, unit, dim := dst.Datum.Ellipsoid, dst.Unit, cur.Dimension()
	step, err := newStep(cur, dst, false, func() (Operation, error) { return NewGeocentricConversion(ellipsoid, unit, dim) })
	if err != nil {
		return nil, err
	}
	return append(steps, step), nil
}

func (f *Factory) geocentricToGeocentric(src, dst *GeocentricCRS) ([]Step, error) {
	if src.PrimeMeridian.Equal(dst.PrimeMeridian) {
		if src.Unit.Equal(dst.Unit) {
			return nil, nil
		}
		factor := src.Unit.MetersPerUnit / dst.Unit.MetersPerUnit
		step, err := newStep(src, dst, false, func() (Operation, error) { return NewLinearScale(factor) })
		if err != nil {
			return nil, err
		}
		return []Step{step}, nil
	}
	geog := &GeographicCRS{Name: src.Name, Datum: src.Datum, PrimeMeridian: src.PrimeMeridian, Unit: Degree, WithHeight: true}
	head, err := f.geographicToGeocentric(geog, src)
	if err != nil {
		return nil, err
	}
	tail, err := f.geographicToGeocentric(geog, dst)
	if err != nil {
		return nil, err
	}
	return concatSteps(reversed(head), tail), nil
}
