package coordxform

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Step is one stage of a Composite. Source and Target are nil when the
// step was not planned by a Factory.
type Step struct {
	Source    CRS
	Target    CRS
	Transform Transform

	derive func() (Transform, error)
}

// Composite applies an ordered list of transforms.
type Composite struct {
	steps    []Step
	inverted bool
}

// NewComposite chains transforms in the order given. Nested composites are
// flattened.
func NewComposite(transforms ...Transform) *Composite {
	c := &Composite{}
	for _, t := range transforms {
		c.append(Step{Transform: t})
	}
	return c
}

func newPlannedComposite(steps []Step) *Composite {
	c := &Composite{}
	for _, s := range steps {
		c.append(s)
	}
	return c
}

func (c *Composite) append(s Step) {
	if nested, ok := s.Transform.(*Composite); ok {
		for _, ns := range nested.steps {
			c.append(ns)
		}
		return
	}
	c.steps = append(c.steps, s)
}

// Steps returns a copy of the steps in evaluation order.
func (c *Composite) Steps() []Step {
	return append([]Step(nil), c.steps...)
}

// Len returns the number of steps.
func (c *Composite) Len() int { return len(c.steps) }

func (c *Composite) Name() string {
	names := make([]string, len(c.steps))
	for i, s := range c.steps {
		names[i] = s.Transform.Name()
	}
	return "concat(" + strings.Join(names, ", ") + ")"
}

func (c *Composite) Kind() Kind {
	var k Kind
	for _, s := range c.steps {
		k |= s.Transform.Kind()
	}
	return k
}

func (c *Composite) IsInverse() bool { return c.inverted }

// SourceDimension is the first step's source dimension, or 3 for an empty
// composite.
func (c *Composite) SourceDimension() int {
	if len(c.steps) == 0 {
		return 3
	}
	return c.steps[0].Transform.SourceDimension()
}

func (c *Composite) TargetDimension() int {
	if len(c.steps) == 0 {
		return 3
	}
	return c.steps[len(c.steps)-1].Transform.TargetDimension()
}

func (c *Composite) Transform(x, y, z float64) (float64, float64, float64, error) {
	var err error
	for i, s := range c.steps {
		x, y, z, err = s.Transform.Transform(x, y, z)
		if err != nil {
			return 0, 0, 0, errors.Wrapf(err, "step %d (%s)", i, s.Transform.Name())
		}
	}
	return x, y, z, nil
}

func (c *Composite) TransformPoints(xs, ys, zs []float64, stride int) error {
	return transformPoints(c, xs, ys, zs, stride)
}

// Invert reverses the step order and inverts every step in place. Steps
// that are halves of the same elementary pair are flipped once.
func (c *Composite) Invert() {
	n := len(c.steps)
	for i := 0; i < n/2; i++ {
		c.steps[i], c.steps[n-1-i] = c.steps[n-1-i], c.steps[i]
	}
	seen := make(map[*pair]bool)
	for i := range c.steps {
		s := &c.steps[i]
		s.Source, s.Target = s.Target, s.Source
		s.derive = s.inverseDerive()
		if e, ok := s.Transform.(*Elementary); ok {
			if seen[e.p] {
				continue
			}
			seen[e.p] = true
		}
		s.Transform.Invert()
	}
	c.inverted = !c.inverted
}

// Inverse returns a new composite running in the opposite direction. Steps
// planned by a Factory are derived again from their descriptors, so the
// result shares no direction state with c.
func (c *Composite) Inverse() (Transform, error) {
	steps := make([]Step, 0, len(c.steps))
	for i := len(c.steps) - 1; i >= 0; i-- {
		s := c.steps[i]
		t, err := s.inverse()
		if err != nil {
			return nil, errors.Wrapf(err, "deriving inverse of step %d", i)
		}
		steps = append(steps, Step{Source: s.Target, Target: s.Source, Transform: t, derive: s.inverseDerive()})
	}
	inv := newPlannedComposite(steps)
	inv.inverted = !c.inverted
	return inv, nil
}

// inverse returns the inverse of the step's transform without touching the
// step's own direction state.
func (s Step) inverse() (Transform, error) {
	if derive := s.inverseDerive(); derive != nil {
		return derive()
	}
	switch t := s.Transform.(type) {
	case *Elementary:
		c := t.clone()
		c.Invert()
		return c, nil
	case *Composite:
		return t.Inverse()
	}
	return s.Transform.Inverse()
}

func (s Step) inverseDerive() func() (Transform, error) {
	if s.derive == nil {
		return nil
	}
	derive := s.derive
	return func() (Transform, error) {
		t, err := derive()
		if err != nil {
			return nil, err
		}
		t.Invert()
		return t, nil
	}
}
