package coordxform

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

// Parameters is an ordered set of named projection parameters. Names are
// matched case-insensitively; the casing used when a value was first set is
// kept for Names.
type Parameters struct {
	order  []string // folded names, insertion order
	names  map[string]string
	values map[string]float64
}

// NewParameters returns an empty parameter set.
func NewParameters() *Parameters {
	return &Parameters{
		names:  make(map[string]string),
		values: make(map[string]float64),
	}
}

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Set stores value under name and returns p so calls can be chained.
func (p *Parameters) Set(name string, value float64) *Parameters {
	key := foldName(name)
	if _, ok := p.values[key]; !ok {
		p.order = append(p.order, key)
		p.names[key] = name
	}
	p.values[key] = value
	return p
}

// Lookup returns the value stored under name, or under the first alternate
// that is present.
func (p *Parameters) Lookup(name string, alternates ...string) (float64, bool) {
	if p == nil {
		return 0, false
	}
	if v, ok := p.values[foldName(name)]; ok {
		return v, true
	}
	for _, alt := range alternates {
		if v, ok := p.values[foldName(alt)]; ok {
			return v, true
		}
	}
	return 0, false
}

// Required is Lookup that fails with an ErrConfiguration naming the
// parameter and its alternates when nothing is found.
func (p *Parameters) Required(name string, alternates ...string) (float64, error) {
	if v, ok := p.Lookup(name, alternates...); ok {
		return v, nil
	}
	if len(alternates) == 0 {
		return 0, configErrorf("missing required parameter %q", name)
	}
	return 0, configErrorf("missing required parameter %q (accepted alternates: %s)",
		name, strings.Join(alternates, ", "))
}

// Optional is Lookup with a default.
func (p *Parameters) Optional(def float64, name string, alternates ...string) float64 {
	if v, ok := p.Lookup(name, alternates...); ok {
		return v
	}
	return def
}

// Has reports whether name itself (no alternates) is present.
func (p *Parameters) Has(name string) bool {
	_, ok := p.Lookup(name)
	return ok
}

// Len returns the number of parameters.
func (p *Parameters) Len() int {
	if p == nil {
		return 0
	}
	return len(p.order)
}

// Names returns the parameter names in insertion order with their original
// casing.
func (p *Parameters) Names() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.order))
	for i, key := range p.order {
		out[i] = p.names[key]
	}
	return out
}

// Clone returns an independent copy of p.
func (p *Parameters) Clone() *Parameters {
	c := NewParameters()
	if p == nil {
		return c
	}
	for _, key := range p.order {
		c.Set(p.names[key], p.values[key])
	}
	return c
}

// Equal reports whether p and o hold the same names with values equal to
// within a few units in the last place. Order and casing are ignored.
func (p *Parameters) Equal(o *Parameters) bool {
	if p.Len() != o.Len() {
		return false
	}
	if p.Len() == 0 {
		return true
	}
	keys := append([]string(nil), p.order...)
	sort.Strings(keys)
	for _, key := range keys {
		ov, ok := o.values[key]
		if !ok || !floatsEqual(p.values[key], ov) {
			return false
		}
	}
	return true
}

const ulpTolerance = 3

func floatsEqual(a, b float64) bool {
	return a == b || scalar.EqualWithinULP(a, b, ulpTolerance)
}
