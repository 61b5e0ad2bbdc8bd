package coordxform

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Constructor builds a projection from its parameters.
type Constructor func(params *Parameters) (*Projection, error)

type registryEntry struct {
	class string
	ctor  Constructor
}

// Registry maps projection class names to constructors. Names are matched
// case-insensitively with spaces and underscores treated alike. A Registry
// is safe for concurrent use.
type Registry struct {
	logger *zap.Logger

	mu      sync.Mutex
	entries map[string]registryEntry
	aliases map[string]string // lookup name -> canonical class
}

// Option configures a Registry or a Factory.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	registry *Registry
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRegistry makes a Factory look projections up in r instead of a
// registry of its own.
func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

func applyOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

// builtins lists the projections every Registry starts with. The class is
// the implementation a name resolves to; names sharing a class may be
// registered again without error.
var builtins = []struct {
	names []string
	class string
	ctor  Constructor
}{
	{[]string{"Mercator", "Mercator_1SP"}, "Mercator", NewMercator},
	{[]string{"Mercator_2SP"}, "Mercator_2SP", newMercator2SP},
	{[]string{"Popular_Visualisation_Pseudo_Mercator", "Pseudo_Mercator", "Google_Mercator"},
		"Popular_Visualisation_Pseudo_Mercator", NewPseudoMercator},
	{[]string{"Transverse_Mercator"}, "Transverse_Mercator", NewTransverseMercator},
	{[]string{"Albers_Conic_Equal_Area", "Albers"}, "Albers_Conic_Equal_Area", NewAlbersEqualArea},
	{[]string{"Lambert_Conformal_Conic_2SP", "Lambert_Conformal_Conic"},
		"Lambert_Conformal_Conic_2SP", NewLambertConformalConic2SP},
	{[]string{"Lambert_Conformal_Conic_1SP"}, "Lambert_Conformal_Conic_1SP", NewLambertConformalConic1SP},
	{[]string{"Krovak"}, "Krovak", NewKrovak},
	{[]string{"Polyconic", "American_Polyconic"}, "Polyconic", NewPolyconic},
	{[]string{"Hotine_Oblique_Mercator"}, "Hotine_Oblique_Mercator", NewHotineObliqueMercator},
	{[]string{"Oblique_Mercator", "Hotine_Oblique_Mercator_Azimuth_Center"}, "Oblique_Mercator", NewObliqueMercator},
	{[]string{"Oblique_Stereographic", "Double_Stereographic"}, "Oblique_Stereographic", NewObliqueStereographic},
	{[]string{"Orthographic"}, "Orthographic", NewOrthographic},
	{[]string{"Polar_Stereographic"}, "Polar_Stereographic", NewPolarStereographic},
	{[]string{"Cassini_Soldner"}, "Cassini_Soldner", NewCassiniSoldner},
	{[]string{"Lambert_Azimuthal_Equal_Area"}, "Lambert_Azimuthal_Equal_Area", NewLambertAzimuthalEqualArea},
}

func newMercator2SP(params *Parameters) (*Projection, error) {
	if _, err := params.Required(ParamStandardParallel1); err != nil {
		return nil, err
	}
	return NewMercator(params)
}

// NewRegistry returns a registry holding the built-in projections.
func NewRegistry(opts ...Option) (*Registry, error) {
	o := applyOptions(opts)
	r := &Registry{
		logger:  o.logger,
		entries: make(map[string]registryEntry),
		aliases: make(map[string]string),
	}
	for _, b := range builtins {
		for _, name := range b.names {
			if err := r.Register(name, b.class, b.ctor); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

// Register associates name with a constructor for class. Registering a
// name again with the same class is a no-op; registering it with another
// class fails.
func (r *Registry) Register(name, class string, ctor Constructor) error {
	if ctor == nil {
		return configErrorf("register %q: nil constructor", name)
	}
	key := normalizeName(name)
	if key == "" {
		return configErrorf("register: empty projection name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[key]; ok {
		if normalizeName(e.class) != normalizeName(class) {
			return configErrorf("projection %q is already registered as %q, cannot register it as %q",
				name, e.class, class)
		}
		r.logger.Debug("projection already registered", zap.String("name", name), zap.String("class", class))
		return nil
	}
	r.entries[key] = registryEntry{class: class, ctor: ctor}
	r.logger.Debug("registered projection", zap.String("name", name), zap.String("class", class))
	return nil
}

// New builds the projection registered under name. When the projection's
// own class name differs from name, name is recorded as an alias of it.
func (r *Registry) New(name string, params *Parameters) (*Projection, error) {
	key := normalizeName(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if !ok {
		return nil, unsupportedErrorf("unknown projection %q", name)
	}
	p, err := e.ctor(params)
	if err != nil {
		return nil, err
	}
	if class := p.Class(); normalizeName(class) != key {
		if _, seen := r.aliases[key]; !seen {
			r.aliases[key] = class
			r.logger.Debug("recorded projection alias", zap.String("alias", name), zap.String("class", class))
		}
	}
	return p, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[normalizeName(name)]
	return ok
}

// Alias returns the class a lookup name resolved to the first time it was
// used with New, if that class had a different name.
func (r *Registry) Alias(name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	class, ok := r.aliases[normalizeName(name)]
	return class, ok
}

// Names returns the registered names in normalized form, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
