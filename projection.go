package coordxform

import (
	"math"
	"strings"
)

// Projector holds the projection specific math. Project receives the
// longitude relative to the central meridian and the latitude, both in
// radians, and returns metres relative to the natural origin. Unproject is
// its inverse.
type Projector interface {
	Project(lam, phi float64) (x, y float64, err error)
	Unproject(x, y float64) (lam, phi float64, err error)
}

// ProjectionBase carries the values every projection derives from its
// parameters. Angles are in radians, distances in metres.
type ProjectionBase struct {
	SemiMajor        float64
	SemiMinor        float64
	Es               float64 // eccentricity squared
	E                float64 // eccentricity
	OneEs            float64 // 1 - Es
	ScaleFactor      float64
	CentralMeridian  float64
	LatitudeOfOrigin float64
	FalseEasting     float64
	FalseNorthing    float64
	MetersPerUnit    float64

	en [5]float64
}

// Parameter names shared by every projection.
const (
	ParamSemiMajor        = "semi_major"
	ParamSemiMinor        = "semi_minor"
	ParamScaleFactor      = "scale_factor"
	ParamCentralMeridian  = "central_meridian"
	ParamLatitudeOfOrigin = "latitude_of_origin"
	ParamFalseEasting     = "false_easting"
	ParamFalseNorthing    = "false_northing"
	ParamUnit             = "unit"

	ParamStandardParallel1 = "standard_parallel_1"
	ParamStandardParallel2 = "standard_parallel_2"
)

var (
	centralMeridianAlternates  = []string{"longitude_of_center", "longitude_of_origin"}
	latitudeOfOriginAlternates = []string{"latitude_of_center"}
)

// NewProjectionBase reads the shared parameters.
func NewProjectionBase(params *Parameters) (ProjectionBase, error) {
	var b ProjectionBase
	var err error
	if b.SemiMajor, err = params.Required(ParamSemiMajor); err != nil {
		return b, err
	}
	if b.SemiMinor, err = params.Required(ParamSemiMinor); err != nil {
		return b, err
	}
	if !(b.SemiMajor > 0) || !(b.SemiMinor > 0) || b.SemiMinor > b.SemiMajor {
		return b, configErrorf("invalid ellipsoid axes a=%g b=%g", b.SemiMajor, b.SemiMinor)
	}
	b.Es = (b.SemiMajor*b.SemiMajor - b.SemiMinor*b.SemiMinor) / (b.SemiMajor * b.SemiMajor)
	b.E = math.Sqrt(b.Es)
	b.OneEs = 1 - b.Es
	b.ScaleFactor = params.Optional(1, ParamScaleFactor)
	if !(b.ScaleFactor > 0) {
		return b, configErrorf("scale factor must be positive, got %g", b.ScaleFactor)
	}
	b.CentralMeridian = toRadians(params.Optional(0, ParamCentralMeridian, centralMeridianAlternates...))
	lat0 := params.Optional(0, ParamLatitudeOfOrigin, latitudeOfOriginAlternates...)
	if math.Abs(lat0) > 90 {
		return b, configErrorf("latitude of origin %g out of range", lat0)
	}
	b.LatitudeOfOrigin = toRadians(lat0)
	b.MetersPerUnit = params.Optional(1, ParamUnit)
	if !(b.MetersPerUnit > 0) {
		return b, configErrorf("unit must be positive, got %g", b.MetersPerUnit)
	}
	b.FalseEasting = params.Optional(0, ParamFalseEasting) * b.MetersPerUnit
	b.FalseNorthing = params.Optional(0, ParamFalseNorthing) * b.MetersPerUnit
	b.en = enfn(b.Es)
	return b, nil
}

// IsSpherical reports whether the ellipsoid is a sphere.
func (b *ProjectionBase) IsSpherical() bool { return b.Es == 0 }

// Mlfn is the meridian distance to phi on a unit ellipsoid.
func (b *ProjectionBase) Mlfn(phi float64) float64 {
	return mlfn(phi, math.Sin(phi), math.Cos(phi), &b.en)
}

// InvMlfn is the inverse of Mlfn.
func (b *ProjectionBase) InvMlfn(arg float64) (float64, error) {
	return invMlfn(arg, b.Es, &b.en)
}

// ProjectionBuilder builds the projection specific part from the shared base
// and the full parameter set.
type ProjectionBuilder func(base *ProjectionBase, params *Parameters) (Projector, error)

// Projection is the Operation shared by every map projection: it converts
// geographic degrees to projected units and back.
type Projection struct {
	class  string
	params *Parameters
	base   ProjectionBase
	proj   Projector
}

// NewProjection builds a projection of the given class.
func NewProjection(class string, params *Parameters, build ProjectionBuilder) (*Projection, error) {
	base, err := NewProjectionBase(params)
	if err != nil {
		return nil, err
	}
	p := &Projection{class: class, params: params.Clone(), base: base}
	if p.proj, err = build(&p.base, p.params); err != nil {
		return nil, err
	}
	return p, nil
}

// Class returns the canonical projection class name.
func (p *Projection) Class() string { return p.class }

// Parameters returns a copy of the parameters the projection was built with.
func (p *Projection) Parameters() *Parameters { return p.params.Clone() }

// Base returns the derived shared values.
func (p *Projection) Base() ProjectionBase { return p.base }

// Projector returns the projection specific part.
func (p *Projection) Projector() Projector { return p.proj }

func (p *Projection) Name() string { return p.class }

func (p *Projection) Kind() Kind { return KindConversion }

func (p *Projection) Dimensions() (int, int) { return 2, 2 }

// Forward converts (longitude, latitude) in degrees to (x, y) in projected
// units. The third ordinate is returned as zero.
func (p *Projection) Forward(lon, lat, _ float64) (float64, float64, float64, error) {
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsInf(lon, 0) {
		return 0, 0, 0, domainErrorf("%s: invalid coordinate (%g, %g)", p.class, lon, lat)
	}
	if math.Abs(lat) > 90 {
		return 0, 0, 0, domainErrorf("%s: latitude %g out of range", p.class, lat)
	}
	b := &p.base
	lam := adjustLon(toRadians(lon) - b.CentralMeridian)
	x, y, err := p.proj.Project(lam, toRadians(lat))
	if err != nil {
		return 0, 0, 0, err
	}
	return (x + b.FalseEasting) / b.MetersPerUnit, (y + b.FalseNorthing) / b.MetersPerUnit, 0, nil
}

// Reverse converts (x, y) in projected units to (longitude, latitude) in
// degrees. The third ordinate is returned as zero.
func (p *Projection) Reverse(x, y, _ float64) (float64, float64, float64, error) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, 0, domainErrorf("%s: invalid coordinate (%g, %g)", p.class, x, y)
	}
	b := &p.base
	lam, phi, err := p.proj.Unproject(x*b.MetersPerUnit-b.FalseEasting, y*b.MetersPerUnit-b.FalseNorthing)
	if err != nil {
		return 0, 0, 0, err
	}
	return toDegrees(adjustLon(lam + b.CentralMeridian)), toDegrees(phi), 0, nil
}

// normalizeName folds a projection class name for registry lookups.
func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}
