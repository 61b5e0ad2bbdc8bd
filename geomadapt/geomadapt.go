// Package geomadapt runs coordxform transforms over go-geom and orb
// geometries.
package geomadapt

import (
	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
	"github.com/twpayne/go-geom"
	"github.com/tzneal/coordxform"
)

// TransformGeom transforms g in place. The Z ordinate is passed to t only
// when g has one and t is three dimensional; M ordinates are left alone.
func TransformGeom(t coordxform.Transform, g geom.T) error {
	if gc, ok := g.(*geom.GeometryCollection); ok {
		for i, child := range gc.Geoms() {
			if err := TransformGeom(t, child); err != nil {
				return errors.Wrapf(err, "geometry %d", i)
			}
		}
		return nil
	}
	flat := g.FlatCoords()
	stride := g.Stride()
	n := len(flat)
	if n == 0 {
		return nil
	}
	if stride < 2 {
		return errors.Newf("unsupported layout %v", g.Layout())
	}
	m := n - stride + 1
	xs, ys := flat[0:m], flat[1:m+1]
	var zs []float64
	if zi := g.Layout().ZIndex(); zi >= 0 && t.SourceDimension() == 3 {
		zs = flat[zi : m+zi]
	}
	return t.TransformPoints(xs, ys, zs, stride)
}

// TransformOrb returns a transformed copy of g. g itself is not modified.
func TransformOrb(t coordxform.Transform, g orb.Geometry) (orb.Geometry, error) {
	if g == nil {
		return nil, nil
	}
	var firstErr error
	out := project.Geometry(orb.Clone(g), func(p orb.Point) orb.Point {
		if firstErr != nil {
			return p
		}
		x, y, _, err := t.Transform(p[0], p[1], 0)
		if err != nil {
			firstErr = err
			return p
		}
		return orb.Point{x, y}
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
