package coordxform

import (
	"fmt"
	"math"
)

// GridShifter corrects geographic coordinates using a lookup grid. ok is
// false when the point lies outside the grid.
type GridShifter interface {
	TryTransform(x, y float64, inverse bool) (float64, float64, bool)
}

// GridShift exposes a GridShifter as an operation. The forward direction
// goes from the grid's datum towards WGS 84.
type GridShift struct {
	name string
	grid GridShifter
	dim  int
}

// NewGridShift wraps grid for points of dimension dim.
func NewGridShift(name string, grid GridShifter, dim int) (*GridShift, error) {
	if grid == nil {
		return nil, configErrorf("grid shift %q: no grid", name)
	}
	return &GridShift{name: name, grid: grid, dim: dim}, nil
}

func (g *GridShift) Name() string { return "Grid shift(" + g.name + ")" }

func (g *GridShift) Kind() Kind { return KindTransformation }

func (g *GridShift) Dimensions() (int, int) { return g.dim, g.dim }

func (g *GridShift) Forward(x, y, z float64) (float64, float64, float64, error) {
	return g.apply(x, y, z, false)
}

func (g *GridShift) Reverse(x, y, z float64) (float64, float64, float64, error) {
	return g.apply(x, y, z, true)
}

func (g *GridShift) apply(x, y, z float64, inverse bool) (float64, float64, float64, error) {
	nx, ny, ok := g.grid.TryTransform(x, y, inverse)
	if !ok {
		return 0, 0, 0, domainErrorf("point (%g, %g) is outside grid %q", x, y, g.name)
	}
	return nx, ny, z, nil
}

const (
	gridMaxIter   = 10
	gridTolerance = 1e-12
)

// RegularGrid is an in-memory grid of longitude and latitude shifts in
// degrees, stored row by row from the south-west node.
type RegularGrid struct {
	minLon, minLat   float64
	lonStep, latStep float64
	cols, rows       int
	dlon, dlat       []float64
}

// NewRegularGrid builds a grid of cols×rows nodes. dlon and dlat hold one
// shift per node.
func NewRegularGrid(minLon, minLat, lonStep, latStep float64, cols, rows int, dlon, dlat []float64) (*RegularGrid, error) {
	if cols < 2 || rows < 2 {
		return nil, configErrorf("grid needs at least 2x2 nodes, got %dx%d", cols, rows)
	}
	if !(lonStep > 0) || !(latStep > 0) {
		return nil, configErrorf("grid steps must be positive, got %g and %g", lonStep, latStep)
	}
	if len(dlon) != cols*rows || len(dlat) != cols*rows {
		return nil, configErrorf("grid of %dx%d nodes needs %d shifts, got %d and %d",
			cols, rows, cols*rows, len(dlon), len(dlat))
	}
	return &RegularGrid{
		minLon: minLon, minLat: minLat,
		lonStep: lonStep, latStep: latStep,
		cols: cols, rows: rows,
		dlon: dlon, dlat: dlat,
	}, nil
}

func (g *RegularGrid) String() string {
	return fmt.Sprintf("RegularGrid(%gE %gN, %dx%d)", g.minLon, g.minLat, g.cols, g.rows)
}

// TryTransform applies the shift, or removes it when inverse is set.
func (g *RegularGrid) TryTransform(x, y float64, inverse bool) (float64, float64, bool) {
	if !inverse {
		dx, dy, ok := g.shift(x, y)
		if !ok {
			return 0, 0, false
		}
		return x + dx, y + dy, true
	}
	px, py := x, y
	for i := 0; i < gridMaxIter; i++ {
		dx, dy, ok := g.shift(px, py)
		if !ok {
			return 0, 0, false
		}
		nx, ny := x-dx, y-dy
		if math.Abs(nx-px) < gridTolerance && math.Abs(ny-py) < gridTolerance {
			return nx, ny, true
		}
		px, py = nx, ny
	}
	return 0, 0, false
}

// shift interpolates the node shifts bilinearly at (x, y).
func (g *RegularGrid) shift(x, y float64) (float64, float64, bool) {
	fx := (x - g.minLon) / g.lonStep
	fy := (y - g.minLat) / g.latStep
	if !(fx >= 0 && fy >= 0 && fx <= float64(g.cols-1) && fy <= float64(g.rows-1)) {
		return 0, 0, false
	}
	i := int(math.Min(math.Floor(fx), float64(g.cols-2)))
	j := int(math.Min(math.Floor(fy), float64(g.rows-2)))
	u, v := fx-float64(i), fy-float64(j)
	at := func(s []float64) float64 {
		k := j*g.cols + i
		return (1-u)*(1-v)*s[k] + u*(1-v)*s[k+1] + (1-u)*v*s[k+g.cols] + u*v*s[k+g.cols+1]
	}
	return at(g.dlon), at(g.dlat), true
}
