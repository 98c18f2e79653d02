package spatial

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

var (
	ErrCellSize     = errors.New("cell size must be positive")
	ErrEmptyPolygon = errors.New("polygon needs a closed outer ring")
)

// latticeEps absorbs float drift when the last lattice line lands on the bound.
const latticeEps = 1e-9

// Grid walks a lattice of spacing cell anchored at the polygon's bounding box
// minimum corner, row by row from south to north and west to east, and keeps
// the points inside the polygon. Points on the outer boundary are kept.
func Grid(poly orb.Polygon, cell float64) ([]orb.Point, error) {
	if !(cell > 0) {
		return nil, ErrCellSize
	}
	if len(poly) == 0 || len(poly[0]) < 4 || !poly[0].Closed() {
		return nil, ErrEmptyPolygon
	}

	b := poly.Bound()
	cols := int(math.Floor((b.Max.X()-b.Min.X())/cell+latticeEps)) + 1
	rows := int(math.Floor((b.Max.Y()-b.Min.Y())/cell+latticeEps)) + 1

	var out []orb.Point
	for r := 0; r < rows; r++ {
		y := b.Min.Y() + float64(r)*cell
		for c := 0; c < cols; c++ {
			p := orb.Point{b.Min.X() + float64(c)*cell, y}
			if planar.PolygonContains(poly, p) {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

// CellBounds is the square of side cell centred on p.
func CellBounds(p orb.Point, cell float64) orb.Bound {
	h := cell / 2
	return orb.Bound{
		Min: orb.Point{p.X() - h, p.Y() - h},
		Max: orb.Point{p.X() + h, p.Y() + h},
	}
}
