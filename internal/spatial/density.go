package spatial

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// pointTol gives indexed points a non-degenerate box; rtreego rejects touching rects.
const pointTol = 1e-6

type indexedPoint struct {
	p orb.Point
}

func (ip *indexedPoint) Bounds() rtreego.Rect {
	return rtreego.Point{ip.p.X(), ip.p.Y()}.ToRect(pointTol)
}

// Progress is notified after each grid point is counted.
type Progress interface {
	Add(n int) error
}

type countOptions struct {
	progress Progress
}

type CountOption func(*countOptions)

func WithProgress(p Progress) CountOption {
	return func(o *countOptions) { o.progress = p }
}

// CountNearby returns, for every grid point, the number of places whose planar
// distance to it is <= radius. Counts are independent per grid point.
func CountNearby(grid, places []orb.Point, radius float64, opts ...CountOption) []int {
	var o countOptions
	for _, opt := range opts {
		opt(&o)
	}

	counts := make([]int, len(grid))
	if len(grid) == 0 || len(places) == 0 || radius < 0 {
		if o.progress != nil && len(grid) > 0 {
			_ = o.progress.Add(len(grid))
		}
		return counts
	}

	tree := rtreego.NewTree(2, 25, 50)
	for _, p := range places {
		tree.Insert(&indexedPoint{p: p})
	}

	// search box side 2*radius, padded so points exactly at radius stay candidates
	side := 2*radius + 2*pointTol
	for i, g := range grid {
		box, err := rtreego.NewRect(rtreego.Point{g.X() - radius - pointTol, g.Y() - radius - pointTol}, []float64{side, side})
		if err != nil {
			// only for non-positive side lengths, which radius >= 0 rules out
			continue
		}
		n := 0
		for _, s := range tree.SearchIntersect(box) {
			if planar.Distance(g, s.(*indexedPoint).p) <= radius {
				n++
			}
		}
		counts[i] = n
		if o.progress != nil {
			_ = o.progress.Add(1)
		}
	}
	return counts
}
