package overpass

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/osm"

	"food_maps/internal/domain"
)

// outerRings joins the outer way members of boundary relations into closed rings.
func outerRings(elems []rawElement) ([]domain.Polygon, error) {
	var segments [][]domain.Location
	for _, e := range elems {
		if e.Type != osm.TypeRelation {
			continue
		}
		for _, m := range e.Members {
			if m.Type != osm.TypeWay || (m.Role != "outer" && m.Role != "") || len(m.Geometry) < 2 {
				continue
			}
			seg := make([]domain.Location, len(m.Geometry))
			for i, g := range m.Geometry {
				seg[i] = g.location()
			}
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return nil, domain.ErrNotFound
	}
	return stitch(segments)
}

// stitch chains segments end to end, reversing them when needed, until each
// chain closes on itself.
func stitch(segments [][]domain.Location) ([]domain.Polygon, error) {
	used := make([]bool, len(segments))
	var rings []domain.Polygon

	for start := range segments {
		if used[start] {
			continue
		}
		used[start] = true
		ring := append(domain.Polygon(nil), segments[start]...)

		for ring[0] != ring[len(ring)-1] {
			tail := ring[len(ring)-1]
			next := -1
			for i, seg := range segments {
				if used[i] {
					continue
				}
				if seg[0] == tail {
					next = i
					break
				}
				if seg[len(seg)-1] == tail {
					reverse(seg)
					next = i
					break
				}
			}
			if next < 0 {
				return nil, fmt.Errorf("%w: boundary ring does not close at %v", domain.ErrMalformedResponse, tail)
			}
			used[next] = true
			ring = append(ring, segments[next][1:]...)
		}
		if len(ring) >= 4 {
			rings = append(rings, ring)
		}
	}
	return rings, nil
}

func reverse(s []domain.Location) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// largest picks the ring enclosing the most area; exclaves and islands are dropped.
func largest(rings []domain.Polygon) domain.Polygon {
	var best domain.Polygon
	bestArea := -1.0
	for _, r := range rings {
		ring := make(orb.Ring, len(r))
		for i, l := range r {
			ring[i] = orb.Point{l.Longitude, l.Latitude}
		}
		if a := math.Abs(planar.Area(ring)); a > bestArea {
			best, bestArea = r, a
		}
	}
	return best
}
