// Package spatial holds the metric-grid computations behind the heatmap:
// a local planar frame, the lattice generator and the nearby-place counter.
package spatial

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"

	"food_maps/internal/domain"
)

// Frame is a planar frame centred on an origin in which one unit is one metre.
// It is web mercator (EPSG:3857) rescaled by cos(origin latitude), which
// removes mercator's 1/cos(lat) stretch near the origin.
type Frame struct {
	origin orb.Point // mercator coordinates of the origin
	scale  float64
}

func NewFrame(origin domain.Location) Frame {
	return Frame{
		origin: project.WGS84.ToMercator(orb.Point{origin.Longitude, origin.Latitude}),
		scale:  math.Cos(origin.Latitude * math.Pi / 180),
	}
}

// FrameFor centres a frame on the area centroid of the polygon.
func FrameFor(p domain.Polygon) Frame {
	ring := make(orb.Ring, 0, len(p))
	for _, l := range p {
		ring = append(ring, orb.Point{l.Longitude, l.Latitude})
	}
	c, _ := planar.CentroidArea(ring)
	return NewFrame(domain.Location{Latitude: c.Lat(), Longitude: c.Lon()})
}

func (f Frame) Project(l domain.Location) orb.Point {
	m := project.WGS84.ToMercator(orb.Point{l.Longitude, l.Latitude})
	return orb.Point{(m.X() - f.origin.X()) * f.scale, (m.Y() - f.origin.Y()) * f.scale}
}

func (f Frame) Unproject(p orb.Point) domain.Location {
	m := orb.Point{p.X()/f.scale + f.origin.X(), p.Y()/f.scale + f.origin.Y()}
	g := project.Mercator.ToWGS84(m)
	return domain.Location{Latitude: g.Lat(), Longitude: g.Lon()}
}

func (f Frame) ProjectAll(locs []domain.Location) []orb.Point {
	out := make([]orb.Point, len(locs))
	for i, l := range locs {
		out[i] = f.Project(l)
	}
	return out
}

func (f Frame) ProjectPolygon(p domain.Polygon) orb.Polygon {
	ring := make(orb.Ring, len(p))
	copy(ring, f.ProjectAll(p))
	return orb.Polygon{ring}
}
