package overpass

import (
	"fmt"

	"github.com/paulmach/osm"

	"food_maps/internal/domain"
)

// Element is one decoded Overpass element. Each kind carries its own rule for
// deriving a single location.
type Element interface {
	Kind() osm.Type
	Ref() string
	Tags() osm.Tags
	Location() (domain.Location, error)
}

type NodeElement struct {
	ID       osm.NodeID
	Lat, Lon float64
	tags     osm.Tags
}

func (n NodeElement) Kind() osm.Type { return osm.TypeNode }
func (n NodeElement) Ref() string    { return fmt.Sprintf("%s/%d", osm.TypeNode, n.ID) }
func (n NodeElement) Tags() osm.Tags { return n.tags }

func (n NodeElement) Location() (domain.Location, error) {
	return domain.NewLocation(n.Lat, n.Lon)
}

// WayElement is located at the centre Overpass computed ("out center"), or at
// the mean of its vertices when only the geometry was returned.
type WayElement struct {
	ID       osm.WayID
	Center   *domain.Location
	Geometry []domain.Location
	tags     osm.Tags
}

func (w WayElement) Kind() osm.Type { return osm.TypeWay }
func (w WayElement) Ref() string    { return fmt.Sprintf("%s/%d", osm.TypeWay, w.ID) }
func (w WayElement) Tags() osm.Tags { return w.tags }

func (w WayElement) Location() (domain.Location, error) {
	if w.Center != nil {
		return domain.NewLocation(w.Center.Latitude, w.Center.Longitude)
	}
	if len(w.Geometry) == 0 {
		return domain.Location{}, fmt.Errorf("%w: way %d has neither center nor geometry", domain.ErrMalformedResponse, w.ID)
	}
	var lat, lon float64
	for _, l := range w.Geometry {
		lat += l.Latitude
		lon += l.Longitude
	}
	n := float64(len(w.Geometry))
	return domain.NewLocation(lat/n, lon/n)
}

type latLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (ll latLon) location() domain.Location {
	return domain.Location{Latitude: ll.Lat, Longitude: ll.Lon}
}

type rawMember struct {
	Type     osm.Type `json:"type"`
	Ref      int64    `json:"ref"`
	Role     string   `json:"role"`
	Geometry []latLon `json:"geometry"`
}

type rawElement struct {
	Type     osm.Type          `json:"type"`
	ID       int64             `json:"id"`
	Lat      *float64          `json:"lat"`
	Lon      *float64          `json:"lon"`
	Center   *latLon           `json:"center"`
	Geometry []latLon          `json:"geometry"`
	Members  []rawMember       `json:"members"`
	Tags     map[string]string `json:"tags"`
}

type response struct {
	Remark   string       `json:"remark"`
	Elements []rawElement `json:"elements"`
}

func toTags(m map[string]string) osm.Tags {
	tags := make(osm.Tags, 0, len(m))
	for k, v := range m {
		tags = append(tags, osm.Tag{Key: k, Value: v})
	}
	return tags
}

// decodeElement turns a raw element into its variant. Kinds other than node
// and way have no location rule and fail with ErrUnsupportedGeometry.
func decodeElement(r rawElement) (Element, error) {
	switch r.Type {
	case osm.TypeNode:
		if r.Lat == nil || r.Lon == nil {
			return nil, fmt.Errorf("%w: node %d without coordinates", domain.ErrMalformedResponse, r.ID)
		}
		return NodeElement{ID: osm.NodeID(r.ID), Lat: *r.Lat, Lon: *r.Lon, tags: toTags(r.Tags)}, nil
	case osm.TypeWay:
		w := WayElement{ID: osm.WayID(r.ID), tags: toTags(r.Tags)}
		if r.Center != nil {
			c := r.Center.location()
			w.Center = &c
		}
		for _, g := range r.Geometry {
			w.Geometry = append(w.Geometry, g.location())
		}
		return w, nil
	default:
		return nil, fmt.Errorf("%w: element %s/%d", domain.ErrUnsupportedGeometry, r.Type, r.ID)
	}
}
