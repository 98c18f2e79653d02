package spatial_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"

	"food_maps/internal/domain"
	"food_maps/internal/spatial"
)

var rabinSquare = domain.Location{Latitude: 32.0809, Longitude: 34.7806}

func TestFrame_OriginProjectsToZero(t *testing.T) {
	f := spatial.NewFrame(rabinSquare)
	p := f.Project(rabinSquare)
	assert.InDelta(t, 0, p.X(), 1e-6)
	assert.InDelta(t, 0, p.Y(), 1e-6)
}

func TestFrame_RoundTrip(t *testing.T) {
	f := spatial.NewFrame(rabinSquare)
	l := domain.Location{Latitude: 32.1, Longitude: 34.8}
	back := f.Unproject(f.Project(l))
	assert.InDelta(t, l.Latitude, back.Latitude, 1e-9)
	assert.InDelta(t, l.Longitude, back.Longitude, 1e-9)
}

func TestFrame_DistancesAreMeters(t *testing.T) {
	f := spatial.NewFrame(rabinSquare)
	for _, other := range []domain.Location{
		{Latitude: 32.0809, Longitude: 34.7906}, // ~940m east
		{Latitude: 32.0909, Longitude: 34.7806}, // ~1.1km north
		{Latitude: 32.0759, Longitude: 34.7756}, // ~730m south-west
	} {
		want := geo.Distance(
			orb.Point{rabinSquare.Longitude, rabinSquare.Latitude},
			orb.Point{other.Longitude, other.Latitude},
		)
		got := planar.Distance(f.Project(rabinSquare), f.Project(other))
		assert.InEpsilon(t, want, got, 0.005, "to %v", other)
	}
}

func TestFrameFor_CentersOnPolygon(t *testing.T) {
	poly := domain.Polygon{
		{Latitude: 32.0, Longitude: 34.7},
		{Latitude: 32.1, Longitude: 34.7},
		{Latitude: 32.1, Longitude: 34.8},
		{Latitude: 32.0, Longitude: 34.8},
		{Latitude: 32.0, Longitude: 34.7},
	}
	f := spatial.FrameFor(poly)
	c := f.Project(domain.Location{Latitude: 32.05, Longitude: 34.75})
	assert.InDelta(t, 0, c.X(), 1)
	assert.InDelta(t, 0, c.Y(), 1)

	ring := f.ProjectPolygon(poly)[0]
	assert.True(t, ring.Closed())
	assert.Len(t, ring, 5)
}
