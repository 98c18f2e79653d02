package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food_maps/internal/domain"
)

func TestNewLocation(t *testing.T) {
	l, err := domain.NewLocation(32.0809, 34.7806)
	require.NoError(t, err)
	assert.Equal(t, domain.Location{Latitude: 32.0809, Longitude: 34.7806}, l)

	for _, c := range [][2]float64{{91, 0}, {-90.5, 0}, {0, 180.1}, {0, -181}} {
		_, err := domain.NewLocation(c[0], c[1])
		assert.ErrorIs(t, err, domain.ErrInvalidLocation, "%v", c)
	}
}

func TestParseCategories(t *testing.T) {
	all, err := domain.ParseCategories(" ")
	require.NoError(t, err)
	assert.Equal(t, domain.AllCategories, all)

	got, err := domain.ParseCategories("Cafe, fast_food")
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{domain.CategoryCafe, domain.CategoryFastFood}, got)

	_, err = domain.ParseCategories("cafe,nightclub")
	assert.Error(t, err)
}

func TestPolygonClose(t *testing.T) {
	p := domain.Polygon{{Latitude: 0, Longitude: 0}, {Latitude: 0, Longitude: 1}, {Latitude: 1, Longitude: 1}}
	assert.False(t, p.Closed())
	closed := p.Close()
	assert.True(t, closed.Closed())
	assert.Len(t, closed, 4)
	assert.True(t, closed.Close().Closed())
	assert.Len(t, closed.Close(), 4)
}

func TestPolygonClose_DoesNotShareSpareCapacity(t *testing.T) {
	base := make(domain.Polygon, 3, 10)
	base[0] = domain.Location{Latitude: 1, Longitude: 1}
	base[1] = domain.Location{Latitude: 1, Longitude: 2}
	base[2] = domain.Location{Latitude: 2, Longitude: 2}

	closed := base.Close()
	_ = append(base, domain.Location{Latitude: 9, Longitude: 0})

	assert.True(t, closed.Closed())
	assert.Equal(t, base[0], closed[3])
}
