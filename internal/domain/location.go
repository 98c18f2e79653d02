package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Location struct {
	Latitude  float64 `json:"lat" validate:"latitude"`
	Longitude float64 `json:"lon" validate:"longitude"`
}

// NewLocation returns ErrInvalidLocation when lat/lon fall outside [-90,90]/[-180,180].
func NewLocation(lat, lon float64) (Location, error) {
	l := Location{Latitude: lat, Longitude: lon}
	if err := validate.Struct(l); err != nil {
		return Location{}, fmt.Errorf("%w: (%f, %f)", ErrInvalidLocation, lat, lon)
	}
	return l, nil
}

func (l Location) String() string { return fmt.Sprintf("(%.6f, %.6f)", l.Latitude, l.Longitude) }

// Polygon is a closed ring: first == last.
type Polygon []Location

func (p Polygon) Closed() bool {
	return len(p) >= 4 && p[0] == p[len(p)-1]
}

// Close returns the ring with the first vertex repeated at the end when it is
// open. The result never shares spare capacity with p.
func (p Polygon) Close() Polygon {
	if len(p) == 0 || p[0] == p[len(p)-1] {
		return p
	}
	return append(p[:len(p):len(p)], p[0])
}
