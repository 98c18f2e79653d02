package domain

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryCafe       Category = "cafe"
	CategoryBar        Category = "bar"
	CategoryRestaurant Category = "restaurant"
	CategoryPub        Category = "pub"
	CategoryFastFood   Category = "fast_food"
)

var AllCategories = []Category{CategoryPub, CategoryBar, CategoryCafe, CategoryRestaurant, CategoryFastFood}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllCategories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// ParseCategories parses a comma separated list; empty input means every category.
func ParseCategories(s string) ([]Category, error) {
	if strings.TrimSpace(s) == "" {
		return append([]Category(nil), AllCategories...), nil
	}
	var out []Category
	for _, part := range strings.Split(s, ",") {
		c, err := ParseCategory(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Place is a named point of interest. ID is the provider-assigned identity
// (OSM feature id such as "node/123", or a Google place_id).
type Place struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Location Location `json:"location"`
}

type NearbyQuery struct {
	Center       Location
	RadiusMeters float64
	Category     Category
	Language     string
}

// PlacesPage is one page of a places query. A nil NextToken ends the sequence.
type PlacesPage struct {
	Items            []Place
	NextToken        *string
	RankedByDistance bool
}
