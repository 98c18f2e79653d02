package app

import (
	"fmt"

	"food_maps/internal/domain"
)

// Dedupe keeps one Place per ID. A later duplicate replaces the earlier value
// but keeps its position, so output order is first appearance.
func Dedupe(places []domain.Place) ([]domain.Place, error) {
	idx := make(map[string]int, len(places))
	out := make([]domain.Place, 0, len(places))
	for i, p := range places {
		if p.ID == "" {
			return nil, fmt.Errorf("place %d (%q): %w", i, p.Name, domain.ErrMissingIdentity)
		}
		if j, ok := idx[p.ID]; ok {
			out[j] = p
			continue
		}
		idx[p.ID] = len(out)
		out = append(out, p)
	}
	return out, nil
}
