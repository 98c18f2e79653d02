package overpass

import (
	"fmt"
	"strings"

	"food_maps/internal/domain"
)

var qlEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(s string) string { return `"` + qlEscaper.Replace(s) + `"` }

// amenityFilters emits one node and one way statement per category, each
// prefixed with the given spatial filter.
func amenityFilters(b *strings.Builder, spatial string, categories []domain.Category) {
	for _, c := range categories {
		for _, kind := range []string{"node", "way"} {
			fmt.Fprintf(b, "  %s%s[\"amenity\"=%s];\n", kind, spatial, quote(string(c)))
		}
	}
}

func nearbyQuery(center domain.Location, radius float64, categories []domain.Category) string {
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];\n(\n")
	amenityFilters(&b, fmt.Sprintf("(around:%.0f,%.6f,%.6f)", radius, center.Latitude, center.Longitude), categories)
	b.WriteString(");\nout center;\n")
	return b.String()
}

func areaQuery(area string, categories []domain.Category) string {
	var b strings.Builder
	b.WriteString("[out:json][timeout:90];\n")
	fmt.Fprintf(&b, "area[\"name\"=%s]->.searchArea;\n(\n", quote(area))
	amenityFilters(&b, "(area.searchArea)", categories)
	b.WriteString(");\nout center;\n")
	return b.String()
}

func boundaryQuery(area string) string {
	return fmt.Sprintf("[out:json][timeout:90];\nrelation[\"name\"=%s][\"type\"=\"boundary\"];\nout geom;\n", quote(area))
}
