// Package render writes a computed heatmap to disk.
package render

import (
	"context"
	"fmt"
	"html/template"
	"os"

	"github.com/rs/zerolog/log"

	"food_maps/internal/domain"
)

// FillOpacity is the opacity of every heat cell.
const FillOpacity = 0.6

var page = template.Must(template.New("heatmap").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var center = {{.Center}};
var cells = {{.Cells}};
var map = L.map('map').setView(center, {{.Zoom}});
L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);
cells.forEach(function (c) {
  L.rectangle(c.bounds, {
    color: c.color,
    weight: 0,
    fill: true,
    fillColor: c.color,
    fillOpacity: {{.FillOpacity}}
  }).bindTooltip(String(c.count)).addTo(map);
});
</script>
</body>
</html>
`))

type htmlCell struct {
	Bounds [2][2]float64 `json:"bounds"`
	Color  string        `json:"color"`
	Count  int           `json:"count"`
}

type htmlPage struct {
	Title       string
	Center      [2]float64
	Zoom        int
	FillOpacity float64
	Cells       []htmlCell
}

// HTMLRenderer writes a standalone Leaflet page with one filled rectangle per
// cell and the cell count as its tooltip.
type HTMLRenderer struct {
	Path string
	Zoom int
}

func NewHTMLRenderer(path string) *HTMLRenderer {
	return &HTMLRenderer{Path: path, Zoom: 13}
}

func (r *HTMLRenderer) Render(_ context.Context, h domain.Heatmap) error {
	data := htmlPage{
		Title:       h.Area,
		Center:      [2]float64{h.Center.Latitude, h.Center.Longitude},
		Zoom:        r.Zoom,
		FillOpacity: FillOpacity,
		Cells:       make([]htmlCell, 0, len(h.Cells)),
	}
	for _, c := range h.Cells {
		data.Cells = append(data.Cells, htmlCell{
			Bounds: [2][2]float64{
				{c.SouthWest.Latitude, c.SouthWest.Longitude},
				{c.NorthEast.Latitude, c.NorthEast.Longitude},
			},
			Color: c.Color,
			Count: c.NearbyCount,
		})
	}

	f, err := os.Create(r.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", r.Path, err)
	}
	if err := page.Execute(f, data); err != nil {
		f.Close()
		return fmt.Errorf("render html: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info().Str("path", r.Path).Int("cells", len(h.Cells)).Msg("heatmap page written")
	return nil
}
