package domain

type GridPoint struct {
	Location    Location `json:"location"`
	NearbyCount int      `json:"nearby_count"`
}

// HeatCell is a rendered grid cell: a square of CellSizeMeters around a grid point.
type HeatCell struct {
	GridPoint
	SouthWest Location `json:"south_west"`
	NorthEast Location `json:"north_east"`
	Color     string   `json:"color"`
}

type Heatmap struct {
	Area           string
	Center         Location
	CellSizeMeters float64
	RadiusMeters   float64
	Cells          []HeatCell
	MinCount       int
	MaxCount       int
	PlacesCount    int
}
