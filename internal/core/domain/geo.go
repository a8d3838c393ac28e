package domain

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds represents a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// MapSettings controls how the map artifact is drawn.
type MapSettings struct {
	Center      GeoPoint
	Zoom        int
	Tiles       string
	FillColor   string
	FillOpacity float64
	LineOpacity float64
	Bins        int
	LegendName  string
	Title       string
}

// MapDocument is everything a renderer needs to draw one map.
type MapDocument struct {
	Records    []MobilityRecord
	Boundaries *BoundarySet
	Settings   MapSettings
}
