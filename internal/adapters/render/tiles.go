package render

import (
	"fmt"
	"strings"
)

// TileLayer is a Leaflet tile source.
type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	Subdomains  string `json:"subdomains,omitempty"`
	MaxZoom     int    `json:"max_zoom"`
}

const (
	osmAttribution   = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
	cartoAttribution = osmAttribution + ` &copy; <a href="https://carto.com/attributions">CARTO</a>`
)

var tileLayers = map[string]TileLayer{
	"openstreetmap": {
		URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: osmAttribution,
		MaxZoom:     19,
	},
	"cartodb positron": {
		URL:         "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png",
		Attribution: cartoAttribution,
		Subdomains:  "abcd",
		MaxZoom:     20,
	},
	"cartodb dark_matter": {
		URL:         "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png",
		Attribution: cartoAttribution,
		Subdomains:  "abcd",
		MaxZoom:     20,
	},
}

// ResolveTiles returns the tile layer for a built-in name (case-insensitive)
// or a custom {z}/{x}/{y} URL template.
func ResolveTiles(name string) (TileLayer, error) {
	if t, ok := tileLayers[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t, nil
	}
	if strings.Contains(name, "{z}") && strings.Contains(name, "{x}") && strings.Contains(name, "{y}") {
		return TileLayer{URL: name, MaxZoom: 18}, nil
	}
	return TileLayer{}, fmt.Errorf("unknown tile layer %q", name)
}
