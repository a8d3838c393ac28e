// Package render draws the student-mobility map as a self-contained Leaflet
// HTML document: a choropleth of per-country totals plus clustered markers.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/samirrijal/mobilitymap/internal/adapters/geojson"
	"github.com/samirrijal/mobilitymap/internal/core/domain"
)

// Renderer implements ports.MapRenderer.
type Renderer struct {
	tmpl *template.Template
}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{tmpl: template.Must(template.New("map").Parse(mapTemplate))}
}

type marker struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Text string  `json:"text"`
}

type payload struct {
	Center      [2]float64      `json:"center"`
	Zoom        int             `json:"zoom"`
	Tiles       TileLayer       `json:"tiles"`
	Boundaries  json.RawMessage `json:"boundaries"`
	FillOpacity float64         `json:"fill_opacity"`
	LineOpacity float64         `json:"line_opacity"`
	Legend      legend          `json:"legend"`
	Markers     []marker        `json:"markers"`
}

type legend struct {
	Title string `json:"title"`
	Scale Scale  `json:"scale"`
}

type page struct {
	Title   string
	Payload payload
}

// Render produces the HTML document for doc.
func (r *Renderer) Render(ctx context.Context, doc domain.MapDocument) ([]byte, error) {
	s := doc.Settings

	tiles, err := ResolveTiles(s.Tiles)
	if err != nil {
		return nil, err
	}

	totals := domain.CountryTotals(doc.Records)
	values := make([]int, 0, len(totals))
	for country, v := range totals {
		if doc.Boundaries.Has(country) {
			values = append(values, v)
		}
	}
	scale, err := NewScale(s.FillColor, s.Bins, values)
	if err != nil {
		return nil, err
	}

	var boundaries []byte
	if doc.Boundaries != nil && len(doc.Boundaries.Document) > 0 {
		boundaries, err = geojson.Annotate(doc.Boundaries.Document, totals, scale.Color)
		if err != nil {
			return nil, err
		}
	} else {
		boundaries = []byte(`{"type":"FeatureCollection","features":[]}`)
	}

	markers := make([]marker, len(doc.Records))
	for i, rec := range doc.Records {
		markers[i] = marker{Lat: rec.Location.Lat, Lon: rec.Location.Lon, Text: rec.PopupText()}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = r.tmpl.Execute(&buf, page{
		Title: s.Title,
		Payload: payload{
			Center:      [2]float64{s.Center.Lat, s.Center.Lon},
			Zoom:        s.Zoom,
			Tiles:       tiles,
			Boundaries:  boundaries,
			FillOpacity: s.FillOpacity,
			LineOpacity: s.LineOpacity,
			Legend:      legend{Title: s.LegendName, Scale: scale},
			Markers:     markers,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("execute map template: %w", err)
	}
	return buf.Bytes(), nil
}
