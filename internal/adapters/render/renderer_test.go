package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/mobilitymap/internal/adapters/geojson"
	"github.com/samirrijal/mobilitymap/internal/adapters/render"
	"github.com/samirrijal/mobilitymap/internal/core/domain"
)

const boundaries = `{"type":"FeatureCollection","features":[
 {"type":"Feature","properties":{"name":"United States of America"},"geometry":null},
 {"type":"Feature","properties":{"name":"Peru"},"geometry":null},
 {"type":"Feature","properties":{"name":"France"},"geometry":null}
]}`

func settings() domain.MapSettings {
	return domain.MapSettings{
		Center:      domain.GeoPoint{Lat: 20, Lon: 0},
		Zoom:        2,
		Tiles:       "cartodb positron",
		FillColor:   "YlOrRd",
		FillOpacity: 0.7,
		LineOpacity: 0.2,
		Bins:        6,
		LegendName:  "Number of Students Studying Abroad",
		Title:       "Student Mobility",
	}
}

func TestRenderer_Render(t *testing.T) {
	set, err := geojson.Parse("world.json", []byte(boundaries))
	require.NoError(t, err)

	html, err := render.New().Render(context.Background(), domain.MapDocument{
		Records: []domain.MobilityRecord{
			{Country: "United States of America", StudentCount: 120, Location: domain.GeoPoint{Lat: 38.9, Lon: -77.0}},
			{Country: "Peru", StudentCount: 10, Location: domain.GeoPoint{Lat: -12.05, Lon: -77.04}},
			{Country: "Atlantis", StudentCount: 5, Location: domain.GeoPoint{Lat: 0, Lon: 0}},
		},
		Boundaries: set,
		Settings:   settings(),
	})
	require.NoError(t, err)

	page := string(html)
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<title>Student Mobility</title>")
	assert.Contains(t, page, "United States of America: 120 students")
	assert.Contains(t, page, "Peru: 10 students")
	assert.Contains(t, page, "Atlantis: 5 students")
	assert.Contains(t, page, "Number of Students Studying Abroad")
	assert.Contains(t, page, "basemaps.cartocdn.com/light_all")
	assert.Contains(t, page, `"fill":"#800026"`, "largest value takes the darkest colour")
	assert.Contains(t, page, `"fill":"#ffffcc"`, "smallest value takes the lightest colour")
	assert.Contains(t, page, "leaflet.markercluster")
}

func TestRenderer_Render_EscapesNames(t *testing.T) {
	html, err := render.New().Render(context.Background(), domain.MapDocument{
		Records: []domain.MobilityRecord{
			{Country: "</script><script>alert(1)</script>", StudentCount: 1},
		},
		Settings: settings(),
	})
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>alert(1)")
}

func TestRenderer_Render_NoBoundaries(t *testing.T) {
	html, err := render.New().Render(context.Background(), domain.MapDocument{
		Records:  []domain.MobilityRecord{{Country: "Peru", StudentCount: 3}},
		Settings: settings(),
	})
	require.NoError(t, err)
	assert.Contains(t, string(html), `"features":[]`)
}

func TestRenderer_Render_InvalidSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.MapSettings)
	}{
		{"unknown palette", func(s *domain.MapSettings) { s.FillColor = "Rainbow" }},
		{"too many bins", func(s *domain.MapSettings) { s.Bins = 12 }},
		{"unknown tiles", func(s *domain.MapSettings) { s.Tiles = "stamen watercolor" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := settings()
			tt.mutate(&s)
			_, err := render.New().Render(context.Background(), domain.MapDocument{Settings: s})
			assert.Error(t, err)
		})
	}
}
