package render

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ColorBrewer 9-class sequential palettes, light to dark.
var palettes = map[string][]string{
	"YlOrRd": {"#ffffcc", "#ffeda0", "#fed976", "#feb24c", "#fd8d3c", "#fc4e2a", "#e31a1c", "#bd0026", "#800026"},
	"YlGnBu": {"#ffffd9", "#edf8b1", "#c7e9b4", "#7fcdbb", "#41b6c4", "#1d91c0", "#225ea8", "#253494", "#081d58"},
	"Blues":  {"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6", "#4292c6", "#2171b5", "#08519c", "#08306b"},
	"Greens": {"#f7fcf5", "#e5f5e0", "#c7e9c0", "#a1d99b", "#74c476", "#41ab5d", "#238b45", "#006d2c", "#00441b"},
	"Reds":   {"#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#a50f15", "#67000d"},
	"BuPu":   {"#f7fcfd", "#e0ecf4", "#bfd3e6", "#9ebcda", "#8c96c6", "#8c6bb1", "#88419d", "#810f7c", "#4d004b"},
	"OrRd":   {"#fff7ec", "#fee8c8", "#fdd49e", "#fdbb84", "#fc8d59", "#ef6548", "#d7301f", "#b30000", "#7f0000"},
}

// Palettes lists the supported palette names.
func Palettes() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scale maps values onto equal-width bins between the smallest and largest
// value, one colour per bin.
type Scale struct {
	Thresholds []float64 `json:"thresholds"` // len(Colors)+1 ascending edges
	Colors     []string  `json:"colors"`
}

// NewScale builds a linear scale of bins classes for values.
func NewScale(palette string, bins int, values []int) (Scale, error) {
	full, ok := palettes[palette]
	if !ok {
		return Scale{}, fmt.Errorf("unknown palette %q (have %s)", palette, strings.Join(Palettes(), ", "))
	}
	if bins < 3 || bins > len(full) {
		return Scale{}, fmt.Errorf("bins must be 3-%d, got %d", len(full), bins)
	}

	colors := make([]string, bins)
	for i := range colors {
		colors[i] = full[int(math.Round(float64(i*(len(full)-1))/float64(bins-1)))]
	}

	lo, hi := 0.0, 0.0
	for i, v := range values {
		f := float64(v)
		if i == 0 || f < lo {
			lo = f
		}
		if i == 0 || f > hi {
			hi = f
		}
	}

	thresholds := make([]float64, bins+1)
	step := (hi - lo) / float64(bins)
	for i := range thresholds {
		thresholds[i] = lo + step*float64(i)
	}
	thresholds[bins] = hi

	return Scale{Thresholds: thresholds, Colors: colors}, nil
}

// Color returns the fill for v. Values outside the range clamp to the
// first or last colour.
func (s Scale) Color(v int) string {
	f := float64(v)
	n := len(s.Colors)
	for i := 0; i < n-1; i++ {
		if f < s.Thresholds[i+1] {
			return s.Colors[i]
		}
	}
	return s.Colors[n-1]
}
