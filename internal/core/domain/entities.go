package domain

import (
	"fmt"
	"time"
)

// MobilityRecord is one row of the student-mobility table.
type MobilityRecord struct {
	Country      string   `json:"country"`
	RawCountry   string   `json:"raw_country"`
	StudentCount int      `json:"student_count"`
	Location     GeoPoint `json:"location"`
}

// PopupText is the label shown on the record's map marker.
func (r MobilityRecord) PopupText() string {
	return fmt.Sprintf("%s: %d students", r.Country, r.StudentCount)
}

// BoundaryFeature is a named polygon in the boundary dataset.
type BoundaryFeature struct {
	Name string `json:"name"`
}

// BoundarySet is a loaded boundary document together with the names of
// its features, in document order.
type BoundarySet struct {
	Source   string
	Document []byte
	Features []BoundaryFeature
	names    map[string]struct{}
}

// NewBoundarySet builds a BoundarySet and indexes its feature names.
func NewBoundarySet(source string, document []byte, features []BoundaryFeature) *BoundarySet {
	names := make(map[string]struct{}, len(features))
	for _, f := range features {
		names[f.Name] = struct{}{}
	}
	return &BoundarySet{
		Source:   source,
		Document: document,
		Features: features,
		names:    names,
	}
}

// Has reports whether a feature with exactly this name exists.
func (b *BoundarySet) Has(name string) bool {
	if b == nil {
		return false
	}
	_, ok := b.names[name]
	return ok
}

// Len returns the number of named features.
func (b *BoundarySet) Len() int {
	if b == nil {
		return 0
	}
	return len(b.names)
}

// RenderResult is the outcome of one rendering pass.
type RenderResult struct {
	Records      []MobilityRecord `json:"records"`
	Unmatched    []string         `json:"unmatched"`
	MappingSet   string           `json:"mapping_set"`
	ArtifactPath string           `json:"artifact_path"`
	ArtifactSize int              `json:"artifact_size"`
	Boundaries   int              `json:"boundaries"`
	RenderedAt   time.Time        `json:"rendered_at"`
}

// CountryTotals sums student counts per reconciled country.
func CountryTotals(records []MobilityRecord) map[string]int {
	totals := make(map[string]int, len(records))
	for _, r := range records {
		totals[r.Country] += r.StudentCount
	}
	return totals
}
