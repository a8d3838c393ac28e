package usecases

import (
	"sort"

	"github.com/samirrijal/mobilitymap/internal/core/domain"
)

// CountrySummary is the choropleth value of one reconciled country.
type CountrySummary struct {
	Country  string `json:"country"`
	Students int    `json:"students"`
	Records  int    `json:"records"`
	Matched  bool   `json:"matched"`
}

// AtlasService answers read queries about the published render result.
// The result is immutable after startup, so the service is safe for
// concurrent use without locking.
type AtlasService struct {
	result *domain.RenderResult
}

// NewAtlasService creates a new AtlasService.
func NewAtlasService(result *domain.RenderResult) *AtlasService {
	if result == nil {
		result = &domain.RenderResult{}
	}
	return &AtlasService{result: result}
}

// Result returns the render result.
func (s *AtlasService) Result() *domain.RenderResult {
	return s.result
}

// Records returns a page of reconciled records and the total count.
func (s *AtlasService) Records(offset, limit int) ([]domain.MobilityRecord, int) {
	all := s.result.Records
	total := len(all)
	if offset < 0 {
		offset = 0
	}
	if offset >= total || limit <= 0 {
		return []domain.MobilityRecord{}, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total
}

// Unmatched returns the reconciled names with no boundary feature.
func (s *AtlasService) Unmatched() []string {
	if s.result.Unmatched == nil {
		return []string{}
	}
	return s.result.Unmatched
}

// Countries returns per-country totals, largest first.
func (s *AtlasService) Countries() []CountrySummary {
	unmatched := make(map[string]bool, len(s.result.Unmatched))
	for _, name := range s.result.Unmatched {
		unmatched[name] = true
	}

	byCountry := make(map[string]*CountrySummary)
	var order []string
	for _, r := range s.result.Records {
		cs, ok := byCountry[r.Country]
		if !ok {
			cs = &CountrySummary{Country: r.Country, Matched: !unmatched[r.Country]}
			byCountry[r.Country] = cs
			order = append(order, r.Country)
		}
		cs.Students += r.StudentCount
		cs.Records++
	}

	out := make([]CountrySummary, 0, len(order))
	for _, name := range order {
		out = append(out, *byCountry[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Students != out[j].Students {
			return out[i].Students > out[j].Students
		}
		return out[i].Country < out[j].Country
	})
	return out
}
