package usecases

import (
	"slices"
	"sort"

	"github.com/samirrijal/mobilitymap/internal/core/domain"
)

// Reconcile rewrites each name through the mapping. Names without an entry
// pass through verbatim. Output has the same length and order as names.
func Reconcile(names []string, mapping domain.NameMapping) []string {
	out := make([]string, len(names))
	for i, name := range names {
		if target, ok := mapping.Lookup(name); ok {
			out[i] = target
		} else {
			out[i] = name
		}
	}
	return out
}

// ReconcileRecords returns copies of records with Country reconciled and
// RawCountry holding the name as loaded.
func ReconcileRecords(records []domain.MobilityRecord, mapping domain.NameMapping) []domain.MobilityRecord {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Country
	}
	reconciled := Reconcile(names, mapping)

	out := make([]domain.MobilityRecord, len(records))
	for i, r := range records {
		r.RawCountry = names[i]
		r.Country = reconciled[i]
		out[i] = r
	}
	return out
}

// Unmatched returns the reconciled names that have no boundary feature,
// de-duplicated and sorted.
func Unmatched(reconciled []string, boundaries *domain.BoundarySet) []string {
	seen := make(map[string]struct{})
	var missing []string
	for _, name := range reconciled {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if !boundaries.Has(name) {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// UnmatchedWarnings groups unmatched records into one warning per reconciled
// name, listing the raw names that produced it.
func UnmatchedWarnings(records []domain.MobilityRecord, boundaries *domain.BoundarySet) []domain.UnmatchedNameWarning {
	names := make([]string, len(records))
	raw := make(map[string][]string)
	for i, r := range records {
		names[i] = r.Country
		if !slices.Contains(raw[r.Country], r.RawCountry) {
			raw[r.Country] = append(raw[r.Country], r.RawCountry)
		}
	}

	missing := Unmatched(names, boundaries)
	warnings := make([]domain.UnmatchedNameWarning, 0, len(missing))
	for _, name := range missing {
		warnings = append(warnings, domain.UnmatchedNameWarning{Name: name, RawNames: raw[name]})
	}
	return warnings
}
