package domain

import "sort"

// NameMapping rewrites source-vocabulary country names into the names used
// by a boundary dataset. It is immutable once built.
type NameMapping struct {
	name    string
	entries map[string]string
}

// NewNameMapping copies entries into a new mapping.
func NewNameMapping(name string, entries map[string]string) NameMapping {
	m := make(map[string]string, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return NameMapping{name: name, entries: m}
}

// Name is the mapping set's configured name.
func (m NameMapping) Name() string { return m.name }

// Lookup returns the replacement for raw, if one is configured.
func (m NameMapping) Lookup(raw string) (string, bool) {
	target, ok := m.entries[raw]
	return target, ok
}

// Len returns the number of entries.
func (m NameMapping) Len() int { return len(m.entries) }

// Entries returns a copy of the mapping.
func (m NameMapping) Entries() map[string]string {
	out := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}

// Sources returns the mapping keys in sorted order.
func (m NameMapping) Sources() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
