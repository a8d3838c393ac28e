package domain

import (
	"fmt"
	"strings"
)

// DataFormatError reports a malformed input table or boundary document.
type DataFormatError struct {
	Source string
	Line   int    // 1-based; 0 when the problem is not tied to a row
	Column string // empty when not column-specific
	Value  string
	Err    error
}

func (e *DataFormatError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "data format error in %s", e.Source)
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ", column %q", e.Column)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, ", value %q", e.Value)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// ResourceNotFoundError reports a missing input file.
type ResourceNotFoundError struct {
	Resource string // "records", "boundaries", "mapping file"
	Path     string
	Err      error
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s not found at %s", e.Resource, e.Path)
}

func (e *ResourceNotFoundError) Unwrap() error { return e.Err }

// UnmatchedNameWarning describes a reconciled country name with no boundary
// feature. It is logged, never returned from a rendering pass.
type UnmatchedNameWarning struct {
	Name     string
	RawNames []string
}

func (w UnmatchedNameWarning) Error() string {
	if len(w.RawNames) == 0 || (len(w.RawNames) == 1 && w.RawNames[0] == w.Name) {
		return fmt.Sprintf("no boundary feature named %q", w.Name)
	}
	return fmt.Sprintf("no boundary feature named %q (from %s)", w.Name, strings.Join(w.RawNames, ", "))
}
