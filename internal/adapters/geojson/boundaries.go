// Package geojson reads boundary documents and annotates their features
// for choropleth rendering.
package geojson

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"

	"github.com/samirrijal/mobilitymap/internal/core/domain"
)

// NameProperty is the feature property joined against country names.
const NameProperty = "properties.name"

// Source implements ports.BoundarySource over a GeoJSON file.
type Source struct {
	fs   afero.Fs
	path string
}

// New creates a Source reading path from fsys.
func New(fsys afero.Fs, path string) *Source {
	return &Source{fs: fsys, path: path}
}

// Load reads and indexes the boundary document.
func (s *Source) Load(ctx context.Context) (*domain.BoundarySet, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.ResourceNotFoundError{Resource: "boundaries", Path: s.path, Err: err}
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Parse(s.path, data)
}

// Parse indexes the feature names of a GeoJSON FeatureCollection.
// Features without a string name stay in the document but are not indexed.
func Parse(source string, data []byte) (*domain.BoundarySet, error) {
	if !gjson.ValidBytes(data) {
		return nil, &domain.DataFormatError{Source: source, Err: errors.New("invalid JSON")}
	}

	features := gjson.GetBytes(data, "features")
	if !features.IsArray() {
		return nil, &domain.DataFormatError{Source: source, Column: "features", Err: errors.New("expected a features array")}
	}

	var named []domain.BoundaryFeature
	features.ForEach(func(_, f gjson.Result) bool {
		name := f.Get(NameProperty)
		if name.Type == gjson.String {
			named = append(named, domain.BoundaryFeature{Name: name.Str})
		}
		return true
	})

	return domain.NewBoundarySet(source, data, named), nil
}
