// Package mappingfile loads country-name mapping sets from YAML and selects
// the active one.
//
// A mapping file holds named sets:
//
//	sets:
//	  default:
//	    USA: United States
//	  regions:
//	    Hong Kong: China
package mappingfile

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/samirrijal/mobilitymap/internal/core/domain"
)

type file struct {
	Sets map[string]map[string]string `yaml:"sets"`
}

// Load reads the mapping sets defined in path.
func Load(fsys afero.Fs, path string) (map[string]map[string]string, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.ResourceNotFoundError{Resource: "mapping file", Path: path, Err: err}
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes mapping sets. Keys are kept exactly as written.
func Parse(source string, data []byte) (map[string]map[string]string, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &domain.DataFormatError{Source: source, Err: err}
	}
	if len(f.Sets) == 0 {
		return nil, &domain.DataFormatError{Source: source, Column: "sets", Err: errors.New("no mapping sets defined")}
	}
	return f.Sets, nil
}

// Select merges file sets over builtin sets (a file set replaces a builtin
// set of the same name, entries are never merged) and returns the set called
// name.
func Select(builtin, fromFile map[string]map[string]string, name string) (domain.NameMapping, error) {
	sets := make(map[string]map[string]string, len(builtin)+len(fromFile))
	for k, v := range builtin {
		sets[k] = v
	}
	for k, v := range fromFile {
		sets[k] = v
	}

	entries, ok := sets[name]
	if !ok {
		names := make([]string, 0, len(sets))
		for k := range sets {
			names = append(names, k)
		}
		sort.Strings(names)
		return domain.NameMapping{}, fmt.Errorf("unknown mapping set %q (available: %s)", name, strings.Join(names, ", "))
	}
	return domain.NewNameMapping(name, entries), nil
}
