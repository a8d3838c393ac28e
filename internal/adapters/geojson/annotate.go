package geojson

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Feature properties written by Annotate.
const (
	StudentsProperty = "students"
	FillProperty     = "fill"
)

// Annotate returns a copy of document in which every feature whose name has
// a value gets properties.students and properties.fill. fill is the colour
// returned by colorFor. Features without a value are left untouched.
func Annotate(document []byte, values map[string]int, colorFor func(int) string) ([]byte, error) {
	out := make([]byte, len(document))
	copy(out, document)

	features := gjson.GetBytes(document, "features")
	if !features.IsArray() {
		return nil, fmt.Errorf("annotate: document has no features array")
	}

	var err error
	idx := 0
	features.ForEach(func(_, f gjson.Result) bool {
		i := idx
		idx++

		name := f.Get(NameProperty)
		if name.Type != gjson.String {
			return true
		}
		v, ok := values[name.Str]
		if !ok {
			return true
		}

		base := fmt.Sprintf("features.%d.properties.", i)
		if out, err = sjson.SetBytes(out, base+StudentsProperty, v); err != nil {
			return false
		}
		if out, err = sjson.SetBytes(out, base+FillProperty, colorFor(v)); err != nil {
			return false
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}
	return out, nil
}
