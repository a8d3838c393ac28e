// Package csvsource loads student-mobility records from a delimited table.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/samirrijal/mobilitymap/internal/core/domain"
	"github.com/samirrijal/mobilitymap/internal/pkg/geospatial"
)

// Required column headers.
const (
	ColCountry   = "Country"
	ColStudents  = "Number_of_Students"
	ColLatitude  = "Latitude"
	ColLongitude = "Longitude"
)

var requiredColumns = []string{ColCountry, ColStudents, ColLatitude, ColLongitude}

// Source implements ports.RecordSource over a file.
type Source struct {
	fs        afero.Fs
	path      string
	delimiter rune
}

// New creates a Source reading path from fsys.
func New(fsys afero.Fs, path string, delimiter rune) *Source {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Source{fs: fsys, path: path, delimiter: delimiter}
}

// Load reads every record. The first problem encountered is returned.
func (s *Source) Load(ctx context.Context) ([]domain.MobilityRecord, error) {
	f, err := s.fs.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.ResourceNotFoundError{Resource: "records", Path: s.path, Err: err}
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	return Parse(ctx, f, s.path, s.delimiter)
}

// Parse decodes records from r. source names the input in errors.
func Parse(ctx context.Context, r io.Reader, source string, delimiter rune) ([]domain.MobilityRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &domain.DataFormatError{Source: source, Line: 1, Err: errors.New("missing header row")}
	}
	if err != nil {
		return nil, formatError(source, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	cols := indexColumns(header)
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, &domain.DataFormatError{Source: source, Line: 1, Column: name, Err: errors.New("required column missing")}
		}
	}

	var records []domain.MobilityRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, formatError(source, err)
		}
		line, _ := reader.FieldPos(0)

		rec, err := parseRow(row, cols)
		if err != nil {
			var dfe *domain.DataFormatError
			if errors.As(err, &dfe) {
				dfe.Source = source
				dfe.Line = line
			}
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRow(row []string, cols map[string]int) (domain.MobilityRecord, error) {
	country := row[cols[ColCountry]]

	rawCount := strings.TrimSpace(row[cols[ColStudents]])
	count, err := strconv.Atoi(rawCount)
	if err != nil {
		return domain.MobilityRecord{}, &domain.DataFormatError{Column: ColStudents, Value: rawCount, Err: errors.New("not an integer")}
	}
	if count < 0 {
		return domain.MobilityRecord{}, &domain.DataFormatError{Column: ColStudents, Value: rawCount, Err: errors.New("must not be negative")}
	}

	lat, err := parseCoordinate(row, cols, ColLatitude, geospatial.ValidLatitude)
	if err != nil {
		return domain.MobilityRecord{}, err
	}
	lon, err := parseCoordinate(row, cols, ColLongitude, geospatial.ValidLongitude)
	if err != nil {
		return domain.MobilityRecord{}, err
	}

	return domain.MobilityRecord{
		Country:      country,
		RawCountry:   country,
		StudentCount: count,
		Location:     domain.GeoPoint{Lat: lat, Lon: lon},
	}, nil
}

func parseCoordinate(row []string, cols map[string]int, col string, valid func(float64) bool) (float64, error) {
	raw := strings.TrimSpace(row[cols[col]])
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &domain.DataFormatError{Column: col, Value: raw, Err: errors.New("not a number")}
	}
	if !valid(v) {
		return 0, &domain.DataFormatError{Column: col, Value: raw, Err: errors.New("out of range")}
	}
	return v, nil
}

// indexColumns maps header names to their position. The first occurrence
// of a duplicated header wins.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	return cols
}

func formatError(source string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &domain.DataFormatError{Source: source, Line: pe.Line, Err: pe.Err}
	}
	return &domain.DataFormatError{Source: source, Err: err}
}
