// Package grid loads the cell definitions a choropleth is drawn from.
//
// A grid file is a CSV with one row per geographic or categorical unit.
// One column carries the unit id (state abbreviation, country code, ...);
// the remaining columns carry whatever the draw methods need: square or
// hex coordinates, multihex contours, or SVG path data for real maps.
// Columns are accessed by name, so a single file can describe several
// grid types at once.
package grid

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/bugu00/chorogrid/pkg/errors"
)

// Table is a header-indexed view over the rows of a CSV file.
type Table struct {
	header map[string]int
	cols   []string
	rows   [][]string
}

// Read parses CSV data into a Table. The first record is the header;
// duplicate column names keep the first occurrence. At least one data row
// is required.
func Read(r io.Reader) (*Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "parsing csv")
	}
	if len(records) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "csv needs a header and at least one row")
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		if _, ok := header[name]; !ok {
			header[name] = i
		}
	}
	return &Table{header: header, cols: records[0], rows: records[1:]}, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "opening %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the header names in file order.
func (t *Table) Columns() []string { return t.cols }

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.header[name]
	return ok
}

// Strings returns a column as raw strings.
func (t *Table) Strings(name string) ([]string, error) {
	idx, ok := t.header[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeMissingColumn, "no column %q", name)
	}
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Floats returns a column parsed as float64. Empty cells become NaN so
// that downstream binning drops them instead of failing; any other
// unparsable cell is an error.
func (t *Table) Floats(name string) ([]float64, error) {
	raw, err := t.Strings(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for i, s := range raw {
		if s == "" {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "column %q row %d", name, i+1)
		}
		out[i] = v
	}
	return out, nil
}

// Ints returns a column parsed as int.
func (t *Table) Ints(name string) ([]int, error) {
	raw, err := t.Strings(name)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(raw))
	for i, s := range raw {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "column %q row %d", name, i+1)
		}
		out[i] = v
	}
	return out, nil
}

// Match compares supplied ids against the id column. It returns the
// supplied ids absent from the table (invalid) and the table ids not
// supplied (missing); both are diagnostics the caller should surface as
// warnings, neither stops a render.
func (t *Table) Match(idColumn string, ids []string) (invalid, missing []string, err error) {
	tableIDs, err := t.Strings(idColumn)
	if err != nil {
		return nil, nil, err
	}

	inTable := make(map[string]bool, len(tableIDs))
	for _, id := range tableIDs {
		inTable[id] = true
	}
	supplied := make(map[string]bool, len(ids))
	for _, id := range ids {
		supplied[id] = true
		if !inTable[id] {
			invalid = append(invalid, id)
		}
	}
	for _, id := range tableIDs {
		if !supplied[id] {
			missing = append(missing, id)
		}
	}
	return invalid, missing, nil
}
