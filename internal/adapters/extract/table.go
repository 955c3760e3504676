package extract

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// table is a parsed CSV extract. header is the first header row, rows start
// after headerRows lines.
type table struct {
	header    []string
	index     map[string]int
	rows      [][]string
	firstLine int
}

// readTable loads path. Ragged rows are kept; fields are trimmed.
func readTable(path string, headerRows int) (*table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrExtractNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrReadExtract, path, err)
	}
	return parseTable(bytes.NewReader(bytes.TrimPrefix(b, utf8BOM)), headerRows, path)
}

func parseTable(r io.Reader, headerRows int, path string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadExtract, path, err)
	}

	t := &table{index: map[string]int{}, firstLine: headerRows + 1}
	if len(records) > 0 && headerRows > 0 {
		t.header = records[0]
		for i, h := range t.header {
			key := strings.ToLower(strings.TrimSpace(h))
			if _, dup := t.index[key]; !dup {
				t.index[key] = i
			}
		}
	}
	if len(records) > headerRows {
		t.rows = records[headerRows:]
	}
	return t, nil
}

// column returns the index of a required named column.
func (t *table) column(extract, name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s", ErrMissingColumn, extract, name)
	}
	return i, nil
}

// optional returns the index of the first present column among names, or -1.
func (t *table) optional(names ...string) int {
	for _, n := range names {
		if i, ok := t.index[n]; ok {
			return i
		}
	}
	return -1
}

// rowError describes why a row was rejected.
type rowError struct {
	column string
	reason string
}

func (e *rowError) Error() string { return e.column + ": " + e.reason }

func field(row []string, i int, name string) (string, error) {
	if i < 0 || i >= len(row) {
		return "", &rowError{column: name, reason: "missing"}
	}
	v := strings.TrimSpace(row[i])
	if v == "" {
		return "", &rowError{column: name, reason: "blank"}
	}
	return v, nil
}

func floatField(row []string, i int, name string) (float64, error) {
	v, err := field(row, i, name)
	if err != nil {
		return 0, err
	}
	f, perr := strconv.ParseFloat(v, 64)
	if perr != nil {
		return 0, &rowError{column: name, reason: "not a number: " + v}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &rowError{column: name, reason: "not finite"}
	}
	return f, nil
}

// countField accepts integral numbers, including the "12.0" form pandas writes.
func countField(row []string, i int, name string) (int64, error) {
	v, err := field(row, i, name)
	if err != nil {
		return 0, err
	}
	n, perr := strconv.ParseInt(v, 10, 64)
	if perr != nil {
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil || f != math.Trunc(f) {
			return 0, &rowError{column: name, reason: "not a count: " + v}
		}
		if f >= math.MaxInt64 || f < math.MinInt64 {
			return 0, &rowError{column: name, reason: "count out of range: " + v}
		}
		n = int64(f)
	}
	if n < 0 {
		return 0, &rowError{column: name, reason: "negative count"}
	}
	return n, nil
}
