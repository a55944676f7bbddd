// Package source loads the ordered company-name list the batch walks.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat reports an input file extension the loader does
// not understand.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// headerWords are first-cell values treated as a header row and skipped.
var headerWords = map[string]struct{}{
	"company": {}, "company name": {}, "name": {}, "companies": {},
}

// Load reads company names from the first column of the given tabular
// file, dispatching on extension. Blanks are dropped and order preserved.
// A missing or unreadable file is the caller's fatal startup error.
func Load(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadExcel(path)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func loadExcel(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	var names []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		names = appendName(names, row[0])
	}
	return stripHeader(names), nil
}

func loadCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var names []string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		names = appendName(names, record[0])
	}
	return stripHeader(names), nil
}

func appendName(names []string, cell string) []string {
	name := strings.TrimSpace(cell)
	if name == "" {
		return names
	}
	return append(names, name)
}

func stripHeader(names []string) []string {
	if len(names) == 0 {
		return names
	}
	if _, ok := headerWords[strings.ToLower(names[0])]; ok {
		return names[1:]
	}
	return names
}
