// Package dataset loads the reference material table from CSV, XLSX or YAML.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"materia/internal/domain"
)

var errNotFinite = errors.New("value must be a finite number")

// Options tune how a dataset file is read.
type Options struct {
	// Sheet selects the XLSX worksheet; empty means the first sheet.
	Sheet string
	// NameColumn overrides the name column; empty means the first column.
	NameColumn string
}

// Load reads the dataset at path, choosing the format from the extension.
// Every failure is reported as *domain.DatasetLoadError.
func Load(path string, opts Options) (*domain.Dataset, error) {
	var (
		ds  *domain.Dataset
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		ds, err = loadCSV(path, opts)
	case ".xlsx":
		ds, err = loadXLSX(path, opts)
	case ".yaml", ".yml":
		ds, err = loadYAML(path, opts)
	default:
		err = fmt.Errorf("unsupported dataset format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, &domain.DatasetLoadError{Path: path, Err: err}
	}
	return ds, nil
}

// fromTable builds a dataset from a header row and data rows.
func fromTable(header []string, rows [][]string, nameColumn string) (*domain.Dataset, error) {
	if len(header) == 0 {
		return nil, errors.New("missing header row")
	}
	cols := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	nameIdx := 0
	if nameColumn != "" {
		nameIdx = -1
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, fmt.Errorf("column %d has an empty header", i+1)
		}
		if _, dup := seen[h]; dup {
			return nil, fmt.Errorf("duplicate column %q", h)
		}
		seen[h] = struct{}{}
		cols[i] = h
		if h == nameColumn {
			nameIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("name column %q not found", nameColumn)
	}
	if len(cols) < 2 {
		return nil, errors.New("no attribute columns")
	}

	ds := &domain.Dataset{NameColumn: cols[nameIdx]}
	for i, c := range cols {
		if i != nameIdx {
			ds.Schema = append(ds.Schema, c)
		}
	}
	ds.Materials = make([]domain.Material, 0, len(rows))
	for r, row := range rows {
		if isBlank(row) {
			continue
		}
		if len(row) > len(cols) {
			return nil, fmt.Errorf("row %d: %d cells, header has %d", r+2, len(row), len(cols))
		}
		m := domain.Material{Attributes: make(map[string]float64, len(ds.Schema))}
		for i, col := range cols {
			cell := ""
			if i < len(row) {
				cell = strings.TrimSpace(row[i])
			}
			if i == nameIdx {
				m.Name = cell
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
				err = errNotFinite
			}
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", r+2, col, err)
			}
			m.Attributes[col] = v
		}
		if m.Name == "" {
			return nil, fmt.Errorf("row %d: empty material name", r+2)
		}
		ds.Materials = append(ds.Materials, m)
	}
	return ds, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
