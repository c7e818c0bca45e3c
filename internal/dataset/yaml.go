package dataset

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"materia/internal/domain"
)

// yamlFile is the YAML dataset layout:
//
//	name_column: nome_material
//	columns: [tipo, peso]
//	materials:
//	  - name: Aço
//	    values: [2, 5]
type yamlFile struct {
	NameColumn string   `yaml:"name_column"`
	Columns    []string `yaml:"columns"`
	Materials  []struct {
		Name   string    `yaml:"name"`
		Values []float64 `yaml:"values"`
	} `yaml:"materials"`
}

func loadYAML(path string, opts Options) (*domain.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc yamlFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Columns) == 0 {
		return nil, errors.New("no attribute columns")
	}
	nameColumn := doc.NameColumn
	if nameColumn == "" {
		nameColumn = "name"
	}
	if opts.NameColumn != "" && opts.NameColumn != nameColumn {
		return nil, fmt.Errorf("name column %q not found", opts.NameColumn)
	}

	header := append([]string{nameColumn}, doc.Columns...)
	rows := make([][]string, len(doc.Materials))
	for i, m := range doc.Materials {
		if len(m.Values) != len(doc.Columns) {
			return nil, fmt.Errorf("material %q: %d values, %d columns", m.Name, len(m.Values), len(doc.Columns))
		}
		row := make([]string, 0, len(header))
		row = append(row, m.Name)
		for _, v := range m.Values {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		rows[i] = row
	}
	return fromTable(header, rows, "")
}
