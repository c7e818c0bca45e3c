package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"materia/internal/domain"
)

func loadCSV(path string, opts Options) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("missing header row")
	}
	if err != nil {
		return nil, err
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return fromTable(header, rows, opts.NameColumn)
}
