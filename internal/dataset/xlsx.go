package dataset

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"materia/internal/domain"
)

func loadXLSX(path string, opts Options) (*domain.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, errors.New("missing header row")
	}
	return fromTable(rows[0], rows[1:], opts.NameColumn)
}
