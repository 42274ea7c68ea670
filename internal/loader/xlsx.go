package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads one worksheet of an .xlsx workbook with the same semantics
// as LoadCSV: first row is a header and is discarded, short rows are
// skipped, the label field is trimmed and dropped when empty.
func LoadXLSX(path string, opt Options) (*Result, error) {
	res := &Result{}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return res, &NotFoundError{Path: path}
		}
		return res, &ReadError{Path: path, Err: err}
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return res, &ReadError{Path: path, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	sheet := opt.SheetName
	if sheet == "" {
		idx := opt.SheetIndex
		if idx <= 0 {
			idx = 1
		}
		sheet = f.GetSheetName(idx - 1)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return res, &ReadError{Path: path, Err: fmt.Errorf("sheet %q: %w (available sheets: %s)",
			sheet, err, strings.Join(f.GetSheetList(), ", "))}
	}
	if len(rows) == 0 {
		return res, nil
	}
	for _, rec := range rows[1:] {
		res.Rows++
		res.add(rec, opt.FieldIndex)
	}
	return res, nil
}
