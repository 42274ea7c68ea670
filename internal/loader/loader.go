package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"
)

// Options controls how a label column is extracted from an input file.
type Options struct {
	// FieldIndex is the zero-based column holding the label.
	FieldIndex int
	// Delimiter for CSV input. If 0, sniffed from the extension
	// ('\t' for .tsv, ',' otherwise).
	Delimiter rune
	// SheetName selects the worksheet for XLSX input; empty means by index.
	SheetName string
	// SheetIndex is the 1-based worksheet index for XLSX input; <=0 means 1.
	SheetIndex int
}

// Result is the outcome of one load: the ordered label sequence plus row
// accounting. Label order equals input row order.
type Result struct {
	Labels    []string
	Rows      int // data rows seen (header excluded)
	ShortRows int // rows with fewer fields than FieldIndex+1, skipped
	Blank     int // rows whose field was empty after trimming, dropped
}

func (r *Result) add(rec []string, idx int) {
	if len(rec) <= idx {
		r.ShortRows++
		return
	}
	v := strings.TrimSpace(rec[idx])
	if v == "" {
		r.Blank++
		return
	}
	r.Labels = append(r.Labels, v)
}

// Load extracts the label column from path, dispatching on the file
// extension (.xlsx via the workbook loader, everything else as delimited
// text). On failure the returned Result still carries whatever was
// accumulated before the error.
func Load(path string, opt Options) (*Result, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return LoadXLSX(path, opt)
	}
	return LoadCSV(path, opt)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadCSV reads a delimited text file, skips the header row, and extracts
// the label column. The header is discarded unconditionally; its contents
// are not validated.
func LoadCSV(path string, opt Options) (*Result, error) {
	res := &Result{}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return res, &NotFoundError{Path: path}
		}
		return res, &ReadError{Path: path, Err: err}
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return res, &DecodeError{Path: path}
	}

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.ReuseRecord = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	// Header
	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		return res, &ReadError{Path: path, Err: err}
	}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return res, &ReadError{Path: path, Err: err}
		}
		res.Rows++
		res.add(rec, opt.FieldIndex)
	}
	return res, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
