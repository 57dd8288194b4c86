package core

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads one worksheet of an XLSX workbook into a RawTable.
// An empty sheet name selects the first sheet. Rows whose cells are all
// empty are skipped, mirroring empty-line handling for delimited text.
func ParseXLSX(r io.Reader, sheet string) (*RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			return nil, err
		}
		return nil, &ParseError{Format: FormatXLSX, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &EmptyInputError{}
		}
		sheet = sheets[0]
	}

	sheetRows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ParseError{Format: FormatXLSX, Err: fmt.Errorf("read sheet %q: %w", sheet, err)}
	}

	var headers []string
	var rows [][]string
	for _, row := range sheetRows {
		if isEmptyRow(row) {
			continue
		}
		if headers == nil {
			headers = row
			continue
		}
		rows = append(rows, row)
	}

	if len(headers) == 0 {
		return nil, &EmptyInputError{}
	}
	if len(rows) == 0 {
		return nil, &EmptyInputError{Headers: len(headers)}
	}
	return NewRawTable(headers, rows), nil
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
