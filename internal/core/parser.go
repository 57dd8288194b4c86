package core

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Supported payload formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// DelimiterCandidates are tried, in order, when no delimiter is configured.
var DelimiterCandidates = []rune{',', '\t', ';', '|'}

// ParseOptions controls delimited-text parsing.
type ParseOptions struct {
	// Delimiter separates fields. Zero means detect from the header line.
	Delimiter rune
}

// ParseCSV reads delimited text into a RawTable.
//
// The first non-empty record is the header row and is kept verbatim.
// Empty lines never produce rows. Structural errors such as an unterminated
// quote return a *ParseError; a payload without a header or without data
// rows returns an *EmptyInputError.
func ParseCSV(r io.Reader, opts ParseOptions) (*RawTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("read csv: %w", err)
	}
	data = normalizeLineEndings(data)

	delim := opts.Delimiter
	if delim == 0 {
		delim = DetectDelimiter(data)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.FieldsPerRecord = -1

	var headers []string
	var rows [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, toParseError(err)
		}
		if isBlankRecord(record) {
			continue
		}
		if headers == nil {
			headers = record
			continue
		}
		rows = append(rows, record)
	}

	if len(headers) == 0 {
		return nil, &EmptyInputError{}
	}
	if len(rows) == 0 {
		return nil, &EmptyInputError{Headers: len(headers)}
	}
	return NewRawTable(headers, rows), nil
}

// normalizeLineEndings rewrites classic Mac line endings (a lone \r) to \n so
// encoding/csv sees one record per line. Input that already contains \n is
// returned untouched, and carriage returns inside quoted fields are kept.
func normalizeLineEndings(data []byte) []byte {
	if bytes.IndexByte(data, '\n') >= 0 || bytes.IndexByte(data, '\r') < 0 {
		return data
	}
	out := make([]byte, len(data))
	inQuotes := false
	for i, b := range data {
		switch {
		case b == '"':
			inQuotes = !inQuotes
		case b == '\r' && !inQuotes:
			b = '\n'
		}
		out[i] = b
	}
	return out
}

func toParseError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{
			Format: FormatCSV,
			Line:   csvErr.Line,
			Column: csvErr.Column,
			Err:    csvErr.Err,
		}
	}
	return &ParseError{Format: FormatCSV, Err: err}
}

// isBlankRecord matches the record encoding/csv yields for a line holding
// only an empty quoted field.
func isBlankRecord(record []string) bool {
	return len(record) == 1 && record[0] == ""
}

// DetectDelimiter picks the candidate that occurs most often, outside of
// quotes, on the first non-empty line. Ties go to the earlier candidate;
// no occurrence at all yields a comma.
func DetectDelimiter(data []byte) rune {
	line := firstNonEmptyLine(data)
	counts := make(map[rune]int, len(DelimiterCandidates))
	inQuotes := false
	for _, r := range string(line) {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[r]++
		}
	}

	best, bestCount := ',', 0
	for _, c := range DelimiterCandidates {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	return best
}

// firstNonEmptyLine returns the first line with content. A quoted newline
// ends the scan early, which only affects detection, not parsing.
func firstNonEmptyLine(data []byte) []byte {
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		var line []byte
		if i < 0 {
			line, data = data, nil
		} else {
			line, data = data[:i], data[i+1:]
		}
		line = bytes.TrimRight(line, "\r")
		if len(line) > 0 {
			return line
		}
	}
	return nil
}
