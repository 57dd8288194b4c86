package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput marks a payload with no header or no data rows.
	// Ingestion of such a payload is a no-op for the caller.
	ErrEmptyInput = errors.New("empty file")

	// ErrUnsupportedFormat is returned for payloads that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported file type")

	// ErrFileTooLarge is returned when a payload exceeds the configured limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrIndexOutOfRange is returned by Session.Select for an index outside
	// the loaded records.
	ErrIndexOutOfRange = errors.New("selection out of range")

	// ErrInvalidViewMode is returned for view modes other than rendered/raw.
	ErrInvalidViewMode = errors.New("invalid view mode")
)

// ParseError reports structurally malformed delimited text.
type ParseError struct {
	Format string // "csv" or "xlsx"; empty means csv
	Line   int    // 1-based line where the error was detected, 0 if unknown
	Column int    // 1-based column, 0 if unknown
	Err    error
}

func (e *ParseError) Error() string {
	format := e.Format
	if format == "" {
		format = FormatCSV
	}
	if e.Line > 0 {
		return fmt.Sprintf("invalid %s: line %d, column %d: %v", format, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("invalid %s: %v", format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EmptyInputError describes why a payload produced nothing to load.
type EmptyInputError struct {
	Headers int
	Rows    int
}

func (e *EmptyInputError) Error() string {
	if e.Headers == 0 {
		return "empty file: no header row"
	}
	return fmt.Sprintf("empty file: %d columns but no data rows", e.Headers)
}

// Is lets errors.Is(err, ErrEmptyInput) match.
func (e *EmptyInputError) Is(target error) bool {
	return target == ErrEmptyInput
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
