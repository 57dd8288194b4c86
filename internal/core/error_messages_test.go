package core

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "file too large maps correctly",
			err:         fmt.Errorf("%w: 200 bytes exceeds 100", ErrFileTooLarge),
			wantCode:    "FILE001",
			wantMessage: "File exceeds the maximum upload size",
		},
		{
			name:        "csv parse error maps correctly",
			err:         &ParseError{Line: 3, Column: 7, Err: csv.ErrQuote},
			wantCode:    "FILE002",
			wantMessage: "File is not valid CSV",
		},
		{
			name:        "xlsx parse error maps correctly",
			err:         &ParseError{Format: FormatXLSX, Err: errors.New("zip: not a valid zip file")},
			wantCode:    "FILE003",
			wantMessage: "File is not a readable XLSX workbook",
		},
		{
			name:        "empty input maps correctly",
			err:         &EmptyInputError{Headers: 2},
			wantCode:    "FILE005",
			wantMessage: "The file has no header or no data rows",
		},
		{
			name:        "unsupported format maps correctly",
			err:         fmt.Errorf("%w: %q", ErrUnsupportedFormat, "notes.pdf"),
			wantCode:    "FILE006",
			wantMessage: "Only CSV and XLSX files are accepted",
		},
		{
			name:        "selection out of range maps correctly",
			err:         fmt.Errorf("%w: 9 (have 2 records)", ErrIndexOutOfRange),
			wantCode:    "SES001",
			wantMessage: "The requested prompt does not exist",
		},
		{
			name:        "invalid view mode maps correctly",
			err:         ErrInvalidViewMode,
			wantCode:    "SES002",
			wantMessage: "Unknown view mode",
		},
		{
			name:        "busy limiter maps correctly",
			err:         ErrTooManyIngests,
			wantCode:    "UPL002",
			wantMessage: "System is busy processing other uploads",
		},
		{
			name:        "cancelled ingest maps correctly",
			err:         fmt.Errorf("ingest cancelled: %w", context.Canceled),
			wantCode:    "UPL004",
			wantMessage: "Request was cancelled",
		},
		{
			name:        "deadline maps correctly",
			err:         context.DeadlineExceeded,
			wantCode:    "UPL005",
			wantMessage: "Request timed out",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("INVALID CSV: bare quote"),
			wantCode:    "FILE002",
			wantMessage: "File is not valid CSV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMessage, got.Message)
		})
	}
}

func TestFormatUserError(t *testing.T) {
	assert.Equal(t,
		"Only CSV and XLSX files are accepted (Code: FILE006). Upload a file ending in .csv or .xlsx",
		FormatUserError(ErrUnsupportedFormat))
	assert.Empty(t, FormatUserError(nil))
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error is not user facing",
			err:  nil,
			want: false,
		},
		{
			name: "known error is user facing",
			err:  ErrEmptyInput,
			want: true,
		},
		{
			name: "unknown error is not user facing",
			err:  errors.New("random internal error xyz"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUserFacing(tt.err))
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.Nil(t, NewUserError(nil))
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := &ParseError{Line: 2, Column: 1, Err: csv.ErrBareQuote}
		userErr := NewUserError(techErr)

		assert.EqualError(t, userErr, "File is not valid CSV")
		assert.ErrorIs(t, userErr, csv.ErrBareQuote)
	})
}
