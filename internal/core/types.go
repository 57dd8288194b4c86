package core

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// RawTable is the parsed form of a tabular payload.
// Rows are aligned to Headers: short rows are padded with empty strings and
// cells beyond the header count are dropped.
type RawTable struct {
	Headers []string
	Rows    [][]string

	index HeaderIndex
}

// HeaderIndex maps verbatim header text to its column position.
// Duplicate headers resolve to their last position.
type HeaderIndex map[string]int

// MakeHeaderIndex creates a HeaderIndex from a header row.
// This should be called once per table, then reused for all rows.
func MakeHeaderIndex(headers []string) HeaderIndex {
	idx := make(HeaderIndex, len(headers))
	for i, h := range headers {
		idx[h] = i
	}
	return idx
}

// NewRawTable builds a table from a header row and raw data rows, applying
// the padding and truncation rules.
func NewRawTable(headers []string, rows [][]string) *RawTable {
	t := &RawTable{
		Headers: append([]string(nil), headers...),
		Rows:    make([][]string, 0, len(rows)),
		index:   MakeHeaderIndex(headers),
	}
	for _, row := range rows {
		t.Rows = append(t.Rows, alignRow(row, len(headers)))
	}
	return t
}

func alignRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

// Value returns the cell under header key in row i.
func (t *RawTable) Value(i int, key string) (string, bool) {
	if i < 0 || i >= len(t.Rows) {
		return "", false
	}
	if t.index == nil {
		t.index = MakeHeaderIndex(t.Headers)
	}
	pos, ok := t.index[key]
	if !ok {
		return "", false
	}
	return t.Rows[i][pos], true
}

// Row returns row i as a header -> cell mapping.
func (t *RawTable) Row(i int) map[string]string {
	if i < 0 || i >= len(t.Rows) {
		return nil
	}
	out := make(map[string]string, len(t.Headers))
	for j, h := range t.Headers {
		out[h] = t.Rows[i][j]
	}
	return out
}

// RowCount returns the number of data rows.
func (t *RawTable) RowCount() int {
	return len(t.Rows)
}

// Role is the semantic purpose a column plays.
type Role string

const (
	RoleBefore Role = "before"
	RoleAfter  Role = "after"
	RoleLabel  Role = "label"
)

// ColumnRoleAssignment names the headers that supply record text.
// BeforeKey and AfterKey may be equal for degenerate header sets.
type ColumnRoleAssignment struct {
	BeforeKey string `json:"before_key" yaml:"before_key"`
	AfterKey  string `json:"after_key" yaml:"after_key"`
	LabelKey  string `json:"label_key,omitempty" yaml:"label_key,omitempty"`
	HasBefore bool   `json:"-" yaml:"-"`
	HasAfter  bool   `json:"-" yaml:"-"`
	HasLabel  bool   `json:"-" yaml:"-"`
}

// String renders the assignment for logs.
func (a ColumnRoleAssignment) String() string {
	label := "<none>"
	if a.HasLabel {
		label = fmt.Sprintf("%q", a.LabelKey)
	}
	return fmt.Sprintf("before=%q after=%q label=%s", a.BeforeKey, a.AfterKey, label)
}

// PromptRecord is one before/after pair.
type PromptRecord struct {
	ID       int    `json:"id" yaml:"id"`
	Before   string `json:"before" yaml:"before"`
	After    string `json:"after" yaml:"after"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	HasLabel bool   `json:"-" yaml:"-"`
}

// DisplayLabel returns the label, or "Prompt N" (1-based) when the label is
// unset or empty.
func (r PromptRecord) DisplayLabel() string {
	if r.HasLabel && r.Label != "" {
		return r.Label
	}
	return fmt.Sprintf("Prompt %d", r.ID+1)
}

// ViewMode selects how record text is displayed.
type ViewMode string

const (
	ViewRendered ViewMode = "rendered"
	ViewRaw      ViewMode = "raw"
)

// ParseViewMode accepts "rendered" (alias "markdown") or "raw", any case.
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rendered", "markdown":
		return ViewRendered, nil
	case "raw":
		return ViewRaw, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, s)
	}
}

// Valid reports whether m is a known view mode.
func (m ViewMode) Valid() bool {
	return m == ViewRendered || m == ViewRaw
}

// Source is a payload handed to the ingestion pipeline.
type Source struct {
	Name        string // file name, used for format selection
	ContentType string // optional MIME type
	Size        int64  // 0 if unknown
	Content     io.Reader
}

// IngestResult is the output of a successful ingestion.
type IngestResult struct {
	ID       string
	FileName string
	Format   string
	Headers  []string
	Roles    ColumnRoleAssignment
	Records  []PromptRecord
	Duration time.Duration
}
