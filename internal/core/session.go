package core

import "fmt"

// Session is the comparison state for one loaded record list.
//
// When records are loaded, 0 <= SelectedIndex() < Len(). When empty,
// SelectedIndex() is 0 and Current reports no record.
//
// A Session is not safe for concurrent use; it has a single owner.
type Session struct {
	records  []PromptRecord
	selected int
	mode     ViewMode
}

// NewSession creates an empty session in the given view mode.
// An invalid mode falls back to ViewRendered.
func NewSession(mode ViewMode) *Session {
	if !mode.Valid() {
		mode = ViewRendered
	}
	return &Session{mode: mode}
}

// Load replaces the record list and selects the first record.
// The view mode is left unchanged. The session keeps its own copy.
func (s *Session) Load(records []PromptRecord) {
	s.records = append([]PromptRecord(nil), records...)
	s.selected = 0
}

// Select moves the selection to index. Out-of-range indexes are rejected
// with ErrIndexOutOfRange and leave the selection untouched.
func (s *Session) Select(index int) error {
	if index < 0 || index >= len(s.records) {
		return fmt.Errorf("%w: %d (have %d records)", ErrIndexOutOfRange, index, len(s.records))
	}
	s.selected = index
	return nil
}

// SetViewMode switches between rendered and raw display.
func (s *Session) SetViewMode(mode ViewMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidViewMode, mode)
	}
	s.mode = mode
	return nil
}

// Reset drops all records. The view mode is left unchanged.
func (s *Session) Reset() {
	s.records = nil
	s.selected = 0
}

// Records returns a copy of the loaded records in source row order.
func (s *Session) Records() []PromptRecord {
	out := make([]PromptRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of loaded records.
func (s *Session) Len() int {
	return len(s.records)
}

// SelectedIndex returns the current selection.
func (s *Session) SelectedIndex() int {
	return s.selected
}

// ViewMode returns the current view mode.
func (s *Session) ViewMode() ViewMode {
	return s.mode
}

// Current returns the selected record. ok is false when nothing is loaded.
func (s *Session) Current() (rec PromptRecord, ok bool) {
	if len(s.records) == 0 {
		return PromptRecord{}, false
	}
	return s.records[s.selected], true
}

// Snapshot is a read-only copy of session state for presentation.
type Snapshot struct {
	Records       []PromptRecord `json:"records"`
	SelectedIndex int            `json:"selected_index"`
	ViewMode      ViewMode       `json:"view_mode"`
	Current       *PromptRecord  `json:"current,omitempty"`
}

// Snapshot copies the session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Records:       s.Records(),
		SelectedIndex: s.selected,
		ViewMode:      s.mode,
	}
	if rec, ok := s.Current(); ok {
		snap.Current = &rec
	}
	return snap
}
