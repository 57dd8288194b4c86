package web

// handlers_common.go holds helpers and response types shared by the page
// and API handlers.

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/PromptCompare/internal/core"
	"github.com/JonMunkholm/PromptCompare/internal/logging"
	"github.com/JonMunkholm/PromptCompare/internal/render"
	"github.com/JonMunkholm/PromptCompare/internal/web/views"
	"github.com/go-chi/chi/v5"
)

// parseIndexParam reads the {index} URL parameter. A malformed value is
// reported as out of range, like any other index that selects nothing.
func parseIndexParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	idx, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", core.ErrIndexOutOfRange, raw)
	}
	return idx, nil
}

// selectRecord applies the {index} parameter to the request's session.
func selectRecord(r *http.Request, entry *sessionEntry) error {
	idx, err := parseIndexParam(r)
	if err != nil {
		return err
	}
	return entry.Update(func(s *core.Session) error { return s.Select(idx) })
}

// setViewMode applies the {mode} parameter to the request's session.
func setViewMode(r *http.Request, entry *sessionEntry) error {
	mode, err := core.ParseViewMode(chi.URLParam(r, "mode"))
	if err != nil {
		return err
	}
	return entry.Update(func(s *core.Session) error { return s.SetViewMode(mode) })
}

// renderPage writes the full page for the request's session.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, alert *core.UserMessage) {
	var snap core.Snapshot
	if entry := sessionFrom(r.Context()); entry != nil {
		snap = entry.Snapshot()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	err := views.Page(views.PageData{
		Snapshot:    snap,
		Alert:       alert,
		MaxUploadMB: s.cfg.Upload.MaxFileSize / (1024 * 1024),
	}).Render(r.Context(), w)
	if err != nil {
		s.logRenderError(r, err)
	}
}

// RecordResponse is one record as exposed by the API.
type RecordResponse struct {
	Index        int    `json:"index"`
	ID           int    `json:"id"`
	Label        string `json:"label,omitempty"`
	DisplayLabel string `json:"display_label"`
	Preview      string `json:"preview"`
	Before       string `json:"before"`
	After        string `json:"after"`
}

func toRecordResponse(idx int, rec core.PromptRecord) RecordResponse {
	return RecordResponse{
		Index:        idx,
		ID:           rec.ID,
		Label:        rec.Label,
		DisplayLabel: rec.DisplayLabel(),
		Preview:      render.Preview(rec.Before),
		Before:       rec.Before,
		After:        rec.After,
	}
}

// SessionResponse summarizes a comparison session.
type SessionResponse struct {
	Count         int             `json:"count"`
	SelectedIndex int             `json:"selected_index"`
	ViewMode      core.ViewMode   `json:"view_mode"`
	Current       *RecordResponse `json:"current"`
}

func toSessionResponse(snap core.Snapshot) SessionResponse {
	resp := SessionResponse{
		Count:         len(snap.Records),
		SelectedIndex: snap.SelectedIndex,
		ViewMode:      snap.ViewMode,
	}
	if snap.Current != nil {
		rec := toRecordResponse(snap.SelectedIndex, *snap.Current)
		resp.Current = &rec
	}
	return resp
}

// CurrentResponse is the selected record with its display HTML.
// Record is null and both HTML fields are empty when nothing is loaded.
type CurrentResponse struct {
	SelectedIndex int             `json:"selected_index"`
	ViewMode      core.ViewMode   `json:"view_mode"`
	Record        *RecordResponse `json:"record"`
	BeforeHTML    string          `json:"before_html"`
	AfterHTML     string          `json:"after_html"`
}

// UploadResponse reports the outcome of an upload.
type UploadResponse struct {
	IngestID   string                     `json:"ingest_id,omitempty"`
	FileName   string                     `json:"file_name"`
	Format     string                     `json:"format,omitempty"`
	Headers    []string                   `json:"headers,omitempty"`
	Roles      *core.ColumnRoleAssignment `json:"roles,omitempty"`
	Count      int                        `json:"count"`
	Loaded     bool                       `json:"loaded"`
	Stale      bool                       `json:"stale,omitempty"`
	Empty      bool                       `json:"empty,omitempty"`
	DurationMS int64                      `json:"duration_ms"`
}

func (s *Server) logRenderError(r *http.Request, err error) {
	logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
}
