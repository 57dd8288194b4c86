package web

import (
	"net/http"

	"github.com/JonMunkholm/PromptCompare/internal/core"
	"github.com/JonMunkholm/PromptCompare/internal/render"
)

// handleIndex renders the page for the browser's session.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, nil)
}

// handleSelect moves the selection and redirects back.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if err := selectRecord(r, sessionFrom(r.Context())); err != nil {
		s.respondError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleViewMode switches between rendered and raw display and redirects back.
func (s *Server) handleViewMode(w http.ResponseWriter, r *http.Request) {
	if err := setViewMode(r, sessionFrom(r.Context())); err != nil {
		s.respondError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleReset clears the records and redirects back. The view mode is kept.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r.Context()).Reset()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.store.Len(),
	})
}

// handleAPISession returns the session summary.
func (s *Server) handleAPISession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toSessionResponse(sessionFrom(r.Context()).Snapshot()))
}

// handleAPIRecords lists every loaded record in row order.
func (s *Server) handleAPIRecords(w http.ResponseWriter, r *http.Request) {
	snap := sessionFrom(r.Context()).Snapshot()

	records := make([]RecordResponse, len(snap.Records))
	for i, rec := range snap.Records {
		records[i] = toRecordResponse(i, rec)
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

// handleAPICurrent returns the selected record rendered in the session's
// view mode. An empty session yields a null record, not an error.
func (s *Server) handleAPICurrent(w http.ResponseWriter, r *http.Request) {
	snap := sessionFrom(r.Context()).Snapshot()

	resp := CurrentResponse{
		SelectedIndex: snap.SelectedIndex,
		ViewMode:      snap.ViewMode,
	}
	if snap.Current != nil {
		rec := toRecordResponse(snap.SelectedIndex, *snap.Current)
		resp.Record = &rec
		resp.BeforeHTML = render.Text(snap.ViewMode, rec.Before)
		resp.AfterHTML = render.Text(snap.ViewMode, rec.After)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleAPISelect moves the selection.
func (s *Server) handleAPISelect(w http.ResponseWriter, r *http.Request) {
	entry := sessionFrom(r.Context())
	if err := selectRecord(r, entry); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(entry.Snapshot()))
}

// handleAPIViewMode switches the view mode.
func (s *Server) handleAPIViewMode(w http.ResponseWriter, r *http.Request) {
	entry := sessionFrom(r.Context())
	if err := setViewMode(r, entry); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(entry.Snapshot()))
}

// handleAPIReset clears the records.
func (s *Server) handleAPIReset(w http.ResponseWriter, r *http.Request) {
	entry := sessionFrom(r.Context())
	entry.Reset()
	writeJSON(w, http.StatusOK, toSessionResponse(entry.Snapshot()))
}

// handleAPIStatus reports ingestion capacity and live sessions for monitoring.
func (s *Server) handleAPIStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Ingest   core.IngestLimiterStatus `json:"ingest"`
		Sessions int                      `json:"sessions"`
	}{
		Ingest:   s.limiter.Status(),
		Sessions: s.store.Len(),
	})
}
