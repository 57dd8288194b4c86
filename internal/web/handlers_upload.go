package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/PromptCompare/internal/core"
	"github.com/JonMunkholm/PromptCompare/internal/logging"
)

const (
	// multipartMemory is how much of a form is buffered in memory before
	// parts spill to temporary files.
	multipartMemory = 32 << 20

	// multipartOverhead allows for boundaries and part headers on top of
	// the file itself.
	multipartOverhead = 1 << 20
)

// uploadOutcome describes what an accepted upload did to the session.
type uploadOutcome struct {
	FileName string
	Result   *core.IngestResult
	Loaded   bool // records replaced the session
	Stale    bool // a newer upload or a reset won; nothing changed
	Empty    bool // no header or no data rows; nothing changed
}

// ingestUpload reads the multipart "file" field and runs it through the
// ingestion pipeline. The session is only changed when ingestion succeeds
// and no newer upload or reset happened meanwhile.
func (s *Server) ingestUpload(w http.ResponseWriter, r *http.Request, entry *sessionEntry) (uploadOutcome, error) {
	var out uploadOutcome

	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return out, fmt.Errorf("%w: upload exceeds %d bytes", core.ErrFileTooLarge, maxSize)
		}
		return out, fmt.Errorf("%w: %v", errNoFile, err)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		return out, errNoFile
	}
	defer file.Close()
	out.FileName = header.Filename

	// Tickets follow arrival order, so an upload waiting for a slot still
	// loses to a later one that loads. Failed and empty uploads never commit
	// and leave earlier tickets free to load.
	ticket := entry.BeginIngest()

	if err := s.limiter.Acquire(r.Context()); err != nil {
		return out, err
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Upload.Timeout)
	defer cancel()

	res, err := s.ingester.Ingest(ctx, core.Source{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if errors.Is(err, core.ErrEmptyInput) {
		out.Empty = true
		return out, nil
	}
	if err != nil {
		return out, err
	}

	out.Result = res
	out.Loaded = entry.CommitIngest(ticket, res.Records)
	out.Stale = !out.Loaded
	if out.Stale {
		logging.FromContext(r.Context()).Info("discarding stale upload",
			"ingest_id", res.ID,
			"file", res.FileName,
		)
	}
	return out, nil
}

// handleUpload ingests a file from the page form and redirects back.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	entry := sessionFrom(r.Context())

	if _, err := s.ingestUpload(w, r, entry); err != nil {
		s.respondError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleAPIUpload ingests a file and reports the outcome as JSON.
func (s *Server) handleAPIUpload(w http.ResponseWriter, r *http.Request) {
	entry := sessionFrom(r.Context())

	out, err := s.ingestUpload(w, r, entry)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp := UploadResponse{
		FileName: out.FileName,
		Loaded:   out.Loaded,
		Stale:    out.Stale,
		Empty:    out.Empty,
	}
	if res := out.Result; res != nil {
		roles := res.Roles
		resp.IngestID = res.ID
		resp.Format = res.Format
		resp.Headers = res.Headers
		resp.Roles = &roles
		resp.Count = len(res.Records)
		resp.DurationMS = res.Duration.Milliseconds()
	}
	writeJSON(w, http.StatusOK, resp)
}
