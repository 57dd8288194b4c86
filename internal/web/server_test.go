package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/PromptCompare/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoPrompts = "name,before,after\n" +
	"greeting,\"# Hello\",\"# Hello **there**\"\n" +
	",old second,new second\n"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(func(string) (string, bool) { return "", false })
	require.NoError(t, err)
	cfg.Rate.Enabled = false
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	s, err := NewServer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s
}

// client replays the session cookie between requests like a browser.
type client struct {
	t      *testing.T
	h      http.Handler
	cookie *http.Cookie
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "pc_session" {
			c.cookie = ck
		}
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) post(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodPost, path, nil))
}

func (c *client) upload(path, name, content string) *httptest.ResponseRecorder {
	c.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(c.t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(c.t, err)
	require.NoError(c.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	c := &client{t: t, h: s.Handler()}

	rec := c.get("/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Nil(t, c.cookie, "health checks must not create sessions")
}

func TestPageFlow(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	c := &client{t: t, h: s.Handler()}

	rec := c.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Drop your CSV file here")
	require.NotNil(t, c.cookie)
	assert.True(t, c.cookie.HttpOnly)

	rec = c.upload("/upload", "prompts.csv", twoPrompts)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	page := c.get("/").Body.String()
	assert.Contains(t, page, "2 prompts loaded")
	assert.Contains(t, page, "Viewing 1 of 2")
	assert.Contains(t, page, "greeting")
	assert.Contains(t, page, "Prompt 2")
	assert.Contains(t, page, "<strong>there</strong>")

	require.Equal(t, http.StatusSeeOther, c.post("/select/1").Code)
	assert.Contains(t, c.get("/").Body.String(), "Viewing 2 of 2")

	require.Equal(t, http.StatusSeeOther, c.post("/view/raw").Code)
	page = c.get("/").Body.String()
	assert.Contains(t, page, `<pre class="raw">new second</pre>`)

	require.Equal(t, http.StatusSeeOther, c.post("/reset").Code)
	page = c.get("/").Body.String()
	assert.Contains(t, page, "Drop your CSV file here")
	assert.Equal(t, 1, s.Store().Len())
}

func TestPage_SelectOutOfRangeShowsAlert(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	c := &client{t: t, h: s.Handler()}
	c.upload("/upload", "prompts.csv", twoPrompts)

	rec := c.post("/select/7")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "SES001")
	assert.Contains(t, rec.Body.String(), "Viewing 1 of 2")
}

func TestAPIFlow(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	c := &client{t: t, h: s.Handler()}

	cur := decode[CurrentResponse](t, c.get("/api/records/current"))
	assert.Nil(t, cur.Record)
	assert.Equal(t, "rendered", string(cur.ViewMode))

	rec := c.upload("/api/upload", "prompts.csv", twoPrompts)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	up := decode[UploadResponse](t, rec)
	assert.True(t, up.Loaded)
	assert.False(t, up.Stale)
	assert.Equal(t, 2, up.Count)
	assert.Equal(t, "csv", up.Format)
	require.NotNil(t, up.Roles)
	assert.Equal(t, "before", up.Roles.BeforeKey)
	assert.Equal(t, "after", up.Roles.AfterKey)
	assert.Equal(t, "name", up.Roles.LabelKey)
	assert.NotEmpty(t, up.IngestID)

	records := decode[struct {
		Records []RecordResponse `json:"records"`
	}](t, c.get("/api/records"))
	require.Len(t, records.Records, 2)
	assert.Equal(t, "greeting", records.Records[0].DisplayLabel)
	assert.Equal(t, "Prompt 2", records.Records[1].DisplayLabel)
	assert.Equal(t, "old second...", records.Records[1].Preview)

	sess := decode[SessionResponse](t, c.post("/api/select/1"))
	assert.Equal(t, 1, sess.SelectedIndex)
	require.NotNil(t, sess.Current)
	assert.Equal(t, "new second", sess.Current.After)

	sess = decode[SessionResponse](t, c.post("/api/view/raw"))
	assert.Equal(t, "raw", string(sess.ViewMode))

	cur = decode[CurrentResponse](t, c.get("/api/records/current"))
	require.NotNil(t, cur.Record)
	assert.Equal(t, `<pre class="raw">old second</pre>`, cur.BeforeHTML)

	sess = decode[SessionResponse](t, c.post("/api/reset"))
	assert.Equal(t, 0, sess.Count)
	assert.Nil(t, sess.Current)
	assert.Equal(t, "raw", string(sess.ViewMode), "reset keeps the view mode")
}

func TestAPIErrors(t *testing.T) {
	tests := []struct {
		name     string
		send     func(c *client) *httptest.ResponseRecorder
		wantCode int
		wantErr  string
	}{
		{
			name:     "unsupported file type",
			send:     func(c *client) *httptest.ResponseRecorder { return c.upload("/api/upload", "notes.pdf", "x") },
			wantCode: http.StatusUnsupportedMediaType,
			wantErr:  "FILE006",
		},
		{
			name:     "malformed csv",
			send:     func(c *client) *httptest.ResponseRecorder { return c.upload("/api/upload", "bad.csv", "before,after\n\"open,x\n") },
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  "FILE002",
		},
		{
			name:     "no file field",
			send:     func(c *client) *httptest.ResponseRecorder { return c.post("/api/upload") },
			wantCode: http.StatusBadRequest,
			wantErr:  "FILE004",
		},
		{
			name:     "select out of range",
			send:     func(c *client) *httptest.ResponseRecorder { return c.post("/api/select/5") },
			wantCode: http.StatusNotFound,
			wantErr:  "SES001",
		},
		{
			name:     "select not a number",
			send:     func(c *client) *httptest.ResponseRecorder { return c.post("/api/select/abc") },
			wantCode: http.StatusNotFound,
			wantErr:  "SES001",
		},
		{
			name:     "unknown view mode",
			send:     func(c *client) *httptest.ResponseRecorder { return c.post("/api/view/fancy") },
			wantCode: http.StatusBadRequest,
			wantErr:  "SES002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, testConfig(t))
			c := &client{t: t, h: s.Handler()}

			rec := tt.send(c)
			assert.Equal(t, tt.wantCode, rec.Code)
			body := decode[ErrorResponse](t, rec)
			assert.Equal(t, tt.wantErr, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestAPIUpload_FailureKeepsSession(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	c := &client{t: t, h: s.Handler()}

	require.Equal(t, http.StatusOK, c.upload("/api/upload", "prompts.csv", twoPrompts).Code)
	c.post("/api/select/1")

	rec := c.upload("/api/upload", "bad.csv", "before,after\n\"open,x\n")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	sess := decode[SessionResponse](t, c.get("/api/session"))
	assert.Equal(t, 2, sess.Count)
	assert.Equal(t, 1, sess.SelectedIndex)
}

func TestAPIUpload_EmptyIsNoOp(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	c := &client{t: t, h: s.Handler()}
	require.Equal(t, http.StatusOK, c.upload("/api/upload", "prompts.csv", twoPrompts).Code)

	for _, content := range []string{"", "before,after\n"} {
		rec := c.upload("/api/upload", "empty.csv", content)
		require.Equal(t, http.StatusOK, rec.Code)
		up := decode[UploadResponse](t, rec)
		assert.True(t, up.Empty)
		assert.False(t, up.Loaded)
	}

	sess := decode[SessionResponse](t, c.get("/api/session"))
	assert.Equal(t, 2, sess.Count)
}

func TestAPIUpload_TooLarge(t *testing.T) {
	cfg := testConfig(t)
	cfg.Upload.MaxFileSize = 64
	s := newTestServer(t, cfg)
	c := &client{t: t, h: s.Handler()}

	rec := c.upload("/api/upload", "big.csv", "before,after\n"+strings.Repeat("aaaa,bbbb\n", 20))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "FILE001", decode[ErrorResponse](t, rec).Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	alice := &client{t: t, h: s.Handler()}
	bob := &client{t: t, h: s.Handler()}

	alice.upload("/api/upload", "prompts.csv", twoPrompts)
	bob.get("/api/session")

	assert.Equal(t, 2, decode[SessionResponse](t, alice.get("/api/session")).Count)
	assert.Equal(t, 0, decode[SessionResponse](t, bob.get("/api/session")).Count)
	assert.Equal(t, 2, s.Store().Len())
}

func TestAPIKeyRequired(t *testing.T) {
	cfg := testConfig(t)
	cfg.Security.RequireAPIKey = true
	cfg.Security.APIKeys = []string{"secret"}
	s := newTestServer(t, cfg)
	c := &client{t: t, h: s.Handler()}

	rec := c.get("/api/session")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "AUTH001", decode[ErrorResponse](t, rec).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("X-API-Key", "secret")
	assert.Equal(t, http.StatusOK, c.do(req).Code)

	// The page is not behind the key
	assert.Equal(t, http.StatusOK, c.get("/").Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Rate.Enabled = true
	cfg.Rate.RequestsPerMinute = 2
	s := newTestServer(t, cfg)
	c := &client{t: t, h: s.Handler()}

	assert.Equal(t, http.StatusOK, c.get("/healthz").Code)
	assert.Equal(t, http.StatusOK, c.get("/healthz").Code)

	rec := c.get("/healthz")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, "RATE001", decode[ErrorResponse](t, rec).Code)
}

func TestAPIStatus(t *testing.T) {
	cfg := testConfig(t)
	cfg.Upload.MaxConcurrent = 3
	s := newTestServer(t, cfg)
	c := &client{t: t, h: s.Handler()}

	body := decode[map[string]any](t, c.get("/api/status"))
	ingest := body["ingest"].(map[string]any)
	assert.EqualValues(t, 3, ingest["max_concurrent"])
	assert.EqualValues(t, 0, ingest["active"])
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	rec := (&client{t: t, h: s.Handler()}).get("/")

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "default-src 'self'")
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	s := newTestServer(t, cfg)

	require.NoError(t, s.Shutdown(context.Background()))
	assert.NoError(t, s.Start())
}

func TestServer_StartAndShutdownConcurrently(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	s := newTestServer(t, cfg)

	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Shutdown")
	}
}
