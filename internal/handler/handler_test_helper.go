package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/Yigit-Sert/library-portal/internal/middleware"
	"github.com/Yigit-Sert/library-portal/internal/model"
	"github.com/Yigit-Sert/library-portal/internal/relay"
	"github.com/Yigit-Sert/library-portal/internal/render"
)

// backendCall records one request the stub backend received.
type backendCall struct {
	Method string
	Path   string
	Body   string
}

// stubBackend plays the role of the library service. Responses are keyed by
// "METHOD path"; unmatched requests get 404.
type stubBackend struct {
	mu        sync.Mutex
	calls     []backendCall
	responses map[string]stubResponse
}

type stubResponse struct {
	status int
	body   string
}

func newStubBackend() *stubBackend {
	return &stubBackend{responses: make(map[string]stubResponse)}
}

func (s *stubBackend) respond(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[method+" "+path] = stubResponse{status: status, body: body}
}

func (s *stubBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.calls = append(s.calls, backendCall{Method: r.Method, Path: r.URL.Path, Body: string(body)})
	resp, ok := s.responses[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

func (s *stubBackend) lastCall(t *testing.T) backendCall {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		t.Fatal("backend received no calls")
	}
	return s.calls[len(s.calls)-1]
}

// testDeps bundles everything a handler needs in tests.
type testDeps struct {
	backend  *stubBackend
	client   *relay.Client
	renderer *render.Renderer
	sm       *scs.SessionManager
}

// newTestDeps starts a stub backend and builds a relay client, a session
// manager with the in-memory store, and a renderer over minimal templates.
func newTestDeps(t *testing.T) *testDeps {
	t.Helper()

	backend := newStubBackend()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client, err := relay.New(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("creating relay client: %v", err)
	}

	sm := scs.New()

	renderer, err := render.New(render.Config{
		TemplatesFS:    testTemplates(),
		SessionManager: sm,
	})
	if err != nil {
		t.Fatalf("creating renderer: %v", err)
	}

	return &testDeps{backend: backend, client: client, renderer: renderer, sm: sm}
}

// testTemplates returns a minimal template set: each page emits markers the
// tests can look for.
func testTemplates() fstest.MapFS {
	page := func(body string) *fstest.MapFile {
		return &fstest.MapFile{Data: []byte(`{{define "content"}}` + body + `{{end}}`)}
	}
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}{{if .Flash}}[flash:{{.FlashType}}]{{.Flash}}{{end}}{{template "content" .}}{{end}}`),
		},
		"pages/home.html": page(`[home]` +
			`{{if hasRegion .Data.Regions "public-catalog"}}[catalog]{{end}}` +
			`{{if hasRegion .Data.Regions "member-dashboard"}}[member]{{end}}` +
			`{{if hasRegion .Data.Regions "personnel-dashboard"}}[personnel]{{end}}` +
			`{{if hasRegion .Data.Regions "admin-dashboard"}}[admin]{{end}}` +
			`{{range .Data.Books}}[book:{{.Title}}]{{end}}` +
			`{{if .Data.BooksErr}}[books-err:{{.Data.BooksErr}}]{{end}}` +
			`{{range .Data.Requests}}[request:{{.Status}}]{{end}}` +
			`[action:{{.Data.CatalogAction}}]`),
		"pages/confirm.html": page(`[confirm:{{.Data.Heading}}]{{.Data.Message}}` +
			`{{range $k, $v := .Data.Fields}}[field:{{$k}}={{$v}}]{{end}}[action-url:{{.Data.ActionURL}}]`),
		"pages/forbidden.html":   page(`[forbidden]`),
		"pages/book_edit.html":   page(`[book-form:{{.Data.Book.Title}}]`),
		"pages/member_edit.html": page(`[member-form:{{.Data.Member.Name}}]`),
		"pages/profile.html":     page(`[profile]`),
		"pages/help_index.html":  page(`{{range .Data}}[guide:{{.Slug}}]{{end}}`),
		"pages/help_guide.html":  page(`[guide-page]{{.Data.Content}}`),
		"pages/events.html":      page(`[events:{{.Data.Total}}]{{range .Data.Events}}[event:{{.Message}}]{{end}}`),
	}
}

// serve runs a request through the session-manager wrapper so flash
// storage works, optionally with a resolved session in the context.
func (d *testDeps) serve(t *testing.T, h http.Handler, req *http.Request, session *model.Session) *httptest.ResponseRecorder {
	t.Helper()

	if session != nil {
		ctx := context.WithValue(req.Context(), middleware.ContextKeySession, session)
		req = req.WithContext(ctx)
	}

	w := httptest.NewRecorder()
	d.sm.LoadAndSave(h).ServeHTTP(w, req)
	return w
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	assertStatus(t, w.Code, http.StatusSeeOther)
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("redirect location = %q; want %q", got, location)
	}
}
