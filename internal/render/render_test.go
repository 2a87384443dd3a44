package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/Yigit-Sert/library-portal/internal/model"
)

func testTemplatesFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}<html><body>{{template "flash" .}}{{template "content" .}}</body></html>{{end}}`),
		},
		"partials/flash.html": &fstest.MapFile{
			Data: []byte(`{{define "flash"}}{{if .Flash}}<div class="flash {{.FlashType}}">{{.Flash}}</div>{{end}}{{end}}`),
		},
		"pages/home.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}<h1>{{.Title}}</h1>{{end}}`),
		},
	}
}

func TestRender(t *testing.T) {
	r, err := New(Config{TemplatesFS: testTemplatesFS()})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := r.Render(w, req, "home", TemplateData{Title: "Library"}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "<h1>Library</h1>") {
		t.Errorf("body missing page content: %q", w.Body.String())
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := New(Config{TemplatesFS: testTemplatesFS()})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := r.Render(w, req, "missing", TemplateData{}); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestTemplateFuncs_FormatDate(t *testing.T) {
	funcs := (&Renderer{}).templateFuncs()
	formatDate := funcs["formatDate"].(func(time.Time) string)

	if got := formatDate(time.Time{}); got != "" {
		t.Errorf("formatDate(zero) = %q; want empty", got)
	}
	d := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	if got := formatDate(d); got != "Mar 5, 2026" {
		t.Errorf("formatDate() = %q", got)
	}
}

func TestTemplateFuncs_Truncate(t *testing.T) {
	funcs := (&Renderer{}).templateFuncs()
	truncate := funcs["truncate"].(func(string, int) string)

	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("a long book title", 6); got != "a long..." {
		t.Errorf("truncate() = %q", got)
	}
}

func TestTemplateFuncs_RoleLabel(t *testing.T) {
	funcs := (&Renderer{}).templateFuncs()
	roleLabel := funcs["roleLabel"].(func(model.Role) string)

	tests := []struct {
		role model.Role
		want string
	}{
		{model.RoleAdmin, "Admin"},
		{model.RolePersonnel, "Personnel"},
		{model.RoleMember, "Member"},
		{model.Role("CUSTOM"), "CUSTOM"},
	}
	for _, tt := range tests {
		if got := roleLabel(tt.role); got != tt.want {
			t.Errorf("roleLabel(%q) = %q; want %q", tt.role, got, tt.want)
		}
	}
}

func TestTemplateFuncs_StatusClass(t *testing.T) {
	funcs := (&Renderer{}).templateFuncs()
	statusClass := funcs["statusClass"].(func(string) string)

	tests := []struct {
		status string
		want   string
	}{
		{model.RequestPending, "status-pending"},
		{model.RequestApproved, "status-approved"},
		{model.RequestRejected, "status-rejected"},
		{"", "status-pending"},
	}
	for _, tt := range tests {
		if got := statusClass(tt.status); got != tt.want {
			t.Errorf("statusClass(%q) = %q; want %q", tt.status, got, tt.want)
		}
	}
}
