package handler

import (
	"bytes"
	"html/template"
	"io/fs"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"

	"github.com/Yigit-Sert/library-portal/internal/middleware"
	"github.com/Yigit-Sert/library-portal/internal/render"
)

// DocsHandler serves the built-in help guides, rendered from embedded
// markdown.
type DocsHandler struct {
	renderer *render.Renderer
	docsFS   fs.FS
}

// NewDocsHandler creates a new DocsHandler.
func NewDocsHandler(renderer *render.Renderer, docsFS fs.FS) *DocsHandler {
	return &DocsHandler{renderer: renderer, docsFS: docsFS}
}

// DocsGuide is one entry on the help index.
type DocsGuide struct {
	Slug  string
	Title string
}

// DocsGuideData holds a rendered guide.
type DocsGuideData struct {
	Title   string
	Content template.HTML
}

// Index handles GET /help - lists the available guides.
func (h *DocsHandler) Index(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "help_index", render.TemplateData{
		Title:   "Help",
		Session: middleware.GetSession(r),
		Data:    h.listGuides(),
	}); err != nil {
		logAndInternalError(w, "failed to render help index", "error", err)
	}
}

// Guide handles GET /help/{slug} - renders one guide.
func (h *DocsHandler) Guide(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	// Only allow alphanumeric, hyphens, and underscores
	if !isValidDocsSlug(slug) {
		http.NotFound(w, r)
		return
	}

	content, err := fs.ReadFile(h.docsFS, slug+".md")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := goldmark.Convert(content, &buf); err != nil {
		http.Error(w, "Failed to render document", http.StatusInternalServerError)
		return
	}

	title := slugToTitle(slug)
	if err := h.renderer.Render(w, r, "help_guide", render.TemplateData{
		Title:   title,
		Session: middleware.GetSession(r),
		Data: DocsGuideData{
			Title:   title,
			Content: template.HTML(buf.String()), //nolint:gosec // trusted embedded markdown
		},
	}); err != nil {
		logAndInternalError(w, "failed to render help guide", "error", err)
	}
}

// isValidDocsSlug validates that a slug contains only safe characters.
func isValidDocsSlug(slug string) bool {
	if slug == "" {
		return false
	}
	for _, c := range slug {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_') {
			return false
		}
	}
	return true
}

// slugToTitle converts a filename slug to a human-readable title.
func slugToTitle(slug string) string {
	title := strings.ReplaceAll(slug, "-", " ")
	title = strings.ReplaceAll(title, "_", " ")

	words := strings.Fields(title)
	for idx, word := range words {
		if word != "" {
			words[idx] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

// listGuides scans the embedded docs and returns available guides.
func (h *DocsHandler) listGuides() []DocsGuide {
	entries, err := fs.ReadDir(h.docsFS, ".")
	if err != nil {
		return nil
	}

	var guides []DocsGuide
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), ".md")
		guides = append(guides, DocsGuide{Slug: slug, Title: slugToTitle(slug)})
	}

	sort.Slice(guides, func(i, j int) bool {
		return guides[i].Title < guides[j].Title
	})

	return guides
}
