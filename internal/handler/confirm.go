package handler

import (
	"net/http"

	"github.com/Yigit-Sert/library-portal/internal/middleware"
	"github.com/Yigit-Sert/library-portal/internal/render"
)

// ConfirmData drives the shared confirmation page. Every destructive or
// state-changing action routes through it: the page shows what is about to
// happen and POSTs the hidden fields to ActionURL only on explicit consent.
type ConfirmData struct {
	Heading   string
	Message   string
	ActionURL string
	Submit    string
	CancelURL string
	Fields    map[string]string
}

// renderConfirm renders the shared confirmation page.
func renderConfirm(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, data ConfirmData) {
	if data.CancelURL == "" {
		data.CancelURL = RouteRoot
	}
	if data.Submit == "" {
		data.Submit = "Confirm"
	}
	if err := renderer.Render(w, r, "confirm", render.TemplateData{
		Title:   data.Heading,
		Session: middleware.GetSession(r),
		Data:    data,
	}); err != nil {
		logAndInternalError(w, "failed to render confirmation page", "error", err)
	}
}
