package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serveWithHeaders(cfg SecurityHeadersConfig) http.Header {
	handler := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w.Header()
}

func TestSecurityHeadersProduction(t *testing.T) {
	headers := serveWithHeaders(DefaultSecurityHeadersConfig(false))

	if got := headers.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q; want nosniff", got)
	}
	if got := headers.Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Errorf("X-Frame-Options = %q; want SAMEORIGIN", got)
	}
	hsts := headers.Get("Strict-Transport-Security")
	if !strings.Contains(hsts, "max-age=31536000") || !strings.Contains(hsts, "includeSubDomains") {
		t.Errorf("Strict-Transport-Security = %q", hsts)
	}

	csp := headers.Get("Content-Security-Policy")
	for _, directive := range []string{"default-src 'self'", "img-src 'self' data: https:", "form-action 'self'"} {
		if !strings.Contains(csp, directive) {
			t.Errorf("CSP missing %q in %q", directive, csp)
		}
	}
}

func TestSecurityHeadersDevelopmentSkipsHSTS(t *testing.T) {
	headers := serveWithHeaders(DefaultSecurityHeadersConfig(true))
	if got := headers.Get("Strict-Transport-Security"); got != "" {
		t.Errorf("HSTS should be absent in development, got %q", got)
	}
}

func TestBuildCSPOrder(t *testing.T) {
	csp := buildCSP(map[string]string{
		"form-action": "'self'",
		"default-src": "'self'",
	})
	if csp != "default-src 'self'; form-action 'self'" {
		t.Errorf("buildCSP order not stable: %q", csp)
	}
}
