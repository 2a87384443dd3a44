package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGlobalRateLimiterBurst(t *testing.T) {
	rl := NewGlobalRateLimiter(1, 2)
	handler := rl.HTMLMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	// Burst of 2, third request rejected.
	if code := do("10.0.0.1:1234"); code != http.StatusOK {
		t.Errorf("request 1: status = %d; want 200", code)
	}
	if code := do("10.0.0.1:1234"); code != http.StatusOK {
		t.Errorf("request 2: status = %d; want 200", code)
	}
	if code := do("10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("request 3: status = %d; want 429", code)
	}

	// A different client is unaffected.
	if code := do("10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("other client: status = %d; want 200", code)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		want       string
	}{
		{"port stripped", "9.9.9.9:1234", "9.9.9.9"},
		{"bare IP from RealIP middleware", "9.9.9.9", "9.9.9.9"},
		{"ipv6 with port", "[2001:db8::1]:1234", "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestGetClientIPIgnoresProxyHeaders(t *testing.T) {
	// Proxy headers are resolved upstream by chi's RealIP middleware;
	// a spoofed header direct from a client must not change the key.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	req.Header.Set("X-Real-IP", "1.2.3.4")
	req.Header.Set("X-Forwarded-For", "5.6.7.8")

	if got := getClientIP(req); got != "9.9.9.9" {
		t.Errorf("getClientIP() = %q; want RemoteAddr host", got)
	}
}
