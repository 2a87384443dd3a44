package config

import (
	"strings"
	"testing"
)

const validSecret = "Xk9#mP2$vL5nQ8wR3tY6uI1oA4sD7fG0"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORTAL_SESSION_SECRET", validSecret)
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.BackendURL != "http://localhost:8081" {
		t.Errorf("BackendURL = %q; want default", cfg.BackendURL)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q; want localhost:8080", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if cfg.RelayTimeoutDuration().Seconds() != 15 {
		t.Errorf("RelayTimeoutDuration() = %v; want 15s", cfg.RelayTimeoutDuration())
	}
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("PORTAL_SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without PORTAL_SESSION_SECRET")
	}
}

func TestLoadShortSecret(t *testing.T) {
	t.Setenv("PORTAL_SESSION_SECRET", "too-short")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should reject short secrets")
	}
	if !strings.Contains(err.Error(), "at least 32 bytes") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadWeakSecret(t *testing.T) {
	t.Setenv("PORTAL_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject known default secrets")
	}
}

func TestLoadRelativeBackendURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORTAL_BACKEND_URL", "localhost:8081")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject non-absolute backend URLs")
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"abcABC123!@#xyzXYZ789$%^abcABC12", true},
		{"abcdefgh12345678ABCDEFGH12345678", true},
		{"1234567890123456789012345678901", false},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v; want %v", tt.secret, got, tt.want)
		}
	}
}
