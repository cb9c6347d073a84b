package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr: got %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Converter.Timeout != 60*time.Second {
		t.Errorf("Timeout: got %v, want 60s", cfg.Converter.Timeout)
	}
	if cfg.Server.MaxUploadBytes != 32<<20 {
		t.Errorf("MaxUploadBytes: got %d, want %d", cfg.Server.MaxUploadBytes, 32<<20)
	}
	if cfg.Storage.UploadDir != "uploads" || cfg.Storage.OutputDir != "outputs" {
		t.Errorf("unexpected storage dirs: %+v", cfg.Storage)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GATEWAY_ADDR", ":9999")
	t.Setenv("GATEWAY_TIMEOUT_SECONDS", "5")
	t.Setenv("GATEWAY_CONVERTER_CMD", "python3 converter.py")
	t.Setenv("GATEWAY_MAX_UPLOAD_MB", "not-a-number")

	cfg := Load()

	if cfg.Server.Addr != ":9999" {
		t.Errorf("Addr: got %q, want %q", cfg.Server.Addr, ":9999")
	}
	if cfg.Converter.Timeout != 5*time.Second {
		t.Errorf("Timeout: got %v, want 5s", cfg.Converter.Timeout)
	}
	if cfg.Converter.Command != "python3 converter.py" {
		t.Errorf("Command: got %q", cfg.Converter.Command)
	}
	// Invalid numbers fall back to the default.
	if cfg.Server.MaxUploadBytes != 32<<20 {
		t.Errorf("MaxUploadBytes: got %d, want default", cfg.Server.MaxUploadBytes)
	}
}
