package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TABVIEW_UI_PORT", "")
	t.Setenv("TABVIEW_API_PORT", "")
	t.Setenv("TABVIEW_MAX_UPLOAD_MB", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.UIPort != "8080" || cfg.Server.APIPort != "8081" {
		t.Errorf("ports = %s/%s", cfg.Server.UIPort, cfg.Server.APIPort)
	}
	if cfg.Upload.MaxBytes != 50<<20 {
		t.Errorf("max upload = %d, want 50MB", cfg.Upload.MaxBytes)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TABVIEW_UI_PORT", "9090")
	t.Setenv("TABVIEW_API_PORT", "9091")
	t.Setenv("TABVIEW_MAX_UPLOAD_MB", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.UIPort != "9090" {
		t.Errorf("UI port = %s", cfg.Server.UIPort)
	}
	if cfg.Upload.MaxBytes != 5<<20 {
		t.Errorf("max upload = %d, want 5MB", cfg.Upload.MaxBytes)
	}
}

func TestLoadRejectsBadUploadLimit(t *testing.T) {
	for _, raw := range []string{"not-a-number", "0", "-3", "5000"} {
		t.Setenv("TABVIEW_MAX_UPLOAD_MB", raw)
		if _, err := Load(); err == nil {
			t.Errorf("TABVIEW_MAX_UPLOAD_MB=%s should be rejected", raw)
		}
	}
}

func TestLoadRejectsEqualPorts(t *testing.T) {
	t.Setenv("TABVIEW_UI_PORT", "8080")
	t.Setenv("TABVIEW_API_PORT", "8080")
	t.Setenv("TABVIEW_MAX_UPLOAD_MB", "")

	if _, err := Load(); err == nil {
		t.Error("equal UI and API ports should be rejected")
	}
}
