package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnvPort(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     string
	}{
		{"default when empty", "", DefaultPort},
		{"custom port", "8081", "8081"},
		{"another port", "9090", "9090"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.envValue)
			cfg := FromEnv()
			if cfg.Port != tt.want {
				t.Errorf("got port %q, want %q", cfg.Port, tt.want)
			}
			if cfg.Addr() != ":"+tt.want {
				t.Errorf("got addr %q, want %q", cfg.Addr(), ":"+tt.want)
			}
		})
	}
}

func TestDefaultPortIs3000(t *testing.T) {
	if DefaultPort != "3000" {
		t.Fatalf("expected default port 3000, got %s", DefaultPort)
	}
}

func TestLoadFilesReadsDotenv(t *testing.T) {
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=4100\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("PORT") })

	cfg, err := LoadFiles(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "4100" {
		t.Fatalf("expected port from dotenv 4100, got %q", cfg.Port)
	}
}

func TestLoadFilesEnvironmentWins(t *testing.T) {
	t.Setenv("PORT", "5000")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=4100\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	cfg, err := LoadFiles(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "5000" {
		t.Fatalf("expected environment port 5000, got %q", cfg.Port)
	}
}

func TestLoadFilesSkipsMissingFile(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := LoadFiles(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("expected missing dotenv to be ignored, got %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
}

func TestLoadFilesRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT='unterminated\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if _, err := LoadFiles(path); err == nil {
		t.Fatal("expected error for malformed dotenv file")
	}
}

func TestLoadIgnoresDotenvInWorkingDirectory(t *testing.T) {
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9999\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	t.Chdir(dir)
	t.Cleanup(func() { os.Unsetenv("PORT") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr() != ":3000" {
		t.Fatalf("expected :3000 with PORT unset, got %q", cfg.Addr())
	}
	if _, ok := os.LookupEnv("PORT"); ok {
		t.Fatal("expected Load to leave PORT unset")
	}
}
