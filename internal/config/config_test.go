package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.DBType != "sqlite" {
		t.Errorf("DBType = %q, want %q", cfg.DBType, "sqlite")
	}
	if cfg.SQLitePath != "inventario.db" {
		t.Errorf("SQLitePath = %q, want %q", cfg.SQLitePath, "inventario.db")
	}
	if cfg.DevMode {
		t.Error("DevMode defaults to true, want false")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_NAME", "scans")
	t.Setenv("AUTH_USER", "admin")
	t.Setenv("DEV_MODE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.DBType != "postgres" {
		t.Errorf("DBType = %q, want %q", cfg.DBType, "postgres")
	}
	if cfg.DBName != "scans" {
		t.Errorf("DBName = %q, want %q", cfg.DBName, "scans")
	}
	if cfg.AuthUser != "admin" {
		t.Errorf("AuthUser = %q, want %q", cfg.AuthUser, "admin")
	}
	if !cfg.DevMode {
		t.Error("DevMode = false, want true")
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.test")
	content := "# comment line\n\nFILE_ONLY_KEY=from-file\nPRESET_KEY=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("PRESET_KEY", "from-env")
	t.Setenv("FILE_ONLY_KEY", "")
	os.Unsetenv("FILE_ONLY_KEY")

	LoadEnvFile(path)
	t.Cleanup(func() { os.Unsetenv("FILE_ONLY_KEY") })

	if got := os.Getenv("FILE_ONLY_KEY"); got != "from-file" {
		t.Errorf("FILE_ONLY_KEY = %q, want %q", got, "from-file")
	}
	// Existing environment wins over file values.
	if got := os.Getenv("PRESET_KEY"); got != "from-env" {
		t.Errorf("PRESET_KEY = %q, want %q", got, "from-env")
	}
}

func TestLoadEnvFileMissing(t *testing.T) {
	// Must not panic or alter anything.
	LoadEnvFile(filepath.Join(t.TempDir(), "does-not-exist"))
}
