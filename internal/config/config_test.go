package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestPath(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := Path(), "/custom/config/roster/config.yml"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got, want := Path(), filepath.Join(home, ".config", "roster", "config.yml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfig, "/etc/roster.yml")
	if got := Path(); got != "/etc/roster.yml" {
		t.Errorf("Path() = %q, want /etc/roster.yml", got)
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadFile() returned nil")
	}
	if len(cfg.Autoload) != 0 || cfg.LogLevel != "" {
		t.Errorf("LoadFile() = %+v, want empty config", cfg)
	}
}

func TestLoadFile_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `autoload:
  - people.csv
  - extra.csv
log_level: debug
prompt: "roster> "
index_db: /tmp/people.db
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !slices.Equal(cfg.Autoload, []string{"people.csv", "extra.csv"}) {
		t.Errorf("Autoload = %v, want [people.csv extra.csv]", cfg.Autoload)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Prompt != "roster> " {
		t.Errorf("Prompt = %q, want %q", cfg.Prompt, "roster> ")
	}
	if cfg.IndexDB != "/tmp/people.db" {
		t.Errorf("IndexDB = %q, want /tmp/people.db", cfg.IndexDB)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("autoload: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() expected error for invalid YAML")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("log_level: info\nindex_db: file.db\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvIndexDB, "")
	t.Setenv(EnvPrompt, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want error", cfg.LogLevel)
	}
	if cfg.IndexDB != "file.db" {
		t.Errorf("IndexDB = %q, want file.db", cfg.IndexDB)
	}
	if cfg.Prompt != DefaultPrompt {
		t.Errorf("Prompt = %q, want %q", cfg.Prompt, DefaultPrompt)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	if cfg.LogLevel != DefaultLogLevel || cfg.Prompt != DefaultPrompt || cfg.IndexDB != DefaultIndexDB {
		t.Errorf("ApplyDefaults() = %+v", cfg)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/data/people.csv", filepath.Join(home, "data/people.csv")},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandTilde(tt.input); got != tt.want {
			t.Errorf("ExpandTilde(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
