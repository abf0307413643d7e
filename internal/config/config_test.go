package config

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// CONFIG TESTS
// =============================================================================

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"JSONSPLIT_INPUT", "JSONSPLIT_OUTPUT_DIR", "JSONSPLIT_PREFIX",
		"JSONSPLIT_FILES", "JSONSPLIT_REMAINDER", "JSONSPLIT_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Output.Prefix != "split_file_" {
		t.Errorf("expected Prefix=split_file_, got %s", cfg.Output.Prefix)
	}
	if cfg.Output.Files != 10 {
		t.Errorf("expected Files=10, got %d", cfg.Output.Files)
	}
	if cfg.Output.Remainder != RemainderDrop {
		t.Errorf("expected Remainder=drop, got %s", cfg.Output.Remainder)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "jsonsplit.yaml")

	cfg := DefaultConfig()
	cfg.Input.Path = "reviews.json"
	cfg.Output.Files = 4
	cfg.Output.Remainder = RemainderLast

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Input.Path != "reviews.json" {
		t.Errorf("expected Input.Path=reviews.json, got %s", loaded.Input.Path)
	}
	if loaded.Output.Files != 4 {
		t.Errorf("expected Files=4, got %d", loaded.Output.Files)
	}
	if loaded.Output.Remainder != RemainderLast {
		t.Errorf("expected Remainder=last, got %s", loaded.Output.Remainder)
	}
}

func TestConfig_LoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.Dir != DefaultConfig().Output.Dir {
		t.Errorf("expected default output dir, got %s", cfg.Output.Dir)
	}
}

func TestConfig_LoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "jsonsplit.yaml")
	if err := os.WriteFile(path, []byte("output:\n  files: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.Files != 3 {
		t.Errorf("expected Files=3, got %d", cfg.Output.Files)
	}
	if cfg.Output.Prefix != "split_file_" {
		t.Errorf("expected default prefix to survive, got %s", cfg.Output.Prefix)
	}
}

func TestConfig_LoadMalformedYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("output: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error for malformed yaml")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty input", func(c *Config) { c.Input.Path = "" }, true},
		{"empty output dir", func(c *Config) { c.Output.Dir = "" }, true},
		{"prefix with slash", func(c *Config) { c.Output.Prefix = "a/b" }, true},
		{"empty prefix", func(c *Config) { c.Output.Prefix = "" }, false},
		{"unknown remainder", func(c *Config) { c.Output.Remainder = "spread" }, true},
		{"zero files left to splitter", func(c *Config) { c.Output.Files = 0 }, false},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	c := LoggingConfig{}
	if !c.IsCategoryEnabled("split") {
		t.Error("nil categories should enable everything")
	}

	c.Categories = map[string]bool{"count": false}
	if c.IsCategoryEnabled("count") {
		t.Error("count should be disabled")
	}
	if !c.IsCategoryEnabled("split") {
		t.Error("unlisted category should be enabled")
	}
}
