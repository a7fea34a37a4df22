package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/scrollplot/pkg/pipeline"
	"github.com/matzehuels/scrollplot/pkg/server"
)

// emptyConfig writes a config file that sets nothing.
func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("# defaults only\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(emptyConfig(t))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.CacheBackend != "file" {
		t.Errorf("CacheBackend = %q, want file", cfg.CacheBackend)
	}
	if cfg.Width != pipeline.DefaultSize {
		t.Errorf("Width = %v, want %v", cfg.Width, pipeline.DefaultSize)
	}
	if cfg.Listen != server.DefaultAddr {
		t.Errorf("Listen = %q, want %q", cfg.Listen, server.DefaultAddr)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := "cache-backend: redis\nredis-addr: cache:6379\nwidth: 800\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SCROLLPLOT_WIDTH", "900")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.CacheBackend != "redis" || cfg.RedisAddr != "cache:6379" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Width != 900 {
		t.Errorf("Width = %v, want env override 900", cfg.Width)
	}
	if cfg.ConfigPath != path {
		t.Errorf("ConfigPath = %q, want %q", cfg.ConfigPath, path)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"backend", map[string]string{"SCROLLPLOT_CACHE_BACKEND": "memcached"}},
		{"width", map[string]string{"SCROLLPLOT_WIDTH": "10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := loadConfig(emptyConfig(t)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("an explicit config path that does not exist should fail")
	}

	t.Setenv("HOME", t.TempDir())
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("missing default config should be ignored: %v", err)
	}
	if cfg.CacheBackend != "file" {
		t.Errorf("CacheBackend = %q, want default", cfg.CacheBackend)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 1, false},
		{"svg", 1, false},
		{"svg, png,json", 3, false},
		{"svg,pdf", 0, true},
	}
	for _, tt := range tests {
		got, err := parseFormats(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFormats(%q) err = %v", tt.in, err)
			continue
		}
		if len(got) != tt.want {
			t.Errorf("parseFormats(%q) = %v", tt.in, got)
		}
	}
}
