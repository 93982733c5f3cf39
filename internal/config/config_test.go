package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()
	cfg := Load()
	if cfg.Limit != 250 {
		t.Fatalf("expected default limit 250, got %d", cfg.Limit)
	}
	if cfg.ProductsPath != "./data/products.xlsx" {
		t.Fatalf("unexpected products path %q", cfg.ProductsPath)
	}
	if cfg.EnableWatcher {
		t.Fatal("watcher should default off")
	}
	if cfg.Seed != 0 {
		t.Fatalf("expected unseeded default, got %d", cfg.Seed)
	}
}

func TestLoadOverridesAndClamp(t *testing.T) {
	os.Clearenv()
	t.Setenv("APPRAISAL_LIMIT", "0")
	t.Setenv("PRODUCTS_XLSX", "/tmp/p.xlsx")
	t.Setenv("SEED", "42")
	t.Setenv("ENABLE_WATCHER", "true")
	cfg := Load()
	if cfg.Limit != 1 {
		t.Fatalf("limit must clamp to 1, got %d", cfg.Limit)
	}
	if cfg.ProductsPath != "/tmp/p.xlsx" {
		t.Fatalf("override ignored: %q", cfg.ProductsPath)
	}
	if cfg.Seed != 42 || !cfg.EnableWatcher {
		t.Fatalf("overrides ignored: %+v", cfg)
	}
}

func TestLoadRejectsGarbageNumbers(t *testing.T) {
	os.Clearenv()
	t.Setenv("APPRAISAL_LIMIT", "many")
	cfg := Load()
	if cfg.Limit != 250 {
		t.Fatalf("garbage limit must fall back to default, got %d", cfg.Limit)
	}
}

func TestLoadYAMLFileUnderEnv(t *testing.T) {
	os.Clearenv()
	path := filepath.Join(t.TempDir(), "etl.yaml")
	if err := os.WriteFile(path, []byte("products_xlsx: /srv/p.xlsx\nlimit: 50\nseed: 9\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("APPRAISAL_LIMIT", "75")
	cfg := Load()
	if cfg.ProductsPath != "/srv/p.xlsx" || cfg.Seed != 9 {
		t.Fatalf("yaml values ignored: %+v", cfg)
	}
	if cfg.Limit != 75 {
		t.Fatalf("env must override yaml, got limit %d", cfg.Limit)
	}
}
