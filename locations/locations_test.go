package locations

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveExact(t *testing.T) {
	tbl := Default()
	if got := tbl.Resolve("Katowice"); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	tbl := Default()
	if got := tbl.Resolve("  warszawa "); got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
}

func TestResolveFragment(t *testing.T) {
	tbl := Default()
	if got := tbl.Resolve("Gdańsk Wrzeszcz"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := tbl.Resolve("Salon Lodz"); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	if got := tbl.Resolve("centrala - magazyn"); got != 8 {
		t.Fatalf("expected 8, got %d", got)
	}
}

func TestResolveDefault(t *testing.T) {
	tbl := Default()
	if got := tbl.Resolve("Bydgoszcz"); got != HeadquartersID {
		t.Fatalf("expected headquarters %d, got %d", HeadquartersID, got)
	}
}

func TestLoadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.yaml")
	doc := "names:\n  Wroclaw: 9\nfragments:\n  - match: wroc\n    id: 9\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := tbl.Resolve("wrocław"); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
	if got := tbl.Resolve("nieznane"); got != HeadquartersID {
		t.Fatalf("expected default %d, got %d", HeadquartersID, got)
	}
}
