package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/gridiron/internal/charts"
)

func TestLoadTablesSharesCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts.yaml")
	data, err := os.ReadFile(filepath.Join("..", "..", "internal", "charts", "data", "charts.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	catalog = charts.NewCatalog(path)
	t.Cleanup(func() { catalog = nil })

	first, err := loadTables()
	if err != nil {
		t.Fatal(err)
	}
	again, err := loadTables()
	if err != nil {
		t.Fatal(err)
	}
	if first != again {
		t.Error("second load should come from the cache")
	}

	if err := os.WriteFile(path, []byte("decks: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if cached, _ := loadTables(); cached != first {
		t.Error("cache should hold until invalidated")
	}
	catalog.Invalidate()
	if _, err := loadTables(); err == nil {
		t.Error("reload after invalidate should read the edited file")
	}
}
