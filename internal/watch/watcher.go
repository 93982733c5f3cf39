package watch

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"appraisal_etl/internal/config"
)

// ImportFunc is invoked for each workbook dropped into the watched dir.
type ImportFunc func(ctx context.Context, path string)

// Watcher monitors DROP_DIR for new workbooks and triggers a re-import.
type Watcher struct {
	cfg      config.Config
	onImport ImportFunc
}

func New(cfg config.Config, onImport ImportFunc) *Watcher {
	return &Watcher{cfg: cfg, onImport: onImport}
}

func (w *Watcher) Start(ctx context.Context) error {
	if !w.cfg.EnableWatcher {
		log.Println("watcher disabled")
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt := <-watcher.Events:
				if evt.Op&(fsnotify.Create|fsnotify.Rename) != 0 {
					if w.isWorkbook(evt.Name) {
						w.onImport(ctx, evt.Name)
					}
				}
			case err := <-watcher.Errors:
				log.Printf("watcher error: %v", err)
			}
		}
	}()
	return watcher.Add(w.cfg.DropDir)
}

func (w *Watcher) isWorkbook(path string) bool {
	if strings.HasPrefix(filepath.Base(path), "~$") {
		// Office lock files appear next to an open workbook.
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm", ".xls":
		return true
	default:
		return false
	}
}

// Backfill triggers an import for workbooks already present in the dir.
func (w *Watcher) Backfill(ctx context.Context) error {
	entries, err := filepath.Glob(filepath.Join(w.cfg.DropDir, "*"))
	if err != nil {
		return err
	}
	for _, e := range entries {
		if w.isWorkbook(e) {
			w.onImport(ctx, e)
		}
	}
	return nil
}
