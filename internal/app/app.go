package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"appraisal_etl/extract"
	"appraisal_etl/internal/config"
	"appraisal_etl/internal/store"
	"appraisal_etl/internal/watch"
	"appraisal_etl/locations"
	"appraisal_etl/project"
	"appraisal_etl/synth"
)

// App wires the import pipeline components together.
type App struct {
	cfg     config.Config
	store   *store.Store
	locs    *locations.Table
	watcher *watch.Watcher
}

func New(cfg config.Config) (*App, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	locs := locations.Default()
	if cfg.LocationsPath != "" {
		locs, err = locations.Load(cfg.LocationsPath)
		if err != nil {
			return nil, fmt.Errorf("locations: %w", err)
		}
	}
	a := &App{cfg: cfg, store: st, locs: locs}
	a.watcher = watch.New(cfg, func(ctx context.Context, path string) {
		log.Printf("workbook dropped: %s", path)
		if err := a.Import(ctx); err != nil {
			log.Printf("import failed: %v", err)
		}
	})
	return a, nil
}

// Run performs an initial import, then keeps watching the drop dir until
// the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.Import(ctx); err != nil {
		return err
	}
	if !a.cfg.EnableWatcher {
		return nil
	}
	if err := a.watcher.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

// Import runs the whole pipeline once: read both extracts, reconcile,
// write the JSON outputs, and persist the run.
func (a *App) Import(ctx context.Context) error {
	started := config.Now()

	productSheet, err := extract.LoadSheet(a.cfg.ProductsPath, "")
	if err != nil {
		return fmt.Errorf("product extract: %w", err)
	}
	priceSheet, err := extract.LoadSheet(a.cfg.PricesPath, extract.AnchorColumn)
	if err != nil {
		return fmt.Errorf("price extract: %w", err)
	}

	log.Printf("product extract: %d columns, %d rows", len(productSheet.Headers), len(productSheet.Rows))
	log.Printf("price extract: %d columns, %d rows", len(priceSheet.Headers), len(priceSheet.Rows))

	products := extract.ProductRecords(productSheet)
	prices := extract.PriceRecords(priceSheet, a.locs)

	builder := project.NewBuilder(synth.NewSource(a.cfg.Seed))
	builder.Limit = a.cfg.Limit
	builder.Locations = a.locs
	res := builder.Build(products, prices)

	if err := a.writeOutputs(res); err != nil {
		return err
	}
	runID, err := a.store.SaveRun(ctx, started, config.Now(), res)
	if err != nil {
		return fmt.Errorf("persist run: %w", err)
	}

	s := res.Summary
	log.Printf("run %s: rows=%d/%d keyless=%d/%d appraisals=%d lines=%d",
		runID, s.ProductRowsRead, s.PriceRowsRead, s.ProductRowsNoKey, s.PriceRowsNoKey, s.AppraisalsBuilt, s.ProductLinesBuilt)
	logStatusDistribution(res.List)
	return nil
}

func (a *App) writeOutputs(res *project.Result) error {
	if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(a.cfg.OutputDir, "appraisals.json"), res.List); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(a.cfg.OutputDir, "appraisals-detail.json"), res.Details); err != nil {
		return err
	}
	return writeJSON(filepath.Join(a.cfg.OutputDir, "run-summary.json"), res.Summary)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func logStatusDistribution(items []project.ListItem) {
	counts := map[string]int{}
	for _, it := range items {
		counts[it.Status.Label()]++
	}
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		log.Printf("status %-28s %d", l, counts[l])
	}
}

func (a *App) Store() *store.Store { return a.store }

func (a *App) Close() error { return a.store.Close() }
