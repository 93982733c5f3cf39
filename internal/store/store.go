package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"appraisal_etl/project"
	"appraisal_etl/status"
)

// Store wraps SQLite access for import runs and their projections.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			started_at TIMESTAMP,
			finished_at TIMESTAMP,
			summary_json TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS appraisals (
			id INTEGER,
			run_id TEXT,
			appraisal_number TEXT,
			created_at TEXT,
			status INTEGER,
			tracking_number TEXT,
			client_name TEXT,
			location_name TEXT,
			product_count INTEGER,
			total_price_transfer REAL,
			total_price_gift_card REAL,
			PRIMARY KEY (run_id, id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_appraisals_number ON appraisals(appraisal_number);`,
		`CREATE TABLE IF NOT EXISTS appraisal_details (
			id INTEGER,
			run_id TEXT,
			detail_json TEXT,
			PRIMARY KEY (run_id, id)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Run records one completed import run.
type Run struct {
	RunID      string             `json:"run_id"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Summary    project.RunSummary `json:"summary"`
}

// SaveRun persists a run with both projections in one transaction, so a
// failed import never leaves half a run behind.
func (s *Store) SaveRun(ctx context.Context, started, finished time.Time, res *project.Result) (string, error) {
	runID := uuid.NewString()
	summaryJSON, err := json.Marshal(res.Summary)
	if err != nil {
		return "", err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO runs(run_id, started_at, finished_at, summary_json) VALUES(?,?,?,?)`,
		runID, started, finished, string(summaryJSON)); err != nil {
		return "", err
	}
	for _, it := range res.List {
		if _, err := tx.ExecContext(ctx, `INSERT INTO appraisals(id, run_id, appraisal_number, created_at, status, tracking_number, client_name, location_name, product_count, total_price_transfer, total_price_gift_card)
			VALUES(?,?,?,?,?,?,?,?,?,?,?)`,
			it.ID, runID, it.AppraisalNumber, it.CreatedAt, int(it.Status), it.TrackingNumber, it.ClientName, it.LocationName, it.ProductCount, it.TotalPriceTransfer, it.TotalPriceGiftCard); err != nil {
			return "", err
		}
	}
	for _, d := range res.Details {
		doc, err := json.Marshal(d)
		if err != nil {
			return "", err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO appraisal_details(id, run_id, detail_json) VALUES(?,?,?)`,
			d.ID, runID, string(doc)); err != nil {
			return "", err
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT run_id, started_at, finished_at, summary_json FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []Run
	for rows.Next() {
		var r Run
		var summary string
		if err := rows.Scan(&r.RunID, &r.StartedAt, &r.FinishedAt, &summary); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(summary), &r.Summary); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListAppraisals returns the flat projection rows of one run in id order.
func (s *Store) ListAppraisals(ctx context.Context, runID string, limit int) ([]project.ListItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, appraisal_number, created_at, status, tracking_number, client_name, location_name, product_count, total_price_transfer, total_price_gift_card
		FROM appraisals WHERE run_id=? ORDER BY id ASC LIMIT ?`, runID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []project.ListItem
	for rows.Next() {
		var it project.ListItem
		var code int
		if err := rows.Scan(&it.ID, &it.AppraisalNumber, &it.CreatedAt, &code, &it.TrackingNumber, &it.ClientName, &it.LocationName, &it.ProductCount, &it.TotalPriceTransfer, &it.TotalPriceGiftCard); err != nil {
			return nil, err
		}
		it.Status = status.Code(code)
		items = append(items, it)
	}
	return items, rows.Err()
}

// Detail loads one appraisal's full document from a run.
func (s *Store) Detail(ctx context.Context, runID string, id int) (*project.Detail, error) {
	row := s.db.QueryRowContext(ctx, `SELECT detail_json FROM appraisal_details WHERE run_id=? AND id=?`, runID, id)
	var doc string
	switch err := row.Scan(&doc); err {
	case nil:
	case sql.ErrNoRows:
		return nil, nil
	default:
		return nil, err
	}
	var d project.Detail
	if err := json.Unmarshal([]byte(doc), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Health returns err if DB not reachable.
func (s *Store) Health(ctx context.Context) error {
	row := s.db.QueryRowContext(ctx, `SELECT 1`)
	var v int
	if err := row.Scan(&v); err != nil {
		return fmt.Errorf("db health: %w", err)
	}
	return nil
}
