// Package sqlite writes the tables produced by one analysis run to a SQLite
// file so downstream tooling can query them. The file is an output artifact:
// the pipeline never reads it back.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/andersy005/covidtrend/dataset"
	"github.com/andersy005/covidtrend/forecast"
)

const dateLayout = "2006-01-02"

type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS observations (
	province TEXT NOT NULL,
	country TEXT NOT NULL,
	date TEXT NOT NULL,
	confirmed INTEGER NOT NULL,
	deaths INTEGER
);
CREATE TABLE IF NOT EXISTS summaries (
	scope TEXT NOT NULL,
	date TEXT,
	country TEXT,
	confirmed INTEGER NOT NULL,
	deaths INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS forecast_points (
	metric TEXT NOT NULL,
	date TEXT NOT NULL,
	forecast REAL NOT NULL,
	lower REAL NOT NULL,
	upper REAL NOT NULL
);
`)
	return err
}

func (s *Store) InsertObservations(ctx context.Context, observations []dataset.Observation) (err error) {
	if len(observations) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO observations (province, country, date, confirmed, deaths)
VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, o := range observations {
		var deaths sql.NullInt64
		if o.Deaths != nil {
			deaths = sql.NullInt64{Int64: *o.Deaths, Valid: true}
		}
		if _, err = stmt.ExecContext(ctx, o.Province, o.Country, o.Date.Format(dateLayout), o.Confirmed, deaths); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// InsertSummary stores an aggregated table under a scope label, e.g.
// "global_daily" or "top_countries".
func (s *Store) InsertSummary(ctx context.Context, scope string, summary []dataset.SummaryRow) (err error) {
	if len(summary) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO summaries (scope, date, country, confirmed, deaths)
VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range summary {
		var date sql.NullString
		if !row.Date.IsZero() {
			date = sql.NullString{String: row.Date.Format(dateLayout), Valid: true}
		}
		var country sql.NullString
		if row.Country != "" {
			country = sql.NullString{String: row.Country, Valid: true}
		}
		if _, err = stmt.ExecContext(ctx, scope, date, country, row.Confirmed, row.Deaths); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) InsertForecast(ctx context.Context, metric string, res *forecast.Results) (err error) {
	if res == nil || len(res.T) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO forecast_points (metric, date, forecast, lower, upper)
VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, tPnt := range res.T {
		if _, err = stmt.ExecContext(ctx, metric, tPnt.Format(dateLayout), res.Forecast[i], res.Lower[i], res.Upper[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// CountRows is a convenience for inspection and tests.
func (s *Store) CountRows(ctx context.Context, table string) (int64, error) {
	switch table {
	case "observations", "summaries", "forecast_points":
	default:
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	return n, err
}
