package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"flintmc/internal/domain"
)

// History records run outcomes for later inspection (CI dashboards etc.).
type History struct {
	db *sql.DB
}

// OpenHistory connects to the MySQL run-history database and ensures its
// tables exist.
func OpenHistory(dsn string) (*History, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}
	h := &History{db: db}
	if err := h.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *History) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			server VARCHAR(255) NOT NULL,
			total_tests INT NOT NULL,
			passed_tests INT NOT NULL,
			failed_tests INT NOT NULL,
			failed_assertions INT NOT NULL,
			duration_seconds DOUBLE NOT NULL,
			created_at VARCHAR(64) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_failures (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			run_id BIGINT NOT NULL,
			test_name VARCHAR(255) NOT NULL,
			tick INT NOT NULL,
			pos_x INT NOT NULL,
			pos_y INT NOT NULL,
			pos_z INT NOT NULL,
			expected TEXT,
			observed TEXT,
			message TEXT,
			INDEX (run_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := h.db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure history schema: %w", err)
		}
	}
	return nil
}

// Record inserts one run and its failures.
func (h *History) Record(output *domain.RunOutput) error {
	res, err := h.db.Exec(
		`INSERT INTO runs (server, total_tests, passed_tests, failed_tests, failed_assertions, duration_seconds, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		output.Meta.Server,
		output.Meta.TotalTests,
		output.Meta.PassedTests,
		output.Meta.FailedTests,
		output.Meta.FailedAssertions,
		output.Meta.DurationSeconds,
		output.Meta.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("record run id: %w", err)
	}

	for _, f := range output.Details {
		_, err := h.db.Exec(
			`INSERT INTO run_failures (run_id, test_name, tick, pos_x, pos_y, pos_z, expected, observed, message)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, f.TestName, f.Tick, f.Pos[0], f.Pos[1], f.Pos[2], f.Expected, f.Observed, f.Message,
		)
		if err != nil {
			return fmt.Errorf("record failure for %s: %w", f.TestName, err)
		}
	}
	return nil
}

func (h *History) Close() error {
	return h.db.Close()
}
