// Package db persists run configuration and a shallow per-run audit
// trail to Postgres via pgx. It never stores a company's raw Input or
// Output — those stay in memory only, for the lifetime of one process.
package db

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

// schemaSQL creates the two tables this store ever writes to: the
// history of analyst-supplied run configurations, and one row per
// completed benchmark run recording only aggregate shape (company and
// KPI counts, duration) — never the values themselves.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS benchmark_configs (
	id           BIGSERIAL PRIMARY KEY,
	name         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	k_anonymity  BIGINT NOT NULL DEFAULT 0,
	eval_mode    BOOLEAN NOT NULL DEFAULT FALSE,
	offload      TEXT[] NOT NULL DEFAULT '{}',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS benchmark_runs (
	id             UUID PRIMARY KEY,
	config_id      BIGINT REFERENCES benchmark_configs(id),
	company_count  INT NOT NULL,
	kpi_count      INT NOT NULL,
	started_at     TIMESTAMPTZ NOT NULL,
	duration_ms    BIGINT NOT NULL,
	succeeded      BOOLEAN NOT NULL
);
`

// Connect initializes the connection pool to PostgreSQL using pgx.
func Connect(connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping failed: %v", err)
	}
	log.Println("Successfully connected to PostgreSQL for benchmarking engine")
	return &PostgresStore{pool: pool}, nil
}

// Close gracefully closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InitSchema creates the store's tables if they do not already exist.
func (s *PostgresStore) InitSchema() error {
	if _, err := s.pool.Exec(context.Background(), schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema migrations: %v", err)
	}
	log.Println("Benchmarking engine schema initialized")
	return nil
}

// SaveConfig records an analyst's run configuration and returns its
// assigned ID, for later reference by SaveRunAudit.
func (s *PostgresStore) SaveConfig(ctx context.Context, name, description string, kAnonymity uint64, evalMode bool, offload []string) (int64, error) {
	const sql = `
		INSERT INTO benchmark_configs (name, description, k_anonymity, eval_mode, offload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	var id int64
	err := s.pool.QueryRow(ctx, sql, name, description, kAnonymity, evalMode, offload).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert benchmark_config: %v", err)
	}
	return id, nil
}

// RunAudit is the shallow, content-free record of one completed run.
// A nil ConfigID is persisted as NULL; the benchmark-run handler in
// internal/api never sets it, so its runs carry no config reference.
type RunAudit struct {
	RunID        string
	ConfigID     *int64
	CompanyCount int
	KPICount     int
	StartedAt    int64 // unix millis
	DurationMs   int64
	Succeeded    bool
}

// SaveRunAudit persists a run's audit record. It never receives, and
// so can never persist, any company's Input or Output values.
func (s *PostgresStore) SaveRunAudit(ctx context.Context, audit RunAudit) error {
	const sql = `
		INSERT INTO benchmark_runs (id, config_id, company_count, kpi_count, started_at, duration_ms, succeeded)
		VALUES ($1, $2, $3, $4, to_timestamp($5::double precision / 1000.0), $6, $7)
		ON CONFLICT (id) DO NOTHING;
	`
	_, err := s.pool.Exec(ctx, sql, audit.RunID, audit.ConfigID, audit.CompanyCount, audit.KPICount, audit.StartedAt, audit.DurationMs, audit.Succeeded)
	if err != nil {
		return fmt.Errorf("failed to insert benchmark_run: %v", err)
	}
	return nil
}

// RunHistory is one row of summarized past-run history, as returned
// by ListRecentRuns.
type RunHistory struct {
	RunID        string `json:"runId"`
	CompanyCount int    `json:"companyCount"`
	KPICount     int    `json:"kpiCount"`
	DurationMs   int64  `json:"durationMs"`
	Succeeded    bool   `json:"succeeded"`
}

// ListRecentRuns returns the most recent n run-audit rows, newest
// first.
func (s *PostgresStore) ListRecentRuns(ctx context.Context, n int) ([]RunHistory, error) {
	if n <= 0 || n > 500 {
		n = 50
	}
	const sql = `
		SELECT id, company_count, kpi_count, duration_ms, succeeded
		FROM benchmark_runs
		ORDER BY started_at DESC
		LIMIT $1;
	`
	rows, err := s.pool.Query(ctx, sql, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunHistory
	for rows.Next() {
		var h RunHistory
		if err := rows.Scan(&h.RunID, &h.CompanyCount, &h.KPICount, &h.DurationMs, &h.Succeeded); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if out == nil {
		out = []RunHistory{}
	}
	return out, nil
}

// GetPool exposes the connection pool directly, for callers that need
// a raw query the store's own methods don't cover.
func (s *PostgresStore) GetPool() *pgxpool.Pool {
	return s.pool
}
