// Package persistence provides the SQLite-backed run journal: every executed
// action and periodic per-plan score samples. The database lives in process
// memory and disappears when the journal is closed.
package persistence

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/settleplan/internal/plan"
)

// Journal wraps a private in-memory SQLite connection.
type Journal struct {
	conn  *sqlx.DB
	runID string
}

// ActionRecord is one executed console action.
type ActionRecord struct {
	ID      int64  `db:"id"`
	RunID   string `db:"run_id"`
	Tick    uint64 `db:"tick"`
	Command string `db:"command"`
	Status  string `db:"status"`
	Message string `db:"message"`
}

// ScoreSample is a plan's totals at a given tick.
type ScoreSample struct {
	Tick        uint64 `db:"tick"`
	PlanID      int    `db:"plan_id"`
	Settlement  string `db:"settlement"`
	Policy      string `db:"policy"`
	LifeQuality int    `db:"life_quality"`
	Economy     int    `db:"economy"`
	Environment int    `db:"environment"`
}

// Open creates an empty journal for the given run.
func Open(runID string) (*Journal, error) {
	conn, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// Each connection to :memory: is its own database.
	conn.SetMaxOpenConns(1)

	j := &Journal{conn: conn, runID: runID}
	if err := j.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := j.SaveMeta("run_id", runID); err != nil {
		conn.Close()
		return nil, fmt.Errorf("save run id: %w", err)
	}
	return j, nil
}

// Close drops the journal.
func (j *Journal) Close() error {
	return j.conn.Close()
}

// RunID returns the run this journal belongs to.
func (j *Journal) RunID() string { return j.runID }

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS actions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		command TEXT NOT NULL,
		status TEXT NOT NULL,
		message TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS plan_scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		plan_id INTEGER NOT NULL,
		settlement TEXT NOT NULL,
		policy TEXT NOT NULL,
		life_quality INTEGER NOT NULL,
		economy INTEGER NOT NULL,
		environment INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_plan_scores_plan ON plan_scores(plan_id, tick);
	`
	_, err := j.conn.Exec(schema)
	return err
}

// RecordAction appends an executed action.
func (j *Journal) RecordAction(tick uint64, command, status, message string) error {
	_, err := j.conn.Exec(
		"INSERT INTO actions (run_id, tick, command, status, message) VALUES (?, ?, ?, ?, ?)",
		j.runID, int64(tick), command, status, message,
	)
	if err != nil {
		return fmt.Errorf("record action %q: %w", command, err)
	}
	return nil
}

// Actions returns every recorded action in execution order.
func (j *Journal) Actions() ([]ActionRecord, error) {
	var records []ActionRecord
	err := j.conn.Select(&records,
		"SELECT id, run_id, tick, command, status, message FROM actions ORDER BY id",
	)
	return records, err
}

// SavePlanScores samples the totals of every plan at tick.
func (j *Journal) SavePlanScores(tick uint64, plans []*plan.Plan) error {
	if len(plans) == 0 {
		return nil
	}

	tx, err := j.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT INTO plan_scores
		(run_id, tick, plan_id, settlement, policy, life_quality, economy, environment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range plans {
		t := p.Totals()
		_, err := stmt.Exec(
			j.runID, int64(tick), p.ID(), p.Settlement().Name, string(p.PolicyCode()),
			t.LifeQuality, t.Economy, t.Environment,
		)
		if err != nil {
			return fmt.Errorf("insert scores for plan %d: %w", p.ID(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Debug("plan scores sampled", "tick", tick, "plans", len(plans))
	return nil
}

// PlanHistory returns the most recent limit samples for a plan, oldest first.
// A limit of zero or less returns every sample.
func (j *Journal) PlanHistory(planID, limit int) ([]ScoreSample, error) {
	if limit <= 0 {
		limit = -1
	}
	var samples []ScoreSample
	err := j.conn.Select(&samples, `
		SELECT tick, plan_id, settlement, policy, life_quality, economy, environment
		FROM (
			SELECT * FROM plan_scores WHERE plan_id = ? ORDER BY id DESC LIMIT ?
		) ORDER BY id`,
		planID, limit,
	)
	return samples, err
}

// SaveMeta stores a key-value pair in run metadata.
func (j *Journal) SaveMeta(key, value string) error {
	_, err := j.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (j *Journal) GetMeta(key string) (string, error) {
	var value string
	err := j.conn.Get(&value, "SELECT value FROM run_meta WHERE key = ?", key)
	return value, err
}
