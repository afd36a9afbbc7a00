package attempts

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/lox/pokerdrill/internal/scenario"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// SQLite keeps attempts in a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies
// the schema. ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if path != ":memory:" {
		if parent := filepath.Dir(path); parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite %s: %w", pragma, err)
		}
	}

	schema, err := schemaFS.ReadFile("schema/sqlite.sql")
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Append(ctx context.Context, a scenario.AttemptResult) error {
	var size sql.NullFloat64
	if a.ChosenSizeBB != nil {
		size = sql.NullFloat64{Float64: *a.ChosenSizeBB, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO attempts (scenario_id, node_id, chosen_action, chosen_size_bb, is_correct, timestamp_ms)
VALUES (?, ?, ?, ?, ?, ?)
`, a.ScenarioID, a.NodeID, string(a.ChosenAction), size, a.IsCorrect, a.Timestamp)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (s *SQLite) List(ctx context.Context) ([]scenario.AttemptResult, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT scenario_id, node_id, chosen_action, chosen_size_bb, is_correct, timestamp_ms
  FROM attempts
 ORDER BY id
`)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	out := []scenario.AttemptResult{}
	for rows.Next() {
		var (
			a      scenario.AttemptResult
			action string
			size   sql.NullFloat64
		)
		if err := rows.Scan(&a.ScenarioID, &a.NodeID, &action, &size, &a.IsCorrect, &a.Timestamp); err != nil {
			return nil, err
		}
		a.ChosenAction = scenario.ActionType(action)
		if size.Valid {
			v := size.Float64
			a.ChosenSizeBB = &v
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLite) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM attempts`); err != nil {
		return fmt.Errorf("clear attempts: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
