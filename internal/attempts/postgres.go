package attempts

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lox/pokerdrill/internal/scenario"
)

// Postgres keeps attempts in a shared Postgres database.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn and migrates the schema.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	p := &Postgres{pool: pool}
	if err := p.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

// Migrate applies the embedded schema. It is idempotent.
func (p *Postgres) Migrate(ctx context.Context) error {
	schema, err := schemaFS.ReadFile("schema/postgres.sql")
	if err != nil {
		return err
	}
	if _, err := p.pool.Exec(ctx, string(schema)); err != nil {
		return fmt.Errorf("apply postgres schema: %w", err)
	}
	return nil
}

func (p *Postgres) Append(ctx context.Context, a scenario.AttemptResult) error {
	_, err := p.pool.Exec(ctx, `
        INSERT INTO attempts (scenario_id, node_id, chosen_action, chosen_size_bb, is_correct, timestamp_ms)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, a.ScenarioID, a.NodeID, string(a.ChosenAction), a.ChosenSizeBB, a.IsCorrect, a.Timestamp)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (p *Postgres) List(ctx context.Context) ([]scenario.AttemptResult, error) {
	rows, err := p.pool.Query(ctx, `
        SELECT scenario_id, node_id, chosen_action, chosen_size_bb, is_correct, timestamp_ms
          FROM attempts
         ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (scenario.AttemptResult, error) {
		var (
			a      scenario.AttemptResult
			action string
		)
		err := row.Scan(&a.ScenarioID, &a.NodeID, &action, &a.ChosenSizeBB, &a.IsCorrect, &a.Timestamp)
		a.ChosenAction = scenario.ActionType(action)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	if out == nil {
		out = []scenario.AttemptResult{}
	}
	return out, nil
}

func (p *Postgres) Clear(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM attempts`); err != nil {
		return fmt.Errorf("clear attempts: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
