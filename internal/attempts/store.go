// Package attempts persists graded decisions and derives per-scenario
// statistics from them.
package attempts

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/lox/pokerdrill/internal/scenario"
)

// Namespace is the storage key attempts live under. The JSON file store
// uses it as its file name.
const Namespace = "pdt_results_v1"

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown attempt store backend")

// Store is an append-only log of attempt results.
type Store interface {
	Append(ctx context.Context, a scenario.AttemptResult) error
	List(ctx context.Context) ([]scenario.AttemptResult, error)
	Clear(ctx context.Context) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Open creates a store for backend. target is a directory for the file
// store, a database path for SQLite and a DSN for Postgres.
func Open(ctx context.Context, backend, target string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendFile:
		return NewFile(target)
	case BackendSQLite:
		return OpenSQLite(ctx, target)
	case BackendPostgres:
		return OpenPostgres(ctx, target)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Summary is a scenario's attempt statistics.
type Summary struct {
	Attempts     int      `json:"attempts"`
	Correct      int      `json:"correct"`
	Accuracy     float64  `json:"accuracy"`
	WrongNodeIDs []string `json:"wrongNodeIds"`
}

// Stats counts attempts for scenarioID. Accuracy is 0 when there are no
// attempts.
func Stats(list []scenario.AttemptResult, scenarioID string) Summary {
	var s Summary
	for _, a := range list {
		if a.ScenarioID != scenarioID {
			continue
		}
		s.Attempts++
		if a.IsCorrect {
			s.Correct++
		}
	}
	if s.Attempts > 0 {
		s.Accuracy = float64(s.Correct) / float64(s.Attempts)
	}
	s.WrongNodeIDs = WrongNodeIDs(list, scenarioID)
	return s
}

// WrongNodeIDs returns the distinct node IDs of incorrect attempts for
// scenarioID in first-missed order.
func WrongNodeIDs(list []scenario.AttemptResult, scenarioID string) []string {
	ids := []string{}
	for _, a := range list {
		if a.ScenarioID == scenarioID && !a.IsCorrect && !slices.Contains(ids, a.NodeID) {
			ids = append(ids, a.NodeID)
		}
	}
	return ids
}

// ReviewSet is WrongNodeIDs as a lookup set for review mode.
func ReviewSet(list []scenario.AttemptResult, scenarioID string) map[string]bool {
	set := make(map[string]bool)
	for _, id := range WrongNodeIDs(list, scenarioID) {
		set[id] = true
	}
	return set
}

func cloneSize(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
