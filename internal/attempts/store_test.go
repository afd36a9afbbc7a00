package attempts

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerdrill/internal/scenario"
)

func size(v float64) *float64 { return &v }

func sample() []scenario.AttemptResult {
	return []scenario.AttemptResult{
		{ScenarioID: "S002", NodeID: "n2", ChosenAction: scenario.Raise, ChosenSizeBB: size(8), IsCorrect: true, Timestamp: 1000},
		{ScenarioID: "S002", NodeID: "n5", ChosenAction: scenario.Check, IsCorrect: false, Timestamp: 2000},
		{ScenarioID: "S001", NodeID: "d1", ChosenAction: scenario.Fold, IsCorrect: false, Timestamp: 3000},
		{ScenarioID: "S002", NodeID: "n8", ChosenAction: scenario.Bet, ChosenSizeBB: size(6), IsCorrect: false, Timestamp: 4000},
		{ScenarioID: "S002", NodeID: "n5", ChosenAction: scenario.Bet, ChosenSizeBB: size(5), IsCorrect: true, Timestamp: 5000},
		{ScenarioID: "S002", NodeID: "n5", ChosenAction: scenario.Check, IsCorrect: false, Timestamp: 6000},
	}
}

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	want := sample()
	for _, a := range want {
		require.NoError(t, s.Append(ctx, a))
	}

	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, list, "attempts come back in append order")

	require.NoError(t, s.Clear(ctx))
	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, s.Clear(ctx), "clearing twice is fine")
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	s := NewMemory()
	exerciseStore(t, s)

	v := 3.0
	require.NoError(t, s.Append(context.Background(), scenario.AttemptResult{NodeID: "x", ChosenSizeBB: &v}))
	v = 99
	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3.0, *list[0].ChosenSizeBB, "stored sizes are copied")
}

func TestFileStore(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "data")
	s, err := NewFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pdt_results_v1.json"), s.Path())
	exerciseStore(t, s)

	require.NoError(t, s.Append(context.Background(), sample()[0]))
	reopened, err := NewFile(dir)
	require.NoError(t, err)
	list, err := reopened.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sample()[:1], list)
}

func TestFileStoreCorrupt(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, Namespace+".json"), []byte(`{"not":"a list"}`), 0o644))

	s, err := NewFile(dir)
	require.NoError(t, err)
	_, err = s.List(context.Background())
	assert.Error(t, err)
	assert.Error(t, s.Append(context.Background(), sample()[0]), "a corrupt log is never overwritten")

	_, err = NewFile("")
	assert.Error(t, err)
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "db", "attempts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	exerciseStore(t, s)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("POKERDRILL_TEST_DSN")
	if dsn == "" {
		t.Skip("POKERDRILL_TEST_DSN not set")
	}
	ctx := context.Background()
	s, err := OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(ctx), "migrations are idempotent")
	require.NoError(t, s.Clear(ctx))
	exerciseStore(t, s)
}

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := Open(ctx, "memory", "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(ctx, " FILE ", t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &File{}, s)

	s, err = Open(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, "redis", "")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestStats(t *testing.T) {
	t.Parallel()
	list := sample()

	got := Stats(list, "S002")
	assert.Equal(t, 5, got.Attempts)
	assert.Equal(t, 2, got.Correct)
	assert.InDelta(t, 0.4, got.Accuracy, 1e-12)
	assert.Equal(t, []string{"n5", "n8"}, got.WrongNodeIDs)

	none := Stats(list, "S999")
	assert.Zero(t, none.Attempts)
	assert.Zero(t, none.Accuracy)
	assert.Equal(t, []string{}, none.WrongNodeIDs)

	assert.Equal(t, map[string]bool{"d1": true}, ReviewSet(list, "S001"))
	assert.Empty(t, ReviewSet(nil, "S001"))
}
