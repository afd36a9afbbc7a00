package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/lox/pokerdrill/internal/scenario"
)

// ErrScenarioNotFound is returned when no scenario has the requested ID.
var ErrScenarioNotFound = errors.New("scenario not found")

// ScenarioStore serves authored scenarios.
type ScenarioStore interface {
	List(ctx context.Context) ([]scenario.Meta, error)
	Get(ctx context.Context, id string) (*scenario.Scenario, error)
}

// DirStore reads scenarios from <dir>/*.json on every call, so edits show up
// without a restart. Each file is schema and structure checked on load.
type DirStore struct {
	dir string
}

// NewDirStore returns a store over dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Dir returns the directory being served.
func (d *DirStore) Dir() string { return d.dir }

// List returns the metadata of every scenario sorted by ID.
func (d *DirStore) List(ctx context.Context) ([]scenario.Meta, error) {
	all, err := d.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	metas := make([]scenario.Meta, 0, len(all))
	for _, s := range all {
		metas = append(metas, s.Meta())
	}
	slices.SortFunc(metas, func(a, b scenario.Meta) int { return strings.Compare(a.ID, b.ID) })
	return metas, nil
}

// Get loads <dir>/<id>.json.
func (d *DirStore) Get(ctx context.Context, id string) (*scenario.Scenario, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return nil, fmt.Errorf("%w: %q", ErrScenarioNotFound, id)
	}
	path := filepath.Join(d.dir, id+".json")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrScenarioNotFound, id)
	}
	return scenario.Load(path)
}

// LoadAll loads every scenario file in the directory. Any invalid file fails
// the whole load.
func (d *DirStore) LoadAll(ctx context.Context) ([]*scenario.Scenario, error) {
	files, err := filepath.Glob(filepath.Join(d.dir, "*.json"))
	if err != nil {
		return nil, err
	}
	slices.Sort(files)

	out := make([]*scenario.Scenario, 0, len(files))
	seen := make(map[string]string, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := scenario.Load(f)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[s.ID]; ok {
			return nil, fmt.Errorf("duplicate scenario id %s in %s and %s", s.ID, prev, f)
		}
		seen[s.ID] = f
		out = append(out, s)
	}
	return out, nil
}
