package attempts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/lox/pokerdrill/internal/fileutil"
	"github.com/lox/pokerdrill/internal/scenario"
)

// File keeps attempts as a JSON array in <dir>/pdt_results_v1.json. Every
// append rewrites the file atomically.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a store rooted at dir. The directory is created on the
// first write.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("file store needs a directory")
	}
	return &File{path: filepath.Join(dir, Namespace+".json")}, nil
}

// Path is the backing file.
func (f *File) Path() string { return f.path }

func (f *File) Append(_ context.Context, a scenario.AttemptResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	list, err := f.load()
	if err != nil {
		return err
	}
	list = append(list, a)
	if err := fileutil.WriteJSONAtomic(f.path, list, 0o644); err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}
	return nil
}

func (f *File) List(_ context.Context) ([]scenario.AttemptResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *File) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear attempts: %w", err)
	}
	return nil
}

func (f *File) Close() error { return nil }

func (f *File) load() ([]scenario.AttemptResult, error) {
	list := []scenario.AttemptResult{}
	if _, err := fileutil.ReadJSON(f.path, &list); err != nil {
		return nil, fmt.Errorf("load attempts: %w", err)
	}
	if list == nil {
		list = []scenario.AttemptResult{}
	}
	return list, nil
}
