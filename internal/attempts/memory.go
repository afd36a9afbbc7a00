package attempts

import (
	"context"
	"sync"

	"github.com/lox/pokerdrill/internal/scenario"
)

// Memory keeps attempts in process memory.
type Memory struct {
	mu   sync.RWMutex
	list []scenario.AttemptResult
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Append(_ context.Context, a scenario.AttemptResult) error {
	a.ChosenSizeBB = cloneSize(a.ChosenSizeBB)
	m.mu.Lock()
	m.list = append(m.list, a)
	m.mu.Unlock()
	return nil
}

func (m *Memory) List(_ context.Context) ([]scenario.AttemptResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]scenario.AttemptResult, len(m.list))
	for i, a := range m.list {
		a.ChosenSizeBB = cloneSize(a.ChosenSizeBB)
		out[i] = a
	}
	return out, nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	m.list = nil
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }
