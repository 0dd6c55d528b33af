package sequence

import (
	"context"
	"sync"
)

// MockGenerator is a test implementation of Generator.
// Counts per family in memory; safe for concurrent use in tests.
type MockGenerator struct {
	mu     sync.Mutex
	values map[string]int64
}

// NewMockGenerator creates an empty MockGenerator.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{values: make(map[string]int64)}
}

// Next implements Generator.
func (m *MockGenerator) Next(ctx context.Context, cfg Config) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[cfg.Prefix]++
	return Format(cfg, m.values[cfg.Prefix]), nil
}

// SetNext implements Generator.
func (m *MockGenerator) SetNext(ctx context.Context, cfg Config, value int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[cfg.Prefix] = value - 1
	return nil
}

// Ensure compile-time interface compliance.
var _ Generator = (*MockGenerator)(nil)
