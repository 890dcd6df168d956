// Package store provides History implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/tenancy-engine/tenancy"
)

// =============================================================================
// MEMORY HISTORY - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps the flushed sequence in memory. Used by tests and by
// the server when no durable path is configured.
type Memory struct {
	mu      sync.RWMutex
	records []tenancy.Record
	flushes int
}

func NewMemory() *Memory {
	return &Memory{}
}

// Seed pre-populates the history, as if loaded from an earlier session.
func (m *Memory) Seed(records []tenancy.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append([]tenancy.Record{}, records...)
}

func (m *Memory) Load(_ context.Context) ([]tenancy.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]tenancy.Record, len(m.records))
	copy(result, m.records)
	return result, nil
}

func (m *Memory) Flush(_ context.Context, records []tenancy.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append([]tenancy.Record{}, records...)
	m.flushes++
	return nil
}

// Flushes reports how many times Flush ran. Tests assert the
// flush-after-mutation contract with this.
func (m *Memory) Flushes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flushes
}
