package testutil

import (
	"context"
	"sync"

	"weathercat/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestRecord creates a user record with the given state and location
func NewTestRecord(state domain.DialogueState, location string) domain.UserRecord {
	rec := domain.DefaultUserRecord()
	rec.State = state
	rec.Settings.Location = location
	return rec
}

// MemoryBackend is an in-memory state backend for tests
type MemoryBackend struct {
	mu       sync.Mutex
	data     string
	found    bool
	writes   int
	ReadErr  error
	WriteErr error
}

// NewMemoryBackend creates a backend; pass data to pretend something was saved before
func NewMemoryBackend(data ...string) *MemoryBackend {
	b := &MemoryBackend{}
	if len(data) > 0 {
		b.data = data[0]
		b.found = true
	}
	return b
}

func (b *MemoryBackend) Name() string {
	return "memory"
}

func (b *MemoryBackend) Read(ctx context.Context) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ReadErr != nil {
		return "", false, b.ReadErr
	}
	return b.data, b.found, nil
}

func (b *MemoryBackend) Write(ctx context.Context, data string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.WriteErr != nil {
		return b.WriteErr
	}
	b.data = data
	b.found = true
	b.writes++
	return nil
}

// Data returns the last written content
func (b *MemoryBackend) Data() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// Writes returns the number of successful writes
func (b *MemoryBackend) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}
