package repository

import (
	"context"
	"sync"

	"weathercat/internal/domain"

	"go.uber.org/zap"
)

// UserStateStore owns the in-memory user table and persists it after every change
type UserStateStore struct {
	backend Backend
	logger  *zap.Logger

	mu    sync.Mutex
	table Table
}

// NewUserStateStore creates a store with an empty table; call Load before use
func NewUserStateStore(backend Backend, logger *zap.Logger) *UserStateStore {
	return &UserStateStore{
		backend: backend,
		logger:  logger,
		table:   Table{},
	}
}

// Load replaces the in-memory table with the persisted one
func (s *UserStateStore) Load(ctx context.Context) error {
	table, err := Load(ctx, s.backend)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	s.logger.Info("User state loaded",
		zap.String("backend", s.backend.Name()),
		zap.Int("users", len(table)),
	)
	return nil
}

// Get returns a copy of the user's record. Unknown users get a default record
// which is inserted into the table but not written until the next Put.
func (s *UserStateStore) Get(id int64) domain.UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *Get(s.table, id)
}

// Put stores the record and writes the whole table. If the write fails the
// previous record is restored so memory never runs ahead of the backend.
func (s *UserStateStore) Put(ctx context.Context, id int64, rec domain.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.table[id]
	s.table[id] = &rec

	if err := Save(ctx, s.backend, s.table); err != nil {
		if existed {
			s.table[id] = prev
		} else {
			delete(s.table, id)
		}
		return err
	}
	return nil
}

// Len returns the number of known users
func (s *UserStateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.table)
}
