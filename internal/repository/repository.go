package repository

import (
	"context"
	"fmt"

	"weathercat/internal/domain"
)

// Backend is a place the serialized user table lives in.
// Read reports found=false when nothing has been saved yet.
type Backend interface {
	Name() string
	Read(ctx context.Context) (data string, found bool, err error)
	Write(ctx context.Context, data string) error
}

// Table maps user IDs to their records
type Table map[int64]*domain.UserRecord

// Load reads the whole table from the backend. Missing data yields an empty table.
func Load(ctx context.Context, backend Backend) (Table, error) {
	data, found, err := backend.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read user state from %s: %w", backend.Name(), err)
	}
	if !found {
		return Table{}, nil
	}
	return Decode(data)
}

// Get returns the record for id, inserting a default one if absent
func Get(table Table, id int64) *domain.UserRecord {
	rec, ok := table[id]
	if !ok {
		def := domain.DefaultUserRecord()
		rec = &def
		table[id] = rec
	}
	return rec
}

// Save overwrites the backend with the whole table
func Save(ctx context.Context, backend Backend, table Table) error {
	if err := backend.Write(ctx, Encode(table)); err != nil {
		return fmt.Errorf("failed to write user state to %s: %w", backend.Name(), err)
	}
	return nil
}
