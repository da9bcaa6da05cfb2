package store

import (
	"errors"

	"github.com/luxfi/database"
	"github.com/luxfi/database/memdb"

	"qshield/internal/domain"
)

// DatabaseStore adapts a luxfi database.Database to the key-value port.
type DatabaseStore struct {
	db database.Database
}

// NewDatabaseStore wraps db.
func NewDatabaseStore(db database.Database) *DatabaseStore { return &DatabaseStore{db: db} }

// NewMemoryStore returns an ephemeral store backed by memdb.
func NewMemoryStore() *DatabaseStore { return NewDatabaseStore(memdb.New()) }

// Get returns the value stored under key.
func (s *DatabaseStore) Get(key string) ([]byte, bool, error) {
	b, err := s.db.Get([]byte(key))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set stores value under key.
func (s *DatabaseStore) Set(key string, value []byte) error {
	return s.db.Put([]byte(key), value)
}

// Delete removes key.
func (s *DatabaseStore) Delete(key string) error {
	return s.db.Delete([]byte(key))
}

// Close closes the underlying database.
func (s *DatabaseStore) Close() error { return s.db.Close() }

// Compile-time assertion that DatabaseStore implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*DatabaseStore)(nil)
