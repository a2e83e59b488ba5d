package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// ErrStoreClosed is returned by operations on a closed store.
var ErrStoreClosed = errors.New("server: session store closed")

// SessionStore persists session snapshots so clients can resume after
// a disconnect or a server restart. Implementations must be safe for
// concurrent use. Load returns (nil, nil) for missing or expired
// sessions.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, data []byte, expiresAt time.Time) error
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Delete(ctx context.Context, sessionID string) error
	Close() error
}

// MemoryStore is an in-process SessionStore. Snapshots do not survive
// a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	closed  bool
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Save implements SessionStore.
func (s *MemoryStore) Save(_ context.Context, sessionID string, data []byte, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	s.entries[sessionID] = memoryEntry{data: buf, expiresAt: expiresAt}
	return nil
}

// Load implements SessionStore.
func (s *MemoryStore) Load(_ context.Context, sessionID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	e, ok := s.entries[sessionID]
	if !ok || (!e.expiresAt.IsZero() && time.Now().After(e.expiresAt)) {
		return nil, nil
	}
	return e.data, nil
}

// Delete implements SessionStore.
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	delete(s.entries, sessionID)
	return nil
}

// Close implements SessionStore.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.entries = nil
	return nil
}

// sessionsBucket is the bbolt bucket holding session snapshots.
var sessionsBucket = []byte("sessions")

// boltRecord is the stored form of one snapshot.
type boltRecord struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// BoltStore persists session snapshots in a bbolt database file, so
// sessions survive server restarts.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("server: open session store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("server: init session store: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Save implements SessionStore.
func (s *BoltStore) Save(_ context.Context, sessionID string, data []byte, expiresAt time.Time) error {
	rec, err := json.Marshal(boltRecord{Data: data, ExpiresAt: expiresAt})
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).Put([]byte(sessionID), rec)
	})
}

// Load implements SessionStore.
func (s *BoltStore) Load(_ context.Context, sessionID string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(sessionsBucket).Get([]byte(sessionID))
		if raw == nil {
			return nil
		}
		var rec boltRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		if !rec.ExpiresAt.IsZero() && time.Now().After(rec.ExpiresAt) {
			return nil
		}
		data = make([]byte, len(rec.Data))
		copy(data, rec.Data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Delete implements SessionStore.
func (s *BoltStore) Delete(_ context.Context, sessionID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).Delete([]byte(sessionID))
	})
}

// Close implements SessionStore.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
