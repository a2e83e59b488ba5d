package server

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, "s1", []byte(`{"page":"/"}`), time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(data, []byte(`{"page":"/"}`)) {
		t.Errorf("got %q", data)
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	data, err = store.Load(ctx, "s1")
	if err != nil || data != nil {
		t.Errorf("after delete got %q, %v", data, err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Save(ctx, "s1", []byte("x"), time.Now().Add(-time.Second))
	data, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if data != nil {
		t.Errorf("expired snapshot still loadable: %q", data)
	}
}

func TestMemoryStoreClosed(t *testing.T) {
	store := NewMemoryStore()
	store.Close()

	if err := store.Save(context.Background(), "s1", nil, time.Time{}); err != ErrStoreClosed {
		t.Errorf("Save after close: %v", err)
	}
	if _, err := store.Load(context.Background(), "s1"); err != ErrStoreClosed {
		t.Errorf("Load after close: %v", err)
	}
}

func TestBoltStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	store, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("NewBoltStore: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	if err := store.Save(ctx, "s1", []byte(`{"page":"/counter"}`), time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != `{"page":"/counter"}` {
		t.Errorf("got %q", data)
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if data, _ := store.Load(ctx, "s1"); data != nil {
		t.Errorf("after delete got %q", data)
	}
}

func TestBoltStoreExpiry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	store, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("NewBoltStore: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	store.Save(ctx, "s1", []byte("x"), time.Now().Add(-time.Second))
	if data, err := store.Load(ctx, "s1"); err != nil || data != nil {
		t.Errorf("expired snapshot: %q, %v", data, err)
	}
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	ctx := context.Background()

	store, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("NewBoltStore: %v", err)
	}
	store.Save(ctx, "s1", []byte("persisted"), time.Now().Add(time.Minute))
	store.Close()

	store, err = NewBoltStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	data, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "persisted" {
		t.Errorf("got %q", data)
	}
}
