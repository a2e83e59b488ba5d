package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

// wsConnPair dials a throwaway upgrade endpoint so tests can build
// sessions around real connections.
func wsConnPair(t *testing.T) (client, server *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	serverCh := make(chan *websocket.Conn, 1)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		serverCh <- conn
	}))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	select {
	case server = <-serverCh:
	case <-time.After(2 * time.Second):
		t.Fatal("server conn never arrived")
	}
	return client, server
}

func newTestSession(t *testing.T, id, path string) *Session {
	t.Helper()
	_, conn := wsConnPair(t)
	page := Page{Path: path, Tag: "app-root", Render: nopRender}
	s := newSession(id, page, conn, discardLogger(), NewMetrics(prometheus.NewRegistry()))
	t.Cleanup(s.Close)
	return s
}

func TestManagerEnforcesSessionCap(t *testing.T) {
	m := NewSessionManager(NewMemoryStore(), 1, time.Minute, discardLogger())

	if err := m.Add(newTestSession(t, "s1", "/")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := m.Add(newTestSession(t, "s2", "/")); err != ErrTooManySessions {
		t.Errorf("second Add: %v", err)
	}
}

func TestManagerRemoveThenResume(t *testing.T) {
	m := NewSessionManager(NewMemoryStore(), 0, time.Minute, discardLogger())
	ctx := context.Background()

	s := newTestSession(t, "s1", "/counter")
	m.Add(s)
	m.Remove("s1")

	if _, ok := m.Get("s1"); ok {
		t.Error("session still tracked after Remove")
	}
	path, ok := m.Resume(ctx, "s1")
	if !ok || path != "/counter" {
		t.Errorf("Resume = %q, %v", path, ok)
	}

	// Snapshots are single-use.
	if _, ok := m.Resume(ctx, "s1"); ok {
		t.Error("second Resume succeeded")
	}
}

func TestManagerStats(t *testing.T) {
	m := NewSessionManager(NewMemoryStore(), 0, time.Minute, discardLogger())

	m.Add(newTestSession(t, "s1", "/"))
	m.Add(newTestSession(t, "s2", "/"))
	m.Remove("s1")

	stats := m.Stats()
	if stats.Active != 1 || stats.TotalCreated != 2 || stats.TotalClosed != 1 || stats.Peak != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestManagerEvictsIdleSessions(t *testing.T) {
	m := NewSessionManager(NewMemoryStore(), 0, time.Minute, discardLogger())

	s := newTestSession(t, "s1", "/")
	m.Add(s)
	s.lastSeen.Store(time.Now().Add(-2 * time.Minute).UnixNano())

	if n := m.EvictIdle(time.Now()); n != 1 {
		t.Fatalf("evicted %d", n)
	}
	if _, ok := m.Get("s1"); ok {
		t.Error("idle session still tracked")
	}
}

func TestManagerCloseAllClosesStore(t *testing.T) {
	store := NewMemoryStore()
	m := NewSessionManager(store, 0, time.Minute, discardLogger())
	m.Add(newTestSession(t, "s1", "/"))

	m.CloseAll()

	if m.Stats().Active != 0 {
		t.Error("sessions survived CloseAll")
	}
	if err := store.Save(context.Background(), "x", nil, time.Time{}); err != ErrStoreClosed {
		t.Errorf("store still open: %v", err)
	}
}
