package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Eng-Zeus-Vianna/atomico/pkg/component"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/dom"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/protocol"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/scheduler"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/vdom"
)

const (
	// sendQueueSize bounds the outbound frame queue per session.
	sendQueueSize = 64

	// maxEventSize bounds inbound WebSocket messages.
	maxEventSize = 64 * 1024

	pingInterval = 25 * time.Second
	pongWait     = 60 * time.Second
	writeWait    = 10 * time.Second
)

// Session is one live client: a WebSocket connection, an update loop,
// and a mounted component instance.
type Session struct {
	id   string
	page Page
	conn *websocket.Conn

	loop *scheduler.Loop
	host *dom.Element
	inst *component.Instance

	seq  atomic.Uint64
	send chan *protocol.Frame
	done chan struct{}

	logger  *slog.Logger
	metrics *Metrics

	lastSeen  atomic.Int64
	closeOnce sync.Once
}

// sessionSnapshot is what persists across disconnects.
type sessionSnapshot struct {
	Page string `json:"page"`
}

func newSession(id string, page Page, conn *websocket.Conn, logger *slog.Logger, metrics *Metrics) *Session {
	s := &Session{
		id:      id,
		page:    page,
		conn:    conn,
		loop:    scheduler.NewLoop(),
		host:    dom.NewElement(page.Tag),
		send:    make(chan *protocol.Frame, sendQueueSize),
		done:    make(chan struct{}),
		logger:  logger.With("session", id, "page", page.Path),
		metrics: metrics,
	}
	s.inst = component.New(s.loop, s.host, page.Render,
		component.WithPatchSink(s.streamPatches),
		component.WithErrorSink(s.reportError),
	)
	s.touch()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Page returns the page this session renders.
func (s *Session) Page() Page { return s.page }

// Host returns the session's host element.
func (s *Session) Host() *dom.Element { return s.host }

func (s *Session) touch() { s.lastSeen.Store(time.Now().UnixNano()) }

// LastSeen returns the time of the last inbound activity.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) snapshot() []byte {
	data, _ := json.Marshal(sessionSnapshot{Page: s.page.Path})
	return data
}

// run mounts the instance and serves the connection. It blocks until
// the connection drops or ctx is cancelled.
func (s *Session) run(ctx context.Context) {
	defer s.Close()

	if err := s.inst.Mount(); err != nil {
		s.logger.Error("mount failed", "error", err)
		s.writeFrame(protocol.EncodeError("mount_failed", err.Error()))
		return
	}
	s.loop.Flush()

	go s.writePump(ctx)
	s.readPump()
}

// streamPatches is the instance's patch sink: one frame per commit.
func (s *Session) streamPatches(patches []vdom.Patch) {
	frame, err := protocol.EncodePatches(s.seq.Add(1), patches)
	if err != nil {
		s.logger.Error("encode patches failed", "error", err)
		s.metrics.wsErrors.WithLabelValues("encode").Inc()
		return
	}
	s.metrics.commitsTotal.Inc()
	s.metrics.patchesSent.Add(float64(len(patches)))
	s.metrics.patchBytes.Add(float64(len(frame.Payload)))
	s.enqueue(frame)
}

func (s *Session) reportError(err error) {
	s.logger.Error("render failed", "error", err)
	s.metrics.renderErrors.Inc()
	s.enqueue(protocol.EncodeError("render_failed", err.Error()))
}

// enqueue queues an outbound frame, dropping it when the client cannot
// keep up.
func (s *Session) enqueue(frame *protocol.Frame) {
	select {
	case s.send <- frame:
	case <-s.done:
	default:
		s.logger.Warn("send queue full, dropping frame", "type", frame.Type)
		s.metrics.wsErrors.WithLabelValues("backpressure").Inc()
	}
}

func (s *Session) readPump() {
	s.conn.SetReadLimit(maxEventSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.touch()
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("read failed", "error", err)
				s.metrics.wsErrors.WithLabelValues("read").Inc()
			}
			return
		}
		s.touch()
		s.conn.SetReadDeadline(time.Now().Add(pongWait))

		frame, err := protocol.DecodeFrame(data)
		if err != nil {
			s.enqueue(protocol.EncodeError("bad_frame", err.Error()))
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEvent(frame.Payload)
		case protocol.FrameControl:
			s.handleControl(frame.Payload)
		default:
			s.enqueue(protocol.EncodeError("unexpected_frame", frame.Type.String()))
		}
	}
}

// handleEvent dispatches one client event into the session's document
// and flushes the resulting render work.
func (s *Session) handleEvent(payload []byte) {
	ev, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.metrics.eventsTotal.WithLabelValues("invalid", "rejected").Inc()
		s.enqueue(protocol.EncodeError("bad_event", err.Error()))
		return
	}

	start := time.Now()
	target := findElement(s.host, ev.NodeID)
	if target == nil {
		s.metrics.eventsTotal.WithLabelValues(ev.Type, "stale_target").Inc()
		return
	}

	var detail any
	if len(ev.Detail) > 0 {
		if err := json.Unmarshal(ev.Detail, &detail); err != nil {
			s.metrics.eventsTotal.WithLabelValues(ev.Type, "rejected").Inc()
			s.enqueue(protocol.EncodeError("bad_event", "malformed detail"))
			return
		}
	}

	target.DispatchEvent(&dom.Event{
		Type:     ev.Type,
		Detail:   detail,
		Bubbles:  true,
		Composed: true,
	})
	s.loop.Flush()

	s.metrics.eventsTotal.WithLabelValues(ev.Type, "ok").Inc()
	s.metrics.eventDuration.WithLabelValues(ev.Type).Observe(time.Since(start).Seconds())
}

func (s *Session) handleControl(payload []byte) {
	c, err := protocol.DecodeControl(payload)
	if err != nil {
		return
	}
	switch c.Kind {
	case "ping":
		s.enqueue(protocol.EncodeControl("pong"))
	case "resync":
		// Re-send the full host subtree so the client rebuilds from
		// scratch.
		frame, err := protocol.EncodePatches(s.seq.Add(1), []vdom.Patch{{
			Op:     vdom.PatchInsertNode,
			NodeID: s.host.ID(),
			Node:   s.host,
		}})
		if err != nil {
			s.logger.Error("resync encode failed", "error", err)
			return
		}
		s.enqueue(frame)
	}
}

func (s *Session) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case frame := <-s.send:
			if !s.writeFrame(frame) {
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(writeWait)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				s.metrics.wsErrors.WithLabelValues("ping").Inc()
				return
			}
		case <-s.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) writeFrame(frame *protocol.Frame) bool {
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, frame.Encode()); err != nil {
		s.metrics.wsErrors.WithLabelValues("write").Inc()
		return false
	}
	return true
}

// Close tears the session down. Idempotent.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.inst.Unmount()
		s.loop.Close()
		s.conn.Close()
	})
}

// findElement walks the live tree, shadow roots included, looking for
// the element with the given node ID.
func findElement(root *dom.Element, id string) *dom.Element {
	if root == nil {
		return nil
	}
	if root.ID() == id {
		return root
	}
	if sh := root.Shadow(); sh != nil {
		for _, child := range sh.Children() {
			if el, ok := child.(*dom.Element); ok {
				if found := findElement(el, id); found != nil {
					return found
				}
			}
		}
	}
	for _, child := range root.Children() {
		if el, ok := child.(*dom.Element); ok {
			if found := findElement(el, id); found != nil {
				return found
			}
		}
	}
	return nil
}
