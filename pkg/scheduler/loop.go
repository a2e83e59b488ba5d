package scheduler

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopClosed is returned when a task is submitted to a closed loop.
var ErrLoopClosed = errors.New("scheduler: loop closed")

// Task is a unit of work executed by the loop.
type Task func()

// Loop is a cooperative two-lane task queue. Tasks execute on the
// goroutine that calls Flush or Run; submission is safe from any
// goroutine.
type Loop struct {
	mu     sync.Mutex
	micro  []Task
	frame  []Task
	closed bool

	wake chan struct{}
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Enqueue submits a task to the microtask lane.
func (l *Loop) Enqueue(t Task) error {
	return l.push(&l.micro, t)
}

// RequestFrame submits a task to the frame lane. Frame tasks run only
// after the microtask lane has drained, modelling the paint boundary.
func (l *Loop) RequestFrame(t Task) error {
	return l.push(&l.frame, t)
}

func (l *Loop) push(lane *[]Task, t Task) error {
	if t == nil {
		return nil
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrLoopClosed
	}
	*lane = append(*lane, t)
	l.mu.Unlock()
	l.signal()
	return nil
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending reports the number of submitted tasks not yet executed.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.micro) + len(l.frame)
}

func (l *Loop) take(lane *[]Task) []Task {
	l.mu.Lock()
	tasks := *lane
	*lane = nil
	l.mu.Unlock()
	return tasks
}

// Flush runs queued tasks to quiescence: the microtask lane drains
// first, then one frame batch, then any microtasks those frames
// produced, repeating until both lanes are empty.
func (l *Loop) Flush() {
	for {
		if tasks := l.take(&l.micro); len(tasks) > 0 {
			for _, t := range tasks {
				t()
			}
			continue
		}
		frames := l.take(&l.frame)
		if len(frames) == 0 {
			return
		}
		for _, t := range frames {
			t()
		}
	}
}

// Run flushes whenever work arrives, until the context is cancelled
// or the loop is closed. It returns the context error on
// cancellation and nil on Close.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Flush()
		select {
		case <-ctx.Done():
			l.Close()
			return ctx.Err()
		case <-l.wake:
			l.mu.Lock()
			closed := l.closed
			l.mu.Unlock()
			if closed {
				l.Flush()
				return nil
			}
		}
	}
}

// Close rejects further submissions. Already queued tasks still run on
// the next Flush.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()
	l.signal()
}
