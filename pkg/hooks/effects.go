package hooks

import (
	"errors"
	"fmt"
)

// FlushLayoutEffects runs the dirty layout-effect records in call
// order. Called synchronously after DOM commit, before the paint
// boundary.
func (s *Store) FlushLayoutEffects() error {
	return s.flush(KindLayoutEffect)
}

// FlushEffects runs the dirty plain-effect records in call order.
// Called after the paint boundary.
func (s *Store) FlushEffects() error {
	return s.flush(KindEffect)
}

// flush executes dirty effects of one kind. A cleanup or body that
// panics does not prevent the remaining queued effects from running;
// failures are joined into the returned error.
func (s *Store) flush(kind Kind) error {
	if s.closed {
		return nil
	}
	var errs []error
	for _, r := range s.records {
		if r.kind != kind || !r.dirty {
			continue
		}
		r.dirty = false
		if r.cleanup != nil {
			cleanup := r.cleanup
			r.cleanup = nil
			if err := guard(cleanup); err != nil {
				errs = append(errs, err)
			}
		}
		if s.closed {
			break
		}
		if r.fn != nil {
			if err := guard(r.fn); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Close discards the store on unmount: every recorded effect cleanup
// runs exactly once, most recently mounted first, and subsequent
// setter calls become silent no-ops. Close is idempotent.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	for i := len(s.records) - 1; i >= 0; i-- {
		r := s.records[i]
		if r.cleanup == nil {
			continue
		}
		cleanup := r.cleanup
		r.cleanup = nil
		r.dirty = false
		if err := guard(cleanup); err != nil {
			errs = append(errs, err)
		}
	}
	s.records = nil
	return errors.Join(errs...)
}

// guard runs fn, converting a panic into an error.
func guard(fn func()) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("hooks: effect panic: %v", rec)
		}
	}()
	fn()
	return nil
}
