package runtime

import (
	"sync"
	"time"
)

// Timer is a cancellable one-shot schedule. Rescheduling stops any
// pending firing first, so at most one callback is ever outstanding.
// The zero value is ready to use.
type Timer struct {
	mu      sync.Mutex
	pending *time.Timer
}

func (t *Timer) Schedule(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending != nil {
		t.pending.Stop()
	}
	t.pending = time.AfterFunc(d, fn)
}

func (t *Timer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}
