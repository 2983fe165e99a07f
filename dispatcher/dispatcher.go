package dispatcher

import (
	"sync"

	"github.com/yigeba52/fcitx5-android/errors"
)

// Dispatcher is the sole legal hand-off point from arbitrary caller
// goroutines to a Loop. Any goroutine may Schedule; tasks execute on the
// loop strictly in enqueue order, interleaved with the loop's own deferred
// work. Schedule never waits for the task to execute and returns no
// completion signal; results are observable only through push callbacks or
// the next synchronous read.
type Dispatcher struct {
	mu   sync.Mutex
	loop *Loop
}

// New creates an unattached dispatcher. Attach must be called before the
// first Schedule.
func New() *Dispatcher {
	return &Dispatcher{}
}

// Attach binds the dispatcher to a loop.
func (d *Dispatcher) Attach(l *Loop) {
	d.mu.Lock()
	d.loop = l
	d.mu.Unlock()
}

// Detach unbinds the dispatcher. It must be the last action scheduled
// before requesting loop exit: afterwards no further cross-thread work is
// accepted, which makes teardown orderly.
func (d *Dispatcher) Detach() {
	d.mu.Lock()
	d.loop = nil
	d.mu.Unlock()
}

// Schedule enqueues fn onto the attached loop. It returns a detached error
// when the dispatcher is unbound or the loop has already exited; the task
// is dropped in that case.
func (d *Dispatcher) Schedule(fn func()) error {
	d.mu.Lock()
	l := d.loop
	d.mu.Unlock()
	if l == nil {
		return errors.Detached()
	}
	if !l.post(fn) {
		return errors.Detached()
	}
	return nil
}
