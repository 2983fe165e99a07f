package dispatcher

import "sync"

// Buffer size of the task channel. Large enough that boundary callers do
// not block during normal bursts of scheduled work.
const taskChSize = 128

// Loop is a single-consumer event loop. Exactly one goroutine runs Run and
// executes every task serially, so tasks may touch loop-owned state without
// synchronization. Tasks arrive from two sources: cross-thread work through
// an attached Dispatcher, and loop-internal deferred work posted by code
// already running on the loop.
type Loop struct {
	tasks chan func()

	deferredMu sync.Mutex
	deferred   []func()

	quit     chan struct{}
	quitOnce sync.Once

	// done is closed when Run returns; senders use it to give up instead
	// of blocking on a drained loop.
	done     chan struct{}
	doneOnce sync.Once
}

// NewLoop creates a loop. Run must be called exactly once.
func NewLoop() *Loop {
	return &Loop{
		tasks: make(chan func(), taskChSize),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Defer queues fn to run before the next cross-thread task. Intended for
// code already executing on the loop that needs to emit follow-up events
// without re-entering itself.
func (l *Loop) Defer(fn func()) {
	l.deferredMu.Lock()
	l.deferred = append(l.deferred, fn)
	l.deferredMu.Unlock()
}

// Quit requests the loop to return. Tasks still queued when Quit is
// processed are dropped. Safe to call multiple times and from any
// goroutine, though orderly shutdown schedules it as the last task.
func (l *Loop) Quit() {
	l.quitOnce.Do(func() { close(l.quit) })
}

func (l *Loop) popDeferred() func() {
	l.deferredMu.Lock()
	defer l.deferredMu.Unlock()
	if len(l.deferred) == 0 {
		return nil
	}
	fn := l.deferred[0]
	l.deferred = l.deferred[1:]
	return fn
}

// Run executes tasks until Quit. It is fully serial: it never runs two
// tasks in parallel and never returns while a task is executing.
func (l *Loop) Run() {
	defer l.doneOnce.Do(func() { close(l.done) })
	for {
		select {
		case <-l.quit:
			return
		default:
		}
		if fn := l.popDeferred(); fn != nil {
			fn()
			continue
		}
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.quit:
			return
		}
	}
}

// post enqueues a cross-thread task. It reports false once the loop has
// returned. Called by Dispatcher only.
func (l *Loop) post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}
