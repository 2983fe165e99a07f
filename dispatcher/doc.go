// Package dispatcher provides the single-threaded event loop the engine
// runs on, and the cross-thread work-submission queue feeding it.
//
// The concurrency model has exactly two execution contexts: arbitrary
// caller goroutines, and the one goroutine running Loop.Run. All
// engine-state mutation happens on the latter; Dispatcher.Schedule is the
// only safe hand-off from the former.
//
// Shutdown protocol: schedule a final task that calls Dispatcher.Detach
// and then Loop.Quit. Detach rejects all later Schedule calls, Quit makes
// the loop return once the current task finishes, and everything scheduled
// before the final task has already drained in FIFO order.
package dispatcher
