// Package core owns the singleton engine lifecycle.
//
// Fcitx wraps one embedded engine instance behind a small thread-safe
// surface: Startup blocks on the engine's event loop, mutating operations
// are scheduled onto that loop through the dispatcher, and a handful of
// reads bypass the loop for latency. The lifecycle is a strict state
// machine; a second Startup while the first is live is rejected with a
// distinct exit code instead of corrupting state.
package core
