// Package engine is the embedded input-method engine runtime: the event
// loop, the addon manager, the input-method manager with its groups and
// entries, the live input contexts and the global configuration.
//
// An Instance is single-threaded by construction. Exec runs the event loop
// on the calling goroutine and everything that mutates engine state must
// execute there, normally by being scheduled through a
// dispatcher.Dispatcher attached to the instance's loop. The few methods
// documented as cross-thread reads (panel emptiness, entry enumeration,
// config snapshots) are deliberately unsynchronized best-effort snapshots.
//
// Addons plug in through AddonRegistration values: a descriptor, the
// input-method entries the addon installs, and a factory. The registry is
// explicit; the process that embeds the engine decides which addons exist.
package engine
