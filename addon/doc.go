// Package addon defines the uniform capability-call protocol between the
// lifecycle core and pluggable addon components.
//
// An addon exposes named operations as plain Go functions through the
// Operations interface. Callers hold an opaque *Instance and invoke
// operations by name:
//
//	uuid, err := addon.CallOne[uuid.UUID](frontend, "createInputContext", "fcitx5-android")
//	_, err = frontend.Call("keyEvent", uuid, key, false)
//
// The indirection keeps the core independent of concrete addon types: the
// frontend, quick-phrase, punctuation and unicode addons are all reached
// the same way, and optional addons degrade to absent handles rather than
// compile-time dependencies.
//
// Addon loading, caching and enabled/disabled bookkeeping live in the
// engine's addon manager; this package carries only the protocol and the
// Info descriptor.
package addon
