package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLifecycle   Phase = "lifecycle"   // startup / exit / state machine
	PhaseDispatch    Phase = "dispatch"    // cross-thread scheduling
	PhaseAddon       Phase = "addon"       // addon resolution and capability calls
	PhaseConfig      Phase = "config"      // RawConfig trees and persistence
	PhaseInputMethod Phase = "inputmethod" // entries, groups, engines
	PhaseKey         Phase = "key"         // key parsing
)

// Kind categorizes the error
type Kind string

const (
	KindNotRunning       Kind = "not_running"
	KindAlreadyRunning   Kind = "already_running"
	KindInvalidState     Kind = "invalid_state"
	KindDetached         Kind = "detached"
	KindNotFound         Kind = "not_found"
	KindAbsentAddon      Kind = "absent_addon"
	KindNotConfigurable  Kind = "not_configurable"
	KindMalformedTree    Kind = "malformed_tree"
	KindDuplicateName    Kind = "duplicate_name"
	KindUnknownOperation Kind = "unknown_operation"
	KindArgumentMismatch Kind = "argument_mismatch"
	KindInvalidInput     Kind = "invalid_input"
	KindPersistence      Kind = "persistence"
)

// Error is the structured error type used throughout the module
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the node path (config tree path or addon#operation)
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NotRunning creates a not-running error for an operation issued while stopped
func NotRunning(op string) *Error {
	return &Error{
		Phase:  PhaseLifecycle,
		Kind:   KindNotRunning,
		Detail: fmt.Sprintf("%s: instance is not running", op),
	}
}

// AlreadyRunning creates an already-running error for a repeated startup
func AlreadyRunning() *Error {
	return &Error{
		Phase:  PhaseLifecycle,
		Kind:   KindAlreadyRunning,
		Detail: "startup while already running",
	}
}

// InvalidState creates an invalid lifecycle transition error
func InvalidState(op, state string) *Error {
	return &Error{
		Phase:  PhaseLifecycle,
		Kind:   KindInvalidState,
		Detail: fmt.Sprintf("%s in state %s", op, state),
	}
}

// Detached creates a dispatch-after-detach error
func Detached() *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindDetached,
		Detail: "dispatcher is not attached to a loop",
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// AbsentAddon creates an absent-optional-addon error
func AbsentAddon(name string) *Error {
	return &Error{
		Phase:  PhaseAddon,
		Kind:   KindAbsentAddon,
		Detail: fmt.Sprintf("addon %q is not loaded", name),
	}
}

// NotConfigurable creates a not-configurable error for config access
func NotConfigurable(what, name string) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindNotConfigurable,
		Detail: fmt.Sprintf("%s %q is not configurable", what, name),
	}
}

// MalformedTree creates a malformed RawConfig tree error
func MalformedTree(path []string, detail string) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindMalformedTree,
		Path:   path,
		Detail: detail,
	}
}

// DuplicateName creates a duplicate registration error
func DuplicateName(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicateName,
		Detail: fmt.Sprintf("%s %q already registered", what, name),
	}
}

// UnknownOperation creates an unknown capability-call error
func UnknownOperation(addon, op string) *Error {
	return &Error{
		Phase:  PhaseAddon,
		Kind:   KindUnknownOperation,
		Path:   []string{addon, op},
		Detail: "no such operation",
	}
}

// ArgumentMismatch creates a capability-call argument error
func ArgumentMismatch(addon, op, detail string) *Error {
	return &Error{
		Phase:  PhaseAddon,
		Kind:   KindArgumentMismatch,
		Path:   []string{addon, op},
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Persistence wraps a save/load failure
func Persistence(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindPersistence,
		Detail: detail,
		Cause:  cause,
	}
}
