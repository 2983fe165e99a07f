// Package errors provides structured error types for the lifecycle core.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes context: a node path (config tree path
// or addon#operation), a detail message, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConfig, errors.KindMalformedTree).
//		Path("Behavior", "ShareInputState").
//		Detail("node has both a value and children").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotRunning("sendKey")
//	err := errors.NotConfigurable("addon", "quickphrase")
//
// All errors implement the standard error interface and support errors.Is/As.
// Matching with errors.Is compares Phase and Kind only, so sentinel values
// like errors.NotRunning("") can be used as targets.
package errors
