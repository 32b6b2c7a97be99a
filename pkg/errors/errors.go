// Package errors provides the diagnostic taxonomy for the xtype engine.
//
// Every misuse the engine detects is non-fatal: it is packaged as a
// Diagnostic, handed to a Handler, and the operation continues with its
// documented fallback. Callers that need to observe failures install their
// own Handler (for example a Collector) instead of catching panics.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// Kind identifies the category of a diagnostic.
type Kind int

const (
	// KindUnknown indicates a diagnostic of unknown type.
	KindUnknown Kind = iota
	// KindDuplicate indicates a type tag or identity key that was already taken.
	KindDuplicate
	// KindNotFound indicates a lookup or removal of an absent type tag or identity.
	KindNotFound
	// KindInvalidConfig indicates a missing config or a config without a type tag.
	KindInvalidConfig
	// KindImmutable indicates an attempt to reassign a node's id or scope.
	KindImmutable
	// KindRender indicates a node that could not be rendered.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k Kind) String() string {
	switch k {
	case KindDuplicate:
		return "duplicate"
	case KindNotFound:
		return "not-found"
	case KindInvalidConfig:
		return "invalid-config"
	case KindImmutable:
		return "immutable"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel errors wrapped by diagnostics and returned by engine operations.
var (
	ErrDuplicate     = stderrors.New("already registered")
	ErrNotFound      = stderrors.New("not registered")
	ErrInvalidConfig = stderrors.New("config is undefined")
	ErrUnknownType   = stderrors.New("type tag is undefined")
	ErrImmutable     = stderrors.New("value may not be reassigned")
	ErrNoHost        = stderrors.New("node has no host element")
	ErrNoManager     = stderrors.New("node has no manager")
	ErrAttached      = stderrors.New("node is already attached")
	ErrDestroyed     = stderrors.New("node has been destroyed")
)

// Diagnostic is a structured, non-fatal engine error.
type Diagnostic struct {
	// Op is the operation that reported the problem (e.g., "core.TypeRegistry.Register").
	Op string
	// Kind categorizes the diagnostic.
	Kind Kind
	// Key is the type tag or composite identity key involved, if any.
	Key string
	// Err is the underlying error, usually one of the sentinels above.
	Err error
	// StackTrace contains the call stack for panics.
	StackTrace string
	// Timestamp is when the diagnostic was reported.
	Timestamp time.Time
}

func (d *Diagnostic) Error() string {
	if d.Key != "" {
		return fmt.Sprintf("%s [%s] key=%s: %v", d.Op, d.Kind, d.Key, d.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", d.Op, d.Kind, d.Err)
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "core.Manager.Create").
	Op string
	// Value is the value passed to panic().
	Value any
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// New builds a Diagnostic with the current timestamp.
func New(op string, kind Kind, key string, err error) *Diagnostic {
	return &Diagnostic{Op: op, Kind: kind, Key: key, Err: err, Timestamp: time.Now()}
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Join returns an error that wraps the given errors, discarding nils.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}
