package loader

import (
	"errors"
	"fmt"
)

// Sentinel error kinds, spec.md §7.
var (
	// ErrInvalidArgument is returned before any state mutation when
	// LoadModule is given a nil module. Nil types, attributes or
	// parameters inside a module are not checked for.
	ErrInvalidArgument = errors.New("loader: invalid argument")
	// ErrUnsupportedMetadata is the error kind for constructs this
	// loader cannot translate at all. No load path returns it: a method
	// whose calling convention is not VarArg is loaded like a default
	// one, whatever its value. Unrepresentable-but-recoverable constructs (function
	// pointers, modreq/modopt, pinned) are handled locally instead of
	// erroring (spec.md §7).
	ErrUnsupportedMetadata = errors.New("loader: unsupported metadata construct")
	// ErrCancelled is returned when the caller's context is done at a
	// type-iteration boundary during eager loading (spec.md §5, §7).
	ErrCancelled = errors.New("loader: load cancelled")
)

// LoadError wraps a sentinel error kind with the metadata token that
// triggered it, so callers can report which entity failed to load.
type LoadError struct {
	Token uint32
	Kind  error
	Msg   string
}

func (e *LoadError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("loader: token 0x%08x: %v", e.Token, e.Kind)
	}
	return fmt.Sprintf("loader: token 0x%08x: %v: %s", e.Token, e.Kind, e.Msg)
}

func (e *LoadError) Unwrap() error { return e.Kind }

func invalidArgument(msg string) error {
	return &LoadError{Kind: ErrInvalidArgument, Msg: msg}
}

func unsupported(token uint32, msg string) error {
	return &LoadError{Token: token, Kind: ErrUnsupportedMetadata, Msg: msg}
}
