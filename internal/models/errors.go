package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies the failures that end a usage scan.
type ErrorKind int

const (
	// KindInvalidInvocation means the caller did not supply a usable dependency name.
	KindInvalidInvocation ErrorKind = iota
	// KindDirectoryUnreadable means a directory that had to be descended into could not be listed.
	KindDirectoryUnreadable
	// KindFileUnreadable means a candidate file could not be read as text.
	KindFileUnreadable
)

// Sentinel errors matched by errors.Is against a *UsageError of the same kind.
var (
	ErrInvalidInvocation   = errors.New("invalid invocation")
	ErrDirectoryUnreadable = errors.New("directory unreadable")
	ErrFileUnreadable      = errors.New("file unreadable")

	// ErrNotText is wrapped inside a file error when the content is not valid UTF-8.
	ErrNotText = errors.New("content is not valid UTF-8 text")
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInvocation:
		return "invalid invocation"
	case KindDirectoryUnreadable:
		return "directory unreadable"
	case KindFileUnreadable:
		return "file unreadable"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindInvalidInvocation:
		return ErrInvalidInvocation
	case KindDirectoryUnreadable:
		return ErrDirectoryUnreadable
	case KindFileUnreadable:
		return ErrFileUnreadable
	default:
		return nil
	}
}

// UsageError describes a fatal scan failure together with the path it concerns.
type UsageError struct {
	Kind ErrorKind // What went wrong
	Path string    // Directory or file involved (empty for invocation errors)
	Err  error     // Underlying error (optional)
}

// NewUsageError creates a UsageError of the given kind.
func NewUsageError(kind ErrorKind, path string, err error) *UsageError {
	return &UsageError{Kind: kind, Path: path, Err: err}
}

// Error implements the error interface for UsageError.
func (e *UsageError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.Path != "" {
		sb.WriteString(fmt.Sprintf(" %s", e.Path))
	}
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error for error wrapping support.
func (e *UsageError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *UsageError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}
