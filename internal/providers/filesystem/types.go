package filesystem

import (
	"errors"
	"fmt"
)

// EntryKind discriminates listing entries
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDirectory
)

// String returns the label used in listings
func (k EntryKind) String() string {
	if k == KindDirectory {
		return "Dir"
	}
	return "File"
}

// Entry is a single immediate child of a listed directory
type Entry struct {
	Name string    `json:"name"`
	Kind EntryKind `json:"kind"`
}

// IsDir reports whether the entry is a directory
func (e Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

// Kind classifies filesystem failures
type Kind int

const (
	// KindIO is any failure not classified below
	KindIO Kind = iota
	KindNotFound
	KindIsDirectory
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindIsDirectory:
		return "is_directory"
	default:
		return "io_error"
	}
}

// Error is returned by every Ops method
type Error struct {
	Op   string
	Path string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err. Errors that are not *Error report KindIO.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindIO
}

// outcome labels a result for metrics
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return KindOf(err).String()
}
