package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrRejected is returned when a user path cannot be confined to the storage root.
	ErrRejected = errors.New("path rejected")

	// ErrUnresolved is returned when a zero Resolved is used.
	ErrUnresolved = errors.New("path not resolved")
)

const parentDir = ".."

// Resolved is an absolute path proven to be lexically contained in a storage root.
// Only a Resolver can produce a valid value.
type Resolved struct {
	abs string
}

// String returns the absolute path
func (p Resolved) String() string {
	return p.abs
}

// Valid reports whether p was produced by a Resolver
func (p Resolved) Valid() bool {
	return p.abs != ""
}

// Base returns the last element of the path
func (p Resolved) Base() string {
	return filepath.Base(p.abs)
}

// Resolver confines untrusted relative paths to a single storage root.
type Resolver struct {
	root   string
	nested bool
}

// Option configures a Resolver
type Option func(*Resolver)

// WithNested allows resolved paths below subdirectories of the root.
// Without it every resolved path is the root itself or one of its immediate children.
func WithNested(allow bool) Option {
	return func(r *Resolver) {
		r.nested = allow
	}
}

// NewResolver creates a resolver for root. Relative roots are made absolute
// against the working directory.
func NewResolver(root string, opts ...Option) (*Resolver, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root cannot be empty")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root %q: %w", root, err)
	}

	r := &Resolver{root: filepath.Clean(abs)}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Root returns the storage root
func (r *Resolver) Root() Resolved {
	return Resolved{abs: r.root}
}

// Nested reports whether paths below subdirectories are accepted
func (r *Resolver) Nested() bool {
	return r.nested
}

// Resolve maps userPath onto the storage root.
//
// Leading ".." segments are stripped rather than refused, so "../a.txt"
// resolves to "<root>/a.txt". This is a permissive policy kept for
// compatibility with existing clients; callers wanting strict rejection
// must compare Neutralize(p) with filepath.Clean(p) themselves.
//
// Containment is lexical. Symlinks inside the root are not followed here.
func (r *Resolver) Resolve(userPath string) (Resolved, error) {
	if userPath == "" {
		return Resolved{}, fmt.Errorf("%w: empty path", ErrRejected)
	}
	if strings.IndexByte(userPath, 0) >= 0 {
		return Resolved{}, fmt.Errorf("%w: path contains NUL", ErrRejected)
	}

	rel := Neutralize(userPath)
	if !r.nested && strings.ContainsRune(rel, filepath.Separator) {
		return Resolved{}, fmt.Errorf("%w: %q is not a top-level name", ErrRejected, userPath)
	}

	full := filepath.Join(r.root, rel)
	if !Contains(r.root, full) {
		return Resolved{}, fmt.Errorf("%w: %q escapes storage root", ErrRejected, userPath)
	}

	return Resolved{abs: full}, nil
}

// Neutralize lexically cleans userPath and strips any leading ".." segments.
// A leading `..\` is stripped like "../" on every platform, so `..\a.txt`
// becomes "a.txt". The result is relative to the root and empty when it
// denotes the root.
func Neutralize(userPath string) string {
	p := filepath.Clean(userPath)

	for {
		p = strings.TrimLeft(p, string(filepath.Separator))
		switch {
		case p == parentDir:
			return ""
		case strings.HasPrefix(p, parentDir+string(filepath.Separator)),
			strings.HasPrefix(p, parentDir+`\`):
			p = filepath.Clean(p[len(parentDir)+1:])
		case p == ".":
			return ""
		default:
			return p
		}
	}
}

// Contains reports whether candidate is root or a descendant of root.
// The check is separator aware: "/data-evil" is not inside "/data".
func Contains(root, candidate string) bool {
	if root == "" || candidate == "" {
		return false
	}
	if candidate == root {
		return true
	}

	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(candidate, prefix)
}

// EnsureRoot creates the storage root and any missing parents
func (r *Resolver) EnsureRoot() error {
	if err := os.MkdirAll(r.root, 0o755); err != nil {
		return fmt.Errorf("failed to create storage root %s: %w", r.root, err)
	}
	return nil
}
