package filesystem

import (
	"context"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/GriffinCanCode/filekeeper/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/filekeeper/internal/shared/paths"
)

// ListOptions narrows a listing
type ListOptions struct {
	// Match is a glob pattern (doublestar syntax) applied to entry names.
	// Empty matches everything.
	Match string
}

// ValidPattern reports whether pattern can be used as ListOptions.Match
func ValidPattern(pattern string) bool {
	return pattern == "" || doublestar.ValidatePattern(pattern)
}

// List returns the immediate children of dir in directory-read order
func (o *Ops) List(ctx context.Context, dir paths.Resolved, opts ListOptions) (entries []Entry, err error) {
	timer := monitoring.NewTimer(o.metrics, "list")
	defer func() { o.finish(timer, "list", dir, err) }()

	if err := o.check(ctx, "list", dir); err != nil {
		return nil, err
	}
	if !ValidPattern(opts.Match) {
		return nil, &Error{Op: "list", Path: dir.String(), Kind: KindIO, Err: fmt.Errorf("invalid pattern %q: %w", opts.Match, doublestar.ErrBadPattern)}
	}

	dirEntries, err := os.ReadDir(dir.String())
	if err != nil {
		return nil, classify("list", dir, err)
	}

	entries = make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if opts.Match != "" {
			ok, _ := doublestar.Match(opts.Match, de.Name())
			if !ok {
				continue
			}
		}

		kind := KindFile
		if de.IsDir() {
			kind = KindDirectory
		}
		entries = append(entries, Entry{Name: de.Name(), Kind: kind})
	}

	return entries, nil
}
