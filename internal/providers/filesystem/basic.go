package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"syscall"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/filekeeper/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/filekeeper/internal/shared/paths"
)

// FileMode is applied to newly created files
const FileMode fs.FileMode = 0o644

// Ops performs single-shot filesystem operations on resolved paths.
// Nothing is cached and nothing is retried.
type Ops struct {
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewOps creates filesystem operations. Both arguments may be nil.
func NewOps(logger *zap.Logger, metrics *monitoring.Metrics) *Ops {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ops{logger: logger, metrics: metrics}
}

// Create writes content to p, creating the file or truncating an existing one
func (o *Ops) Create(ctx context.Context, p paths.Resolved, content []byte) (err error) {
	timer := monitoring.NewTimer(o.metrics, "create")
	defer func() { o.finish(timer, "create", p, err) }()

	if err := o.check(ctx, "create", p); err != nil {
		return err
	}

	if err := os.WriteFile(p.String(), content, FileMode); err != nil {
		return &Error{Op: "create", Path: p.String(), Kind: KindIO, Err: err}
	}
	return nil
}

// Read returns the full content of the file at p
func (o *Ops) Read(ctx context.Context, p paths.Resolved) (data []byte, err error) {
	timer := monitoring.NewTimer(o.metrics, "read")
	defer func() { o.finish(timer, "read", p, err) }()

	if err := o.check(ctx, "read", p); err != nil {
		return nil, err
	}
	if err := statFile("read", p); err != nil {
		return nil, err
	}

	data, err = os.ReadFile(p.String())
	if err != nil {
		return nil, classify("read", p, err)
	}
	return data, nil
}

// Delete removes the file at p. Directories are refused.
func (o *Ops) Delete(ctx context.Context, p paths.Resolved) (err error) {
	timer := monitoring.NewTimer(o.metrics, "delete")
	defer func() { o.finish(timer, "delete", p, err) }()

	if err := o.check(ctx, "delete", p); err != nil {
		return err
	}
	if err := statFile("delete", p); err != nil {
		return err
	}

	if err := os.Remove(p.String()); err != nil {
		return classify("delete", p, err)
	}
	return nil
}

// check refuses zero paths and cancelled contexts
func (o *Ops) check(ctx context.Context, op string, p paths.Resolved) error {
	if !p.Valid() {
		return &Error{Op: op, Kind: KindIO, Err: paths.ErrUnresolved}
	}
	if err := ctx.Err(); err != nil {
		return &Error{Op: op, Path: p.String(), Kind: KindIO, Err: err}
	}
	return nil
}

func (o *Ops) finish(timer *monitoring.Timer, op string, p paths.Resolved, err error) {
	result := outcome(err)
	duration := timer.Stop(result)
	o.logger.Debug("file operation",
		zap.String("op", op),
		zap.String("path", p.String()),
		zap.String("outcome", result),
		zap.Duration("duration", duration),
	)
}

// statFile fails with KindIsDirectory when p is a directory
func statFile(op string, p paths.Resolved) error {
	info, err := os.Stat(p.String())
	if err != nil {
		return classify(op, p, err)
	}
	if info.IsDir() {
		return &Error{Op: op, Path: p.String(), Kind: KindIsDirectory}
	}
	return nil
}

// classify maps an OS error onto a Kind
func classify(op string, p paths.Resolved, err error) error {
	kind := KindIO
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		kind = KindNotFound
	case errors.Is(err, syscall.EISDIR):
		kind = KindIsDirectory
	}
	return &Error{Op: op, Path: p.String(), Kind: kind, Err: err}
}
