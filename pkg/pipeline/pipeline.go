// Package pipeline orchestrates one invocation: identify the subject once,
// walk the ordered transformer table, and decide the final exit behaviour.
package pipeline

import (
	"context"
	"io"
	"os"

	"github.com/arthur-debert/prettycat/pkg/config"
	"github.com/arthur-debert/prettycat/pkg/errors"
	"github.com/arthur-debert/prettycat/pkg/highlight"
	"github.com/arthur-debert/prettycat/pkg/logging"
	"github.com/arthur-debert/prettycat/pkg/paths"
	"github.com/arthur-debert/prettycat/pkg/sniff"
	"github.com/arthur-debert/prettycat/pkg/transform"
)

// Controller runs the detection-and-dispatch pipeline.
type Controller struct {
	transformers []transform.Transformer
	engine       *highlight.Engine
	palette      *transform.Palette
	out          io.Writer
}

// New builds a controller writing final output to out.
func New(out io.Writer) *Controller {
	return NewWith(out, transform.Registry())
}

// NewWith builds a controller over an explicit dispatch table. Tests use it
// to exercise ordering without the full adapter set.
func NewWith(out io.Writer, transformers []transform.Transformer) *Controller {
	engine := highlight.NewEngine(config.Get())
	return &Controller{
		transformers: transformers,
		engine:       engine,
		palette:      transform.NewPalette(out, engine.Profile()),
		out:          out,
	}
}

// Transformers exposes the dispatch table for the --filters listing.
func (c *Controller) Transformers() []transform.Transformer {
	return c.transformers
}

// Supports reports whether some transformer would fire for path. It calls
// predicates only — no scratch directory, no tool execution, no output —
// which keeps the check cheap for the pager's capability probe.
func (c *Controller) Supports(path string) error {
	logger := logging.GetLogger("pipeline")

	canonical, err := paths.Canonical(path)
	if err != nil {
		return err
	}

	subject := transform.NewSubject(canonical)
	kind := sniff.Identify(canonical)

	for _, tr := range c.transformers {
		if tr.Applicable(subject, kind) {
			logger.Debug().Str("transformer", tr.Name()).Str("kind", string(kind)).Msg("supported")
			return nil
		}
	}
	return errors.Newf(errors.ErrUnsupported, "no transformer matches %q", path)
}

// Render runs the full pipeline for path. The kind is computed once; each
// transformer sees the current subject, which reformatters may have
// redirected to a scratch artifact. Transformer failures are local: log,
// decline, move on.
func (c *Controller) Render(ctx context.Context, path string) error {
	logger := logging.GetLogger("pipeline")

	canonical, err := paths.Canonical(path)
	if err != nil {
		return err
	}

	scratch, err := AcquireScratch()
	if err != nil {
		return err
	}
	defer scratch.Release()

	subject := transform.NewSubject(canonical)
	kind := sniff.Identify(canonical)
	logger.Debug().Str("path", canonical).Str("kind", string(kind)).Msg("pipeline start")

	req := &transform.Request{
		Subject:    subject,
		Kind:       kind,
		ScratchDir: scratch.Dir(),
		Out:        c.out,
		Engine:     c.engine,
		Palette:    c.palette,
	}

	reformatted := false
	for _, tr := range c.transformers {
		if !tr.Applicable(req.Subject, kind) {
			continue
		}

		result, err := tr.Apply(ctx, req)
		if err != nil {
			logger.Debug().Err(err).Str("transformer", tr.Name()).Msg("transformer failed, continuing")
			continue
		}

		switch result.Outcome {
		case transform.OutcomeRendered:
			logger.Debug().Str("transformer", tr.Name()).Msg("rendered")
			return nil
		case transform.OutcomeRewrote:
			logger.Debug().
				Str("transformer", tr.Name()).
				Str("artifact", result.Subject.Path).
				Msg("subject rewritten")
			req.Subject = result.Subject
			reformatted = true
		}
	}

	if reformatted {
		return c.stream(req.Subject)
	}
	return errors.Newf(errors.ErrUnsupported, "no transformer matches %q", path)
}

// stream emits the current subject's bytes as the final output.
func (c *Controller) stream(subject transform.Subject) error {
	f, err := os.Open(subject.Path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stream subject %q", subject.Path)
	}
	defer func() { _ = f.Close() }()

	_, err = io.Copy(c.out, f)
	return err
}
