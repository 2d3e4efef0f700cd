// Package transform holds the transformer contract and the per-format
// adapters. A transformer either declines a subject, rewrites it into a new
// scratch artifact for later stages, or renders final terminal output.
//
// Applicability is a pure predicate over the current subject and the
// inferred kind, so the support-check mode can answer without doing any
// transformation work; Apply is the effectful half and is only called in
// render mode.
package transform

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/prettycat/pkg/errors"
	"github.com/arthur-debert/prettycat/pkg/highlight"
	"github.com/arthur-debert/prettycat/pkg/sniff"
)

// Subject is the file currently flowing through the pipeline. Path points
// at the bytes to read (a scratch artifact after a rewrite); Name is the
// name predicates match against, which becomes synthetic after a rewrite;
// Original always keeps the user-supplied path.
type Subject struct {
	Path      string
	Name      string
	Original  string
	Temporary bool
}

// NewSubject wraps the user-supplied path.
func NewSubject(path string) Subject {
	return Subject{Path: path, Name: path, Original: path}
}

// Outcome classifies what an adapter did with the subject.
type Outcome int

const (
	// OutcomeDeclined means the adapter did not handle the subject.
	OutcomeDeclined Outcome = iota
	// OutcomeRewrote means the adapter produced a new scratch artifact and
	// the pipeline continues with it.
	OutcomeRewrote
	// OutcomeRendered means final output was written; the pipeline stops.
	OutcomeRendered
)

// Result carries the outcome and, for rewrites, the replacement subject.
type Result struct {
	Outcome Outcome
	Subject Subject
}

// Declined is the no-op result.
func Declined() Result { return Result{Outcome: OutcomeDeclined} }

// Rendered signals final output was produced.
func Rendered() Result { return Result{Outcome: OutcomeRendered} }

// Rewrote signals the pipeline should continue with the given subject.
func Rewrote(subject Subject) Result {
	subject.Temporary = true
	return Result{Outcome: OutcomeRewrote, Subject: subject}
}

// Request bundles everything an adapter may touch: the subject, the
// inferred kind, the scratch directory for new artifacts, the final output
// stream, and the shared rendering services.
type Request struct {
	Subject    Subject
	Kind       sniff.Kind
	ScratchDir string
	Out        io.Writer
	Engine     *highlight.Engine
	Palette    *Palette
}

// ReadSubject returns the current subject's bytes.
func (r *Request) ReadSubject() ([]byte, error) {
	data, err := os.ReadFile(r.Subject.Path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read subject %q", r.Subject.Path)
	}
	return data, nil
}

// NewArtifact creates an empty scratch file whose synthetic name ends in
// suffix, and returns the subject that replaces the current one. The
// original path is carried over so later predicates can still see it.
func (r *Request) NewArtifact(suffix string) (Subject, *os.File, error) {
	f, err := os.CreateTemp(r.ScratchDir, "subject-*"+suffix)
	if err != nil {
		return Subject{}, nil, errors.Wrapf(err, errors.ErrArtifactWrite, "cannot create artifact in %q", r.ScratchDir)
	}
	return Subject{
		Path:      f.Name(),
		Name:      f.Name(),
		Original:  r.Subject.Original,
		Temporary: true,
	}, f, nil
}

// WriteArtifact writes data into a fresh scratch artifact and returns the
// rewrite result pointing at it.
func (r *Request) WriteArtifact(suffix string, data []byte) (Result, error) {
	subject, f, err := r.NewArtifact(suffix)
	if err != nil {
		return Declined(), err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return Declined(), errors.Wrapf(err, errors.ErrArtifactWrite, "cannot write artifact %q", subject.Path)
	}
	if err := f.Close(); err != nil {
		return Declined(), errors.Wrapf(err, errors.ErrArtifactWrite, "cannot close artifact %q", subject.Path)
	}
	return Rewrote(subject), nil
}

// Transformer is one entry in the ordered dispatch table.
type Transformer interface {
	// Name identifies the transformer in logs and the --filters listing.
	Name() string
	// Describe returns a human-readable match rule for --filters.
	Describe() string
	// Tools returns the external tool alternatives, empty for in-process
	// transformers.
	Tools() []string
	// Applicable reports whether this transformer would fire for the
	// subject. It must be cheap and side-effect free; tool availability is
	// part of the answer.
	Applicable(subject Subject, kind sniff.Kind) bool
	// Apply performs the transformation.
	Apply(ctx context.Context, req *Request) (Result, error)
}

// hasSuffix does a case-insensitive suffix match on the subject name.
func hasSuffix(name string, suffixes ...string) bool {
	lower := strings.ToLower(filepath.Base(name))
	for _, suffix := range suffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// describeTools renders a tool alternatives list for Describe strings.
func describeTools(tools []string) string {
	if len(tools) == 0 {
		return "in-process"
	}
	return fmt.Sprintf("needs %s", strings.Join(tools, " or "))
}
