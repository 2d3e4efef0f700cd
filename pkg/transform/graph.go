package transform

import (
	"context"

	"github.com/arthur-debert/prettycat/pkg/logging"
	"github.com/arthur-debert/prettycat/pkg/sniff"
)

// graphTransformer pipes graph-description files through grcat, which
// applies its own colour rules; the output is already terminal-ready.
type graphTransformer struct {
	tools []string
}

func newGraphTransformer() *graphTransformer {
	return &graphTransformer{tools: []string{"grcat"}}
}

func (t *graphTransformer) Name() string     { return "graph" }
func (t *graphTransformer) Tools() []string  { return t.tools }
func (t *graphTransformer) Describe() string {
	return "matches suffix .dot/.gv; " + describeTools(t.tools)
}

func (t *graphTransformer) Applicable(subject Subject, kind sniff.Kind) bool {
	if !hasSuffix(subject.Name, ".dot", ".gv") {
		return false
	}
	return FirstAvailable(t.tools...) != ""
}

func (t *graphTransformer) Apply(ctx context.Context, req *Request) (Result, error) {
	logger := logging.GetLogger("transform.graph")

	tool := FirstAvailable(t.tools...)
	if tool == "" {
		return Declined(), nil
	}

	data, err := req.ReadSubject()
	if err != nil {
		return Declined(), err
	}

	coloured, err := RunToolInput(ctx, data, tool, "conf.dot")
	if err != nil {
		logger.Debug().Err(err).Msg("grcat did not start, declining")
		return Declined(), nil
	}
	if len(coloured) == 0 {
		return Declined(), nil
	}

	if _, err := req.Out.Write(coloured); err != nil {
		return Declined(), err
	}
	return Rendered(), nil
}
