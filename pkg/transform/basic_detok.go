package transform

import (
	"context"

	"github.com/arthur-debert/prettycat/pkg/logging"
	"github.com/arthur-debert/prettycat/pkg/sniff"
)

// basicDetokTransformer converts tokenized BBC BASIC into listing text, then
// lets the pipeline carry on so the highlighter can colour the listing.
type basicDetokTransformer struct {
	tools []string
}

func newBasicDetokTransformer() *basicDetokTransformer {
	return &basicDetokTransformer{tools: []string{"detok"}}
}

func (t *basicDetokTransformer) Name() string     { return "basic-detok" }
func (t *basicDetokTransformer) Tools() []string  { return t.tools }
func (t *basicDetokTransformer) Describe() string {
	return "matches kind bbc-basic, suffix ,ffb/.bbc; " + describeTools(t.tools)
}

func (t *basicDetokTransformer) Applicable(subject Subject, kind sniff.Kind) bool {
	if kind != sniff.KindBASIC && !hasSuffix(subject.Name, ",ffb", ".bbc") {
		return false
	}
	return FirstAvailable(t.tools...) != ""
}

func (t *basicDetokTransformer) Apply(ctx context.Context, req *Request) (Result, error) {
	logger := logging.GetLogger("transform.basic-detok")

	tool := FirstAvailable(t.tools...)
	if tool == "" {
		return Declined(), nil
	}

	listing, err := RunTool(ctx, tool, req.Subject.Path)
	if err != nil {
		logger.Debug().Err(err).Msg("detokenizer did not start, declining")
		return Declined(), nil
	}

	return req.WriteArtifact(".bas", listing)
}
