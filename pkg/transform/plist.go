package transform

import (
	"context"

	"github.com/arthur-debert/prettycat/pkg/logging"
	"github.com/arthur-debert/prettycat/pkg/sniff"
)

// plistTransformer converts a binary property list to XML in the scratch
// area. The synthetic .xml name steers the rest of the pipeline: the
// generic highlighter picks the XML lexer for the converted artifact.
type plistTransformer struct {
	tools []string
}

func newPlistTransformer() *plistTransformer {
	return &plistTransformer{tools: []string{"plutil", "plistutil"}}
}

func (t *plistTransformer) Name() string     { return "plist" }
func (t *plistTransformer) Tools() []string  { return t.tools }
func (t *plistTransformer) Describe() string {
	return "matches kind plist, suffix .plist; " + describeTools(t.tools)
}

func (t *plistTransformer) Applicable(subject Subject, kind sniff.Kind) bool {
	if kind != sniff.KindPlist && !hasSuffix(subject.Name, ".plist") {
		return false
	}
	return FirstAvailable(t.tools...) != ""
}

func (t *plistTransformer) Apply(ctx context.Context, req *Request) (Result, error) {
	logger := logging.GetLogger("transform.plist")

	tool := FirstAvailable(t.tools...)
	if tool == "" {
		return Declined(), nil
	}

	var args []string
	switch tool {
	case "plutil":
		args = []string{"-convert", "xml1", "-o", "-", req.Subject.Path}
	default:
		args = []string{"-i", req.Subject.Path}
	}

	converted, err := RunTool(ctx, tool, args...)
	if err != nil {
		logger.Debug().Err(err).Str("tool", tool).Msg("converter did not start, declining")
		return Declined(), nil
	}

	return req.WriteArtifact(".xml", converted)
}
