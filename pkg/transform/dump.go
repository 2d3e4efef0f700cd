package transform

import (
	"context"
	"fmt"

	"github.com/arthur-debert/prettycat/pkg/logging"
	"github.com/arthur-debert/prettycat/pkg/sniff"
)

// dumpTransformer is the descriptor for the family of "run a dump tool,
// recolour its output, terminate" adapters. Instantiating it per format
// keeps the dispatch table an explicit, reviewable list.
type dumpTransformer struct {
	name     string
	kinds    []sniff.Kind
	suffixes []string
	tools    []string
	args     func(tool, path string) []string
	recolour bool
}

func (t *dumpTransformer) Name() string { return t.name }

func (t *dumpTransformer) Describe() string {
	return fmt.Sprintf("matches %s; %s", t.matchSummary(), describeTools(t.tools))
}

func (t *dumpTransformer) Tools() []string { return t.tools }

func (t *dumpTransformer) matchSummary() string {
	parts := make([]string, 0, len(t.kinds)+len(t.suffixes))
	for _, k := range t.kinds {
		parts = append(parts, "kind "+string(k))
	}
	for _, s := range t.suffixes {
		parts = append(parts, "suffix "+s)
	}
	if len(parts) == 0 {
		return "nothing"
	}
	result := parts[0]
	for _, p := range parts[1:] {
		result += ", " + p
	}
	return result
}

func (t *dumpTransformer) Applicable(subject Subject, kind sniff.Kind) bool {
	matched := false
	for _, k := range t.kinds {
		if kind == k {
			matched = true
			break
		}
	}
	if !matched && len(t.suffixes) > 0 && hasSuffix(subject.Name, t.suffixes...) {
		matched = true
	}
	if !matched {
		return false
	}
	return FirstAvailable(t.tools...) != ""
}

func (t *dumpTransformer) Apply(ctx context.Context, req *Request) (Result, error) {
	logger := logging.GetLogger("transform." + t.name)

	tool := FirstAvailable(t.tools...)
	if tool == "" {
		return Declined(), nil
	}

	output, err := RunTool(ctx, tool, t.args(tool, req.Subject.Path)...)
	if err != nil {
		logger.Debug().Err(err).Str("tool", tool).Msg("tool did not start, declining")
		return Declined(), nil
	}

	text := string(output)
	if t.recolour {
		text = RecolourDump(text, req.Palette)
	}
	if _, err := fmt.Fprintln(req.Out, text); err != nil {
		return Declined(), err
	}
	return Rendered(), nil
}
