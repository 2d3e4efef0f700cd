package transform

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/prettycat/pkg/logging"
	"github.com/arthur-debert/prettycat/pkg/sniff"
)

// probeDelimiter is the non-ASCII table delimiter the tabular tool must
// prove it can emit before the adapter commits to it. Older csvkit builds
// fell back to ASCII pipes, which the recolouring rules would mangle.
const probeDelimiter = "│"

var (
	csvNumberPattern = regexp.MustCompile(`\b-?\d+(?:[.,]\d+)?\b`)
	csvQuotedPattern = regexp.MustCompile(`"[^"]*"`)
)

// csvTransformer reformats CSV/TSV through csvlook and recolours numeric,
// quoted and delimiter tokens.
type csvTransformer struct {
	tools []string
}

func newCSVTransformer() *csvTransformer {
	return &csvTransformer{tools: []string{"csvlook"}}
}

func (t *csvTransformer) Name() string     { return "tabular" }
func (t *csvTransformer) Tools() []string  { return t.tools }
func (t *csvTransformer) Describe() string {
	return "matches suffix .csv/.tsv; " + describeTools(t.tools)
}

func (t *csvTransformer) Applicable(subject Subject, kind sniff.Kind) bool {
	if !hasSuffix(subject.Name, ".csv", ".tsv") {
		return false
	}
	return FirstAvailable(t.tools...) != ""
}

func (t *csvTransformer) Apply(ctx context.Context, req *Request) (Result, error) {
	logger := logging.GetLogger("transform.tabular")

	tool := FirstAvailable(t.tools...)
	if tool == "" {
		return Declined(), nil
	}

	// Dry-run probe on a two-cell sample: the adapter only applies when the
	// tool renders the non-ASCII delimiter.
	probe, err := RunToolInput(ctx, []byte("a,b\n1,2\n"), tool)
	if err != nil || !strings.Contains(string(probe), probeDelimiter) {
		logger.Debug().Err(err).Msg("delimiter probe failed, declining")
		return Declined(), nil
	}

	args := []string{req.Subject.Path}
	if hasSuffix(req.Subject.Name, ".tsv") {
		args = []string{"-t", req.Subject.Path}
	}
	table, err := RunTool(ctx, tool, args...)
	if err != nil {
		logger.Debug().Err(err).Msg("csvlook did not start, declining")
		return Declined(), nil
	}

	p := req.Palette
	for _, line := range strings.Split(strings.TrimRight(string(table), "\n"), "\n") {
		line = csvQuotedPattern.ReplaceAllStringFunc(line, renderFunc(p.Quoted))
		line = csvNumberPattern.ReplaceAllStringFunc(line, renderFunc(p.Number))
		line = strings.ReplaceAll(line, probeDelimiter, p.Delimiter.Render(probeDelimiter))
		fmt.Fprintln(req.Out, line)
	}
	return Rendered(), nil
}
