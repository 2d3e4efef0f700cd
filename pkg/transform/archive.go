package transform

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/prettycat/pkg/logging"
	"github.com/arthur-debert/prettycat/pkg/sniff"
)

var objectNamePattern = regexp.MustCompile(`\S+\.(?:o|obj)\b`)

// archiveTransformer synthesizes a two-section report for ar archives: the
// member listing, then the symbol index. Both come from separate tool
// invocations and are concatenated under coloured headings.
type archiveTransformer struct {
	tools []string
}

func newArchiveTransformer() *archiveTransformer {
	return &archiveTransformer{tools: []string{"ar"}}
}

func (t *archiveTransformer) Name() string     { return "archive" }
func (t *archiveTransformer) Tools() []string  { return t.tools }
func (t *archiveTransformer) Describe() string {
	return "matches kind ar, suffix .a; " + describeTools(t.tools)
}

func (t *archiveTransformer) Applicable(subject Subject, kind sniff.Kind) bool {
	if kind != sniff.KindAr && !hasSuffix(subject.Name, ".a") {
		return false
	}
	return FirstAvailable(t.tools...) != ""
}

func (t *archiveTransformer) Apply(ctx context.Context, req *Request) (Result, error) {
	logger := logging.GetLogger("transform.archive")

	tool := FirstAvailable(t.tools...)
	if tool == "" {
		return Declined(), nil
	}

	members, err := RunTool(ctx, tool, "tv", req.Subject.Path)
	if err != nil {
		logger.Debug().Err(err).Msg("ar did not start, declining")
		return Declined(), nil
	}

	p := req.Palette
	fmt.Fprintln(req.Out, p.Heading.Render("Archive members"))
	writeObjectLines(req, string(members))

	// The symbol index is optional: nm may be missing even when ar is not.
	if nm := FirstAvailable("nm"); nm != "" {
		symbols, err := RunTool(ctx, nm, "--print-armap", req.Subject.Path)
		if err == nil {
			fmt.Fprintln(req.Out)
			fmt.Fprintln(req.Out, p.Heading.Render("Symbol index"))
			writeObjectLines(req, string(symbols))
		}
	}

	return Rendered(), nil
}

func writeObjectLines(req *Request, text string) {
	p := req.Palette
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintln(req.Out, objectNamePattern.ReplaceAllStringFunc(line, renderFunc(p.Symbol)))
	}
}
