package transform

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/arthur-debert/prettycat/pkg/logging"
	"github.com/arthur-debert/prettycat/pkg/sniff"
)

// jsonSniffLimit bounds the structural sniff for extensionless JSON.
const jsonSniffLimit = 64

// jsonTransformer pretty-prints and colourizes JSON through jq. Besides the
// .json suffix it accepts files whose first significant byte opens an
// object or array, so API payloads saved without an extension still render.
type jsonTransformer struct {
	tools []string
}

func newJSONTransformer() *jsonTransformer {
	return &jsonTransformer{tools: []string{"jq"}}
}

func (t *jsonTransformer) Name() string     { return "json" }
func (t *jsonTransformer) Tools() []string  { return t.tools }
func (t *jsonTransformer) Describe() string {
	return "matches suffix .json or JSON-shaped content; " + describeTools(t.tools)
}

func (t *jsonTransformer) Applicable(subject Subject, kind sniff.Kind) bool {
	if !hasSuffix(subject.Name, ".json") && !looksLikeJSON(subject.Path) {
		return false
	}
	return FirstAvailable(t.tools...) != ""
}

func (t *jsonTransformer) Apply(ctx context.Context, req *Request) (Result, error) {
	logger := logging.GetLogger("transform.json")

	tool := FirstAvailable(t.tools...)
	if tool == "" {
		return Declined(), nil
	}

	pretty, err := RunTool(ctx, tool, "-C", ".", req.Subject.Path)
	if err != nil {
		logger.Debug().Err(err).Msg("jq did not start, declining")
		return Declined(), nil
	}
	if len(bytes.TrimSpace(pretty)) == 0 {
		// Invalid JSON produces no stdout; fall through so the generic
		// highlighter can still show the raw text.
		logger.Debug().Msg("jq produced no output, declining")
		return Declined(), nil
	}

	if _, err := req.Out.Write(pretty); err != nil {
		return Declined(), err
	}
	return Rendered(), nil
}

func looksLikeJSON(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, jsonSniffLimit)
	n, err := f.Read(buf)
	if n == 0 && err != nil && err != io.EOF {
		return false
	}
	trimmed := bytes.TrimLeft(buf[:n], " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
