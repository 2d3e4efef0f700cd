package transform

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/prettycat/pkg/logging"
	"github.com/arthur-debert/prettycat/pkg/sniff"
)

const defaultWrapWidth = 80

var frontMatterDelim = []byte("---\n")

// markdownTransformer reflows Markdown prose to terminal width and colours
// its structure. Fenced code blocks and tables survive verbatim (the
// renderer treats them as opaque blocks); a leading YAML front-matter block
// is split off first and rendered as YAML so the renderer never rewraps it.
type markdownTransformer struct{}

func newMarkdownTransformer() *markdownTransformer { return &markdownTransformer{} }

func (t *markdownTransformer) Name() string     { return "markdown" }
func (t *markdownTransformer) Tools() []string  { return nil }
func (t *markdownTransformer) Describe() string { return "matches suffix .md/.markdown/.mdown; in-process" }

func (t *markdownTransformer) Applicable(subject Subject, kind sniff.Kind) bool {
	return hasSuffix(subject.Name, ".md", ".markdown", ".mdown")
}

func (t *markdownTransformer) Apply(ctx context.Context, req *Request) (Result, error) {
	logger := logging.GetLogger("transform.markdown")

	data, err := req.ReadSubject()
	if err != nil {
		return Declined(), err
	}

	front, body := splitFrontMatter(data)
	if front != nil {
		if err := req.Engine.Highlight(req.Out, front, "yaml"); err != nil {
			logger.Debug().Err(err).Msg("front matter highlight failed, emitting raw")
			_, _ = req.Out.Write(front)
		}
		fmt.Fprintln(req.Out)
	}

	options := []glamour.TermRendererOption{
		glamour.WithWordWrap(wrapWidth()),
		glamour.WithPreservedNewLines(),
	}
	if req.Engine.Profile() == termenv.Ascii {
		options = append(options, glamour.WithStandardStyle("notty"))
	} else {
		options = append(options, glamour.WithStandardStyle("dark"))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		logger.Debug().Err(err).Msg("renderer construction failed, declining")
		return Declined(), nil
	}

	rendered, err := renderer.RenderBytes(body)
	if err != nil {
		logger.Debug().Err(err).Msg("render failed, declining")
		return Declined(), nil
	}

	if _, err := req.Out.Write(rendered); err != nil {
		return Declined(), err
	}
	return Rendered(), nil
}

// splitFrontMatter separates a leading YAML front-matter block. The block
// only counts when it parses as YAML; otherwise the whole input is body.
func splitFrontMatter(data []byte) (front, body []byte) {
	if !bytes.HasPrefix(data, frontMatterDelim) {
		return nil, data
	}
	rest := data[len(frontMatterDelim):]
	end := bytes.Index(rest, frontMatterDelim)
	if end < 0 {
		return nil, data
	}

	candidate := data[:len(frontMatterDelim)+end+len(frontMatterDelim)]
	var parsed map[string]interface{}
	if err := yaml.Unmarshal(rest[:end], &parsed); err != nil || len(parsed) == 0 {
		return nil, data
	}
	return candidate, rest[end+len(frontMatterDelim):]
}

// wrapWidth honours the pager-exported COLUMNS, falling back to 80.
func wrapWidth() int {
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if n, err := strconv.Atoi(cols); err == nil && n > 20 {
			return n
		}
	}
	return defaultWrapWidth
}
