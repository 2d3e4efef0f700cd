package transform

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/arthur-debert/prettycat/pkg/logging"
	"github.com/arthur-debert/prettycat/pkg/sniff"
)

// textProbeLimit bounds the binary-content guard.
const textProbeLimit = 1024

// kindLexers maps inferred kinds straight to lexers, bypassing the engine's
// own guessing for formats identification has already settled.
var kindLexers = map[sniff.Kind]string{
	sniff.KindShell:   "bash",
	sniff.KindPerl:    "perl",
	sniff.KindPython:  "python",
	sniff.KindYAML:    "yaml",
	sniff.KindXML:     "xml",
	sniff.KindCHeader: "c",
	sniff.KindBASIC:   "qbasic",
}

// syntaxTransformer is the catch-all generic highlighter. It is the last
// entry in the dispatch table: anything textual it can resolve a lexer for
// gets rendered; binary leftovers decline and the pipeline reports
// unsupported.
type syntaxTransformer struct{}

func newSyntaxTransformer() *syntaxTransformer { return &syntaxTransformer{} }

func (t *syntaxTransformer) Name() string     { return "syntax" }
func (t *syntaxTransformer) Tools() []string  { return nil }
func (t *syntaxTransformer) Describe() string { return "matches any text with a resolvable lexer; in-process" }

func (t *syntaxTransformer) Applicable(subject Subject, kind sniff.Kind) bool {
	if _, ok := kindLexers[kind]; ok {
		return true
	}
	sample, ok := readProbe(subject.Path)
	if !ok || bytes.IndexByte(sample, 0) >= 0 {
		return false
	}
	return true
}

func (t *syntaxTransformer) Apply(ctx context.Context, req *Request) (Result, error) {
	logger := logging.GetLogger("transform.syntax")

	data, err := req.ReadSubject()
	if err != nil {
		return Declined(), err
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return Declined(), nil
	}

	lexer, ok := kindLexers[req.Kind]
	if !ok {
		// Predicates match against the current subject name, so a rewritten
		// artifact resolves by its synthetic suffix; the user's original
		// name is the better signal when the subject is untouched.
		lexer = req.Engine.Resolve(req.Subject.Name, data)
	}

	logger.Debug().Str("lexer", lexer).Msg("rendering through highlighter")
	if err := req.Engine.Highlight(req.Out, data, lexer); err != nil {
		return Declined(), nil
	}
	return Rendered(), nil
}

func readProbe(path string) ([]byte, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, textProbeLimit)
	n, err := f.Read(buf)
	if n == 0 && err != nil && err != io.EOF {
		return nil, false
	}
	return buf[:n], true
}
