package transform

import (
	"context"
	"path/filepath"

	"github.com/beevik/etree"

	"github.com/arthur-debert/prettycat/pkg/logging"
	"github.com/arthur-debert/prettycat/pkg/sniff"
)

// xmlPrettyTransformer re-indents XML into a scratch artifact and lets the
// pipeline continue, so the generic highlighter colours the result.
type xmlPrettyTransformer struct{}

func newXMLPrettyTransformer() *xmlPrettyTransformer { return &xmlPrettyTransformer{} }

func (t *xmlPrettyTransformer) Name() string     { return "xml-pretty" }
func (t *xmlPrettyTransformer) Tools() []string  { return nil }
func (t *xmlPrettyTransformer) Describe() string { return "matches kind xml, suffix .xml/.svg/.xsl; in-process" }

func (t *xmlPrettyTransformer) Applicable(subject Subject, kind sniff.Kind) bool {
	return kind == sniff.KindXML || hasSuffix(subject.Name, ".xml", ".svg", ".xsl", ".xslt")
}

func (t *xmlPrettyTransformer) Apply(ctx context.Context, req *Request) (Result, error) {
	logger := logging.GetLogger("transform.xml-pretty")

	data, err := req.ReadSubject()
	if err != nil {
		return Declined(), err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		// Once the predicate has promised support, a parse failure must not
		// turn into an unsupported exit. The bytes pass through unindented.
		logger.Debug().Err(err).Msg("not parseable XML, passing through")
		return req.WriteArtifact(".xml", data)
	}

	doc.Indent(2)
	pretty, err := doc.WriteToBytes()
	if err != nil {
		return req.WriteArtifact(".xml", data)
	}

	logger.Debug().Str("subject", filepath.Base(req.Subject.Path)).Msg("re-indented XML")
	return req.WriteArtifact(".xml", pretty)
}

// matchAnyBase checks glob patterns against the basename.
func matchAnyBase(name string, patterns []string) bool {
	base := filepath.Base(name)
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}
