package transform

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/prettycat/pkg/logging"
	"github.com/arthur-debert/prettycat/pkg/sniff"
)

var (
	pemEnvelopePattern = regexp.MustCompile(`^-----(BEGIN|END) [A-Z ]+-----$`)
	certFieldPattern   = regexp.MustCompile(`^(\s*)([A-Za-z][A-Za-z0-9 ./-]*):( ?)(.*)$`)
)

// certificateTransformer decodes certificates and certificate requests
// through openssl, picking the subcommand from which suffix/kind matched,
// then recolours the field/value text and the PEM envelope.
type certificateTransformer struct {
	tools []string
}

func newCertificateTransformer() *certificateTransformer {
	return &certificateTransformer{tools: []string{"openssl"}}
}

func (t *certificateTransformer) Name() string     { return "certificate" }
func (t *certificateTransformer) Tools() []string  { return t.tools }
func (t *certificateTransformer) Describe() string {
	return "matches kind crt/csr/pem, suffix .crt/.cer/.pem/.csr/.key; " + describeTools(t.tools)
}

func (t *certificateTransformer) Applicable(subject Subject, kind sniff.Kind) bool {
	switch kind {
	case sniff.KindCRT, sniff.KindCSR, sniff.KindPEM:
	default:
		if !hasSuffix(subject.Name, ".crt", ".cer", ".pem", ".csr", ".key") {
			return false
		}
	}
	return FirstAvailable(t.tools...) != ""
}

// isRequest decides between the two decode subcommands.
func (t *certificateTransformer) isRequest(subject Subject, kind sniff.Kind) bool {
	return kind == sniff.KindCSR || hasSuffix(subject.Name, ".csr")
}

func (t *certificateTransformer) Apply(ctx context.Context, req *Request) (Result, error) {
	logger := logging.GetLogger("transform.certificate")

	tool := FirstAvailable(t.tools...)
	if tool == "" {
		return Declined(), nil
	}

	subcommand := "x509"
	if t.isRequest(req.Subject, req.Kind) {
		subcommand = "req"
	}

	decoded, err := RunTool(ctx, tool, subcommand, "-in", req.Subject.Path, "-text", "-noout")
	if err != nil {
		logger.Debug().Err(err).Msg("openssl did not start, declining")
		return Declined(), nil
	}

	// The PEM envelope is appended so the raw block stays visible below the
	// decoded form.
	raw, err := req.ReadSubject()
	if err != nil {
		return Declined(), err
	}

	p := req.Palette
	for _, line := range strings.Split(strings.TrimRight(string(decoded), "\n"), "\n") {
		fmt.Fprintln(req.Out, recolourCertLine(line, p))
	}
	for _, line := range strings.Split(strings.TrimRight(string(raw), "\n"), "\n") {
		if pemEnvelopePattern.MatchString(line) {
			fmt.Fprintln(req.Out, p.Envelope.Render(line))
		} else {
			fmt.Fprintln(req.Out, p.Delimiter.Render(line))
		}
	}

	return Rendered(), nil
}

func recolourCertLine(line string, p *Palette) string {
	m := certFieldPattern.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	return m[1] + p.Field.Render(m[2]+":") + m[3] + m[4]
}
