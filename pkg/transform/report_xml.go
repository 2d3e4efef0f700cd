package transform

import (
	"context"
	"fmt"

	"github.com/beevik/etree"

	"github.com/arthur-debert/prettycat/pkg/logging"
	"github.com/arthur-debert/prettycat/pkg/sniff"
)

// reportNamePatterns are matched against the basename; a test report has to
// look like one by name before we commit to parsing it as one.
var reportNamePatterns = []string{
	"*junit*.xml",
	"*test-report*.xml",
	"*test-results*.xml",
	"*surefire*.xml",
}

// testReportTransformer renders JUnit-style XML test reports as a readable
// summary. It sits above the generic XML pretty-printer so reports are
// recognized before falling through to plain indentation.
type testReportTransformer struct{}

func newTestReportTransformer() *testReportTransformer { return &testReportTransformer{} }

func (t *testReportTransformer) Name() string     { return "test-report" }
func (t *testReportTransformer) Tools() []string  { return nil }
func (t *testReportTransformer) Describe() string { return "matches junit-style *.xml names; in-process" }

func (t *testReportTransformer) Applicable(subject Subject, kind sniff.Kind) bool {
	if kind != sniff.KindXML && !hasSuffix(subject.Name, ".xml") {
		return false
	}
	return matchAnyBase(subject.Name, reportNamePatterns)
}

func (t *testReportTransformer) Apply(ctx context.Context, req *Request) (Result, error) {
	logger := logging.GetLogger("transform.test-report")

	data, err := req.ReadSubject()
	if err != nil {
		return Declined(), err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		logger.Debug().Err(err).Msg("not parseable XML, declining")
		return Declined(), nil
	}

	root := doc.Root()
	if root == nil || (root.Tag != "testsuites" && root.Tag != "testsuite") {
		return Declined(), nil
	}

	suites := []*etree.Element{root}
	if root.Tag == "testsuites" {
		suites = root.SelectElements("testsuite")
	}

	p := req.Palette
	for _, suite := range suites {
		name := suite.SelectAttrValue("name", "(unnamed suite)")
		tests := suite.SelectAttrValue("tests", "?")
		failures := suite.SelectAttrValue("failures", "0")
		errors := suite.SelectAttrValue("errors", "0")
		fmt.Fprintf(req.Out, "%s  %s tests, %s failures, %s errors\n",
			p.Heading.Render(name), tests, failures, errors)

		for _, tc := range suite.SelectElements("testcase") {
			caseName := tc.SelectAttrValue("name", "(unnamed)")
			switch {
			case tc.SelectElement("failure") != nil || tc.SelectElement("error") != nil:
				fmt.Fprintf(req.Out, "  %s %s\n", p.Symbol.Render("FAIL"), caseName)
				if failure := tc.SelectElement("failure"); failure != nil {
					if msg := failure.SelectAttrValue("message", ""); msg != "" {
						fmt.Fprintf(req.Out, "       %s\n", p.Comment.Render(msg))
					}
				}
			case tc.SelectElement("skipped") != nil:
				fmt.Fprintf(req.Out, "  %s %s\n", p.Delimiter.Render("skip"), caseName)
			default:
				fmt.Fprintf(req.Out, "  %s %s\n", p.Quoted.Render("ok  "), caseName)
			}
		}
		fmt.Fprintln(req.Out)
	}

	return Rendered(), nil
}
