package sniff

import (
	"path/filepath"
	"strings"
)

// refinementRule overrides a content-derived kind based on the real
// filename. These cover textual and platform formats the content sniff
// cannot distinguish.
type refinementRule struct {
	match func(base, lower string) bool
	kind  Kind
}

var refinementTable = []refinementRule{
	// Key material is PEM-shaped whatever the sniff said about its body.
	{func(base, lower string) bool { return strings.HasSuffix(lower, ".key") }, KindPEM},
	// RISC OS sources ship a bare VersionNum header generated by the build.
	{func(base, lower string) bool { return base == "VersionNum" }, KindCHeader},
	// RISC OS comma-suffix filetype convention: &FFB is tokenized BASIC.
	{func(base, lower string) bool { return strings.HasSuffix(lower, ",ffb") }, KindBASIC},
}

// Refine applies filename-based overrides to a content-derived kind. Plain
// .txt files are exempt from all inference: the generic highlighter already
// renders them adequately, and second-guessing their content causes more
// harm than good.
func Refine(path string, kind Kind) Kind {
	base := filepath.Base(path)
	lower := strings.ToLower(base)

	if strings.HasSuffix(lower, ".txt") {
		return kind
	}

	for _, rule := range refinementTable {
		if rule.match(base, lower) {
			return rule.kind
		}
	}
	return kind
}
