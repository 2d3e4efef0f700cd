package transform

import (
	"github.com/arthur-debert/prettycat/pkg/sniff"
)

// Registry returns the dispatch table in priority order: structured
// reformatters first, the catch-all highlighter last. The order is data,
// not code layout — reordering is a reviewable change to this one list.
//
// More specific transformers must precede generic ones: a junit report is a
// report before it is XML, and XML is XML before it is highlightable text.
func Registry() []Transformer {
	return []Transformer{
		// Reformatters
		newTestReportTransformer(),
		newXMLPrettyTransformer(),
		newBasicDetokTransformer(),
		&dumpTransformer{
			name:     "arm-dump",
			kinds:    []sniff.Kind{sniff.KindAIF},
			suffixes: []string{",ff8"},
			tools:    []string{"armdump"},
			args:     func(tool, path string) []string { return []string{path} },
			recolour: true,
		},
		&dumpTransformer{
			name:     "arm-dump-alt",
			kinds:    []sniff.Kind{sniff.KindAIF},
			suffixes: []string{",ff8"},
			tools:    []string{"disarm"},
			args:     func(tool, path string) []string { return []string{path} },
			recolour: true,
		},
		&dumpTransformer{
			name:     "aof-decode",
			kinds:    []sniff.Kind{sniff.KindAOF},
			tools:    []string{"decaof"},
			args:     func(tool, path string) []string { return []string{"-d", path} },
			recolour: true,
		},
		&dumpTransformer{
			name:     "alf-listing",
			kinds:    []sniff.Kind{sniff.KindALF},
			tools:    []string{"declib"},
			args:     func(tool, path string) []string { return []string{"-l", path} },
			recolour: true,
		},
		newArchiveTransformer(),
		&dumpTransformer{
			name:     "data-dump",
			kinds:    []sniff.Kind{sniff.KindAIF},
			suffixes: []string{",ffa", ",ffd"},
			tools:    []string{"xxd", "hexdump"},
			args: func(tool, path string) []string {
				if tool == "hexdump" {
					return []string{"-C", path}
				}
				return []string{path}
			},
		},
		&dumpTransformer{
			name:  "elf-disasm",
			kinds: []sniff.Kind{sniff.KindELFArm64},
			tools: []string{"aarch64-linux-gnu-objdump", "objdump"},
			args: func(tool, path string) []string {
				return []string{"-d", "--demangle", path}
			},
			recolour: true,
		},
		&dumpTransformer{
			name:  "macho-dump",
			kinds: []sniff.Kind{sniff.KindMachO},
			tools: []string{"otool", "llvm-objdump"},
			args: func(tool, path string) []string {
				if tool == "otool" {
					return []string{"-h", "-l", path}
				}
				return []string{"--macho", "--private-headers", path}
			},
			recolour: true,
		},
		newMarkdownTransformer(),
		newPlistTransformer(),
		newCertificateTransformer(),
		&dumpTransformer{
			name:  "pyc-disasm",
			kinds: []sniff.Kind{sniff.KindPyc},
			tools: []string{"python3", "python"},
			args: func(tool, path string) []string {
				return []string{"-m", "dis", path}
			},
		},
		// Colourizers
		newCSVTransformer(),
		newGraphTransformer(),
		newJSONTransformer(),
		newSyntaxTransformer(),
	}
}
