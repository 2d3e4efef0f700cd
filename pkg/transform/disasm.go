package transform

import (
	"regexp"
	"strings"
)

// The recolouring pass is scoped by the section markers the dump tools
// themselves emit, so symbol tables and disassembly bodies get different
// treatment. Platform differences in comment leaders (// for GNU objdump,
// ; for otool and the RISC OS tools, @ for older ARM syntax) are all
// accepted wherever a comment can appear.
var (
	disasmHeadingPattern = regexp.MustCompile(`^(Disassembly of section .*:|SYMBOL TABLE:|Sections:|Contents of section .*:|Load command \d+|Mach header|AREA .*)$`)
	disasmLinePattern    = regexp.MustCompile(`^(\s*)([0-9a-fA-F]+):(\s+)([0-9a-f ]+?)(\s{2,})(\S+)(\s*)(.*)$`)
	symbolLinePattern    = regexp.MustCompile(`^([0-9a-fA-F]+)(\s+\S.*\s)(\S+)$`)
	symbolRefPattern     = regexp.MustCompile(`<[^>]+>`)
	registerPattern      = regexp.MustCompile(`\b(?:[xwrv]\d{1,2}|sp|lr|pc|fp|ip|sl|wzr|xzr|cpsr)\b`)
	commentPattern       = regexp.MustCompile(`(//|;|@).*$`)
)

type dumpSection int

const (
	sectionNone dumpSection = iota
	sectionSymbols
	sectionDisasm
)

// RecolourDump applies the fixed colourization passes to dump/disassembly
// output and returns the coloured text.
func RecolourDump(text string, p *Palette) string {
	var sb strings.Builder
	section := sectionNone

	for _, line := range strings.Split(text, "\n") {
		switch {
		case disasmHeadingPattern.MatchString(line):
			if strings.HasPrefix(line, "SYMBOL TABLE") {
				section = sectionSymbols
			} else if strings.HasPrefix(line, "Disassembly") || strings.HasPrefix(line, "AREA") {
				section = sectionDisasm
			} else {
				section = sectionNone
			}
			sb.WriteString(p.Heading.Render(line))
		case section == sectionDisasm:
			sb.WriteString(recolourDisasmLine(line, p))
		case section == sectionSymbols:
			sb.WriteString(recolourSymbolLine(line, p))
		default:
			sb.WriteString(line)
		}
		sb.WriteByte('\n')
	}

	out := sb.String()
	return strings.TrimSuffix(out, "\n")
}

func recolourDisasmLine(line string, p *Palette) string {
	m := disasmLinePattern.FindStringSubmatch(line)
	if m == nil {
		// Label lines like "0000000000400078 <_start>:".
		return symbolRefPattern.ReplaceAllStringFunc(line, renderFunc(p.Symbol))
	}

	operands := m[8]
	operands = commentPattern.ReplaceAllStringFunc(operands, renderFunc(p.Comment))
	operands = symbolRefPattern.ReplaceAllStringFunc(operands, renderFunc(p.Symbol))
	operands = registerPattern.ReplaceAllStringFunc(operands, renderFunc(p.Register))

	return m[1] + p.Address.Render(m[2]+":") + m[3] +
		p.RawBytes.Render(m[4]) + m[5] +
		p.Mnemonic.Render(m[6]) + m[7] + operands
}

func recolourSymbolLine(line string, p *Palette) string {
	m := symbolLinePattern.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	return p.Address.Render(m[1]) + m[2] + p.Symbol.Render(m[3])
}
