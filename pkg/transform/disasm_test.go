// pkg/transform/disasm_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test section-scoped recolouring of dump tool output

package transform

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

const sampleDisasm = `
a.out:     file format elf64-littleaarch64

SYMBOL TABLE:
0000000000400078 l    d  .text	0000000000000000 .text
0000000000400078 g       .text	0000000000000000 _start

Disassembly of section .text:

0000000000400078 <_start>:
  400078:	d2800ba8 	mov	x8, #0x5d
  40007c:	d4000001 	svc	#0x0	// exit syscall
`

func TestRecolourDumpAddsEscapes(t *testing.T) {
	var sink bytes.Buffer
	p := NewPalette(&sink, termenv.ANSI256)

	out := RecolourDump(sampleDisasm, p)

	assert.Contains(t, out, "\x1b[", "colour escapes expected")
	// The payload text survives recolouring.
	for _, token := range []string{"Disassembly of section .text:", "SYMBOL TABLE:", "mov", "400078", "_start", "exit syscall"} {
		assert.Contains(t, stripEscapes(out), token)
	}
}

func TestRecolourDumpColourlessProfileIsIdentity(t *testing.T) {
	var sink bytes.Buffer
	p := NewPalette(&sink, termenv.Ascii)

	out := RecolourDump(sampleDisasm, p)
	assert.Equal(t, sampleDisasm, out)
}

func TestRecolourDumpToleratesCommentLeaders(t *testing.T) {
	var sink bytes.Buffer
	p := NewPalette(&sink, termenv.ANSI256)

	for _, leader := range []string{"//", ";", "@"} {
		input := "Disassembly of section .text:\n  400078:\td2800ba8 \tmov\tx8, #0x5d " + leader + " note\n"
		out := stripEscapes(RecolourDump(input, p))
		assert.Contains(t, out, leader+" note")
	}
}

func TestRecolourDumpOutsideSectionsUntouched(t *testing.T) {
	var sink bytes.Buffer
	p := NewPalette(&sink, termenv.ANSI256)

	input := "a.out: file format elf64-littleaarch64\n  400078:\tdead\tmov\tx0, x1"
	out := RecolourDump(input, p)
	assert.Equal(t, input, out, "lines before any section heading stay plain")
}

// stripEscapes removes ANSI SGR sequences for payload assertions.
func stripEscapes(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
