package transform

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette holds the token styles used by the regex recolouring passes. The
// colour scheme follows the usual disassembler conventions: grey addresses,
// cyan registers, orange comments, yellow symbols.
type Palette struct {
	Address   lipgloss.Style
	RawBytes  lipgloss.Style
	Mnemonic  lipgloss.Style
	Register  lipgloss.Style
	Comment   lipgloss.Style
	Symbol    lipgloss.Style
	Number    lipgloss.Style
	Heading   lipgloss.Style
	Delimiter lipgloss.Style
	Quoted    lipgloss.Style
	Field     lipgloss.Style
	Envelope  lipgloss.Style
}

// renderFunc adapts a style's variadic Render to the single-argument
// callback shape regexp replacement expects.
func renderFunc(s lipgloss.Style) func(string) string {
	return func(text string) string { return s.Render(text) }
}

// NewPalette builds the palette for an explicit colour profile. Stdout is
// normally a pipe into the pager, so lipgloss's own tty detection would
// strip every colour; the profile decided by the highlight engine is
// authoritative instead.
func NewPalette(out io.Writer, profile termenv.Profile) *Palette {
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(profile)

	return &Palette{
		Address:   r.NewStyle().Foreground(lipgloss.Color("#808080")),
		RawBytes:  r.NewStyle().Foreground(lipgloss.Color("#646464")),
		Mnemonic:  r.NewStyle().Bold(true),
		Register:  r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		Comment:   r.NewStyle().Foreground(lipgloss.Color("#FF8000")),
		Symbol:    r.NewStyle().Foreground(lipgloss.Color("#FFC800")),
		Number:    r.NewStyle().Foreground(lipgloss.Color("#FF80C0")),
		Heading:   r.NewStyle().Bold(true).Underline(true),
		Delimiter: r.NewStyle().Foreground(lipgloss.Color("#808080")),
		Quoted:    r.NewStyle().Foreground(lipgloss.Color("#00C000")),
		Field:     r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		Envelope:  r.NewStyle().Foreground(lipgloss.Color("#00C000")).Bold(true),
	}
}
