// Package highlight wraps the in-process syntax-highlighting engine behind
// the generic colourizer: lexer resolution with an override table, a
// memoized filename-to-lexer cache keyed by engine version, and
// terminal-profile-aware formatting.
package highlight

import (
	"io"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/prettycat/pkg/config"
	"github.com/arthur-debert/prettycat/pkg/logging"
	"github.com/arthur-debert/prettycat/pkg/paths"
)

// docLexers are long-form documentation formats that get the legibility
// style override instead of the code style.
var docLexers = map[string]bool{
	"markdown": true,
	"rst":      true,
	"tex":      true,
	"latex":    true,
}

// downgradeLexers force the 256-colour formatter even on truecolor
// terminals; their truecolor renderings are known to be illegible on common
// pager palettes.
var downgradeLexers = map[string]bool{
	"rst": true,
	"tex": true,
}

// Engine resolves lexers and renders highlighted source to a writer.
type Engine struct {
	cfg       *config.Config
	profile   termenv.Profile
	cache     *Cache
	overrides []override
}

// NewEngine builds an engine from the given configuration. The colour
// profile comes from the terminal environment: when stdout is a pipe (the
// usual case under a pager) the TERM/COLORTERM variables are trusted rather
// than the tty check, since the pager re-renders our escapes.
func NewEngine(cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.Get()
	}

	var profile termenv.Profile
	switch {
	case cfg.Color == "never":
		profile = termenv.Ascii
	case isatty.IsTerminal(os.Stdout.Fd()):
		profile = termenv.ColorProfile()
	default:
		profile = termenv.EnvColorProfile()
		if profile == termenv.Ascii && cfg.Color != "never" {
			profile = termenv.ANSI256
		}
	}

	return &Engine{
		cfg:       cfg,
		profile:   profile,
		cache:     NewCache(paths.CacheRoot(), EngineVersion()),
		overrides: buildOverrides(cfg.LexerOverrides),
	}
}

// Profile exposes the selected colour profile.
func (e *Engine) Profile() termenv.Profile {
	return e.profile
}

// Highlight renders source through the named lexer. An unknown lexer name
// falls back to the plaintext lexer so the subject is still paged readably.
func (e *Engine) Highlight(w io.Writer, source []byte, lexerName string) error {
	logger := logging.GetLogger("highlight")

	lexer := lexers.Get(lexerName)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(e.styleFor(lexerName))
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get(e.formatterFor(lexerName))
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, string(source))
	if err != nil {
		return err
	}

	logger.Debug().
		Str("lexer", lexer.Config().Name).
		Str("style", style.Name).
		Msg("highlighting subject")
	return formatter.Format(w, style, iterator)
}

// styleFor picks the configured style, swapping in the documentation style
// for long-form formats. An unknown documentation style falls back to the
// code style, which chroma guarantees resolves.
func (e *Engine) styleFor(lexerName string) string {
	if docLexers[lexerName] {
		if styles.Get(e.cfg.DocStyle) != nil {
			return e.cfg.DocStyle
		}
	}
	return e.cfg.Style
}

func (e *Engine) formatterFor(lexerName string) string {
	profile := e.profile
	if downgradeLexers[lexerName] && profile == termenv.TrueColor {
		profile = termenv.ANSI256
	}
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return "noop"
	}
}
