package highlight

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/arthur-debert/prettycat/pkg/logging"
)

type chromaLexer = chroma.Lexer

// override pins a lexer for names the engine's own guessing misclassifies.
// Pattern is a glob matched against the basename; Segment, when set,
// instead requires the named path segment anywhere in the directory part
// (RISC OS keeps sources in per-language directories).
type override struct {
	Pattern string
	Segment string
	Lexer   string
}

// builtinOverrides is ordered; the first match wins. User config entries
// are prepended so they take precedence.
var builtinOverrides = []override{
	// Shell profile fragments carry no extension.
	{Pattern: ".bashrc", Lexer: "bash"},
	{Pattern: ".bash_profile", Lexer: "bash"},
	{Pattern: ".bash_aliases", Lexer: "bash"},
	{Pattern: ".profile", Lexer: "bash"},
	{Pattern: ".zshrc", Lexer: "bash"},
	// Build-pipeline scripts.
	{Pattern: "Jenkinsfile*", Lexer: "groovy"},
	{Pattern: "*.jenkinsfile", Lexer: "groovy"},
	{Pattern: "*.gradle", Lexer: "groovy"},
	// Infrastructure config fragments.
	{Pattern: "Dockerfile*", Lexer: "docker"},
	{Pattern: "*.tf", Lexer: "terraform"},
	{Pattern: "*.tfvars", Lexer: "terraform"},
	// Interpreter-specific source suffixes the engine guesses wrong.
	{Pattern: "*.bas", Lexer: "qbasic"},
	{Pattern: "*.cmhg", Lexer: "c"},
	// RISC OS source-by-directory convention.
	{Segment: "c", Lexer: "c"},
	{Segment: "h", Lexer: "c"},
	{Segment: "s", Lexer: "armasm"},
	{Segment: "p", Lexer: "perl"},
}

// versionSuffixPattern matches names like wrapper-2.1.7 whose trailing
// version number makes filename-based guessing misfire (the engine reads
// the numeric suffix as a typesetting format).
var versionSuffixPattern = regexp.MustCompile(`-\d+(\.\d+)*$`)

func buildOverrides(user map[string]string) []override {
	merged := make([]override, 0, len(user)+len(builtinOverrides))
	for pattern, lexer := range user {
		merged = append(merged, override{Pattern: pattern, Lexer: lexer})
	}
	merged = append(merged, builtinOverrides...)
	return merged
}

// Resolve maps a filename plus content sample to a lexer name, or "" when
// nothing fits. Resolution order: override table, memoized filename guess,
// memoized content guess.
func (e *Engine) Resolve(name string, content []byte) string {
	logger := logging.GetLogger("highlight.resolve")
	base := filepath.Base(name)

	for _, o := range e.overrides {
		if o.Segment != "" {
			if hasPathSegment(name, o.Segment) {
				return o.Lexer
			}
			continue
		}
		if matched, _ := filepath.Match(o.Pattern, base); matched {
			logger.Trace().Str("pattern", o.Pattern).Str("lexer", o.Lexer).Msg("override matched")
			return o.Lexer
		}
	}

	if !versionSuffixPattern.MatchString(base) {
		if lexer, ok := e.cachedGuess("name:"+base, func() string {
			return lexerKey(lexers.Match(base))
		}); ok && lexer != "" {
			return lexer
		}
	}

	sample := string(content)
	digest := sha256.Sum256(content)
	if lexer, ok := e.cachedGuess("content:"+hex.EncodeToString(digest[:8]), func() string {
		return lexerKey(lexers.Analyse(sample))
	}); ok && lexer != "" {
		return lexer
	}

	return ""
}

// cachedGuess memoizes one guess function under the engine-version cache
// key. Cache failures degrade to calling the guess directly.
func (e *Engine) cachedGuess(key string, guess func() string) (string, bool) {
	if e.cache == nil {
		return guess(), true
	}
	if lexer, ok := e.cache.Lookup(key); ok {
		return lexer, true
	}
	lexer := guess()
	e.cache.Store(key, lexer)
	return lexer, true
}

func lexerKey(lexer chromaLexer) string {
	if lexer == nil {
		return ""
	}
	cfg := lexer.Config()
	if cfg == nil {
		return ""
	}
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ToLower(cfg.Name)
}

func hasPathSegment(path, segment string) bool {
	dir := filepath.Dir(path)
	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		if part == segment {
			return true
		}
	}
	return false
}
