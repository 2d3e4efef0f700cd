package highlight

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/prettycat/pkg/logging"
)

// schemaEpoch invalidates every cache entry when the on-disk format
// changes. Bump it together with any change to the entry encoding.
const schemaEpoch = "1"

// chromaModulePath identifies the engine module in build info.
const chromaModulePath = "github.com/alecthomas/chroma/v2"

// EngineVersion returns the highlighting engine's module version as embedded
// in the binary's build info.
func EngineVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == chromaModulePath {
			return dep.Version
		}
	}
	return "unknown"
}

// Cache memoizes lexer lookups across invocations. Entries live in one
// plain-text file per cache key; the key embeds the schema epoch and the
// engine version so an engine upgrade invalidates everything at once.
//
// Concurrent pager sessions may race on the file. Writes go through a temp
// file and rename, so readers never observe partial content; the worst case
// is a redundant recomputation when the last writer wins. Deleting the
// cache directory is always safe.
type Cache struct {
	dir string
	key string

	mu      sync.Mutex
	entries map[string]string
	loaded  bool
}

// NewCache creates a cache rooted at dir for the given engine version.
func NewCache(dir, engineVersion string) *Cache {
	return &Cache{
		dir: dir,
		key: fmt.Sprintf("%s-%s", schemaEpoch, engineVersion),
	}
}

func (c *Cache) file() string {
	return filepath.Join(c.dir, "lexmap-"+c.key)
}

// Lookup returns the memoized lexer for key. The second return reports
// whether an entry exists; an existing empty entry means "no lexer" and is
// a valid memoized answer.
func (c *Cache) Lookup(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()
	lexer, ok := c.entries[key]
	return lexer, ok
}

// Store memoizes a lookup result and persists the whole map. Persistence
// failures are logged and otherwise ignored: the cache is an optimization,
// never required for correctness.
func (c *Cache) Store(key, lexer string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()
	c.entries[key] = lexer
	c.persist()
}

func (c *Cache) load() {
	if c.loaded {
		return
	}
	c.loaded = true
	c.entries = make(map[string]string)

	f, err := os.Open(c.file())
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, lexer, found := strings.Cut(scanner.Text(), "\t")
		if found {
			c.entries[key] = lexer
		}
	}
}

func (c *Cache) persist() {
	logger := logging.GetLogger("highlight.cache")

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		logger.Debug().Err(err).Str("dir", c.dir).Msg("cannot create cache dir")
		return
	}

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte('\t')
		sb.WriteString(c.entries[k])
		sb.WriteByte('\n')
	}

	// The temp prefix must not collide with the published "lexmap-" names:
	// pruneStale globs those, and a racing writer's unrenamed file is not
	// stale.
	tmp, err := os.CreateTemp(c.dir, ".lexmap-*")
	if err != nil {
		logger.Debug().Err(err).Msg("cannot create cache temp file")
		return
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(sb.String()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		logger.Debug().Err(err).Msg("cannot write cache temp file")
		return
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return
	}
	if err := os.Rename(tmpName, c.file()); err != nil {
		_ = os.Remove(tmpName)
		logger.Debug().Err(err).Msg("cannot publish cache file")
		return
	}

	c.pruneStale()
}

// pruneStale removes lexmap files written under other cache keys, typically
// left behind by a previous engine version.
func (c *Cache) pruneStale() {
	matches, err := filepath.Glob(filepath.Join(c.dir, "lexmap-*"))
	if err != nil {
		return
	}
	current := c.file()
	for _, match := range matches {
		if match != current {
			_ = os.Remove(match)
		}
	}
}
