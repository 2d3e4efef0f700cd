// Package paths resolves the filesystem locations prettycat depends on:
// the canonical form of the subject file handed over by the pager, and the
// cache/config roots derived from the XDG base directories.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/prettycat/pkg/errors"
)

// AppDirName is the directory name used under the XDG roots
const AppDirName = "prettycat"

// CacheRootEnvVar overrides the cache root when set
const CacheRootEnvVar = "PRETTYCAT_CACHE"

// maxSymlinkDepth bounds symlink chain resolution. A chain longer than this
// is treated as a cycle.
const maxSymlinkDepth = 40

// Canonical resolves path to an absolute path with every symlink in the
// final component followed. Unlike filepath.EvalSymlinks it does not require
// intermediate directories to resolve, which matters when the pager hands us
// a path inside a directory we cannot list.
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot absolutize %q", path)
	}

	current := abs
	for i := 0; i < maxSymlinkDepth; i++ {
		info, err := os.Lstat(current)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrFileNotFound, "cannot stat %q", current)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return current, nil
		}
		target, err := os.Readlink(current)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read link %q", current)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(current), target)
		}
		current = filepath.Clean(target)
	}

	return "", errors.Newf(errors.ErrSymlinkLoop,
		"symlink chain exceeds %d links starting at %q", maxSymlinkDepth, path)
}

// CacheRoot returns the directory for memoized state. Resolution order:
// the PRETTYCAT_CACHE override, then the XDG cache home, then a dot
// directory under the user's home.
func CacheRoot() string {
	if override := os.Getenv(CacheRootEnvVar); override != "" {
		return override
	}
	if xdg.CacheHome != "" {
		return filepath.Join(xdg.CacheHome, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, "."+AppDirName, "cache")
}

// ConfigFile returns the path of the optional user configuration file.
func ConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppDirName, "config.toml")
}
