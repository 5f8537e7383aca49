package server

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// ErrResolve wraps a path that could not be canonicalized. Callers turn
// it into a response string; it never escapes a connection worker.
var ErrResolve = fmt.Errorf("cannot resolve path")

// Resolve turns a raw path token into a canonical absolute path relative
// to base. Rules, in order: empty or "~" is the home directory ("/" when
// HOME is unset); "~/rest" is home-joined; "." is base; ".." is base's
// parent; a leading "/" is absolute; anything else is base-joined.
// The result has symlinks resolved and dot segments collapsed.
func Resolve(raw, base string) (string, error) {
	var p string
	switch {
	case raw == "" || raw == "~":
		p = homeDir()
	case strings.HasPrefix(raw, "~/"):
		p = filepath.Join(homeDir(), raw[2:])
	case raw == ".":
		p = base
	case raw == "..":
		p = filepath.Dir(base)
	case strings.HasPrefix(raw, "/"):
		p = raw
	default:
		p = filepath.Join(base, raw)
	}

	canonical, err := filepath.EvalSymlinks(filepath.Clean(p))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrResolve, raw, err)
	}
	if !filepath.IsAbs(canonical) {
		canonical, err = filepath.Abs(canonical)
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrResolve, raw, err)
		}
	}
	return canonical, nil
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	return "/"
}

// validateDirectory reports whether path exists, is a directory, and is
// readable and executable by this process. Failures are logged, not
// returned.
func validateDirectory(log *slog.Logger, path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		log.Error("directory does not exist", "path", path, "err", err)
		return false
	}
	if !info.IsDir() {
		log.Error("path is not a directory", "path", path)
		return false
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		log.Error("directory lacks read/execute permission", "path", path, "err", err)
		return false
	}
	return true
}
