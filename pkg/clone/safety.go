package clone

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var (
	// ErrDirectoryNotFound is returned when the requested directory is missing.
	ErrDirectoryNotFound = errors.New("directory does not exist")
	// ErrNotDirectory is returned when the requested path exists but is a file.
	ErrNotDirectory = errors.New("not a directory")
	// ErrPrefixHasSeparator is returned for prefixes that would move a clone
	// out of the source directory.
	ErrPrefixHasSeparator = errors.New("prefix must not contain a path separator")
)

// ResolveDirectory expands a leading "~" to the user's home directory, makes
// the path absolute and checks that it names an existing directory on fs.
// Only "~" and "~/..." are expanded; "~user" forms are taken literally.
func ResolveDirectory(fs afero.Fs, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}

	expanded, err := expandHome(dir)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("cannot resolve directory %s: %w", dir, err)
	}

	info, err := fs.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrDirectoryNotFound, abs)
		}
		return "", fmt.Errorf("cannot inspect directory %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}
	return abs, nil
}

// ValidatePrefixes performs the checks Plan needs before touching any file:
// both prefixes must be set and neither may contain a path separator, so a
// clone always lands next to its source.
func ValidatePrefixes(start, replacement string) error {
	if start == "" {
		return fmt.Errorf("start prefix cannot be empty")
	}
	if replacement == "" {
		return fmt.Errorf("new prefix cannot be empty")
	}
	for _, p := range []string{start, replacement} {
		if strings.ContainsAny(p, `/`+string(filepath.Separator)) {
			return fmt.Errorf("%w: %q", ErrPrefixHasSeparator, p)
		}
	}
	return nil
}

func expandHome(dir string) (string, error) {
	if dir != "~" && !strings.HasPrefix(dir, "~/") && !strings.HasPrefix(dir, "~"+string(filepath.Separator)) {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand %s: %w", dir, err)
	}
	if dir == "~" {
		return home, nil
	}
	return filepath.Join(home, dir[2:]), nil
}
