package clone

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const jsonExt = ".json"

// FindCandidates lists the direct children of dir whose name matches
// <prefix>*.json. It never descends into subdirectories and skips
// directories that happen to carry a .json name. Results are sorted by name.
//
// The prefix is matched literally, so glob metacharacters such as '*' or '['
// inside it carry no special meaning.
func FindCandidates(fs afero.Fs, dir, prefix string) ([]string, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("cannot list %s: %w", dir, err)
	}

	var candidates []string
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		if !matchesPrefix(info.Name(), prefix) {
			continue
		}
		candidates = append(candidates, filepath.Join(dir, info.Name()))
	}
	return candidates, nil
}

// matchesPrefix reports whether name matches the pattern <prefix>*.json.
// The prefix and the extension may not overlap: "a.json" is not matched by
// the prefix "a.json".
func matchesPrefix(name, prefix string) bool {
	if len(name) < len(prefix)+len(jsonExt) {
		return false
	}
	return strings.HasPrefix(name, prefix) && strings.HasSuffix(name, jsonExt)
}
