package clone

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrNoMatches is returned by Plan when no file matches <start>*.json.
var ErrNoMatches = errors.New("no matching files found")

// PlanOptions represents the inputs required to compute a clone plan.
// It mirrors the user-facing options parsed by the CLI.
type PlanOptions struct {
	Directory string
	Start     string
	New       string
}

// DefaultFs is used by Plan. It can be replaced in tests if needed.
var DefaultFs afero.Fs = afero.NewOsFs()

// PlanResult describes which files will be cloned and under which names.
type PlanResult struct {
	Directory string
	Start     string
	New       string
	Entries   []CloneEntry
}

// CloneEntry pairs a candidate file with the path of its clone. Both paths
// live in PlanResult.Directory.
type CloneEntry struct {
	Source      string
	Destination string
}

// Plan resolves the directory, discovers the candidate files and derives the
// destination of every clone. It does not read or write any file content.
func Plan(opts PlanOptions) (PlanResult, error) {
	return PlanWithFs(DefaultFs, opts)
}

// PlanWithFs is the underlying implementation used by Plan. It exists so
// that tests can inject an in-memory filesystem without touching global state.
func PlanWithFs(fs afero.Fs, opts PlanOptions) (PlanResult, error) {
	if err := ValidatePrefixes(opts.Start, opts.New); err != nil {
		return PlanResult{}, err
	}

	dir, err := ResolveDirectory(fs, opts.Directory)
	if err != nil {
		return PlanResult{}, err
	}

	candidates, err := FindCandidates(fs, dir, opts.Start)
	if err != nil {
		return PlanResult{}, err
	}
	if len(candidates) == 0 {
		return PlanResult{}, fmt.Errorf("%w for %s*%s in %s; nothing to do", ErrNoMatches, opts.Start, jsonExt, dir)
	}

	entries := make([]CloneEntry, 0, len(candidates))
	for _, src := range candidates {
		dstName := DestinationName(filepath.Base(src), opts.Start, opts.New)
		if dstName == "" || filepath.Base(dstName) != dstName {
			return PlanResult{}, fmt.Errorf("%w: clone of %s would be named %q", ErrPrefixHasSeparator, filepath.Base(src), dstName)
		}
		entries = append(entries, CloneEntry{
			Source:      src,
			Destination: filepath.Join(dir, dstName),
		})
	}
	logSink.Debugw("planned clones", "directory", dir, "candidates", len(entries))

	return PlanResult{
		Directory: dir,
		Start:     opts.Start,
		New:       opts.New,
		Entries:   entries,
	}, nil
}

// String renders a human-readable description of the plan.
func (p PlanResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Clone plan: %s (%s -> %s)\n", p.Directory, p.Start, p.New)
	for _, e := range p.Entries {
		fmt.Fprintf(&b, "  - %s -> %s\n", filepath.Base(e.Source), filepath.Base(e.Destination))
	}
	return b.String()
}
