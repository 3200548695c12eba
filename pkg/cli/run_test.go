package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/woliveiras/jsonclone/pkg/clone"
)

type bufferUI struct {
	out    bytes.Buffer
	errOut bytes.Buffer
}

func (u *bufferUI) Printf(format string, a ...any) { fmt.Fprintf(&u.out, format, a...) }
func (u *bufferUI) Warnf(format string, a ...any) { fmt.Fprintf(&u.errOut, format, a...) }

// helper to run the CLI against a buffered UI.
func runCLI(t *testing.T, args ...string) (*bufferUI, error) {
	t.Helper()

	ui := &bufferUI{}
	err := run(append([]string{"jsonclone"}, args...), ui)
	return ui, err
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir %s: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRun_NoArguments(t *testing.T) {
	if err := run(nil, &bufferUI{}); err == nil || err.Error() != "no arguments provided" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRun_RequiresStartAndNew(t *testing.T) {
	_, err := runCLI(t, "--dir", t.TempDir())
	if err == nil {
		t.Fatalf("expected error when --start and --new are missing")
	}
	if !strings.Contains(err.Error(), "required flag") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRun_RejectsEmptyPrefix(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"stone.json": "{}"})

	_, err := runCLI(t, "--dir", dir, "--start", "", "--new", "granite")
	require.ErrorContains(t, err, "--start must not be empty")
	require.Equal(t, []string{"stone.json"}, listDir(t, dir))
}

func TestRun_IdenticalPrefixesReportSkips(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"stone.json": `"stone"`, "stone_slab.json": `"stone_slab"`})

	ui, err := runCLI(t, "--dir", dir, "--start", "stone", "--new", "stone")
	require.NoError(t, err)
	require.Equal(t,
		"⚠️  Skipping existing file: "+filepath.Join(dir, "stone.json")+"\n"+
			"⚠️  Skipping existing file: "+filepath.Join(dir, "stone_slab.json")+"\n",
		ui.out.String())
	require.Equal(t, `"stone"`, readFile(t, filepath.Join(dir, "stone.json")))
}

func TestRun_ClonesStayInDirectory(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "blockstates")
	require.NoError(t, os.Mkdir(dir, 0o755))
	writeFiles(t, dir, map[string]string{"stone.json": `"stone"`})

	ui, err := runCLI(t, "--dir", dir, "--start", "stone", "--new", "../escaped")
	require.ErrorIs(t, err, clone.ErrPrefixHasSeparator)
	require.Empty(t, ui.out.String())
	require.Equal(t, []string{"blockstates"}, listDir(t, root))
	require.Equal(t, []string{"stone.json"}, listDir(t, dir))
}

func TestRun_ClonesStoneBricks(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"stone_bricks.json":      `{"parent":"block/stone_bricks"}`,
		"stone_bricks_slab.json": `{"parent":"block/slab","textures":{"side":"block/stone_bricks"}}`,
		"stone_bricks.txt":       "stone_bricks",
	})

	ui, err := runCLI(t, "--dir", dir, "--start", "stone_bricks", "--new", "cracked_stone_bricks")
	require.NoError(t, err)

	require.Equal(t,
		"✓ stone_bricks.json → cracked_stone_bricks.json\n"+
			"✓ stone_bricks_slab.json → cracked_stone_bricks_slab.json\n",
		ui.out.String())
	require.Empty(t, ui.errOut.String())

	require.Equal(t, `{"parent":"block/cracked_stone_bricks"}`,
		readFile(t, filepath.Join(dir, "cracked_stone_bricks.json")))
	require.Equal(t, `{"parent":"block/slab","textures":{"side":"block/cracked_stone_bricks"}}`,
		readFile(t, filepath.Join(dir, "cracked_stone_bricks_slab.json")))
	require.ElementsMatch(t, []string{
		"stone_bricks.json",
		"stone_bricks_slab.json",
		"stone_bricks.txt",
		"cracked_stone_bricks.json",
		"cracked_stone_bricks_slab.json",
	}, listDir(t, dir))
}

func TestRun_SecondRunLeavesClonesUntouched(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a_a.json": `{"a":"a"}`})

	_, err := runCLI(t, "--dir", dir, "--start", "a", "--new", "bb")
	require.NoError(t, err)
	first := readFile(t, filepath.Join(dir, "bb_a.json"))
	require.Equal(t, `{"bb":"bb"}`, first)

	ui, err := runCLI(t, "--dir", dir, "--start", "a", "--new", "bb")
	require.NoError(t, err)
	require.Equal(t, "⚠️  Skipping existing file: "+filepath.Join(dir, "bb_a.json")+"\n", ui.out.String())
	require.Empty(t, ui.errOut.String())
	require.Equal(t, first, readFile(t, filepath.Join(dir, "bb_a.json")))
}

func TestRun_DecodeFailureDoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"mixed_stone.json":      `{"name":"mixed_stone"}`,
		"mixed_stone_bad.json":  "\xc3\x28",
		"mixed_stone_wall.json": `{"name":"mixed_stone_wall"}`,
	})

	ui, err := runCLI(t, "--dir", dir, "--start", "mixed_stone", "--new", "endethyst_brick")
	require.NoError(t, err)

	require.Equal(t, 2, strings.Count(ui.out.String(), "✓ "))
	bad := filepath.Join(dir, "mixed_stone_bad.json")
	require.Contains(t, ui.errOut.String(), "⚠️  Cannot decode "+bad+": invalid UTF-8 at byte 0")
	require.Equal(t, 1, strings.Count(ui.errOut.String(), bad))
	_, statErr := os.Stat(filepath.Join(dir, "endethyst_brick_bad.json"))
	require.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestRun_NoMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"andesite.json": "{}"})

	_, err := runCLI(t, "--dir", dir, "--start", "stone_bricks", "--new", "cracked_stone_bricks")
	require.ErrorIs(t, err, clone.ErrNoMatches)
	require.Equal(t, []string{"andesite.json"}, listDir(t, dir))

	_, err = runCLI(t, "--dir", t.TempDir(), "--start", "stone_bricks", "--new", "cracked_stone_bricks")
	require.ErrorIs(t, err, clone.ErrNoMatches)
}

func TestRun_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := runCLI(t, "--dir", missing, "--start", "a", "--new", "b")
	require.ErrorIs(t, err, clone.ErrDirectoryNotFound)
	require.Contains(t, err.Error(), missing)
}

func TestRun_DefaultsToWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"oak.json": `"oak"`})
	prevWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prevWD) })

	ui, err := runCLI(t, "--start", "oak", "--new", "birch")
	require.NoError(t, err)
	require.Equal(t, "✓ oak.json → birch.json\n", ui.out.String())
	require.Equal(t, `"birch"`, readFile(t, filepath.Join(dir, "birch.json")))
}

func TestValidateOptions(t *testing.T) {
	cases := []struct {
		opts    Options
		wantErr string
	}{
		{Options{Start: "a", New: "b"}, ""},
		{Options{New: "b"}, "--start must not be empty"},
		{Options{Start: "a"}, "--new must not be empty"},
		{Options{Start: "a", New: "a"}, ""},
	}

	for _, tc := range cases {
		err := validateOptions(tc.opts)
		if tc.wantErr == "" {
			if err != nil {
				t.Fatalf("validateOptions(%+v) unexpected error: %v", tc.opts, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
			t.Fatalf("validateOptions(%+v) error = %v, want %q", tc.opts, err, tc.wantErr)
		}
	}
}
