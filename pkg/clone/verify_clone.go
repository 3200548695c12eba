package clone

import (
	"fmt"

	"github.com/spf13/afero"
)

// VerifyClone re-reads a freshly written clone and checks that it holds
// exactly the expected text.
func VerifyClone(fs afero.Fs, path, want string) error {
	if path == "" {
		return fmt.Errorf("VerifyClone: path is empty")
	}

	got, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("VerifyClone: cannot read back %s: %w", path, err)
	}
	if string(got) != want {
		return fmt.Errorf("VerifyClone: %s holds %d bytes, expected %d", path, len(got), len(want))
	}
	return nil
}
