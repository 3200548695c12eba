package clone

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// FileRunner executes ExecutionStep values against a filesystem. Clones are
// written with an exclusive create so an existing destination is never
// truncated, even if it appears between planning and writing.
type FileRunner struct {
	Fs     afero.Fs
	Verify bool
}

func NewFileRunner(fs afero.Fs) *FileRunner {
	return &FileRunner{
		Fs:     fs,
		Verify: true,
	}
}

func (r *FileRunner) Run(step ExecutionStep) error {
	switch step.Operation {
	case OpCloneFile:
		return r.runCloneFile(step)
	default:
		return fmt.Errorf("unknown operation %q for step: %s", step.Operation, step.Description)
	}
}

func (r *FileRunner) runCloneFile(step ExecutionStep) error {
	if step.Source == "" || step.Destination == "" {
		return fmt.Errorf("clone-file: missing source or destination")
	}

	data, err := afero.ReadFile(r.Fs, step.Source)
	if err != nil {
		return fmt.Errorf("clone-file: cannot read %s: %w", step.Source, err)
	}

	text, err := RewriteContent(data, step.Start, step.New)
	if err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			decodeErr.Path = step.Source
		}
		return err
	}

	f, err := r.Fs.OpenFile(step.Destination, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrDestinationExists, step.Destination)
		}
		return fmt.Errorf("clone-file: cannot create %s: %w", step.Destination, err)
	}

	_, writeErr := f.WriteString(text)
	closeErr := f.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		if rmErr := r.Fs.Remove(step.Destination); rmErr != nil {
			logSink.Warnf("cannot remove partial clone %s: %v", step.Destination, rmErr)
		}
		return fmt.Errorf("clone-file: cannot write %s: %w", step.Destination, err)
	}
	logSink.Debugw("wrote clone", "destination", step.Destination, "bytes", len(text))

	if r.Verify {
		return VerifyClone(r.Fs, step.Destination, text)
	}
	return nil
}
