package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/woliveiras/jsonclone/pkg/clone"
)

const (
	flagDir     = "dir"
	flagStart   = "start"
	flagNew     = "new"
	flagVerbose = "verbose"
)

// Options holds the configuration for a clone run.
type Options struct {
	Directory string `flag:"dir"`
	Start     string `flag:"start" validate:"required"`
	New       string `flag:"new" validate:"required"`
	Verbose   bool   `flag:"verbose"`
}

// UI abstracts console output so the command stays testable.
type UI interface {
	Printf(format string, a ...any)
	Warnf(format string, a ...any)
}

type stdUI struct {
	out    io.Writer
	errOut io.Writer
}

// NewStdUI returns a UI backed by stdout/stderr.
func NewStdUI() UI {
	return &stdUI{
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

func (u *stdUI) Printf(format string, a ...any) {
	fmt.Fprintf(u.out, format, a...)
}

func (u *stdUI) Warnf(format string, a ...any) {
	fmt.Fprintf(u.errOut, format, a...)
}

// Run is the main entrypoint for the CLI. args includes the program name.
//
// It returns an error for every condition that must end the process with a
// non-zero status: bad flags, a missing directory or no matching files.
// Files skipped during the run are reported but do not produce an error.
func Run(args []string) error {
	return run(args, NewStdUI())
}

// run is the internal implementation that allows injecting a custom UI.
func run(args []string, ui UI) error {
	if len(args) == 0 {
		return fmt.Errorf("no arguments provided")
	}

	cmd := newRootCommand(ui)
	cmd.SetArgs(args[1:])
	return cmd.Execute()
}

func newRootCommand(ui UI) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "jsonclone --start <prefix> --new <prefix> [--dir <path>]",
		Short: "Clone block-state JSON files under a new name prefix",
		Long: `jsonclone copies every <start>*.json file in a directory to a sibling
whose name starts with <new> instead, replacing every occurrence of <start>
inside the copied text. Existing files are never overwritten.`,
		Example:       "  jsonclone --dir assets/mctradepost/blockstates --start stone_bricks --new cracked_stone_bricks",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := loadOptions(v)
			if err != nil {
				return err
			}
			return execute(opts, ui)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.String(flagDir, ".", "directory to search")
	flags.String(flagStart, "", "original pattern (prefix)")
	flags.String(flagNew, "", "replacement pattern (prefix)")
	flags.BoolP(flagVerbose, "v", false, "log diagnostics to stderr")
	_ = cmd.MarkFlagRequired(flagStart)
	_ = cmd.MarkFlagRequired(flagNew)
	bindFlags(v, flags)

	return cmd
}

// bindFlags makes every flag readable through v. Only flags are bound:
// no config file or environment variable can change a run.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})
}

func loadOptions(v *viper.Viper) (Options, error) {
	opts := Options{
		Directory: v.GetString(flagDir),
		Start:     v.GetString(flagStart),
		New:       v.GetString(flagNew),
		Verbose:   v.GetBool(flagVerbose),
	}
	if err := validateOptions(opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func validateOptions(opts Options) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("flag")
	})

	err := validate.Struct(opts)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("--%s must not be empty", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("--%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid options: %s", strings.Join(msgs, "; "))
}

func newLogger(verbose bool) *zap.SugaredLogger {
	if !verbose {
		return zap.NewNop().Sugar()
	}
	return zap.Must(zap.NewDevelopment()).Sugar()
}

func execute(opts Options, ui UI) error {
	logger := newLogger(opts.Verbose)
	defer func() { _ = logger.Sync() }()
	clone.SetLogger(logger)
	defer clone.SetLogger(nil)

	plan, err := clone.Plan(clone.PlanOptions{
		Directory: opts.Directory,
		Start:     opts.Start,
		New:       opts.New,
	})
	if err != nil {
		return err
	}
	logger.Debug(strings.TrimRight(plan.String(), "\n"))

	runner := clone.NewFileRunner(clone.DefaultFs)
	report, err := clone.Apply(plan, runner, func(res clone.StepResult) {
		printResult(ui, res)
	})
	if err != nil {
		return err
	}

	logger.Infow("clone run finished",
		"cloned", report.Count(clone.OutcomeCloned),
		"skipped_existing", report.Count(clone.OutcomeSkippedExisting),
		"skipped_decode", report.Count(clone.OutcomeSkippedDecode),
	)
	return nil
}

func printResult(ui UI, res clone.StepResult) {
	switch res.Outcome {
	case clone.OutcomeCloned:
		ui.Printf("✓ %s → %s\n", filepath.Base(res.Step.Source), filepath.Base(res.Step.Destination))
	case clone.OutcomeSkippedExisting:
		ui.Printf("⚠️  Skipping existing file: %s\n", res.Step.Destination)
	case clone.OutcomeSkippedDecode:
		ui.Warnf("⚠️  Cannot decode %s: %v\n", res.Step.Source, res.Err)
	}
}
