// Package cli provides the command-line interface used by jsonclone.
//
// The CLI parses flags, validates them, builds a clone plan for the chosen
// directory and applies it, printing one line per cloned or skipped file.
// Use `Run` as the entry point when embedding the CLI in other tools.
//
// Example usage:
//
//	if err := cli.Run(os.Args); err != nil {
//	    fmt.Fprintf(os.Stderr, "jsonclone: %v\n", err)
//	    os.Exit(1)
//	}
package cli
