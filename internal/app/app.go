// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"protgroup/internal/cli"
	"protgroup/internal/version"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2 // bad flags, config or input
	ExitFailure  = 3 // output or internal failure
	ExitCanceled = 130
)

// exitError carries the process exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErr(err error) error   { return &exitError{ExitUsage, err} }
func failureErr(err error) error { return &exitError{ExitFailure, err} }

func exitCode(err error) int {
	var ee *exitError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case errors.As(err, &ee):
		return ee.code
	default:
		// cobra argument and flag errors
		return ExitUsage
	}
}

// Run executes the protgroup command line and returns the exit code.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// RunContext is Run with a caller-supplied context (cancel → exit 130).
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(argv)
	err := root.ExecuteContext(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
	}
	return exitCode(err)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts cli.Options
	root := &cobra.Command{
		Use:   "protgroup",
		Short: "protgroup: protein group parsimony",
		Long: `protgroup collapses protein identifications into non-redundant protein groups.

Proteins with identical peptide evidence are merged; a protein whose peptides
are all contained in another protein's is absorbed by it. With
--split-taxonomy, grouping only happens between proteins of the same taxon.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("protgroup version {{.Version}}\n")
	cli.AddGlobalFlags(root.PersistentFlags(), &opts)

	root.AddCommand(
		newResolveCmd(&opts),
		newBatchCmd(&opts),
		&cobra.Command{
			Use:   "version",
			Short: "print version and exit",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "protgroup version %s\n", version.Version)
				return err
			},
		},
	)
	return root
}
