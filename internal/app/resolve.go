package app

import (
	"bufio"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"protgroup/internal/cli"
	"protgroup/internal/input"
	"protgroup/internal/observability"
	"protgroup/internal/output"
	"protgroup/internal/parsimony"
	"protgroup/internal/writers"
)

func newResolveCmd(opts *cli.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <evidence.tsv|->",
		Short: "resolve one evidence file into protein groups",
		Long: `Reads "protein peptide [flag]" lines and prints the protein groups.
Use '-' to read standard input; .gz files are decompressed.`,
		Example: `  protgroup resolve evidence.tsv
  zcat evidence.tsv.gz | protgroup resolve -o jsonl -
  protgroup resolve --split-taxonomy --rank genus --nodes nodes.dmp --organisms orgs.tsv evidence.tsv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, *opts, args[0])
		},
	}
	cli.AddResolveFlags(cmd.Flags(), opts)
	return cmd
}

func runResolve(cmd *cobra.Command, o cli.Options, path string) error {
	ctx := cmd.Context()
	e, err := setup(cmd, o)
	if err != nil {
		return err
	}
	defer e.close(ctx)

	ev, err := input.Load(path)
	if err != nil {
		return usageErr(err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	e.log.Debug().Str("source", path).Int("proteins", len(ev.Proteins)).Int("associations", ev.Associations).Msg("evidence loaded")

	prog := observability.TraceProgress(ctx, e.log, path)
	popt := e.opts
	popt.Progress = prog
	res, err := parsimony.Resolve(ev.Input().WithOrganisms(e.orgs), popt)
	d := prog.End(res.Stats, err)
	if err != nil {
		return failureErr(err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	e.logRun(path, res.Stats)

	outw := bufio.NewWriter(cmd.OutOrStdout())
	payload := writers.Payload{
		RunID:  uuid.NewString(),
		Source: path,
		Result: res,
		Text: output.TextOptions{
			Header: e.cfg.Output.Header,
			Flags:  e.cfg.Output.Flags,
			Taxon:  e.cfg.SplitTaxonomy,
		},
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writers.Write(e.cfg.Output.Format, outw, payload); err != nil && !writers.IsBrokenPipe(err) {
		return failureErr(err)
	}
	if err := outw.Flush(); err != nil && !writers.IsBrokenPipe(err) {
		return failureErr(err)
	}

	e.writeMetrics([]observability.RunSample{{Source: path, Stats: res.Stats, Duration: d, Finished: time.Now()}})
	return nil
}
