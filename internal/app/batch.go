package app

import (
	"bufio"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"protgroup/internal/batch"
	"protgroup/internal/cli"
	"protgroup/internal/input"
	"protgroup/internal/observability"
	"protgroup/internal/output"
	"protgroup/internal/parsimony"
	"protgroup/internal/writers"
)

func newBatchCmd(opts *cli.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <evidence.tsv>...",
		Short: "resolve several evidence files concurrently",
		Long: `Each file is resolved independently. Output follows argument order;
text output gains a source column, json emits one document per file.`,
		Example: `  protgroup batch --workers 4 run1.tsv run2.tsv run3.tsv.gz
  protgroup batch -o json --metrics-file /var/lib/node_exporter/protgroup.prom runs/*.tsv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, *opts, args)
		},
	}
	cli.AddResolveFlags(cmd.Flags(), opts)
	cli.AddBatchFlags(cmd.Flags(), opts)
	return cmd
}

func runBatch(cmd *cobra.Command, o cli.Options, paths []string) error {
	ctx := cmd.Context()
	e, err := setup(cmd, o)
	if err != nil {
		return err
	}
	defer e.close(ctx)

	evs, err := loadAll(paths)
	if err != nil {
		return usageErr(err)
	}

	var (
		mu   sync.Mutex
		runs = make([]observability.RunSample, len(paths))
	)
	jobs := make([]batch.Job, len(paths))
	for i, path := range paths {
		i, path := i, path
		prog := observability.TraceProgress(ctx, e.log, path)
		popt := e.opts
		popt.Progress = prog
		jobs[i] = batch.Job{
			Name:    path,
			Input:   evs[i].Input().WithOrganisms(e.orgs),
			Options: popt,
			OnDone: func(res parsimony.Result, err error) {
				d := prog.End(res.Stats, err)
				mu.Lock()
				runs[i] = observability.RunSample{Source: path, Stats: res.Stats, Duration: d, Finished: time.Now()}
				mu.Unlock()
			},
		}
	}

	outcomes, err := batch.Run(ctx, jobs, e.cfg.Batch.Workers)
	if err != nil {
		return failureErr(err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	outw := bufio.NewWriter(cmd.OutOrStdout())
	for i, oc := range outcomes {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.logRun(oc.Name, oc.Result.Stats)
		payload := writers.Payload{
			RunID:  uuid.NewString(),
			Source: oc.Name,
			Result: oc.Result,
			Text: output.TextOptions{
				Header: e.cfg.Output.Header && i == 0,
				Flags:  e.cfg.Output.Flags,
				Taxon:  e.cfg.SplitTaxonomy,
				Source: oc.Name,
			},
		}
		if err := writers.Write(e.cfg.Output.Format, outw, payload); err != nil {
			if writers.IsBrokenPipe(err) {
				return nil
			}
			return failureErr(err)
		}
	}
	if err := outw.Flush(); err != nil && !writers.IsBrokenPipe(err) {
		return failureErr(err)
	}

	e.writeMetrics(runs)
	return nil
}

// loadAll reads every evidence file before any work starts, so a bad file
// fails the batch without leaving runs half started.
func loadAll(paths []string) ([]input.Evidence, error) {
	evs := make([]input.Evidence, len(paths))
	for i, path := range paths {
		ev, err := input.Load(path)
		if err != nil {
			return nil, err
		}
		evs[i] = ev
	}
	return evs, nil
}
