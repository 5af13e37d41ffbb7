package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"protgroup/internal/cli"
	"protgroup/internal/config"
	"protgroup/internal/observability"
	"protgroup/internal/parsimony"
	"protgroup/internal/taxonomy"
)

// env is the state shared by resolve and batch once flags are parsed.
type env struct {
	cfg      config.Config
	log      zerolog.Logger
	opts     parsimony.Options
	orgs     map[string]string
	shutdown func(context.Context) error
}

func setup(cmd *cobra.Command, o cli.Options) (*env, error) {
	if err := o.Validate(); err != nil {
		return nil, usageErr(err)
	}
	cfg := config.Default()
	if o.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(o.ConfigPath); err != nil {
			return nil, usageErr(err)
		}
	}
	cfg = cli.Merge(cfg, cmd.Flags(), o)
	if err := cfg.Validate(); err != nil {
		return nil, usageErr(err)
	}

	log, err := observability.NewLogger(cmd.ErrOrStderr(), "protgroup", cfg.Log.Level)
	if err != nil {
		return nil, usageErr(err)
	}
	e := &env{cfg: cfg, log: log, shutdown: func(context.Context) error { return nil }}
	if o.Trace {
		stopTrace, err := observability.InstallTracing(cmd.ErrOrStderr())
		if err != nil {
			return nil, failureErr(err)
		}
		stopMetrics, err := observability.InstallMetrics(cmd.ErrOrStderr())
		if err != nil {
			_ = stopTrace(cmd.Context())
			return nil, failureErr(err)
		}
		e.shutdown = func(ctx context.Context) error {
			return errors.Join(stopTrace(ctx), stopMetrics(ctx))
		}
	}

	rank, err := taxonomy.ParseRank(cfg.Rank)
	if err != nil {
		return nil, usageErr(err)
	}
	e.opts = parsimony.Options{SplitTaxonomy: cfg.SplitTaxonomy, Rank: rank}
	if cfg.SplitTaxonomy {
		tree, err := taxonomy.Load(cfg.Taxonomy.Nodes)
		if err != nil {
			return nil, usageErr(fmt.Errorf("taxonomy: %w", err))
		}
		if e.orgs, err = taxonomy.LoadOrganisms(cfg.Taxonomy.Organisms); err != nil {
			return nil, usageErr(fmt.Errorf("organisms: %w", err))
		}
		e.opts.Taxonomy = tree
		log.Debug().Int("nodes", tree.Len()).Int("organisms", len(e.orgs)).Str("rank", string(rank)).Msg("taxonomy loaded")
	}
	return e, nil
}

// close flushes telemetry even when the run was cancelled.
func (e *env) close(ctx context.Context) {
	if err := e.shutdown(context.WithoutCancel(ctx)); err != nil {
		e.log.Warn().Err(err).Msg("telemetry shutdown")
	}
}

func (e *env) writeMetrics(runs []observability.RunSample) {
	if e.cfg.Metrics.Textfile == "" {
		return
	}
	if err := observability.WriteTextfile(e.cfg.Metrics.Textfile, runs); err != nil {
		e.log.Warn().Err(err).Str("path", e.cfg.Metrics.Textfile).Msg("metrics textfile not written")
	}
}

func (e *env) logRun(source string, st parsimony.Stats) {
	if st.DuplicatePeptides > 0 {
		e.log.Warn().Str("source", source).Int("duplicates", st.DuplicatePeptides).Msg("duplicate peptides collapsed")
	}
	e.log.Info().
		Str("source", source).
		Int("proteins", st.Proteins).
		Int("clusters", st.Clusters).
		Int("merges", st.Merges).
		Int("groups", st.Groups).
		Msg("resolved")
}
