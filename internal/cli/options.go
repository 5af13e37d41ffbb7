// internal/cli/options.go
package cli

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"

	"protgroup/internal/config"
	"protgroup/internal/output"
)

// Options holds every command-line flag. Values only override the config
// file when the flag was given explicitly.
type Options struct {
	// Global
	ConfigPath string
	Quiet      bool
	Verbose    bool
	Trace      bool

	// Grouping
	SplitTaxonomy bool
	Rank          string
	Nodes         string
	Organisms     string

	// Output
	Output      string
	NoHeader    bool
	Flags       bool
	MetricsFile string

	// Batch
	Workers int
}

// AddGlobalFlags registers flags shared by every command.
func AddGlobalFlags(fs *pflag.FlagSet, o *Options) {
	fs.StringVar(&o.ConfigPath, "config", "", "TOML or YAML config file")
	fs.BoolVarP(&o.Quiet, "quiet", "q", false, "only log warnings and errors")
	fs.BoolVar(&o.Verbose, "verbose", false, "log checkpoints and debug detail")
	fs.BoolVar(&o.Trace, "trace", false, "write OpenTelemetry spans as JSON to stderr")
}

// AddResolveFlags registers grouping and output flags.
func AddResolveFlags(fs *pflag.FlagSet, o *Options) {
	fs.BoolVar(&o.SplitTaxonomy, "split-taxonomy", false, "only group proteins within one taxon at --rank")
	fs.StringVar(&o.Rank, "rank", "species", "taxonomy rank for --split-taxonomy")
	fs.StringVar(&o.Nodes, "nodes", "", "taxonomy nodes file (nodes.dmp style, .gz ok)")
	fs.StringVar(&o.Organisms, "organisms", "", "protein→organism TSV (.gz ok)")
	fs.StringVarP(&o.Output, "output", "o", output.FormatText, "output format: "+strings.Join(output.Formats, " | "))
	fs.BoolVar(&o.NoHeader, "no-header", false, "suppress header line in text output")
	fs.BoolVar(&o.Flags, "flags", false, "include per-peptide flags in text output")
	fs.StringVar(&o.MetricsFile, "metrics-file", "", "write Prometheus textfile metrics here")
}

// AddBatchFlags registers batch-only flags.
func AddBatchFlags(fs *pflag.FlagSet, o *Options) {
	fs.IntVar(&o.Workers, "workers", 0, "concurrent inputs (0 = all CPUs)")
}

// Merge applies explicitly set flags on top of cfg.
func Merge(cfg config.Config, fs *pflag.FlagSet, o Options) config.Config {
	set := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && f.Changed
	}
	if set("split-taxonomy") {
		cfg.SplitTaxonomy = o.SplitTaxonomy
	}
	if set("rank") {
		cfg.Rank = o.Rank
	}
	if set("nodes") {
		cfg.Taxonomy.Nodes = o.Nodes
	}
	if set("organisms") {
		cfg.Taxonomy.Organisms = o.Organisms
	}
	if set("output") {
		cfg.Output.Format = o.Output
	}
	if set("no-header") {
		cfg.Output.Header = !o.NoHeader
	}
	if set("flags") {
		cfg.Output.Flags = o.Flags
	}
	if set("metrics-file") {
		cfg.Metrics.Textfile = o.MetricsFile
	}
	if set("workers") {
		cfg.Batch.Workers = o.Workers
	}
	switch {
	case o.Verbose:
		cfg.Log.Level = "debug"
	case o.Quiet:
		cfg.Log.Level = "warn"
	}
	return cfg
}

// Validate checks flag combinations that the config cannot express.
func (o Options) Validate() error {
	if o.Quiet && o.Verbose {
		return errors.New("--quiet conflicts with --verbose")
	}
	if o.Workers < 0 {
		return errors.New("--workers must be ≥ 0")
	}
	return nil
}
