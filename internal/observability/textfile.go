package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"protgroup/internal/parsimony"
)

// RunSample is one finished run, labelled by its source.
type RunSample struct {
	Source   string
	Stats    parsimony.Stats
	Duration time.Duration
	Finished time.Time
}

// WriteTextfile writes the samples as Prometheus gauges to path, in the
// textfile-collector format. The file is replaced atomically.
func WriteTextfile(path string, runs []RunSample) error {
	reg := prometheus.NewRegistry()
	gauge := func(name, help string) *prometheus.GaugeVec {
		g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "protgroup",
			Name:      name,
			Help:      help,
		}, []string{"source"})
		reg.MustRegister(g)
		return g
	}
	var (
		proteins = gauge("proteins", "Input proteins in the last run.")
		clusters = gauge("clusters", "Signature clusters in the last run.")
		bits     = gauge("containment_bits", "Containment relations found in the last run.")
		merges   = gauge("merges", "Subsumption merges in the last run.")
		groups   = gauge("groups", "Protein groups reported by the last run.")
		dupes    = gauge("duplicate_peptides", "Duplicate peptides collapsed in the last run.")
		duration = gauge("resolve_duration_seconds", "Wall time of the last run.")
		finished = gauge("last_run_timestamp_seconds", "Unix time the last run finished.")
	)
	for _, r := range runs {
		proteins.WithLabelValues(r.Source).Set(float64(r.Stats.Proteins))
		clusters.WithLabelValues(r.Source).Set(float64(r.Stats.Clusters))
		bits.WithLabelValues(r.Source).Set(float64(r.Stats.ContainmentBits))
		merges.WithLabelValues(r.Source).Set(float64(r.Stats.Merges))
		groups.WithLabelValues(r.Source).Set(float64(r.Stats.Groups))
		dupes.WithLabelValues(r.Source).Set(float64(r.Stats.DuplicatePeptides))
		duration.WithLabelValues(r.Source).Set(r.Duration.Seconds())
		finished.WithLabelValues(r.Source).Set(float64(r.Finished.Unix()))
	}
	return prometheus.WriteToTextfile(path, reg)
}
