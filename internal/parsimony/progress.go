package parsimony

// Checkpoint names emitted by Resolve, in order.
const (
	CheckpointRecords     = "records"
	CheckpointTaxonomy    = "taxonomy"
	CheckpointCluster     = "cluster"
	CheckpointContainment = "containment"
	CheckpointReduce      = "reduce"
	CheckpointDone        = "done"
)

// Progress receives named checkpoints. It is notification only.
type Progress interface {
	Checkpoint(name string)
}

// ProgressFunc adapts a plain function to Progress.
type ProgressFunc func(name string)

// Checkpoint calls f(name).
func (f ProgressFunc) Checkpoint(name string) { f(name) }

type nopProgress struct{}

func (nopProgress) Checkpoint(string) {}

func progressOrNop(p Progress) Progress {
	if p == nil {
		return nopProgress{}
	}
	if f, ok := p.(ProgressFunc); ok && f == nil {
		return nopProgress{}
	}
	return p
}
