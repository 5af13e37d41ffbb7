package parsimony

// Group is one non-redundant protein group.
type Group struct {
	ProteinIDs []string // ascending
	Peptides   []string // ascending
	Flags      []byte   // aligned with Peptides; nil when untracked
	TaxonID    string   // partition key; empty when not splitting
}

// Stats summarizes one Resolve call.
type Stats struct {
	Proteins          int
	Clusters          int
	ContainmentBits   int
	Passes            int
	Merges            int
	Groups            int
	DuplicatePeptides int
}

// Result is the output of Resolve.
type Result struct {
	Groups  []Group
	Flagged bool
	Stats   Stats
}

// Columns returns the groups as three parallel collections aligned by group
// index. flags is nil when the input carried no annotations.
func (r Result) Columns() (ids [][]string, peptides [][]string, flags [][]byte) {
	ids = make([][]string, len(r.Groups))
	peptides = make([][]string, len(r.Groups))
	if r.Flagged {
		flags = make([][]byte, len(r.Groups))
	}
	for i, g := range r.Groups {
		ids[i] = g.ProteinIDs
		peptides[i] = g.Peptides
		if flags != nil {
			flags[i] = g.Flags
		}
	}
	return ids, peptides, flags
}
