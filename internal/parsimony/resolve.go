// internal/parsimony/resolve.go
package parsimony

import (
	"fmt"
	"sort"
)

// Options controls Resolve.
type Options struct {
	SplitTaxonomy bool
	Rank          Rank
	Taxonomy      TaxonomyResolver // required when SplitTaxonomy is set
	Progress      Progress         // optional
}

// Resolve clusters proteins with identical evidence, merges contained groups
// into their containers and returns the surviving groups in cluster order.
// It is single-threaded; independent calls may run concurrently.
//
// Taxonomy resolver errors are returned wrapped; everything else resolves to
// a defined default (empty input → empty result, unresolved taxon → UnresolvedTaxon).
func Resolve(in Input, opt Options) (Result, error) {
	progress := progressOrNop(opt.Progress)
	if opt.SplitTaxonomy && opt.Taxonomy == nil {
		return Result{}, ErrNoResolver
	}

	records := in.records()
	progress.Checkpoint(CheckpointRecords)

	var taxa []string
	if opt.SplitTaxonomy {
		var err error
		if taxa, err = resolveTaxa(records, opt.Rank, opt.Taxonomy); err != nil {
			return Result{}, fmt.Errorf("resolve taxonomy at rank %q: %w", opt.Rank, err)
		}
	}
	progress.Checkpoint(CheckpointTaxonomy)

	clusters := ClusterBySignature(records, taxa)
	groups := make([]Group, len(clusters))
	peptides := make([][]string, len(clusters))
	var groupTaxa []string
	if taxa != nil {
		groupTaxa = make([]string, len(clusters))
	}
	for gi, members := range clusters {
		rep := records[members[0]]
		ids := make([]string, len(members))
		for k, idx := range members {
			ids[k] = records[idx].ID
		}
		sort.Strings(ids)
		groups[gi] = Group{ProteinIDs: ids, Peptides: rep.Peptides, Flags: rep.Flags}
		peptides[gi] = rep.Peptides
		if taxa != nil {
			groups[gi].TaxonID = taxa[members[0]]
			groupTaxa[gi] = taxa[members[0]]
		}
	}
	progress.Checkpoint(CheckpointCluster)

	m := BuildContainment(peptides, groupTaxa)
	bits := m.Count()
	progress.Checkpoint(CheckpointContainment)

	out, rs := Reduce(groups, m)
	for i := range out {
		sort.Strings(out[i].ProteinIDs)
	}
	progress.Checkpoint(CheckpointReduce)

	res := Result{
		Groups:  out,
		Flagged: in.Flagged(),
		Stats: Stats{
			Proteins:          len(records),
			Clusters:          len(clusters),
			ContainmentBits:   bits,
			Passes:            rs.Passes,
			Merges:            rs.Merges,
			Groups:            len(out),
			DuplicatePeptides: in.dupes,
		},
	}
	progress.Checkpoint(CheckpointDone)
	return res, nil
}
