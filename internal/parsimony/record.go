// internal/parsimony/record.go
package parsimony

import (
	"slices"
	"sort"
)

// Record is one protein before reduction. Peptides must be ascending and
// duplicate-free, and every peptide must satisfy ValidToken. Flags, when
// non-nil, is aligned index-for-index with Peptides.
type Record struct {
	ID       string
	Peptides []string
	Flags    []byte
	Organism string
}

// PeptideCollection is the generic set shape accepted by FromCollections.
type PeptideCollection interface {
	Len() int
	Each(func(seq string))
}

// Input is the normalized protein → peptide evidence handed to Resolve.
// Build it with FromAnnotated, FromSets or FromCollections. Callers must not
// pass peptides or organism ids that fail ValidToken; the readers in this
// module reject them.
type Input struct {
	peptides  map[string][]string
	flags     map[string]map[string]byte
	organisms map[string]string
	dupes     int
}

// FromAnnotated builds an Input from peptide → flag maps. Flags are tracked.
func FromAnnotated(m map[string]map[string]byte) Input {
	in := Input{
		peptides: make(map[string][]string, len(m)),
		flags:    make(map[string]map[string]byte, len(m)),
	}
	for id, peps := range m {
		list := make([]string, 0, len(peps))
		for p := range peps {
			list = append(list, p)
		}
		in.peptides[id] = list
		in.flags[id] = peps
	}
	return in
}

// FromSets builds an Input from plain peptide sets.
func FromSets(m map[string]map[string]struct{}) Input {
	in := Input{peptides: make(map[string][]string, len(m))}
	for id, peps := range m {
		list := make([]string, 0, len(peps))
		for p := range peps {
			list = append(list, p)
		}
		in.peptides[id] = list
	}
	return in
}

// FromCollections builds an Input from any PeptideCollection. Repeated
// peptides within one protein are collapsed and counted in Stats.DuplicatePeptides.
func FromCollections[C PeptideCollection](m map[string]C) Input {
	in := Input{peptides: make(map[string][]string, len(m))}
	for id, c := range m {
		seen := make(map[string]struct{}, c.Len())
		list := make([]string, 0, c.Len())
		c.Each(func(p string) {
			if _, ok := seen[p]; ok {
				in.dupes++
				return
			}
			seen[p] = struct{}{}
			list = append(list, p)
		})
		in.peptides[id] = list
	}
	return in
}

// WithOrganisms attaches protein → organism ids used for taxonomy splitting.
func (in Input) WithOrganisms(org map[string]string) Input {
	in.organisms = org
	return in
}

// Len returns the number of proteins.
func (in Input) Len() int { return len(in.peptides) }

// Flagged reports whether per-peptide flags are tracked.
func (in Input) Flagged() bool { return in.flags != nil }

// records materializes one Record per protein, ordered by protein id, with
// peptides sorted and flags permuted along.
func (in Input) records() []Record {
	ids := make([]string, 0, len(in.peptides))
	for id := range in.peptides {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	recs := make([]Record, len(ids))
	for i, id := range ids {
		peps := slices.Clone(in.peptides[id])
		sort.Strings(peps)
		r := Record{ID: id, Peptides: peps, Organism: in.organisms[id]}
		if in.flags != nil {
			fm := in.flags[id]
			r.Flags = make([]byte, len(peps))
			for k, p := range peps {
				r.Flags[k] = fm[p]
			}
		}
		recs[i] = r
	}
	return recs
}
