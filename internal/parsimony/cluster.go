package parsimony

import (
	"sort"
	"strings"
)

// sigSep joins signature tokens. Peptides and taxonomy ids must not
// contain it; see ValidToken.
const sigSep = "\x1f"

// ValidToken reports whether s may be used as a peptide or taxonomy id.
// Tokens containing the signature separator would make distinct peptide
// lists share a signature.
func ValidToken(s string) bool { return !strings.Contains(s, sigSep) }

// Signature encodes a sorted peptide list as an equality key. When split is
// set the key is qualified by taxon so equal lists in different partitions differ.
func Signature(peptides []string, taxon string, split bool) string {
	n := 0
	for _, p := range peptides {
		n += len(p) + len(sigSep)
	}
	var b strings.Builder
	if split {
		b.Grow(len(taxon) + n)
		b.WriteString(taxon)
	} else {
		b.Grow(n)
	}
	for _, p := range peptides {
		b.WriteString(sigSep)
		b.WriteString(p)
	}
	return b.String()
}

// ClusterBySignature partitions record indices so that two records share a
// cluster iff their signatures are identical. taxa, when non-nil, holds one
// partition key per record and enables taxonomy qualification.
//
// Records are sorted by signature (stable), then cut wherever the signature
// changes. Members of a cluster keep input order.
func ClusterBySignature(records []Record, taxa []string) [][]int {
	if len(records) == 0 {
		return nil
	}
	split := taxa != nil
	sigs := make([]string, len(records))
	for i, r := range records {
		t := ""
		if split {
			t = taxa[i]
		}
		sigs[i] = Signature(r.Peptides, t, split)
	}

	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return sigs[order[a]] < sigs[order[b]] })

	var groups [][]int
	cur := []int{order[0]}
	for _, idx := range order[1:] {
		if sigs[idx] == sigs[cur[0]] {
			cur = append(cur, idx)
			continue
		}
		groups = append(groups, cur)
		cur = []int{idx}
	}
	return append(groups, cur)
}
