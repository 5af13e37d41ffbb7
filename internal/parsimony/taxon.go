package parsimony

import "errors"

// Rank selects a level of the taxonomy used to partition proteins.
type Rank string

// Supported ranks, from broad to narrow.
const (
	RankSuperkingdom Rank = "superkingdom"
	RankKingdom      Rank = "kingdom"
	RankPhylum       Rank = "phylum"
	RankClass        Rank = "class"
	RankOrder        Rank = "order"
	RankFamily       Rank = "family"
	RankGenus        Rank = "genus"
	RankSpecies      Rank = "species"
)

// Ranks lists the supported ranks in tree order.
var Ranks = []Rank{
	RankSuperkingdom, RankKingdom, RankPhylum, RankClass,
	RankOrder, RankFamily, RankGenus, RankSpecies,
}

// Valid reports whether r is one of Ranks.
func (r Rank) Valid() bool {
	for _, k := range Ranks {
		if r == k {
			return true
		}
	}
	return false
}

// UnresolvedTaxon is the partition key of proteins whose taxonomy could not be
// resolved. They still take part in grouping, inside their own partition.
const UnresolvedTaxon = "-1"

// ErrNoResolver is returned when taxonomy splitting is requested without a resolver.
var ErrNoResolver = errors.New("parsimony: taxonomy split requested without a resolver")

// TaxonomyResolver maps an organism id to its ancestor at rank.
// An empty ancestor means "not resolvable" and is not an error.
type TaxonomyResolver interface {
	AncestorAtRank(organismID string, rank Rank) (string, error)
}

// resolveTaxa returns one partition key per record.
func resolveTaxa(records []Record, rank Rank, tr TaxonomyResolver) ([]string, error) {
	taxa := make([]string, len(records))
	for i, r := range records {
		taxa[i] = UnresolvedTaxon
		if r.Organism == "" {
			continue
		}
		anc, err := tr.AncestorAtRank(r.Organism, rank)
		if err != nil {
			return nil, err
		}
		if anc != "" {
			taxa[i] = anc
		}
	}
	return taxa, nil
}
