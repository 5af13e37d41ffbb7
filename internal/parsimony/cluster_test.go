package parsimony

import (
	"math/rand"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clusterPairwise is the quadratic equality grouping, kept as an oracle.
func clusterPairwise(records []Record, taxa []string) [][]int {
	taken := make([]bool, len(records))
	var groups [][]int
	for i := range records {
		if taken[i] {
			continue
		}
		g := []int{i}
		taken[i] = true
		for j := i + 1; j < len(records); j++ {
			if taken[j] || !slices.Equal(records[i].Peptides, records[j].Peptides) {
				continue
			}
			if taxa != nil && taxa[i] != taxa[j] {
				continue
			}
			g = append(g, j)
			taken[j] = true
		}
		groups = append(groups, g)
	}
	return groups
}

func canonical(groups [][]int) [][]int {
	out := make([][]int, len(groups))
	for i, g := range groups {
		out[i] = append([]int(nil), g...)
		sort.Ints(out[i])
	}
	sort.Slice(out, func(a, b int) bool { return out[a][0] < out[b][0] })
	return out
}

func TestSignature(t *testing.T) {
	assert.Equal(t, "", Signature(nil, "", false))
	assert.NotEqual(t, Signature(nil, "", false), Signature([]string{""}, "", false))
	assert.Equal(t,
		Signature([]string{"AK", "CR"}, "9606", false),
		Signature([]string{"AK", "CR"}, "10090", false))
	assert.NotEqual(t,
		Signature([]string{"AK", "CR"}, "9606", true),
		Signature([]string{"AK", "CR"}, "10090", true))
	assert.NotEqual(t,
		Signature([]string{"AKC", "R"}, "", false),
		Signature([]string{"AK", "CR"}, "", false))
}

func TestValidToken(t *testing.T) {
	assert.True(t, ValidToken("PEPTIDEK"))
	assert.True(t, ValidToken(""))
	assert.False(t, ValidToken("A\x1fB"))

	// the collision ValidToken guards against
	assert.Equal(t,
		Signature([]string{"A\x1fB"}, "", false),
		Signature([]string{"A", "B"}, "", false))
}

func TestClusterBySignature_Empty(t *testing.T) {
	assert.Empty(t, ClusterBySignature(nil, nil))
}

func TestClusterBySignature_GroupsIdentical(t *testing.T) {
	recs := []Record{
		{ID: "P1", Peptides: []string{"A", "B"}},
		{ID: "P2", Peptides: []string{"C"}},
		{ID: "P3", Peptides: []string{"A", "B"}},
		{ID: "P4"},
		{ID: "P5"},
	}
	got := canonical(ClusterBySignature(recs, nil))
	assert.Equal(t, [][]int{{0, 2}, {1}, {3, 4}}, got)
}

func TestClusterBySignature_MembersKeepInputOrder(t *testing.T) {
	recs := []Record{
		{ID: "P1", Peptides: []string{"B"}},
		{ID: "P2", Peptides: []string{"A"}},
		{ID: "P3", Peptides: []string{"B"}},
	}
	got := ClusterBySignature(recs, nil)
	require.Len(t, got, 2)
	assert.Equal(t, []int{1}, got[0])
	assert.Equal(t, []int{0, 2}, got[1])
}

func TestClusterBySignature_TaxonomySplit(t *testing.T) {
	recs := []Record{
		{ID: "P1", Peptides: []string{"A"}},
		{ID: "P2", Peptides: []string{"A"}},
	}
	assert.Len(t, ClusterBySignature(recs, nil), 1)
	assert.Len(t, ClusterBySignature(recs, []string{"9606", "10090"}), 2)
	assert.Len(t, ClusterBySignature(recs, []string{"9606", "9606"}), 1)
}

func TestClusterBySignature_MatchesPairwiseOracle(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		c := genCase(rng)
		recs := setsOf(c.proteins).WithOrganisms(c.organisms).records()
		taxa, err := resolveTaxa(recs, RankSpecies, identityTaxonomy{})
		require.NoError(t, err)

		if len(recs) == 0 {
			assert.Empty(t, ClusterBySignature(recs, nil))
			continue
		}
		assert.Equal(t, canonical(clusterPairwise(recs, nil)), canonical(ClusterBySignature(recs, nil)), "seed %d", seed)
		assert.Equal(t, canonical(clusterPairwise(recs, taxa)), canonical(ClusterBySignature(recs, taxa)), "seed %d split", seed)
	}
}
