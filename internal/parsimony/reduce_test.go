package parsimony

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupsOf(peps ...[]string) ([]Group, [][]string) {
	gs := make([]Group, len(peps))
	for i, p := range peps {
		gs[i] = Group{ProteinIDs: []string{string(rune('a' + i))}, Peptides: p}
	}
	return gs, peps
}

func TestReduce_Chain(t *testing.T) {
	// a ⊂ b ⊂ c: a is absorbed by b first (lowest row), then b by c.
	gs, peps := groupsOf(
		[]string{"A"},
		[]string{"A", "B"},
		[]string{"A", "B", "C"},
	)
	out, st := Reduce(gs, BuildContainment(peps, nil))
	require.Len(t, out, 1)
	assert.Equal(t, []string{"c", "b", "a"}, out[0].ProteinIDs)
	assert.Equal(t, []string{"A", "B", "C"}, out[0].Peptides)
	assert.Equal(t, 2, st.Merges)
	assert.Equal(t, 2, st.Passes)
}

func TestReduce_LowestContainerWins(t *testing.T) {
	gs, peps := groupsOf(
		[]string{"A", "B", "X"},
		[]string{"A"},
		[]string{"A", "B", "C", "D"},
	)
	out, _ := Reduce(gs, BuildContainment(peps, nil))
	require.Len(t, out, 2)
	assert.Equal(t, []string{"a", "b"}, out[0].ProteinIDs)
	assert.Equal(t, []string{"c"}, out[1].ProteinIDs)
}

func TestReduce_NoContainment(t *testing.T) {
	gs, peps := groupsOf([]string{"A", "B"}, []string{"C", "D"})
	out, st := Reduce(gs, BuildContainment(peps, nil))
	assert.Len(t, out, 2)
	assert.Equal(t, 0, st.Merges)
	assert.Equal(t, 1, st.Passes)
}

func TestReduce_DoesNotAliasInput(t *testing.T) {
	gs, peps := groupsOf([]string{"A"}, []string{"A", "B"})
	_, _ = Reduce(gs, BuildContainment(peps, nil))
	assert.Equal(t, []string{"a"}, gs[0].ProteinIDs)
	assert.Equal(t, []string{"b"}, gs[1].ProteinIDs)
}

func TestReduce_EmptyGroupSurvivesWhenUncontained(t *testing.T) {
	gs, peps := groupsOf(nil)
	out, _ := Reduce(gs, BuildContainment(peps, nil))
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Peptides)

	gs, peps = groupsOf(nil, []string{"A"})
	out, _ = Reduce(gs, BuildContainment(peps, nil))
	require.Len(t, out, 1)
	assert.Equal(t, []string{"b", "a"}, out[0].ProteinIDs)
}
