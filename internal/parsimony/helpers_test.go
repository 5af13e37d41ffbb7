package parsimony

import (
	"fmt"
	"math/rand"
	"sort"
)

func setsOf(m map[string][]string) Input {
	out := make(map[string]map[string]struct{}, len(m))
	for id, peps := range m {
		s := make(map[string]struct{}, len(peps))
		for _, p := range peps {
			s[p] = struct{}{}
		}
		out[id] = s
	}
	return FromSets(out)
}

// identityTaxonomy treats every organism id as already being at the requested rank.
type identityTaxonomy struct{}

func (identityTaxonomy) AncestorAtRank(org string, _ Rank) (string, error) {
	if org == UnresolvedTaxon {
		return "", nil
	}
	return org, nil
}

type mapTaxonomy map[string]string

func (m mapTaxonomy) AncestorAtRank(org string, _ Rank) (string, error) { return m[org], nil }

type randomCase struct {
	proteins  map[string][]string
	organisms map[string]string
}

func genCase(rng *rand.Rand) randomCase {
	pool := []string{"AAK", "CDR", "EFK", "GHR", "IKK", "LMR", "NPK", "QSR"}
	orgs := []string{"9606", "10090", "4932"}
	n := rng.Intn(40)
	c := randomCase{proteins: map[string][]string{}, organisms: map[string]string{}}
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("P%03d", i)
		k := rng.Intn(5)
		var peps []string
		for _, j := range rng.Perm(len(pool))[:k] {
			peps = append(peps, pool[j])
		}
		c.proteins[id] = peps
		if rng.Intn(6) != 0 {
			c.organisms[id] = orgs[rng.Intn(len(orgs))]
		}
	}
	return c
}

func sortedCopy(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}
