package parsimony

import "slices"

// ReduceStats reports the work done by Reduce.
type ReduceStats struct {
	Passes int
	Merges int
}

// groupRec is an arena slot. A slot absorbed by another is tombstoned and
// dropped at compaction.
type groupRec struct {
	Group
	dead bool
}

// Reduce merges every group contained in another group into its container
// until no merge remains, then drops the absorbed groups. m must describe
// groups by index and is consumed: entries are cleared as groups are absorbed.
//
// A pass scans contained candidates upward and takes the lowest-index
// container. There is no preference for the largest superset.
func Reduce(groups []Group, m *ContainmentMatrix) ([]Group, ReduceStats) {
	arena := make([]groupRec, len(groups))
	for i, g := range groups {
		arena[i].Group = Group{
			ProteinIDs: slices.Clone(g.ProteinIDs),
			Peptides:   g.Peptides,
			Flags:      g.Flags,
			TaxonID:    g.TaxonID,
		}
	}

	var st ReduceStats
	for {
		st.Passes++
		merged := subsumePass(arena, m)
		st.Merges += merged
		if merged == 0 {
			break
		}
	}

	out := make([]Group, 0, len(arena))
	for _, g := range arena {
		if !g.dead {
			out = append(out, g.Group)
		}
	}
	return out, st
}

func subsumePass(arena []groupRec, m *ContainmentMatrix) int {
	merged := 0
	start := 0
	for {
		contained, container := -1, -1
		for i := start; i < len(arena); i++ {
			if c := m.FirstContainer(i); c != -1 {
				contained, container = i, c
				break
			}
		}
		if contained == -1 {
			return merged
		}
		m.ClearIndex(contained)

		dst, src := &arena[container], &arena[contained]
		dst.ProteinIDs = append(dst.ProteinIDs, src.ProteinIDs...)
		src.ProteinIDs, src.Peptides, src.Flags = nil, nil, nil
		src.dead = true

		start = contained + 1
		merged++
	}
}
