// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"protgroup/internal/parsimony"
	"protgroup/pkg/api"
)

// ToAPIGroup converts a group at position idx (0-based) to the stable wire schema (v1).
func ToAPIGroup(idx int, g parsimony.Group, source string) api.GroupV1 {
	v := api.GroupV1{
		Group:      idx + 1,
		ProteinIDs: append([]string(nil), g.ProteinIDs...),
		Peptides:   append([]string{}, g.Peptides...),
		TaxonID:    g.TaxonID,
		NProteins:  len(g.ProteinIDs),
		NPeptides:  len(g.Peptides),
		Source:     source,
	}
	if g.Flags != nil {
		v.Flags = make([]int, len(g.Flags))
		for i, f := range g.Flags {
			v.Flags[i] = int(f)
		}
	}
	return v
}

// ToAPIResult converts a whole result. Groups do not repeat the source.
func ToAPIResult(runID, source string, res parsimony.Result) api.ResultV1 {
	out := api.ResultV1{
		RunID:  runID,
		Source: source,
		Groups: make([]api.GroupV1, 0, len(res.Groups)),
		Stats: api.StatsV1{
			Proteins:          res.Stats.Proteins,
			Clusters:          res.Stats.Clusters,
			ContainmentBits:   res.Stats.ContainmentBits,
			Passes:            res.Stats.Passes,
			Merges:            res.Stats.Merges,
			Groups:            res.Stats.Groups,
			DuplicatePeptides: res.Stats.DuplicatePeptides,
		},
	}
	for i, g := range res.Groups {
		out.Groups = append(out.Groups, ToAPIGroup(i, g, ""))
	}
	return out
}

// WriteJSON writes one pretty-indented result.
func WriteJSON(w io.Writer, r api.ResultV1) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
