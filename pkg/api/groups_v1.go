// pkg/api/groups_v1.go
package api

// GroupV1 is the stable JSON/JSONL schema for one protein group.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type GroupV1 struct {
	Group      int      `json:"group"` // 1-based position in the result
	ProteinIDs []string `json:"protein_ids"`
	Peptides   []string `json:"peptides"`
	Flags      []int    `json:"flags,omitempty"` // aligned with peptides
	TaxonID    string   `json:"taxon_id,omitempty"`
	NProteins  int      `json:"n_proteins"`
	NPeptides  int      `json:"n_peptides"`
	Source     string   `json:"source,omitempty"`
}

// StatsV1 mirrors the resolver's run statistics.
type StatsV1 struct {
	Proteins          int `json:"proteins"`
	Clusters          int `json:"clusters"`
	ContainmentBits   int `json:"containment_bits"`
	Passes            int `json:"passes"`
	Merges            int `json:"merges"`
	Groups            int `json:"groups"`
	DuplicatePeptides int `json:"duplicate_peptides,omitempty"`
}

// ResultV1 is the stable schema for a whole resolution run.
type ResultV1 struct {
	RunID  string    `json:"run_id"`
	Source string    `json:"source,omitempty"`
	Groups []GroupV1 `json:"groups"`
	Stats  StatsV1   `json:"stats"`
}
