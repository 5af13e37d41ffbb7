// Package parsimony resolves protein identifications into non-redundant
// protein groups. Proteins with identical peptide evidence are clustered,
// and a group whose peptides are wholly contained in another group's is
// absorbed by it (greedy, deterministic; not a minimum set cover).
//
// The package is domain-only: it never imports input, output, writers, cli
// or app code. Taxonomy lookup and progress reporting are injected.
package parsimony
