// Package writers turns a resolution result into serialized output.
//
// Design:
//   • Writers own all presentation knowledge (TSV, JSON, JSONL).
//   • parsimony stays domain-only; app only picks a format by name.
//   • JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
