// Package writers turns per-read seed records into serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (TSV/JSON/JSONL/FASTA).
//   • Core packages stay domain-only; pipeline stays orchestration-only.
//   • Everything written goes through pkg/api (v1) for a stable wire format.
package writers
