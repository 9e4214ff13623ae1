// Package writers turns designs, expansions and tables into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (text rows, JSON, JSONL).
//   - Engine stays domain-only; the pipeline stays orchestration-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
