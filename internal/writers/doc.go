// Package writers renders selected lines to the output stream.
//
// Design:
//   • Writers own all presentation knowledge (text, TSV, JSONL).
//   • bedmap stays domain-only; app stays orchestration-only.
//   • JSONL goes through pkg/api (v1) for a stable wire format.
package writers
