// pkg/api/lines_v1.go
package api

// LineV1 is the stable JSONL schema for one selected line.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type LineV1 struct {
	Line uint64 `json:"line"` // 1-based position in the lines input
	Text string `json:"text"`
}
