package cmdutil

import (
	"context"

	"bedmap/internal/bedmap"
)

// RunStream drains m, passing each selected line to send. It stops at the
// first merge error, send error or cancellation of ctx, and returns the
// number of lines sent with that error.
func RunStream(ctx context.Context, m *bedmap.Merger, send func(bedmap.NumberedLine) error) (uint64, error) {
	var total uint64
	for m.Scan() {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		default:
		}
		if err := send(m.Line()); err != nil {
			return total, err
		}
		total++
	}
	if err := ctx.Err(); err != nil {
		return total, err
	}
	return total, m.Err()
}
