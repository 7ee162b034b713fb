package writers

import (
	"bufio"
	"encoding/json"
	"io"
	"slices"
	"strconv"

	"github.com/pkg/errors"

	"bedmap/internal/bedmap"
	"bedmap/pkg/api"
)

// Output formats for selected lines.
const (
	FormatText  = "text"  // the line as read
	FormatTSV   = "tsv"   // line number, TAB, line
	FormatJSONL = "jsonl" // one api.LineV1 object per line
)

// LineFunc renders one selected line, including its terminator.
type LineFunc func(l bedmap.NumberedLine) error

// LineFormat binds a renderer to one output; per-output state such as an
// encoder lives in the closure.
type LineFormat func(w *bufio.Writer) LineFunc

// Line format registry (format → renderer factory). Register in init(); last wins.
var lineFormats = map[string]LineFormat{}

func RegisterLine(format string, fn LineFormat) { lineFormats[format] = fn }

// Formats lists the registered line formats in sorted order.
func Formats() []string {
	out := make([]string, 0, len(lineFormats))
	for f := range lineFormats {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

func init() {
	RegisterLine(FormatText, func(w *bufio.Writer) LineFunc {
		return func(l bedmap.NumberedLine) error {
			_, _ = w.WriteString(l.Text)
			return w.WriteByte('\n')
		}
	})
	RegisterLine(FormatTSV, func(w *bufio.Writer) LineFunc {
		var num [20]byte
		return func(l bedmap.NumberedLine) error {
			_, _ = w.Write(strconv.AppendUint(num[:0], l.Number, 10))
			_ = w.WriteByte('\t')
			_, _ = w.WriteString(l.Text)
			return w.WriteByte('\n')
		}
	})
	RegisterLine(FormatJSONL, func(w *bufio.Writer) LineFunc {
		enc := json.NewEncoder(w)
		// Text is emitted as read; no <>& escaping.
		enc.SetEscapeHTML(false)
		return func(l bedmap.NumberedLine) error {
			// Encode appends the newline.
			return enc.Encode(api.LineV1{Line: l.Number, Text: l.Text})
		}
	})
}

// LineWriter buffers selected lines in one of the registered formats.
type LineWriter struct {
	w      *bufio.Writer
	render LineFunc
	n      uint64
}

// NewLineWriter returns a LineWriter for format, or an error naming the
// known formats.
func NewLineWriter(out io.Writer, format string) (*LineWriter, error) {
	fn, ok := lineFormats[format]
	if !ok {
		return nil, errors.Errorf("unknown output format %q (want one of %v)", format, Formats())
	}
	bw := bufio.NewWriter(out)
	return &LineWriter{w: bw, render: fn(bw)}, nil
}

// Write renders one line. A broken pipe is returned as is so callers can
// detect it with IsBrokenPipe.
func (lw *LineWriter) Write(l bedmap.NumberedLine) error {
	if err := lw.render(l); err != nil {
		return errors.Wrapf(err, "writing line %d", l.Number)
	}
	lw.n++
	return nil
}

// Flush writes any buffered output.
func (lw *LineWriter) Flush() error {
	return errors.Wrap(lw.w.Flush(), "flushing output")
}

// Written is the number of lines accepted by Write.
func (lw *LineWriter) Written() uint64 { return lw.n }
