package bedmap

import (
	"bufio"
	"context"
	"io"
	"iter"
	"unicode/utf8"
)

// DefaultMaxLineSize bounds a single line of either stream (64 MiB).
const DefaultMaxLineSize = 64 * 1024 * 1024

// NumberedLine is a line of the lines stream and its 1-based position.
type NumberedLine struct {
	Number uint64
	Text   string
}

type state int

const (
	stateNeedRange state = iota
	stateNeedLine
	stateCompare
	stateDone
)

func (s state) String() string {
	switch s {
	case stateNeedRange:
		return "need-range"
	case stateNeedLine:
		return "need-line"
	case stateCompare:
		return "compare"
	default:
		return "done"
	}
}

// Option configures a Merger.
type Option func(*Merger)

// WithMaxLineSize sets the longest line accepted from either stream.
// Values <= 0 keep DefaultMaxLineSize.
func WithMaxLineSize(n int) Option {
	return func(m *Merger) {
		if n > 0 {
			m.maxLine = n
		}
	}
}

// WithContext makes Scan stop with ctx.Err() once ctx is done. It is
// checked before every read from either stream, so long stretches of
// unselected lines still notice cancellation.
func WithContext(ctx context.Context) Option {
	return func(m *Merger) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// Merger selects the lines of one stream whose numbers fall inside the ranges
// read from another. Ranges must be sorted and non-overlapping; that is not
// checked. A Merger is single-pass and must not be used from more than one
// goroutine at a time.
type Merger struct {
	ctx     context.Context
	ranges  *bufio.Scanner
	lines   *bufio.Scanner
	maxLine int

	rng     Range
	hasRng  bool
	line    NumberedLine
	hasLine bool
	out     NumberedLine

	nRanges  uint64
	nLines   uint64
	done     bool
	err      error
	reported bool
}

// New returns a Merger reading range tokens from ranges and text from lines.
// Nothing is read until the first call to Scan.
func New(ranges, lines io.Reader, opts ...Option) *Merger {
	m := &Merger{ctx: context.Background(), maxLine: DefaultMaxLineSize}
	for _, o := range opts {
		o(m)
	}
	m.ranges = newLineScanner(ranges, m.maxLine)
	m.lines = newLineScanner(lines, m.maxLine)
	return m
}

func newLineScanner(r io.Reader, maxLine int) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(64*1024, maxLine)), maxLine)
	return sc
}

func (m *Merger) state() state {
	switch {
	case m.done:
		return stateDone
	case !m.hasRng:
		return stateNeedRange
	case !m.hasLine:
		return stateNeedLine
	default:
		return stateCompare
	}
}

// Scan advances to the next selected line, which is then available through
// Text and Line. It returns false when either stream runs out or on the first
// error; after that it keeps returning false and Err reports the error, if any.
func (m *Merger) Scan() bool {
	for {
		switch m.state() {
		case stateDone:
			return false

		case stateNeedRange:
			if err := m.ctx.Err(); err != nil {
				return m.fail(err)
			}
			text, ok, err := readLine(m.ranges)
			if err != nil {
				return m.fail(&Error{Kind: RangeRead, Line: m.nRanges + 1, Err: err})
			}
			if !ok {
				return m.finish()
			}
			m.nRanges++
			r, err := ParseRange(text)
			if err != nil {
				if e, ok := err.(*Error); ok {
					e.Line = m.nRanges
				}
				return m.fail(err)
			}
			m.rng, m.hasRng = r, true

		case stateNeedLine:
			if err := m.ctx.Err(); err != nil {
				return m.fail(err)
			}
			text, ok, err := readLine(m.lines)
			if err != nil {
				return m.fail(&Error{Kind: TargetRead, Line: m.nLines + 1, Err: err})
			}
			if !ok {
				return m.finish()
			}
			m.nLines++
			m.line, m.hasLine = NumberedLine{Number: m.nLines, Text: text}, true

		case stateCompare:
			n := m.line.Number
			switch {
			case n >= m.rng.End:
				// Keep the line: a later range may still select it.
				m.hasRng = false
			case m.rng.Contains(n):
				m.out = m.line
				m.hasLine = false
				return true
			default:
				m.hasLine = false
			}
		}
	}
}

func (m *Merger) fail(err error) bool {
	m.err = err
	return m.finish()
}

func (m *Merger) finish() bool {
	m.done = true
	m.hasRng, m.hasLine = false, false
	m.out = NumberedLine{}
	return false
}

// Text returns the most recently selected line without its line terminator.
func (m *Merger) Text() string { return m.out.Text }

// Line returns the most recently selected line with its number.
func (m *Merger) Line() NumberedLine { return m.out }

// Err returns the error that ended the sequence, or nil if it ended cleanly
// or has not ended yet. A cancellation seen through WithContext is returned
// as the context's error, not as an *Error.
func (m *Merger) Err() error { return m.err }

// RangesRead is the number of range tokens read so far.
func (m *Merger) RangesRead() uint64 { return m.nRanges }

// LinesRead is the number of lines read so far from the lines stream.
func (m *Merger) LinesRead() uint64 { return m.nLines }

// All yields every remaining selected line. If the sequence ends with an
// error, the error is yielded as the final pair with empty text, and only by
// the first iteration that reaches it.
func (m *Merger) All() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for m.Scan() {
			if !yield(m.Text(), nil) {
				return
			}
		}
		if m.err != nil && !m.reported {
			m.reported = true
			yield("", m.err)
		}
	}
}

// readLine returns the next line, false at a clean end of input.
func readLine(sc *bufio.Scanner) (string, bool, error) {
	if !sc.Scan() {
		return "", false, sc.Err()
	}
	b := sc.Bytes()
	if !utf8.Valid(b) {
		return "", false, ErrInvalidUTF8
	}
	return string(b), true, nil
}
