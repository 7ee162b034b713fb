package bedmap

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a merge failure.
type Kind int

const (
	RangeRead Kind = iota + 1
	RangeParse
	RangeFormat
	TargetRead
)

func (k Kind) String() string {
	switch k {
	case RangeRead:
		return "failed to read range"
	case RangeParse:
		return "failed to parse range element"
	case RangeFormat:
		return "bad range format"
	case TargetRead:
		return "failed to read target"
	default:
		return fmt.Sprintf("bedmap error %d", int(k))
	}
}

// Sentinels for errors.Is; any *Error of the same Kind matches.
var (
	ErrRangeRead   = &Error{Kind: RangeRead}
	ErrRangeParse  = &Error{Kind: RangeParse}
	ErrRangeFormat = &Error{Kind: RangeFormat}
	ErrTargetRead  = &Error{Kind: TargetRead}
)

// ErrInvalidUTF8 is the read cause for a line that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// Error is the single error type produced by ParseRange and Merger.
// Line is the 1-based line of the stream being read when known, 0 otherwise.
type Error struct {
	Kind  Kind
	Token string
	Line  uint64
	Err   error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	switch e.Kind {
	case RangeParse, RangeFormat:
		if e.Line > 0 {
			msg = fmt.Sprintf("%s: range line %d %q", msg, e.Line, e.Token)
		} else {
			msg = fmt.Sprintf("%s: %q", msg, e.Token)
		}
	case RangeRead:
		if e.Line > 0 {
			msg = fmt.Sprintf("%s: range line %d", msg, e.Line)
		}
	case TargetRead:
		if e.Line > 0 {
			msg = fmt.Sprintf("%s: line %d", msg, e.Line)
		}
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the Kind carried by err, or 0 if err is not a bedmap error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
