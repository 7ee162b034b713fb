package bedmap

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Range is the half-open interval [Start, End) of 1-based line numbers.
// Start >= 1 and End > Start for every Range returned by ParseRange.
type Range struct {
	Start uint64
	End   uint64
}

// Contains reports whether line n falls inside the range.
func (r Range) Contains(n uint64) bool { return n >= r.Start && n < r.End }

// Last is the last selected line number.
func (r Range) Last() uint64 { return r.End - 1 }

// Len is the number of line numbers the range selects.
func (r Range) Len() uint64 { return r.End - r.Start }

// String renders the range in the token form ParseRange accepts.
func (r Range) String() string {
	if r.Len() == 1 {
		return strconv.FormatUint(r.Start, 10)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.Last())
}

// ParseRange parses "N" or "N-M" (inclusive) into a Range. No whitespace is
// trimmed. Structural problems fail with RangeFormat, bad numbers with
// RangeParse wrapping the *strconv.NumError.
func ParseRange(token string) (Range, error) {
	// At most 3 fields: a third one only signals that there were too many.
	fields := strings.SplitN(token, "-", 3)
	if len(fields) == 0 || fields[0] == "" || len(fields) > 2 {
		return Range{}, &Error{Kind: RangeFormat, Token: token}
	}

	start, err := parseLineNumber(fields[0])
	if err != nil {
		return Range{}, &Error{Kind: RangeParse, Token: token, Err: err}
	}
	end := start
	if len(fields) > 1 {
		if fields[1] == "" {
			return Range{}, &Error{Kind: RangeFormat, Token: token}
		}
		if end, err = parseLineNumber(fields[1]); err != nil {
			return Range{}, &Error{Kind: RangeParse, Token: token, Err: err}
		}
	}
	if start == 0 || end < start {
		return Range{}, &Error{Kind: RangeFormat, Token: token}
	}
	if end == math.MaxUint64 {
		return Range{}, &Error{Kind: RangeParse, Token: token, Err: &strconv.NumError{
			Func: "ParseUint", Num: fields[len(fields)-1], Err: strconv.ErrRange,
		}}
	}
	return Range{Start: start, End: end + 1}, nil
}

// parseLineNumber accepts decimal digits with at most one leading '+'.
func parseLineNumber(s string) (uint64, error) {
	digits := strings.TrimPrefix(s, "+")
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok {
			ne.Num = s
		}
		return 0, err
	}
	return n, nil
}
