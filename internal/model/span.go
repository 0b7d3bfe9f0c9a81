package model

import "fmt"

// Span is a half-open byte range [Start, End) tagged with a Mode.
type Span struct {
	Start int
	End   int
	Mode  Mode
}

// Len returns the number of bytes covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether off lies inside the span.
func (s Span) Contains(off int) bool {
	return off >= s.Start && off < s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%s[%d:%d)", s.Mode, s.Start, s.End)
}

// ValidateSpans checks that spans are ordered, non-empty, contiguous and
// cover exactly [0, size). Stages call it before touching any text.
func ValidateSpans(spans []Span, size int) error {
	if size == 0 {
		if len(spans) != 0 {
			return fmt.Errorf("%w: %d spans for empty text", ErrProtocolViolation, len(spans))
		}

		return nil
	}

	pos := 0

	for i, s := range spans {
		if s.Start != pos {
			return fmt.Errorf("%w: span %d starts at %d, want %d", ErrProtocolViolation, i, s.Start, pos)
		}

		if s.End <= s.Start {
			return fmt.Errorf("%w: span %d is empty or inverted (%d..%d)", ErrProtocolViolation, i, s.Start, s.End)
		}

		pos = s.End
	}

	if pos != size {
		return fmt.Errorf("%w: spans end at %d, text has %d bytes", ErrProtocolViolation, pos, size)
	}

	return nil
}

// Region is the located structured-data literal that must survive every
// stage byte for byte.
type Region struct {
	Name    string
	Span    Span
	Content string
}

// Issue describes a literal or comment that reached end of text (or, for
// quoted strings, end of line) without its closing delimiter.
type Issue struct {
	Mode   Mode
	Offset int
	Line   int
	Column int
}

func (i Issue) String() string {
	return fmt.Sprintf("unterminated %s at %d:%d", i.Mode, i.Line, i.Column)
}
