package scanner

import (
	m "github.com/mouse-blink/predeploy/internal/model"
)

// Index answers per-offset questions about a classified text. Stages use it
// to look past whitespace and comments without re-scanning.
type Index struct {
	Text  string
	Spans []m.Span
	modes []m.Mode
}

// NewIndex builds an Index. Spans must cover text (see m.ValidateSpans).
func NewIndex(text string, spans []m.Span) *Index {
	modes := make([]m.Mode, len(text))
	for _, sp := range spans {
		for i := sp.Start; i < sp.End && i < len(modes); i++ {
			modes[i] = sp.Mode
		}
	}

	return &Index{Text: text, Spans: spans, modes: modes}
}

// ModeAt returns the mode of the byte at off.
func (ix *Index) ModeAt(off int) m.Mode {
	return ix.modes[off]
}

// IsCode reports whether the byte at off is plain code.
func (ix *Index) IsCode(off int) bool {
	return off >= 0 && off < len(ix.modes) && ix.modes[off] == m.Code
}

// PrevSignificant returns the offset of the last byte before off that is
// neither whitespace in code nor part of a comment, or -1. The second
// result reports whether a line terminator was skipped on the way.
func (ix *Index) PrevSignificant(off int) (int, bool) {
	newline := false

	for i := off - 1; i >= 0; i-- {
		md := ix.modes[i]
		if md.IsComment() {
			continue
		}

		b := ix.Text[i]
		if md == m.Code && IsSpace(b) {
			if b == '\n' || b == '\r' {
				newline = true
			}

			continue
		}

		return i, newline
	}

	return -1, newline
}

// NextSignificant mirrors PrevSignificant forwards and returns len(Text)
// when nothing significant follows.
func (ix *Index) NextSignificant(off int) (int, bool) {
	newline := false

	for i := off; i < len(ix.Text); i++ {
		md := ix.modes[i]
		if md.IsComment() {
			continue
		}

		b := ix.Text[i]
		if md == m.Code && IsSpace(b) {
			if b == '\n' || b == '\r' {
				newline = true
			}

			continue
		}

		return i, newline
	}

	return len(ix.Text), newline
}

// WordAt returns the end of the identifier-like word starting at off, if
// off begins one in code.
func (ix *Index) WordAt(off int) (int, bool) {
	if !ix.IsCode(off) || !IsWord(ix.Text[off]) {
		return off, false
	}

	if off > 0 && ix.IsCode(off-1) && IsWord(ix.Text[off-1]) {
		return off, false
	}

	end := off
	for end < len(ix.Text) && ix.IsCode(end) && IsWord(ix.Text[end]) {
		end++
	}

	return end, true
}

// IsSpace reports JavaScript whitespace and line terminators in the ASCII
// range.
func IsSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}

	return false
}

// IsWord reports bytes that may appear inside an identifier or a number.
// Every non-ASCII byte counts, since identifiers may be Unicode.
func IsWord(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') || b >= 0x80
}

// IsDigit reports an ASCII digit.
func IsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
