// Package scanner classifies every byte of a script as code, comment or
// literal.
//
// The scanner is a single state machine over bytes. Every delimiter it cares
// about is ASCII and UTF-8 continuation bytes never collide with ASCII, so
// offsets are plain byte offsets into the original string.
//
// Known gap: regular expression literals are never recognised. Deciding
// whether "/" starts a regex or divides needs a grammar, and the scanner
// does not guess. A quote or "//" inside a real regex literal is therefore
// classified as if it were code. Quoted strings end at a raw newline (which
// JavaScript forbids anyway) so the damage from a stray quote stays on one
// line, and the condition is reported as an Issue.
package scanner

import (
	"strings"

	m "github.com/mouse-blink/predeploy/internal/model"
)

// Result is the classification of one text.
type Result struct {
	Spans  []m.Span
	Issues []m.Issue
}

// Err returns an *m.UnterminatedError when the scan recorded issues.
func (r Result) Err() error {
	if len(r.Issues) == 0 {
		return nil
	}

	return &m.UnterminatedError{Issues: r.Issues}
}

// template tracks one open template literal whose interpolation is
// currently being scanned as code.
type template struct {
	start int // offset of the opening backtick
	depth int // "{" nesting inside the interpolation
}

type scanner struct {
	text      string
	off       int
	mode      m.Mode
	start     int
	templates []template
	tmplStart int // backtick offset of the template being scanned in Templated mode
	spans     []m.Span
	issues    []m.Issue
}

// Scan classifies text. It is total and deterministic: the same text always
// yields the same spans, and the spans cover the text without gaps.
func Scan(text string) Result {
	s := &scanner{text: text, mode: m.Code}
	s.run()

	return Result{Spans: s.spans, Issues: s.issues}
}

func (s *scanner) run() {
	for s.off < len(s.text) {
		switch s.mode {
		case m.Code:
			s.code()
		case m.LineComment:
			s.lineComment()
		case m.BlockComment:
			s.blockComment()
		case m.SingleQuoted:
			s.quoted('\'')
		case m.DoubleQuoted:
			s.quoted('"')
		case m.Templated:
			s.template()
		default:
			s.off++
		}
	}

	s.finish()
}

func (s *scanner) peek(n int) byte {
	if s.off+n >= len(s.text) {
		return 0
	}

	return s.text[s.off+n]
}

// switchTo closes the current span at off and opens one in mode.
func (s *scanner) switchTo(mode m.Mode, off int) {
	if off > s.start {
		s.spans = append(s.spans, m.Span{Start: s.start, End: off, Mode: s.mode})
	}

	s.start = off
	s.mode = mode
}

func (s *scanner) code() {
	b := s.text[s.off]

	switch {
	case b == '/' && s.peek(1) == '/':
		s.switchTo(m.LineComment, s.off)
		s.off += 2
	case b == '/' && s.peek(1) == '*':
		s.switchTo(m.BlockComment, s.off)
		s.off += 2
	case b == '\'':
		s.switchTo(m.SingleQuoted, s.off)
		s.off++
	case b == '"':
		s.switchTo(m.DoubleQuoted, s.off)
		s.off++
	case b == '`':
		s.switchTo(m.Templated, s.off)
		s.tmplStart = s.off
		s.off++
	case b == '{' && len(s.templates) > 0:
		s.templates[len(s.templates)-1].depth++
		s.off++
	case b == '}' && len(s.templates) > 0:
		top := &s.templates[len(s.templates)-1]
		if top.depth > 0 {
			top.depth--
			s.off++

			return
		}

		s.tmplStart = top.start
		s.templates = s.templates[:len(s.templates)-1]
		s.switchTo(m.Templated, s.off)
		s.off++
	default:
		s.off++
	}
}

func (s *scanner) lineComment() {
	for s.off < len(s.text) {
		if b := s.text[s.off]; b == '\n' || b == '\r' {
			s.switchTo(m.Code, s.off)
			return
		}

		s.off++
	}
}

func (s *scanner) blockComment() {
	idx := strings.Index(s.text[s.off:], "*/")
	if idx < 0 {
		s.off = len(s.text)
		return
	}

	s.off += idx + 2
	s.switchTo(m.Code, s.off)
}

func (s *scanner) quoted(quote byte) {
	for s.off < len(s.text) {
		b := s.text[s.off]

		switch {
		case b == '\\':
			s.skipEscape()
		case b == quote:
			s.off++
			s.switchTo(m.Code, s.off)

			return
		case b == '\n' || b == '\r':
			s.issue(s.mode, s.start)
			s.switchTo(m.Code, s.off)

			return
		default:
			s.off++
		}
	}
}

func (s *scanner) template() {
	for s.off < len(s.text) {
		b := s.text[s.off]

		switch {
		case b == '\\':
			s.skipEscape()
		case b == '`':
			s.off++
			s.switchTo(m.Code, s.off)

			return
		case b == '$' && s.peek(1) == '{':
			s.off += 2
			s.templates = append(s.templates, template{start: s.tmplStart})
			s.switchTo(m.Code, s.off)

			return
		default:
			s.off++
		}
	}
}

// skipEscape consumes a backslash and the byte it escapes. A CRLF line
// continuation counts as one escaped terminator.
func (s *scanner) skipEscape() {
	if s.peek(1) == '\r' && s.peek(2) == '\n' {
		s.off += 3
	} else {
		s.off += 2
	}

	if s.off > len(s.text) {
		s.off = len(s.text)
	}
}

func (s *scanner) finish() {
	open := s.mode
	openAt := s.start

	s.switchTo(m.Code, len(s.text))

	switch open {
	case m.BlockComment, m.SingleQuoted, m.DoubleQuoted:
		s.issue(open, openAt)
	case m.Templated:
		s.issue(m.Templated, s.tmplStart)
	}

	// Interpolations still open at end of text belong to templates that
	// never closed, innermost last.
	for i := len(s.templates) - 1; i >= 0; i-- {
		s.issue(m.Templated, s.templates[i].start)
	}
}

func (s *scanner) issue(mode m.Mode, off int) {
	line, col := Position(s.text, off)
	s.issues = append(s.issues, m.Issue{Mode: mode, Offset: off, Line: line, Column: col})
}

// Position converts a byte offset into a 1-based line and column.
func Position(text string, off int) (int, int) {
	if off > len(text) {
		off = len(text)
	}

	line := 1 + strings.Count(text[:off], "\n")
	col := off - strings.LastIndexByte(text[:off], '\n')

	return line, col
}
