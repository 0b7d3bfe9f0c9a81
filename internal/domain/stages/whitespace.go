package stages

import (
	"strings"

	m "github.com/mouse-blink/predeploy/internal/model"
	"github.com/mouse-blink/predeploy/internal/scanner"
)

// DefaultPunctuation is the set of bytes the minifying presets strip
// whitespace around.
const DefaultPunctuation = "=+-*/%<>!&|,;:{}()[]"

// IndentMode says what happens to the whitespace that starts a line.
type IndentMode int

const (
	// IndentKeep leaves indentation as written.
	IndentKeep IndentMode = iota
	// IndentCollapse turns indentation into a single space.
	IndentCollapse
	// IndentTrim removes indentation.
	IndentTrim
)

// Whitespace configures a WhitespaceCollapser.
type Whitespace struct {
	// CollapseRuns turns runs of spaces and tabs inside a line into one space.
	CollapseRuns bool
	Indent       IndentMode
	// MaxBlankLines caps consecutive blank lines. Negative means no cap.
	MaxBlankLines int
	// Punctuation lists bytes next to which whitespace is dropped.
	Punctuation string
	// JoinLines removes line breaks where automatic semicolon insertion
	// cannot depend on them.
	JoinLines bool
}

// WhitespaceCollapser rewrites whitespace in code. Literal, comment and
// protected bytes are copied through.
type WhitespaceCollapser struct {
	Options Whitespace
}

// NewWhitespaceCollapser returns a collapser with the given options.
func NewWhitespaceCollapser(opts Whitespace) *WhitespaceCollapser {
	return &WhitespaceCollapser{Options: opts}
}

// Name identifies the stage in reports.
func (c *WhitespaceCollapser) Name() string {
	return "whitespace"
}

// Rewrite implements Stage.
func (c *WhitespaceCollapser) Rewrite(in Input) (string, error) {
	ix, err := validate(in)
	if err != nil {
		return "", err
	}

	text := in.Text

	var b strings.Builder

	b.Grow(len(text))

	for _, sp := range in.Spans {
		if sp.Mode != m.Code {
			b.WriteString(text[sp.Start:sp.End])
			continue
		}

		for i := sp.Start; i < sp.End; {
			if !scanner.IsSpace(text[i]) {
				b.WriteByte(text[i])
				i++

				continue
			}

			j := i
			for j < sp.End && scanner.IsSpace(text[j]) {
				j++
			}

			b.WriteString(c.collapse(ix, i, j))
			i = j
		}
	}

	return b.String(), nil
}

// collapse returns the replacement for the whitespace run text[start:end].
func (c *WhitespaceCollapser) collapse(ix *scanner.Index, start, end int) string {
	text := ix.Text
	run := text[start:end]

	var prev, next byte

	prevMode := m.Code

	if start > 0 {
		prev = text[start-1]
		prevMode = ix.ModeAt(start - 1)
	}

	if end < len(text) {
		next = text[end]
	}

	terms, indent := splitRun(run)

	switch {
	case next == 0 && len(terms) == 0:
		return ""
	case prev == 0 && len(terms) == 0:
		return c.indent(indent)
	case len(terms) == 0:
		return c.interior(run, prev, next)
	case c.Options.JoinLines && joinable(prev, prevMode, next):
		if needsSeparator(prev, next) {
			return " "
		}

		return ""
	}

	keep := len(terms)
	if limit := c.Options.MaxBlankLines; limit >= 0 && keep > limit+1 {
		keep = limit + 1
	}

	var b strings.Builder
	for _, t := range terms[:keep] {
		b.WriteString(t)
	}

	if next != 0 {
		b.WriteString(c.indent(indent))
	}

	return b.String()
}

func (c *WhitespaceCollapser) interior(run string, prev, next byte) string {
	punct := c.Options.Punctuation
	if punct != "" && (strings.IndexByte(punct, prev) >= 0 || strings.IndexByte(punct, next) >= 0) {
		if !needsSeparator(prev, next) {
			return ""
		}
	}

	if c.Options.CollapseRuns {
		return " "
	}

	return run
}

func (c *WhitespaceCollapser) indent(ws string) string {
	if ws == "" {
		return ""
	}

	switch c.Options.Indent {
	case IndentCollapse:
		return " "
	case IndentTrim:
		return ""
	default:
		return ws
	}
}

// splitRun breaks a whitespace run into its line terminators and the
// horizontal whitespace after the last one. Whitespace before each
// terminator is dropped.
func splitRun(run string) ([]string, string) {
	var terms []string

	last := 0

	for i := 0; i < len(run); i++ {
		switch run[i] {
		case '\r':
			if i+1 < len(run) && run[i+1] == '\n' {
				terms = append(terms, "\r\n")
				i++
			} else {
				terms = append(terms, "\r")
			}

			last = i + 1
		case '\n':
			terms = append(terms, "\n")
			last = i + 1
		}
	}

	if len(terms) == 0 {
		return nil, run
	}

	return terms, run[last:]
}

// joinable reports whether a line break between prev and next can go
// without changing how the code parses.
func joinable(prev byte, prevMode m.Mode, next byte) bool {
	if prev == 0 || next == 0 || prevMode == m.LineComment {
		return false
	}

	if prevMode == m.Code && strings.IndexByte(";{,([=*/%<>!&|?:^~", prev) >= 0 {
		return true
	}

	return strings.IndexByte("}),];.", next) >= 0
}
