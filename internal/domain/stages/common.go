// Package stages provides the rewrite stages a pipeline composes. Each stage
// maps a classified text to a new text and never changes the bytes of a
// literal or protected span.
package stages

import (
	"sort"
	"strings"

	m "github.com/mouse-blink/predeploy/internal/model"
	"github.com/mouse-blink/predeploy/internal/scanner"
)

// Input is what a stage receives: the current text, a fresh scan of it with
// the protected region overlaid, and the run's renaming context.
type Input struct {
	Text    string
	Spans   []m.Span
	Renames *RenameContext
}

// Stage is a single rewrite over one text.
type Stage interface {
	Name() string
	Rewrite(in Input) (string, error)
}

// edit replaces Text[start:end] with replacement.
type edit struct {
	start       int
	end         int
	replacement string
}

// applyEdits applies non-overlapping edits in offset order.
func applyEdits(text string, edits []edit) string {
	if len(edits) == 0 {
		return text
	}

	sort.SliceStable(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var b strings.Builder

	b.Grow(len(text))

	pos := 0

	for _, e := range edits {
		if e.start < pos || e.end < e.start || e.end > len(text) {
			continue
		}

		b.WriteString(text[pos:e.start])
		b.WriteString(e.replacement)
		pos = e.end
	}

	b.WriteString(text[pos:])

	return b.String()
}

func validate(in Input) (*scanner.Index, error) {
	if err := m.ValidateSpans(in.Spans, len(in.Text)); err != nil {
		return nil, err
	}

	return scanner.NewIndex(in.Text, in.Spans), nil
}

// needsSeparator reports whether a and b would lex differently if the
// whitespace between them were removed: two word bytes would merge, "+ +"
// would become "++", "/ /" a comment, "< !" the start of "<!--" and so on.
func needsSeparator(a, b byte) bool {
	if a == 0 || b == 0 {
		return false
	}

	switch {
	case scanner.IsWord(a) && scanner.IsWord(b):
		return true
	case a == '+' && b == '+', a == '-' && b == '-':
		return true
	case a == '/' && (b == '/' || b == '*'):
		return true
	case a == '<' && b == '!', a == '-' && b == '>':
		return true
	case scanner.IsDigit(a) && b == '.':
		return true
	}

	return false
}

func isHorizontalSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\v' || b == '\f'
}
