package stages

import (
	"strings"

	m "github.com/mouse-blink/predeploy/internal/model"
	"github.com/mouse-blink/predeploy/internal/scanner"
)

type tokKind int

const (
	tokWord tokKind = iota
	tokPunct
	tokOpaque // literal or protected span
)

type token struct {
	start int
	end   int
	kind  tokKind
	nl    bool // a line break precedes the token
}

// tokens is the code of a text as a flat token list. Words are
// identifier-like runs, every other code byte is a one-byte token and each
// literal is a single opaque token.
type tokens struct {
	text   string
	list   []token
	match  []int // matching bracket, -1 if none
	parent []int // innermost open bracket, -1 at top level
}

func tokenize(ix *scanner.Index) *tokens {
	text := ix.Text
	t := &tokens{text: text}
	nl := false

	for _, sp := range ix.Spans {
		switch {
		case sp.Mode.IsComment():
			if sp.Mode == m.BlockComment && strings.ContainsAny(text[sp.Start:sp.End], "\r\n") {
				nl = true
			}

			continue
		case sp.Mode != m.Code:
			t.list = append(t.list, token{start: sp.Start, end: sp.End, kind: tokOpaque, nl: nl})
			nl = false

			continue
		}

		for i := sp.Start; i < sp.End; {
			b := text[i]

			switch {
			case b == '\n' || b == '\r':
				nl = true
				i++
			case scanner.IsSpace(b):
				i++
			case scanner.IsWord(b):
				j := i
				for j < sp.End && scanner.IsWord(text[j]) {
					j++
				}

				t.list = append(t.list, token{start: i, end: j, kind: tokWord, nl: nl})
				nl = false
				i = j
			default:
				t.list = append(t.list, token{start: i, end: i + 1, kind: tokPunct, nl: nl})
				nl = false
				i++
			}
		}
	}

	t.link()

	return t
}

func (t *tokens) link() {
	n := len(t.list)
	t.match = make([]int, n)
	t.parent = make([]int, n)

	var stack []int

	for i := range t.list {
		t.match[i] = -1

		t.parent[i] = -1
		if len(stack) > 0 {
			t.parent[i] = stack[len(stack)-1]
		}

		if t.list[i].kind != tokPunct {
			continue
		}

		switch b := t.text[t.list[i].start]; b {
		case '(', '[', '{':
			stack = append(stack, i)
		case ')', ']', '}':
			if len(stack) == 0 {
				continue
			}

			open := stack[len(stack)-1]
			if t.text[t.list[open].start] != opening(b) {
				continue
			}

			stack = stack[:len(stack)-1]
			t.match[open] = i
			t.match[i] = open
			t.parent[i] = t.parent[open]
		}
	}
}

func opening(b byte) byte {
	switch b {
	case ')':
		return '('
	case ']':
		return '['
	default:
		return '{'
	}
}

func (t *tokens) len() int { return len(t.list) }

func (t *tokens) str(i int) string {
	if i < 0 || i >= len(t.list) {
		return ""
	}

	return t.text[t.list[i].start:t.list[i].end]
}

func (t *tokens) isPunct(i int, b byte) bool {
	return i >= 0 && i < len(t.list) && t.list[i].kind == tokPunct && t.text[t.list[i].start] == b
}

func (t *tokens) isWord(i int, w string) bool {
	return i >= 0 && i < len(t.list) && t.list[i].kind == tokWord && t.str(i) == w
}

// ident reports whether token i is a word that can be an identifier.
func (t *tokens) ident(i int) bool {
	if i < 0 || i >= len(t.list) || t.list[i].kind != tokWord {
		return false
	}

	return !scanner.IsDigit(t.text[t.list[i].start])
}

// adjacent reports whether tokens i and i+1 touch, e.g. the two halves of
// "=>".
func (t *tokens) adjacent(i int) bool {
	return i+1 < len(t.list) && t.list[i].end == t.list[i+1].start
}

// isArrow reports whether token i starts "=>".
func (t *tokens) isArrow(i int) bool {
	return t.isPunct(i, '=') && t.isPunct(i+1, '>') && t.adjacent(i)
}

// afterMemberDot reports whether token i follows a property-access dot.
func (t *tokens) afterMemberDot(i int) bool {
	if !t.isPunct(i-1, '.') {
		return false
	}

	return !t.isPunct(i-2, '.') || !t.isPunct(i-3, '.')
}
