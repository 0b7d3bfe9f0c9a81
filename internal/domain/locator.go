package domain

import (
	m "github.com/mouse-blink/predeploy/internal/model"
	"github.com/mouse-blink/predeploy/internal/scanner"
)

// Locate finds the first top-level `const|let|var <name> = [ ... ];` (or an
// object literal in place of the array) and returns it as a protected
// region. Brackets inside literals and comments are ignored, and comments may
// sit between the tokens of the declaration. A missing declaration is not an
// error: callers get false and carry on unprotected.
func Locate(text string, spans []m.Span, name string) (m.Region, bool) {
	if name == "" || len(text) == 0 {
		return m.Region{}, false
	}

	ix := scanner.NewIndex(text, spans)
	depth := 0

	for i := 0; i < len(text); i++ {
		if !ix.IsCode(i) {
			continue
		}

		switch text[i] {
		case '(', '[', '{':
			depth++
			continue
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}

			continue
		}

		end, ok := ix.WordAt(i)
		if !ok {
			continue
		}

		if depth == 0 && isDeclKeyword(text[i:end]) {
			if region, found := matchDeclaration(ix, i, end, name); found {
				return region, true
			}
		}

		i = end - 1
	}

	return m.Region{}, false
}

func isDeclKeyword(word string) bool {
	return word == "const" || word == "let" || word == "var"
}

func matchDeclaration(ix *scanner.Index, kwStart, kwEnd int, name string) (m.Region, bool) {
	text := ix.Text

	nameStart, _ := ix.NextSignificant(kwEnd)

	nameEnd, ok := ix.WordAt(nameStart)
	if !ok || text[nameStart:nameEnd] != name {
		return m.Region{}, false
	}

	eq, _ := ix.NextSignificant(nameEnd)
	if !ix.IsCode(eq) || text[eq] != '=' || (eq+1 < len(text) && text[eq+1] == '=') {
		return m.Region{}, false
	}

	open, _ := ix.NextSignificant(eq + 1)
	if !ix.IsCode(open) || (text[open] != '[' && text[open] != '{') {
		return m.Region{}, false
	}

	closing, ok := matchBracket(ix, open)
	if !ok {
		return m.Region{}, false
	}

	end := closing + 1
	if semi, _ := ix.NextSignificant(end); ix.IsCode(semi) && text[semi] == ';' {
		end = semi + 1
	}

	span := m.Span{Start: kwStart, End: end, Mode: m.Protected}

	return m.Region{Name: name, Span: span, Content: text[kwStart:end]}, true
}

// matchBracket returns the offset of the bracket closing the one at open,
// counting only brackets in code.
func matchBracket(ix *scanner.Index, open int) (int, bool) {
	var stack []byte

	for i := open; i < len(ix.Text); i++ {
		if !ix.IsCode(i) {
			continue
		}

		switch b := ix.Text[i]; b {
		case '(', '[', '{':
			stack = append(stack, b)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != opening(b) {
				return 0, false
			}

			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, true
			}
		}
	}

	return 0, false
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
