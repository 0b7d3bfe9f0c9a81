package stages

import (
	"strings"

	m "github.com/mouse-blink/predeploy/internal/model"
	"github.com/mouse-blink/predeploy/internal/scanner"
)

// CallRemover removes whole call statements whose callee matches one of
// Callees. A callee is a dotted name such as "console.log" or a wildcard
// such as "console.*", which matches any single member of console.
//
// Only calls that sit entirely in code and are a statement of their own are
// touched. Anything that looks like a call inside a string, a template or the
// protected region is left alone, as is a call whose result is used.
type CallRemover struct {
	Callees []string
}

// NewCallRemover returns a remover for the given callees.
func NewCallRemover(callees []string) *CallRemover {
	return &CallRemover{Callees: callees}
}

// Name identifies the stage in reports.
func (c *CallRemover) Name() string {
	return "calls"
}

// Rewrite implements Stage.
func (c *CallRemover) Rewrite(in Input) (string, error) {
	ix, err := validate(in)
	if err != nil {
		return "", err
	}

	if len(c.Callees) == 0 {
		return in.Text, nil
	}

	var edits []edit

	text := in.Text

	for i := 0; i < len(text); i++ {
		end, ok := ix.WordAt(i)
		if !ok {
			continue
		}

		if e, found := c.statementAt(ix, i); found {
			edits = append(edits, e)
			i = e.end - 1

			continue
		}

		i = end - 1
	}

	return applyEdits(text, edits), nil
}

// statementAt tries to match a removable call statement starting at the
// word at start.
func (c *CallRemover) statementAt(ix *scanner.Index, start int) (edit, bool) {
	text := ix.Text

	if p, _ := ix.PrevSignificant(start); p >= 0 && isMemberDot(text, p) {
		return edit{}, false
	}

	name, nameEnd := dottedName(ix, start)
	if !c.matches(name) {
		return edit{}, false
	}

	open, _ := ix.NextSignificant(nameEnd)
	if !ix.IsCode(open) || text[open] != '(' {
		return edit{}, false
	}

	closing, ok := balancedParens(ix, open)
	if !ok {
		return edit{}, false
	}

	replacement, ok := statementPosition(ix, start)
	if !ok {
		return edit{}, false
	}

	stmtEnd, ok := statementEnd(ix, closing+1)
	if !ok {
		return edit{}, false
	}

	e := edit{start: start, end: stmtEnd, replacement: replacement}
	if replacement == "" {
		e = widen(text, e)
	}

	return e, true
}

func (c *CallRemover) matches(name string) bool {
	for _, callee := range c.Callees {
		if prefix, ok := strings.CutSuffix(callee, "*"); ok && strings.HasSuffix(prefix, ".") {
			rest, found := strings.CutPrefix(name, prefix)
			if found && rest != "" && !strings.Contains(rest, ".") {
				return true
			}

			continue
		}

		if callee == name {
			return true
		}
	}

	return false
}

// dottedName reads `a.b.c` starting at start, allowing whitespace and
// comments around the dots, and returns it without them.
func dottedName(ix *scanner.Index, start int) (string, int) {
	text := ix.Text
	end, _ := ix.WordAt(start)

	var b strings.Builder

	b.WriteString(text[start:end])

	for {
		dot, _ := ix.NextSignificant(end)
		if !ix.IsCode(dot) || text[dot] != '.' || (dot+1 < len(text) && text[dot+1] == '.') {
			return b.String(), end
		}

		word, _ := ix.NextSignificant(dot + 1)

		wordEnd, ok := ix.WordAt(word)
		if !ok {
			return b.String(), end
		}

		b.WriteByte('.')
		b.WriteString(text[word:wordEnd])
		end = wordEnd
	}
}

// isMemberDot reports whether the byte at p is a property-access dot rather
// than the last dot of a spread.
func isMemberDot(text string, p int) bool {
	if text[p] != '.' {
		return false
	}

	return p < 2 || text[p-1] != '.' || text[p-2] != '.'
}

// balancedParens returns the offset of the parenthesis closing the one at
// open. A protected byte inside the argument list makes the call ineligible.
func balancedParens(ix *scanner.Index, open int) (int, bool) {
	depth := 0

	for i := open; i < len(ix.Text); i++ {
		md := ix.ModeAt(i)
		if md == m.Protected {
			return 0, false
		}

		if md != m.Code {
			continue
		}

		switch ix.Text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}

	return 0, false
}

// statementPosition decides whether a call starting at start begins a
// statement, and what has to replace it to keep the code around it valid.
func statementPosition(ix *scanner.Index, start int) (string, bool) {
	text := ix.Text

	p, newline := ix.PrevSignificant(start)
	if p < 0 {
		return "", true
	}

	switch text[p] {
	case ';', '{', '}':
		return "", true
	case ')':
		return ";", true
	case ':':
		switch {
		case caseClause(ix, p):
			return "", true
		case statementLabel(ix, p):
			return ";", true
		}

		return "", false
	}

	if word := wordEndingAt(ix, p); word == "else" || word == "do" {
		return ";", true
	}

	if newline && endsExpression(text[p]) {
		return "", true
	}

	return "", false
}

// caseClause reports whether the colon at p ends a `case <expr>:` or
// `default:` of a switch.
func caseClause(ix *scanner.Index, p int) bool {
	brace := enclosingBrace(ix, p)
	if brace < 0 || !switchBody(ix, brace) {
		return false
	}

	depth := 0

	for k := p - 1; k > brace; k-- {
		if !ix.IsCode(k) {
			continue
		}

		b := ix.Text[k]

		switch {
		case b == ')' || b == ']' || b == '}':
			depth++
		case b == '(' || b == '[' || b == '{':
			depth--
		case depth > 0:
		case scanner.IsWord(b):
			word := wordEndingAt(ix, k)
			if word == "case" || (word == "default" && k == lastCode(ix, p)) {
				return true
			}

			k -= len(word) - 1
		case b == ';' || b == ':' || b == '?':
			return false
		}
	}

	return false
}

// statementLabel reports whether the colon at p ends a statement label.
func statementLabel(ix *scanner.Index, p int) bool {
	q, _ := ix.PrevSignificant(p)

	word := wordEndingAt(ix, q)
	if word == "" || keywords[word] || scanner.IsDigit(word[0]) {
		return false
	}

	r, _ := ix.PrevSignificant(q - len(word) + 1)
	if r < 0 {
		return true
	}

	switch ix.Text[r] {
	case ';', '}':
		return true
	case '{':
		return blockBrace(ix, r)
	}

	return false
}

// lastCode returns the last significant code byte before p.
func lastCode(ix *scanner.Index, p int) int {
	q, _ := ix.PrevSignificant(p)

	return q
}

// enclosingBrace returns the offset of the innermost open brace around p,
// or -1 when p is at top level or inside parentheses or brackets.
func enclosingBrace(ix *scanner.Index, p int) int {
	depth := 0

	for k := p - 1; k >= 0; k-- {
		if !ix.IsCode(k) {
			continue
		}

		switch ix.Text[k] {
		case ')', ']', '}':
			depth++
		case '(', '[':
			if depth == 0 {
				return -1
			}

			depth--
		case '{':
			if depth == 0 {
				return k
			}

			depth--
		}
	}

	return -1
}

// switchBody reports whether the brace at open follows `switch (...)`.
func switchBody(ix *scanner.Index, open int) bool {
	q, _ := ix.PrevSignificant(open)
	if q < 0 || ix.Text[q] != ')' {
		return false
	}

	depth := 0

	for k := q; k >= 0; k-- {
		if !ix.IsCode(k) {
			continue
		}

		switch ix.Text[k] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				before, _ := ix.PrevSignificant(k)
				return before >= 0 && wordEndingAt(ix, before) == "switch"
			}
		}
	}

	return false
}

// blockBrace guesses whether the brace at open starts a block rather than
// an object literal, from what precedes it.
func blockBrace(ix *scanner.Index, open int) bool {
	q, _ := ix.PrevSignificant(open)
	if q < 0 {
		return true
	}

	switch ix.Text[q] {
	case ')', ';', '{', '}':
		return true
	case '>':
		return q > 0 && ix.Text[q-1] == '='
	}

	switch wordEndingAt(ix, q) {
	case "else", "do", "try", "finally":
		return true
	}

	return false
}

// statementEnd returns the end of a call statement whose argument list
// closes just before off.
func statementEnd(ix *scanner.Index, off int) (int, bool) {
	text := ix.Text

	next, newline := ix.NextSignificant(off)
	if next >= len(text) {
		return off, true
	}

	if ix.IsCode(next) {
		switch text[next] {
		case ';':
			return next + 1, true
		case '}':
			return off, true
		}
	}

	if newline && startsStatement(ix, next) {
		return off, true
	}

	return 0, false
}

func wordEndingAt(ix *scanner.Index, p int) string {
	if !ix.IsCode(p) || !scanner.IsWord(ix.Text[p]) {
		return ""
	}

	start := p
	for start > 0 && ix.IsCode(start-1) && scanner.IsWord(ix.Text[start-1]) {
		start--
	}

	return ix.Text[start : p+1]
}

func endsExpression(b byte) bool {
	return scanner.IsWord(b) || b == ']' || b == '"' || b == '\'' || b == '`'
}

// startsStatement reports whether the byte at off cannot continue the
// expression on the previous line, so a line break before it ends the
// statement.
func startsStatement(ix *scanner.Index, off int) bool {
	b := ix.Text[off]

	switch ix.ModeAt(off) {
	case m.SingleQuoted, m.DoubleQuoted, m.Protected:
		return true
	case m.Code:
	default:
		return false
	}

	if scanner.IsWord(b) {
		end, _ := ix.WordAt(off)
		word := ix.Text[off:end]

		return word != "in" && word != "instanceof"
	}

	return b == '{' || b == '}'
}

// widen grows a removal so a statement alone on its line takes the
// indentation and line break with it, and a statement sharing a line takes
// one run of following spaces.
func widen(text string, e edit) edit {
	lineStart := e.start
	for lineStart > 0 && isHorizontalSpace(text[lineStart-1]) {
		lineStart--
	}

	after := e.end
	for after < len(text) && isHorizontalSpace(text[after]) {
		after++
	}

	atLineStart := lineStart == 0 || text[lineStart-1] == '\n'

	switch {
	case atLineStart && after == len(text):
		return edit{start: lineStart, end: after}
	case atLineStart && text[after] == '\n':
		return edit{start: lineStart, end: after + 1}
	case atLineStart && strings.HasPrefix(text[after:], "\r\n"):
		return edit{start: lineStart, end: after + 2}
	case lineStart < e.start:
		return edit{start: e.start, end: after}
	}

	return e
}
