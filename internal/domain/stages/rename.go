package stages

import (
	"strings"
)

// DefaultMinLength is the shortest identifier worth renaming.
const DefaultMinLength = 3

// Renamer replaces identifiers declared in the text with short synthetic
// names taken from the run's RenameContext.
//
// Only declared names are candidates: let/const/var/function/class
// bindings, function, method, arrow and catch parameters, and
// destructuring targets. A name is renamed only when every use of it lies
// inside a scope that declares it. Names in Reserved, keywords, well-known
// globals, names shorter than MinLength, the protected declaration, names
// already of the generated "_" plus letters form and any name that also
// appears as a property (after a dot) are never renamed. Top-level names
// stay unless TopLevel is set, since HTML handlers and other scripts can see
// them.
type Renamer struct {
	Reserved  []string
	MinLength int
	TopLevel  bool
	Protect   string
}

// NewRenamer returns a renamer with the default minimum length.
func NewRenamer(reserved []string, protect string) *Renamer {
	return &Renamer{Reserved: reserved, MinLength: DefaultMinLength, Protect: protect}
}

// Name identifies the stage in reports.
func (r *Renamer) Name() string {
	return "rename"
}

// Rewrite implements Stage. Without a context in the input it renames with
// a private one.
func (r *Renamer) Rewrite(in Input) (string, error) {
	ix, err := validate(in)
	if err != nil {
		return "", err
	}

	rc := in.Renames
	if rc == nil {
		rc = NewRenameContext()
	}

	t := tokenize(ix)
	decls := collectDeclarations(t)
	eligible := r.eligible(t, decls)

	if len(eligible) == 0 {
		return in.Text, nil
	}

	for i := range t.list {
		if t.ident(i) {
			rc.Reserve(t.str(i))
		}
	}

	var edits []edit

	for i := range t.list {
		if !t.ident(i) || !eligible[t.str(i)] || !renamable(t, i) {
			continue
		}

		name := t.str(i)
		short := rc.Assign(name)
		tok := t.list[i]

		replacement := short
		if shorthandProperty(t, i) {
			replacement = name + ": " + short
		}

		edits = append(edits, edit{start: tok.start, end: tok.end, replacement: replacement})
	}

	return applyEdits(in.Text, edits), nil
}

func (r *Renamer) eligible(t *tokens, decls declarations) map[string]bool {
	reserved := make(map[string]bool, len(r.Reserved))
	for _, name := range r.Reserved {
		reserved[name] = true
	}

	members := map[string]bool{}

	for i := range t.list {
		if t.ident(i) && t.afterMemberDot(i) {
			members[t.str(i)] = true
		}
	}

	excluded := func(name string) bool {
		return len(name) < r.MinLength || reserved[name] || keywords[name] ||
			globals[name] || members[name] || name == r.Protect || synthetic(name)
	}

	out := map[string]bool{}

	for name := range decls.local {
		if !excluded(name) && (r.TopLevel || !decls.top[name]) {
			out[name] = true
		}
	}

	if r.TopLevel {
		for name := range decls.top {
			if !excluded(name) {
				out[name] = true
			}
		}
	}

	// A name used outside every scope declaring it refers to something
	// else there, usually a global of another script.
	for i := range t.list {
		if !t.ident(i) || !renamable(t, i) {
			continue
		}

		name := t.str(i)
		if !out[name] || (r.TopLevel && decls.top[name]) || decls.covers(name, i) {
			continue
		}

		delete(out, name)
	}

	return out
}

// synthetic reports whether name already has the generated "_" plus
// letters form. Such names are left alone, so renaming twice changes
// nothing.
func synthetic(name string) bool {
	if len(name) < 2 || name[0] != '_' {
		return false
	}

	for i := 1; i < len(name); i++ {
		if strings.IndexByte(nameAlphabet, name[i]) < 0 {
			return false
		}
	}

	return true
}

// renamable reports whether the occurrence at i refers to a binding rather
// than a property key, member or label.
func renamable(t *tokens, i int) bool {
	if t.afterMemberDot(i) {
		return false
	}

	if t.isWord(i-1, "break") || t.isWord(i-1, "continue") {
		return false
	}

	if t.isPunct(i+1, ':') && (i == 0 || t.isPunct(i-1, '{') || t.isPunct(i-1, ',') ||
		t.isPunct(i-1, ';') || t.isPunct(i-1, '}')) {
		return false
	}

	if methodName(t, i) || classField(t, i) {
		return false
	}

	return true
}

// shorthandProperty reports whether the occurrence at i is a shorthand
// property `{name}` that has to be spelled out once the name changes.
func shorthandProperty(t *tokens, i int) bool {
	open := t.parent[i]
	if open < 0 || !t.isPunct(open, '{') || !objectBrace(t, open) {
		return false
	}

	if !t.isPunct(i-1, '{') && !t.isPunct(i-1, ',') {
		return false
	}

	return t.isPunct(i+1, '}') || t.isPunct(i+1, ',') || (t.isPunct(i+1, '=') && !t.isPunct(i+2, '='))
}

// objectBrace guesses whether the brace at open starts an object literal or
// pattern rather than a block, from the token before it.
func objectBrace(t *tokens, open int) bool {
	p := open - 1
	if p < 0 {
		return false
	}

	if t.list[p].kind == tokWord {
		switch t.str(p) {
		case "return", "yield", "await", "typeof", "void", "case", "in", "of", "let", "const", "var":
			return true
		}

		return false
	}

	if t.list[p].kind != tokPunct {
		return false
	}

	if t.isPunct(p, '>') && t.isArrow(p-1) {
		return false
	}

	return strings.IndexByte("=(,:[?!&|+-*/%<>~^", t.text[t.list[p].start]) >= 0
}

// methodName reports whether the word at i names a method in an object
// literal or class body: `name(...) {`.
func methodName(t *tokens, i int) bool {
	open := t.parent[i]
	if open < 0 || !t.isPunct(open, '{') || !t.isPunct(i+1, '(') {
		return false
	}

	closing := t.match[i+1]
	if closing < 0 || !t.isPunct(closing+1, '{') {
		return false
	}

	if !objectBrace(t, open) && !classBody(t, open) {
		return false
	}

	switch {
	case t.isPunct(i-1, '{'), t.isPunct(i-1, ','), t.isPunct(i-1, ';'), t.isPunct(i-1, '}'),
		t.isPunct(i-1, '*'), t.isWord(i-1, "get"), t.isWord(i-1, "set"),
		t.isWord(i-1, "static"), t.isWord(i-1, "async"):
		return true
	}

	return false
}

// classField reports whether the word at i declares a class field.
func classField(t *tokens, i int) bool {
	open := t.parent[i]
	if open < 0 || !t.isPunct(open, '{') || !classBody(t, open) {
		return false
	}

	if !t.isPunct(i-1, '{') && !t.isPunct(i-1, ';') && !t.isPunct(i-1, '}') && !t.isWord(i-1, "static") {
		return false
	}

	return t.isPunct(i+1, '=') || t.isPunct(i+1, ';')
}

// classBody reports whether the brace at open starts a class body.
func classBody(t *tokens, open int) bool {
	for p := open - 1; p >= 0 && p >= open-6; p-- {
		if t.isWord(p, "class") {
			return true
		}

		if t.list[p].kind != tokWord && !t.isPunct(p, '.') {
			return false
		}
	}

	return false
}
