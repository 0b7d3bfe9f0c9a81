package stages

// scope is an inclusive token range a binding is visible in.
type scope struct {
	from int
	to   int
}

func (s scope) contains(i int) bool {
	return s.from <= i && i <= s.to
}

// declarations splits the names bound in a text by scope: top holds names
// visible to other scripts, local maps every other name to the scopes that
// declare it. A name may be in both.
type declarations struct {
	top   map[string]bool
	local map[string][]scope
}

// covers reports whether occurrence i of name lies inside a local scope
// declaring it.
func (d declarations) covers(name string, i int) bool {
	for _, s := range d.local[name] {
		if s.contains(i) {
			return true
		}
	}

	return false
}

// binding is where the names of one declaration go.
type binding struct {
	top   bool
	scope scope
}

type collector struct {
	t *tokens
	d declarations
}

func collectDeclarations(t *tokens) declarations {
	c := &collector{t: t, d: declarations{top: map[string]bool{}, local: map[string][]scope{}}}

	for i := range t.list {
		switch {
		case t.isWord(i, "var"):
			c.declarators(i+1, binding{top: c.funcDepth(i) == 0, scope: c.varScope(i)})
		case t.isWord(i, "let"), t.isWord(i, "const"):
			c.declarators(i+1, binding{top: c.depth(i) == 0, scope: c.blockScope(i)})
		case t.isWord(i, "function"):
			c.function(i)
		case t.isWord(i, "class"):
			if t.ident(i+1) && !t.isWord(i+1, "extends") {
				c.declare(i+1, binding{top: c.depth(i) == 0, scope: c.blockScope(i)})
			}
		case t.isWord(i, "catch"):
			if t.isPunct(i+1, '(') {
				c.params(i+1, c.paramScope(i+1))
			}
		case t.isPunct(i, '(') && i > 0 && t.list[i-1].kind == tokWord &&
			!keywords[t.str(i-1)] && methodName(t, i-1):
			c.params(i, c.paramScope(i))
		case t.isArrow(i):
			end := c.arrowEnd(i)

			switch {
			case t.ident(i - 1):
				c.declare(i-1, binding{scope: scope{from: i - 1, to: end}})
			case t.isPunct(i-1, ')') && t.match[i-1] >= 0:
				c.params(t.match[i-1], scope{from: t.match[i-1], to: end})
			}
		}
	}

	return c.d
}

func (c *collector) declare(i int, b binding) {
	name := c.t.str(i)
	if keywords[name] {
		return
	}

	if b.top {
		c.d.top[name] = true
	} else {
		c.d.local[name] = append(c.d.local[name], b.scope)
	}
}

// depth counts the brackets enclosing token i.
func (c *collector) depth(i int) int {
	n := 0
	for p := c.t.parent[i]; p >= 0; p = c.t.parent[p] {
		n++
	}

	return n
}

// funcDepth counts the function bodies enclosing token i.
func (c *collector) funcDepth(i int) int {
	n := 0

	for p := c.t.parent[i]; p >= 0; p = c.t.parent[p] {
		if c.functionBody(p) {
			n++
		}
	}

	return n
}

func (c *collector) fileScope() scope {
	return scope{from: 0, to: c.t.len() - 1}
}

// group spans the bracket at open and its match, or runs to the end of
// text when it is never closed.
func (c *collector) group(open int) scope {
	if closing := c.t.match[open]; closing > open {
		return scope{from: open, to: closing}
	}

	return scope{from: open, to: c.t.len() - 1}
}

// blockScope is where a let, const, class or function declared at token i
// is visible: the enclosing block, or the loop a for head belongs to.
func (c *collector) blockScope(i int) scope {
	t := c.t

	p := t.parent[i]
	if p < 0 {
		return c.fileScope()
	}

	if t.isPunct(p, '(') {
		if closing := t.match[p]; closing > p && t.isPunct(closing+1, '{') && t.match[closing+1] > closing {
			return scope{from: p, to: t.match[closing+1]}
		}

		return c.blockScope(p)
	}

	return c.group(p)
}

// varScope is the function body enclosing token i.
func (c *collector) varScope(i int) scope {
	for p := c.t.parent[i]; p >= 0; p = c.t.parent[p] {
		if c.functionBody(p) {
			return c.group(p)
		}
	}

	return c.fileScope()
}

// paramScope spans a parameter list opening at open and the body after it.
func (c *collector) paramScope(open int) scope {
	t := c.t

	closing := t.match[open]
	if closing < 0 {
		return scope{from: open, to: t.len() - 1}
	}

	if t.isPunct(closing+1, '{') && t.match[closing+1] > closing {
		return scope{from: open, to: t.match[closing+1]}
	}

	return scope{from: open, to: closing}
}

// arrowEnd returns the last token of the body of the arrow at i. An
// expression body ends at a comma, a semicolon, the enclosing bracket or a
// word starting a new line.
func (c *collector) arrowEnd(i int) int {
	t := c.t
	body := i + 2

	if t.isPunct(body, '{') && t.match[body] > body {
		return t.match[body]
	}

	end := i + 1

	for k := body; k < t.len(); k++ {
		if k > body && t.list[k].nl && t.list[k].kind == tokWord {
			break
		}

		if t.parent[k] != t.parent[body] || t.isPunct(k, ',') || t.isPunct(k, ';') {
			break
		}

		if t.match[k] > k {
			k = t.match[k]
		}

		end = k
	}

	return end
}

// functionBody reports whether the brace at open starts a function or method
// body.
func (c *collector) functionBody(open int) bool {
	t := c.t
	if !t.isPunct(open, '{') {
		return false
	}

	if t.isPunct(open-1, '>') && t.isArrow(open-2) {
		return true
	}

	if !t.isPunct(open-1, ')') || t.match[open-1] < 0 {
		return false
	}

	before := t.match[open-1] - 1

	switch {
	case t.isWord(before, "function"), t.isPunct(before, '*'):
		return true
	case t.ident(before):
		return !controlKeywords[t.str(before)]
	}

	return false
}

func (c *collector) function(i int) {
	t := c.t
	j := i + 1

	if t.isPunct(j, '*') {
		j++
	}

	if t.ident(j) {
		c.declare(j, binding{top: c.depth(i) == 0, scope: c.blockScope(i)})
		j++
	}

	if t.isPunct(j, '(') {
		c.params(j, c.paramScope(j))
	}
}

// params reads a parameter list, which is never top level.
func (c *collector) params(open int, s scope) {
	if closing := c.t.match[open]; closing > open {
		c.elements(open+1, closing, binding{scope: s})
	}
}

// declarators reads `a = 1, {b, c: [d]} = e` after a declaration keyword.
func (c *collector) declarators(i int, b binding) {
	t := c.t

	for i < t.len() {
		switch {
		case t.ident(i):
			c.declare(i, b)
		case (t.isPunct(i, '{') || t.isPunct(i, '[')) && t.match[i] > i:
			c.pattern(i, b)
			i = t.match[i]
		default:
			return
		}

		i++

		if t.isPunct(i, '=') {
			next, ok := c.skipInitializer(i + 1)
			if !ok {
				return
			}

			i = next
		}

		if !t.isPunct(i, ',') {
			return
		}

		i++
	}
}

// skipInitializer returns the index of the comma ending an initializer that
// starts at i, or false when the declaration list ends instead.
func (c *collector) skipInitializer(i int) (int, bool) {
	t := c.t

	for k := i; k < t.len(); k++ {
		if k > i && t.list[k].nl {
			return 0, false
		}

		if t.match[k] > k {
			k = t.match[k]
			continue
		}

		switch {
		case t.isPunct(k, ','):
			return k, true
		case t.isPunct(k, ';'), t.isPunct(k, ')'), t.isPunct(k, ']'), t.isPunct(k, '}'):
			return 0, false
		}
	}

	return 0, false
}

func (c *collector) pattern(open int, b binding) {
	closing := c.t.match[open]

	if c.t.isPunct(open, '{') {
		c.objectPattern(open+1, closing, b)
	} else {
		c.elements(open+1, closing, b)
	}
}

func (c *collector) elements(from, to int, b binding) {
	for from < to {
		end := c.elementEnd(from, to)
		c.element(from, end, b)
		from = end + 1
	}
}

// elementEnd returns the index of the comma ending the element at from,
// or to.
func (c *collector) elementEnd(from, to int) int {
	for k := from; k < to; k++ {
		if c.t.match[k] > k {
			k = c.t.match[k]
			continue
		}

		if c.t.isPunct(k, ',') {
			return k
		}
	}

	return to
}

func (c *collector) element(from, to int, b binding) {
	t := c.t

	for from < to && t.isPunct(from, '.') {
		from++
	}

	if from >= to {
		return
	}

	switch {
	case t.ident(from):
		c.declare(from, b)
	case (t.isPunct(from, '{') || t.isPunct(from, '[')) && t.match[from] > from && t.match[from] < to:
		c.pattern(from, b)
	}
}

func (c *collector) objectPattern(from, to int, b binding) {
	t := c.t

	for from < to {
		end := c.elementEnd(from, to)
		k := from

		for k < end && t.isPunct(k, '.') {
			k++
		}

		switch {
		case t.isPunct(k, '[') && t.match[k] > k && t.isPunct(t.match[k]+1, ':'):
			c.element(t.match[k]+2, end, b)
		case k < end && t.isPunct(k+1, ':'):
			c.element(k+2, end, b)
		case t.ident(k):
			c.declare(k, b)
		}

		from = end + 1
	}
}
