package stages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallRemover(t *testing.T) {
	tests := []struct {
		name    string
		callees []string
		input   string
		want    string
	}{
		{
			name:    "call text inside the string argument is preserved",
			callees: []string{"log"},
			input:   `log("keep this: log(1);");`,
			want:    "",
		},
		{
			name:    "statement on its own line takes the line with it",
			callees: []string{"log"},
			input:   "a();\nlog(\"keep this: log(1);\");\nb();",
			want:    "a();\nb();",
		},
		{
			name:    "nested parentheses are removed as one unit",
			callees: []string{"log"},
			input:   "x();\nlog(a, fn(b, c));\ny();",
			want:    "x();\ny();",
		},
		{
			name:    "text in a string is not a call",
			callees: []string{"console.log"},
			input:   `alert("console.log(1);");`,
			want:    `alert("console.log(1);");`,
		},
		{
			name:    "member of another object",
			callees: []string{"console.log"},
			input:   "obj.console.log(1);",
			want:    "obj.console.log(1);",
		},
		{
			name:    "wildcard callee",
			callees: []string{"console.*"},
			input:   "console.warn('x');\nconsole.error(err);\nfoo();",
			want:    "foo();",
		},
		{
			name:    "indented statement in a block",
			callees: []string{"console.log"},
			input:   "function f() {\n    console.log('in');\n    return 1;\n}",
			want:    "function f() {\n    return 1;\n}",
		},
		{
			name:    "body of an if becomes an empty statement",
			callees: []string{"console.log"},
			input:   "if (debug) console.log(x);\nrun();",
			want:    "if (debug) ;\nrun();",
		},
		{
			name:    "result in use",
			callees: []string{"console.log"},
			input:   "const v = console.log(x);",
			want:    "const v = console.log(x);",
		},
		{
			name:    "statement ended by a line break",
			callees: []string{"console.log"},
			input:   "let a = b\nconsole.log(a)\nrun()",
			want:    "let a = b\nrun()",
		},
		{
			name:    "chained call",
			callees: []string{"console.log"},
			input:   "console.log(x).then(y);",
			want:    "console.log(x).then(y);",
		},
		{
			name:    "statement sharing a line",
			callees: []string{"console.log"},
			input:   "a(); console.log(1); b();",
			want:    "a(); b();",
		},
		{
			name:    "spaces around the dot",
			callees: []string{"console.log"},
			input:   "console . log(1);\nnext();",
			want:    "next();",
		},
		{
			name:    "unbalanced call at end of text",
			callees: []string{"console.log"},
			input:   "console.log(x",
			want:    "console.log(x",
		},
		{
			name:    "after case and default labels",
			callees: []string{"console.log"},
			input:   "switch (x) {\n  case 1: console.log(x); break;\n  default:\n    console.log(y);\n}",
			want:    "switch (x) {\n  case 1: break;\n  default:\n}",
		},
		{
			name:    "after a string case",
			callees: []string{"console.log"},
			input:   "switch (k) {\n  case 'a:b': console.log(k); break;\n}",
			want:    "switch (k) {\n  case 'a:b': break;\n}",
		},
		{
			name:    "labelled statement keeps an empty statement",
			callees: []string{"console.log"},
			input:   "outer: console.log(x);\nrun();",
			want:    "outer: ;\nrun();",
		},
		{
			name:    "ternary branch",
			callees: []string{"console.log"},
			input:   "ok ? a : console.log(x);",
			want:    "ok ? a : console.log(x);",
		},
		{
			name:    "ternary inside a case",
			callees: []string{"console.log"},
			input:   "switch (x) {\n  case 1: ok ? a : console.log(x);\n}",
			want:    "switch (x) {\n  case 1: ok ? a : console.log(x);\n}",
		},
		{
			name:    "object value",
			callees: []string{"console.log"},
			input:   "const o = {\n  key: console.log(x),\n  default: console.log(y)\n};",
			want:    "const o = {\n  key: console.log(x),\n  default: console.log(y)\n};",
		},
		{
			name:    "longer name with matching prefix",
			callees: []string{"console.log"},
			input:   "console.logger(1);",
			want:    "console.logger(1);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rewrite(t, NewCallRemover(tt.callees), tt.input))
		})
	}
}

func TestCallRemover_ProtectedArgument(t *testing.T) {
	input := "log([1, 2]);"
	assert.Equal(t, input, rewriteProtected(t, NewCallRemover([]string{"log"}), input, "[1, 2]"))
}

func TestCallRemover_NoCallees(t *testing.T) {
	input := "console.log(1);"
	assert.Equal(t, input, rewrite(t, NewCallRemover(nil), input))
}

func TestCallRemover_Matches(t *testing.T) {
	c := NewCallRemover([]string{"console.*", "debugLog"})

	assert.True(t, c.matches("console.info"))
	assert.True(t, c.matches("debugLog"))
	assert.False(t, c.matches("console"))
	assert.False(t, c.matches("console.log.call"))
	assert.False(t, c.matches("debug"))
}
