package domain

import (
	"testing"

	m "github.com/mouse-blink/predeploy/internal/model"
	"github.com/mouse-blink/predeploy/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locate(text, name string) (m.Region, bool) {
	return Locate(text, scanner.Scan(text).Spans, name)
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "array with nested brackets and a bracket in a string",
			input: "let a = 1;\nconst quizData = [1, [2], {a: ']'}];\nx();",
			want:  "const quizData = [1, [2], {a: ']'}];",
		},
		{
			name:  "comments between tokens",
			input: "const /* c */ quizData /* d */ = // e\n [1] ;",
			want:  "const /* c */ quizData /* d */ = // e\n [1] ;",
		},
		{
			name:  "object without semicolon",
			input: "var quizData = {a: 1}\nrun()",
			want:  "var quizData = {a: 1}",
		},
		{
			name:  "first declaration wins",
			input: "let quizData = [1];\nlet quizData2 = [2];\nlet quizData = [3];",
			want:  "let quizData = [1];",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, ok := locate(tt.input, "quizData")
			require.True(t, ok)
			assert.Equal(t, tt.want, region.Content)
			assert.Equal(t, tt.want, tt.input[region.Span.Start:region.Span.End])
			assert.Equal(t, m.Protected, region.Span.Mode)
			assert.Equal(t, "quizData", region.Name)
		})
	}
}

func TestLocate_NotFound(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "absent", input: "let a = [1];"},
		{name: "not top level", input: "function f() { const quizData = [1]; }"},
		{name: "unbalanced", input: "const quizData = [1, 2"},
		{name: "longer name", input: "const quizDataX = [1];"},
		{name: "inside a string", input: "s = 'const quizData = [1];'"},
		{name: "not a literal", input: "const quizData = load();"},
		{name: "empty", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := locate(tt.input, "quizData")
			assert.False(t, ok)
		})
	}
}

func TestLocate_EmptyName(t *testing.T) {
	_, ok := locate("const quizData = [1];", "")
	assert.False(t, ok)
}
