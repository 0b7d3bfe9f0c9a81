// Package model defines the data structures shared by the scanner, the
// rewrite stages and the reporting layer.
package model

// Path represents a file system path.
type Path string

// Mode is the lexical classification of a byte range.
type Mode int

const (
	// Code is anything that is not a comment or a literal.
	Code Mode = iota
	// LineComment runs from "//" up to, not including, the line terminator.
	LineComment
	// BlockComment runs from "/*" through "*/", or to end of text.
	BlockComment
	// SingleQuoted is a '...' string literal including its quotes.
	SingleQuoted
	// DoubleQuoted is a "..." string literal including its quotes.
	DoubleQuoted
	// Templated is the literal text of a `...` template, including the
	// "${" that opens and the "}" that closes an interpolation.
	Templated
	// Protected is never produced by the scanner. It tags a region that
	// every stage must copy verbatim.
	Protected
)

var modeNames = map[Mode]string{
	Code:         "code",
	LineComment:  "line-comment",
	BlockComment: "block-comment",
	SingleQuoted: "single-quoted",
	DoubleQuoted: "double-quoted",
	Templated:    "template",
	Protected:    "protected",
}

func (md Mode) String() string {
	if name, ok := modeNames[md]; ok {
		return name
	}

	return "unknown"
}

// IsComment reports whether the mode is a comment.
func (md Mode) IsComment() bool {
	return md == LineComment || md == BlockComment
}

// IsLiteral reports whether the mode is a string or template literal.
func (md Mode) IsLiteral() bool {
	return md == SingleQuoted || md == DoubleQuoted || md == Templated
}

// Modes lists every mode in declaration order.
func Modes() []Mode {
	return []Mode{Code, LineComment, BlockComment, SingleQuoted, DoubleQuoted, Templated, Protected}
}

// CountLines counts lines the way the deployment reports always have:
// one more than the number of newlines.
func CountLines(text string) int {
	n := 1

	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			n++
		}
	}

	return n
}
