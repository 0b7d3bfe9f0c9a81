package stages

import (
	"strings"

	m "github.com/mouse-blink/predeploy/internal/model"
)

// CommentStripper removes comments. With Tags set it only removes comments
// whose text starts with one of the tags, e.g. "DEBUG" or "TODO".
//
// A line left holding nothing but whitespace is dropped. A block comment
// spanning lines leaves one line break behind, and one that sits between two
// tokens that would otherwise merge leaves a space.
type CommentStripper struct {
	Tags []string
}

// NewCommentStripper removes every comment.
func NewCommentStripper() *CommentStripper {
	return &CommentStripper{}
}

// NewTaggedCommentStripper removes only comments starting with a tag.
func NewTaggedCommentStripper(tags []string) *CommentStripper {
	return &CommentStripper{Tags: tags}
}

// Name identifies the stage in reports.
func (c *CommentStripper) Name() string {
	if len(c.Tags) > 0 {
		return "debug-comments"
	}

	return "comments"
}

// Rewrite implements Stage.
func (c *CommentStripper) Rewrite(in Input) (string, error) {
	if _, err := validate(in); err != nil {
		return "", err
	}

	w := &lineWriter{buf: make([]byte, 0, len(in.Text))}

	for _, sp := range in.Spans {
		seg := in.Text[sp.Start:sp.End]

		switch {
		case sp.Mode.IsComment() && c.matches(seg):
			w.dropComment(sp, seg, in.Text)
		case sp.Mode == m.Code:
			w.code(seg)
		default:
			w.opaque(seg)
		}
	}

	return w.finish(), nil
}

func (c *CommentStripper) matches(comment string) bool {
	if len(c.Tags) == 0 {
		return true
	}

	body := strings.TrimLeft(comment[2:], " \t*")
	for _, tag := range c.Tags {
		if tag != "" && strings.HasPrefix(body, tag) {
			return true
		}
	}

	return false
}

// lineWriter accumulates output one line at a time so a line emptied by
// comment removal can be taken back.
type lineWriter struct {
	buf        []byte
	lineStart  int
	floor      int // end of the last verbatim write, trimming stops here
	hadComment bool
	content    bool
}

func (w *lineWriter) code(seg string) {
	for i := 0; i < len(seg); i++ {
		b := seg[i]

		switch {
		case b == '\r' && i+1 < len(seg) && seg[i+1] == '\n':
			w.newline("\r\n")
			i++
		case b == '\n':
			w.newline("\n")
		default:
			w.buf = append(w.buf, b)
			if !isHorizontalSpace(b) && b != '\r' {
				w.content = true
			}
		}
	}
}

func (w *lineWriter) opaque(seg string) {
	w.buf = append(w.buf, seg...)
	w.floor = len(w.buf)
	w.content = true
}

func (w *lineWriter) dropComment(sp m.Span, seg string, text string) {
	w.hadComment = true

	if sp.Mode == m.BlockComment && strings.ContainsAny(seg, "\r\n") {
		term := "\n"
		if strings.Contains(seg, "\r\n") {
			term = "\r\n"
		}

		w.newline(term)
		w.hadComment = true

		return
	}

	if sp.End >= len(text) || len(w.buf) == 0 {
		return
	}

	if needsSeparator(w.buf[len(w.buf)-1], text[sp.End]) {
		w.buf = append(w.buf, ' ')
	}
}

func (w *lineWriter) newline(term string) {
	if w.hadComment && !w.content {
		w.buf = w.buf[:w.lineStart]
	} else {
		if w.hadComment {
			w.trimTrailing()
		}

		w.buf = append(w.buf, term...)
	}

	w.lineStart = len(w.buf)
	w.hadComment = false
	w.content = false
}

func (w *lineWriter) trimTrailing() {
	low := max(w.lineStart, w.floor)
	for len(w.buf) > low && isHorizontalSpace(w.buf[len(w.buf)-1]) {
		w.buf = w.buf[:len(w.buf)-1]
	}
}

func (w *lineWriter) finish() string {
	if w.hadComment {
		if !w.content {
			w.buf = w.buf[:w.lineStart]
		} else {
			w.trimTrailing()
		}
	}

	return string(w.buf)
}
