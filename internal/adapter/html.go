package adapter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Segment is a piece of an HTML document. Script segments hold the body of
// an inline JavaScript <script> element, everything else is kept verbatim.
type Segment struct {
	Text   string
	Script bool
}

// SplitHTML cuts doc into segments whose concatenation is doc.
func SplitHTML(doc string) ([]Segment, error) {
	z := html.NewTokenizer(strings.NewReader(doc))

	var segs []Segment

	inScript := false
	pos, markup := 0, 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}

			return nil, fmt.Errorf("split html: %w", z.Err())
		}

		size := len(z.Raw())

		switch tt {
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if string(name) == "script" {
				inScript = inlineJavaScript(z, hasAttr)
			}
		case html.EndTagToken:
			inScript = false
		case html.TextToken:
			if inScript {
				if pos > markup {
					segs = append(segs, Segment{Text: doc[markup:pos]})
				}

				segs = append(segs, Segment{Text: doc[pos : pos+size], Script: true})
				markup = pos + size
			}
		}

		pos += size
	}

	if markup < len(doc) {
		segs = append(segs, Segment{Text: doc[markup:]})
	}

	return segs, nil
}

// JoinHTML is the inverse of SplitHTML.
func JoinHTML(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}

	return b.String()
}

// RewriteScripts passes every inline script body of doc through fn and
// returns the document with the results spliced in, plus the number of
// scripts seen.
func RewriteScripts(doc string, fn func(script string) (string, error)) (string, int, error) {
	segs, err := SplitHTML(doc)
	if err != nil {
		return "", 0, err
	}

	scripts := 0

	for i, s := range segs {
		if !s.Script {
			continue
		}

		scripts++

		out, err := fn(s.Text)
		if err != nil {
			return "", scripts, fmt.Errorf("script %d: %w", scripts, err)
		}

		segs[i].Text = out
	}

	return JoinHTML(segs), scripts, nil
}

// inlineJavaScript reads the attributes of a <script> start tag and reports
// whether its body is JavaScript the browser will run.
func inlineJavaScript(z *html.Tokenizer, hasAttr bool) bool {
	for hasAttr {
		var key, val []byte

		key, val, hasAttr = z.TagAttr()

		switch strings.ToLower(string(key)) {
		case "src":
			return false
		case "type":
			if !javaScriptType(strings.ToLower(strings.TrimSpace(string(val)))) {
				return false
			}
		}
	}

	return true
}

func javaScriptType(t string) bool {
	switch t {
	case "", "module", "text/javascript", "application/javascript",
		"text/ecmascript", "application/ecmascript", "application/x-javascript":
		return true
	}

	return false
}
