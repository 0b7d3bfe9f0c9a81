package adapter

import (
	"fmt"
	"regexp"

	"github.com/tdewolff/minify/v2"
	minhtml "github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

const (
	mediaJS   = "application/javascript"
	mediaHTML = "text/html"
)

// ReferenceMinifier minifies a text with a full minifier so a report can
// show how far the pipeline is from it.
type ReferenceMinifier interface {
	MinifiedSize(text string, html bool) (int, error)
}

// TdewolffMinifier is the ReferenceMinifier backed by tdewolff/minify.
type TdewolffMinifier struct {
	m *minify.M
}

// NewTdewolffMinifier registers the JavaScript and HTML minifiers.
func NewTdewolffMinifier() *TdewolffMinifier {
	mm := minify.New()
	mm.AddFunc(mediaHTML, minhtml.Minify)
	mm.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)

	return &TdewolffMinifier{m: mm}
}

// MinifiedSize returns the size in bytes of the minified text.
func (t *TdewolffMinifier) MinifiedSize(text string, html bool) (int, error) {
	media := mediaJS
	if html {
		media = mediaHTML
	}

	out, err := t.m.String(media, text)
	if err != nil {
		return 0, fmt.Errorf("reference minify: %w", err)
	}

	return len(out), nil
}
