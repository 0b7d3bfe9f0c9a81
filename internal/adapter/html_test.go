package adapter

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminPanel = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <!-- console.log("in a comment") -->
  <script src="vendor.js"></script>
  <script>
    console.log("boot");
    const a = "</p>";
  </script>
</head>
<body>
  <p>// not script &amp; kept</p>
  <script type="text/template"><div>// template</div></script>
  <SCRIPT type="module">console.debug(1)</SCRIPT>
  <script type="application/json">{"a": 1}</script>
</body>
</html>
`

func TestSplitHTML_RoundTrip(t *testing.T) {
	for _, doc := range []string{
		adminPanel,
		"",
		"<p>no scripts</p>",
		"<script>x()</script>",
		"<script>unterminated(",
		"<p>trailing <b",
	} {
		segs, err := SplitHTML(doc)
		require.NoError(t, err)
		assert.Equal(t, doc, JoinHTML(segs))
	}
}

func TestSplitHTML_Scripts(t *testing.T) {
	segs, err := SplitHTML(adminPanel)
	require.NoError(t, err)

	var scripts []string

	for _, s := range segs {
		if s.Script {
			scripts = append(scripts, s.Text)
		}
	}

	require.Len(t, scripts, 2)
	assert.Equal(t, "\n    console.log(\"boot\");\n    const a = \"</p>\";\n  ", scripts[0])
	assert.Equal(t, "console.debug(1)", scripts[1])
}

func TestRewriteScripts(t *testing.T) {
	out, n, err := RewriteScripts(adminPanel, func(script string) (string, error) {
		return strings.TrimSpace(script), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, out, "<script>console.log(\"boot\");\n    const a = \"</p>\";</script>")
	assert.Contains(t, out, "<p>// not script &amp; kept</p>")
	assert.Contains(t, out, `<script type="text/template"><div>// template</div></script>`)
	assert.Contains(t, out, `<script type="application/json">{"a": 1}</script>`)
}

func TestRewriteScripts_Error(t *testing.T) {
	boom := errors.New("boom")

	_, _, err := RewriteScripts("<script>a()</script><script>b()</script>", func(script string) (string, error) {
		if script == "b()" {
			return "", boom
		}

		return script, nil
	})
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "script 2")
}

func TestJavaScriptType(t *testing.T) {
	for _, typ := range []string{"", "module", "text/javascript", "application/ecmascript"} {
		assert.True(t, javaScriptType(typ), typ)
	}

	for _, typ := range []string{"text/template", "application/json", "importmap"} {
		assert.False(t, javaScriptType(typ), typ)
	}
}
