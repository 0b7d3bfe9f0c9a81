package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTdewolffMinifier_MinifiedSize(t *testing.T) {
	minifier := NewTdewolffMinifier()

	js := "// header\nfunction add(first, second) {\n    return first + second;\n}\n"

	size, err := minifier.MinifiedSize(js, false)
	require.NoError(t, err)
	assert.Positive(t, size)
	assert.Less(t, size, len(js))

	doc := "<html>\n  <body>\n    <p>  hello  </p>\n    <script>\n      // note\n      run( 1 );\n    </script>\n  </body>\n</html>\n"

	size, err = minifier.MinifiedSize(doc, true)
	require.NoError(t, err)
	assert.Less(t, size, len(doc))
}
