package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripBOM(t *testing.T) {
	out, had := StripBOM([]byte("\xEF\xBB\xBFlet a;"))
	assert.True(t, had)
	assert.Equal(t, "let a;", string(out))

	out, had = StripBOM([]byte("let a;"))
	assert.False(t, had)
	assert.Equal(t, "let a;", string(out))

	out, had = StripBOM([]byte("\xEF\xBB"))
	assert.False(t, had)
	assert.Equal(t, "\xEF\xBB", string(out))
}
