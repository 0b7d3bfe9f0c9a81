package adapter

import (
	"testing"

	m "github.com/mouse-blink/predeploy/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestESBuildSyntaxChecker_Check(t *testing.T) {
	checker := NewESBuildSyntaxChecker()

	for _, code := range []string{
		"",
		"const quizData = [1, 2];\nfunction f(a){return a+1}",
		"x = `a ${`b ${'c'}`}`;",
	} {
		assert.NoError(t, checker.Check(code), code)
	}

	err := checker.Check("let a = ;\n")
	require.ErrorIs(t, err, m.ErrSyntax)
	assert.ErrorContains(t, err, "1:")

	assert.ErrorIs(t, checker.Check("function f( {"), m.ErrSyntax)
}
