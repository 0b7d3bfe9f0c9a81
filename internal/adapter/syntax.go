package adapter

import (
	"fmt"

	"github.com/evanw/esbuild/pkg/api"
	m "github.com/mouse-blink/predeploy/internal/model"
)

// SyntaxChecker parses JavaScript and reports whether it is well formed.
type SyntaxChecker interface {
	Check(code string) error
}

// ESBuildSyntaxChecker parses with esbuild's JavaScript loader.
type ESBuildSyntaxChecker struct{}

// NewESBuildSyntaxChecker returns a SyntaxChecker backed by esbuild.
func NewESBuildSyntaxChecker() *ESBuildSyntaxChecker {
	return &ESBuildSyntaxChecker{}
}

// Check returns an error wrapping model.ErrSyntax for the first parse error.
func (c *ESBuildSyntaxChecker) Check(code string) error {
	result := api.Transform(code, api.TransformOptions{
		Loader:   api.LoaderJS,
		LogLevel: api.LogLevelSilent,
	})
	if len(result.Errors) == 0 {
		return nil
	}

	msg := result.Errors[0]
	if msg.Location != nil {
		return fmt.Errorf("%w: %d:%d: %s", m.ErrSyntax, msg.Location.Line, msg.Location.Column+1, msg.Text)
	}

	return fmt.Errorf("%w: %s", m.ErrSyntax, msg.Text)
}
