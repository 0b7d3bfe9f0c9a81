package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mouse-blink/predeploy/internal/domain"
	domainmocks "github.com/mouse-blink/predeploy/internal/domain/mocks"
	m "github.com/mouse-blink/predeploy/internal/model"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// withMockWorkflow swaps the package workflow for a mock for one test.
func withMockWorkflow(t *testing.T) *domainmocks.MockWorkflow {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() { workflow = originalWorkflow })

	return mockWorkflow
}

// captureRun records the RunArgs of the next Run call.
func captureRun(mw *domainmocks.MockWorkflow, err error) *domain.RunArgs {
	var got domain.RunArgs

	mw.EXPECT().Run(mock.Anything, mock.Anything).
		Run(func(_ context.Context, args domain.RunArgs) { got = args }).
		Return(err).Once()

	return &got
}

func newTestRoot(subs ...*cobra.Command) (*cobra.Command, *bytes.Buffer) {
	cmd := newRootCmd()
	for _, sub := range subs {
		cmd.AddCommand(sub)
	}

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, out
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "predeploy.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestRootCmd_RunsCanonicalPreset(t *testing.T) {
	mw := withMockWorkflow(t)
	got := captureRun(mw, nil)

	cmd, _ := newTestRoot()
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	require.Len(t, got.Jobs, 1)

	job := got.Jobs[0]
	assert.Equal(t, m.Path("script.js"), job.Target)
	assert.Empty(t, job.Output)
	assert.True(t, job.StripBOM)
	assert.True(t, job.Verify)
	assert.False(t, job.DryRun)
	assert.False(t, job.Compare)
	assert.Equal(t, []string{"comments", "calls", "whitespace"}, job.Pipeline.StageNames())
	assert.Equal(t, "quizData", job.Pipeline.Protect)
	assert.False(t, job.Pipeline.AllowUnterminated)
	assert.Equal(t, 1, got.Parallel)
	assert.Empty(t, got.Report)
}

func TestRootCmd_Flags(t *testing.T) {
	mw := withMockWorkflow(t)
	got := captureRun(mw, nil)

	cmd, _ := newTestRoot()
	cmd.SetArgs([]string{
		"--dry-run", "--no-verify", "--compare", "--allow-unterminated",
		"--parallel", "3", "--report", "run.yaml", "a.js", "b.js",
	})
	require.NoError(t, cmd.Execute())

	require.Len(t, got.Jobs, 2)
	assert.Equal(t, m.Path("a.js"), got.Jobs[0].Target)
	assert.Equal(t, m.Path("b.js"), got.Jobs[1].Target)

	for _, job := range got.Jobs {
		assert.True(t, job.DryRun)
		assert.False(t, job.Verify)
		assert.True(t, job.Compare)
		assert.True(t, job.Pipeline.AllowUnterminated)
	}

	assert.Equal(t, 3, got.Parallel)
	assert.Equal(t, m.Path("run.yaml"), got.Report)
}

func TestRootCmd_WorkflowError(t *testing.T) {
	mw := withMockWorkflow(t)
	captureRun(mw, m.ErrUnterminatedLiteral)

	cmd, _ := newTestRoot()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, m.ErrUnterminatedLiteral))
}

func TestRootCmd_ConfigOverrides(t *testing.T) {
	mw := withMockWorkflow(t)
	got := captureRun(mw, nil)

	path := writeConfig(t, `
[protect]
declaration = "questions"

[safety]
verify_syntax = false
allow_unterminated = true

[run]
parallel = 4

[presets.canonical]
target = "site/app.js"
stages = ["comments"]
`)

	cmd, _ := newTestRoot()
	cmd.SetArgs([]string{"--config", path})
	require.NoError(t, cmd.Execute())

	require.Len(t, got.Jobs, 1)

	job := got.Jobs[0]
	assert.Equal(t, m.Path("site/app.js"), job.Target)
	assert.False(t, job.StripBOM)
	assert.False(t, job.Verify)
	assert.Equal(t, []string{"comments"}, job.Pipeline.StageNames())
	assert.Equal(t, "questions", job.Pipeline.Protect)
	assert.True(t, job.Pipeline.AllowUnterminated)
	assert.Equal(t, 4, got.Parallel)
}

func TestRootCmd_MissingExplicitConfig(t *testing.T) {
	withMockWorkflow(t)

	cmd, _ := newTestRoot()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "absent.toml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, m.ErrIO))
}

func TestRootCmd_UnknownStage(t *testing.T) {
	withMockWorkflow(t)

	path := writeConfig(t, "[presets.canonical]\nstages = [\"comments\", \"shuffle\"]\n")

	cmd, _ := newTestRoot()
	cmd.SetArgs([]string{"--config", path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown stage "shuffle"`)
}

func TestRootCmd_KlogVerbosityFlag(t *testing.T) {
	cmd := newRootCmd()

	flag := cmd.PersistentFlags().Lookup("v")
	require.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
}
