package config

import (
	"os"
	"path/filepath"
	"testing"

	m "github.com/mouse-blink/predeploy/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "quizData", cfg.Protect.Declaration)
	assert.Equal(t, 3, cfg.Rename.MinLength)
	assert.Contains(t, cfg.Rename.Reserved, "localStorage")
	assert.Contains(t, cfg.Comments.DebugTags, "FIXME")
	assert.Equal(t, []string{"console.*"}, cfg.Calls["console"])
	assert.Equal(t, []string{
		PresetAdmin, PresetBOM, PresetBuild, PresetCanonical,
		PresetConsole, PresetDebug, PresetMinify, PresetObfuscate,
	}, cfg.PresetNames())
	assert.Equal(t, "script.production.js", cfg.Presets[PresetBuild].Output)
	assert.Equal(t, "admin-panel.html", cfg.Presets[PresetAdmin].Target)
	assert.True(t, cfg.Presets[PresetObfuscate].Whitespace.JoinLines)
	assert.False(t, cfg.Presets[PresetMinify].Whitespace.JoinLines)
}

func TestDefaults_Independent(t *testing.T) {
	a := Defaults()
	a.Rename.Reserved[0] = "changed"

	assert.Equal(t, "quizData", Defaults().Rename.Reserved[0])
}

func TestLoad_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	_, err = Load(path, true)
	assert.ErrorIs(t, err, m.ErrIO)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
[protect]
declaration = "questions"

[rename]
min_length = 4
top_level = true

[calls]
debug = ["console.log", "logger.trace"]

[safety]
allow_unterminated = true

[run]
parallel = 4

[presets.build]
output = "dist/script.js"

[presets.build.whitespace]
max_blank_lines = 0

[presets.landing]
description = "Landing page scripts"
target = "landing.html"
stages = ["comments", "whitespace"]

[presets.landing.whitespace]
collapse_runs = true
indent = "trim"
`)

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "questions", cfg.Protect.Declaration)
	assert.Equal(t, 4, cfg.Rename.MinLength)
	assert.True(t, cfg.Rename.TopLevel)
	assert.Contains(t, cfg.Rename.Reserved, "quizData")
	assert.Equal(t, []string{"console.log", "logger.trace"}, cfg.Calls["debug"])
	assert.Equal(t, []string{"console.*"}, cfg.Calls["console"])
	assert.True(t, cfg.Safety.AllowUnterminated)
	assert.True(t, cfg.Safety.VerifySyntax)
	assert.Equal(t, 4, cfg.Run.Parallel)

	build := cfg.Presets[PresetBuild]
	assert.Equal(t, "dist/script.js", build.Output)
	assert.Equal(t, "script.js", build.Target)
	assert.Equal(t, []string{"calls", "debug-comments", "whitespace"}, build.Stages)
	assert.Equal(t, 0, build.Whitespace.MaxBlankLines)
	assert.Equal(t, IndentKeep, build.Whitespace.Indent)

	landing := cfg.Presets["landing"]
	assert.Equal(t, "landing.html", landing.Target)
	assert.Equal(t, []string{"comments", "whitespace"}, landing.Stages)
	assert.Equal(t, Whitespace{CollapseRuns: true, Indent: IndentTrim}, landing.Whitespace)

	assert.Equal(t, Defaults().Presets[PresetMinify], cfg.Presets[PresetMinify])
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     string
	}{
		{name: "malformed", contents: "[protect\ndeclaration = 1", want: "failed to parse TOML"},
		{name: "unknown key", contents: "[protect]\nname = \"x\"\n", want: "unknown key protect.name"},
		{name: "min length", contents: "[rename]\nmin_length = 0\n", want: "rename.min_length"},
		{name: "parallel", contents: "[run]\nparallel = -1\n", want: "run.parallel"},
		{name: "callee group", contents: "[presets.console]\ncallees = \"nope\"\n", want: `unknown callee group "nope"`},
		{name: "indent", contents: "[presets.minify.whitespace]\nindent = \"tabs\"\n", want: `unknown indent "tabs"`},
		{name: "new preset without target", contents: "[presets.empty]\nstages = [\"bom\"]\n", want: "presets.empty: target is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.contents), false)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
