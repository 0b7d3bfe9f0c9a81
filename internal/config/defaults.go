package config

// Preset names wired to commands.
const (
	PresetCanonical = "canonical"
	PresetBOM       = "bom"
	PresetDebug     = "debug"
	PresetConsole   = "console"
	PresetAdmin     = "admin"
	PresetMinify    = "minify"
	PresetObfuscate = "obfuscate"
	PresetBuild     = "build"
)

const (
	defaultScript = "script.js"
	defaultAdmin  = "admin-panel.html"
)

// Names the renamer must never touch: browser APIs and DOM members the
// site's scripts rely on.
var criticalNames = []string{
	"quizData", "document", "window", "localStorage", "sessionStorage",
	"console", "fetch", "Promise", "Date", "Math", "String", "Number",
	"Array", "Object", "JSON", "parse", "stringify", "getItem", "setItem",
	"addEventListener", "querySelector", "getElementById", "classList",
	"body", "head", "createElement", "appendChild", "removeChild",
	"style", "display", "innerHTML", "textContent", "value", "src",
	"onclick", "onerror", "onload", "preventDefault", "stopPropagation",
}

var debugTags = []string{
	"DEBUG", "TEST", "TODO", "FIXME", "HACK", "XXX", "NOTE", "WARNING",
	"⚠️", "🔍", "✅", "❌", "🌙", "☀️", "📊", "🎨", "🔄", "💾", "📡", "🔧",
	"⏭️", "👁️", "📋", "🎬", "🌓", "🔐", "🗑️",
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	readable := Whitespace{CollapseRuns: true, Indent: IndentKeep, MaxBlankLines: 1}
	keepLayout := Whitespace{Indent: IndentKeep, MaxBlankLines: 1}
	compact := Whitespace{CollapseRuns: true, Indent: IndentTrim, Punctuation: true}
	dense := compact
	dense.JoinLines = true

	return Config{
		Protect: Protect{Declaration: "quizData"},
		Rename: Rename{
			Reserved:  append([]string(nil), criticalNames...),
			MinLength: 3,
		},
		Comments: Comments{DebugTags: append([]string(nil), debugTags...)},
		Calls: map[string][]string{
			"debug":   {"console.log", "console.warn", "console.debug"},
			"console": {"console.*"},
		},
		Safety: Safety{VerifySyntax: true},
		Run:    Run{Parallel: 1},
		Presets: map[string]Preset{
			PresetCanonical: {
				Description: "Strip the BOM, comments and debug logging, then tidy whitespace",
				Target:      defaultScript,
				Stages:      []string{"bom", "comments", "calls", "whitespace"},
				Callees:     "debug",
				Whitespace:  readable,
			},
			PresetBOM: {
				Description: "Remove a UTF-8 byte order mark",
				Target:      defaultScript,
				Stages:      []string{"bom"},
			},
			PresetDebug: {
				Description: "Remove debug logging and debug-tagged comments",
				Target:      defaultScript,
				Stages:      []string{"bom", "calls", "debug-comments", "whitespace"},
				Callees:     "debug",
				Whitespace:  keepLayout,
			},
			PresetConsole: {
				Description: "Remove every console statement",
				Target:      defaultScript,
				Stages:      []string{"calls"},
				Callees:     "console",
			},
			PresetAdmin: {
				Description: "Remove every console statement from the admin panel scripts",
				Target:      defaultAdmin,
				Stages:      []string{"calls"},
				Callees:     "console",
			},
			PresetMinify: {
				Description: "Remove comments and minify whitespace",
				Target:      defaultScript,
				Stages:      []string{"bom", "comments", "whitespace"},
				Whitespace:  compact,
			},
			PresetObfuscate: {
				Description: "Minify and rename local identifiers",
				Target:      defaultScript,
				Stages:      []string{"bom", "comments", "rename", "whitespace"},
				Whitespace:  dense,
			},
			PresetBuild: {
				Description: "Write a production copy without debug code",
				Target:      defaultScript,
				Output:      "script.production.js",
				Stages:      []string{"calls", "debug-comments", "whitespace"},
				Callees:     "debug",
				Whitespace:  keepLayout,
			},
		},
	}
}
