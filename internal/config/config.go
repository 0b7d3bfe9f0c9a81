// Package config loads predeploy.toml on top of the built-in presets.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/BurntSushi/toml"
	m "github.com/mouse-blink/predeploy/internal/model"
)

// DefaultFile is looked up in the working directory when --config is not set.
const DefaultFile = "predeploy.toml"

// Indent modes accepted in a whitespace block.
const (
	IndentKeep     = "keep"
	IndentCollapse = "collapse"
	IndentTrim     = "trim"
)

// Config is the decoded predeploy.toml.
type Config struct {
	Protect  Protect             `toml:"protect"`
	Rename   Rename              `toml:"rename"`
	Comments Comments            `toml:"comments"`
	Calls    map[string][]string `toml:"calls"`
	Safety   Safety              `toml:"safety"`
	Run      Run                 `toml:"run"`
	Presets  map[string]Preset   `toml:"presets"`
}

// Protect names the declaration every stage must leave untouched.
type Protect struct {
	Declaration string `toml:"declaration"`
}

// Rename configures the identifier renamer.
type Rename struct {
	Reserved  []string `toml:"reserved"`
	MinLength int      `toml:"min_length"`
	TopLevel  bool     `toml:"top_level"`
}

// Comments configures the tagged comment stripper.
type Comments struct {
	DebugTags []string `toml:"debug_tags"`
}

type Safety struct {
	AllowUnterminated bool `toml:"allow_unterminated"`
	VerifySyntax      bool `toml:"verify_syntax"`
}

type Run struct {
	Parallel int `toml:"parallel"`
}

// Preset is one named pipeline run.
type Preset struct {
	Description string   `toml:"description"`
	Target      string   `toml:"target"`
	Output      string   `toml:"output"`
	Stages      []string `toml:"stages"`
	// Callees names a group in [calls].
	Callees    string     `toml:"callees"`
	Whitespace Whitespace `toml:"whitespace"`
}

// Whitespace mirrors the whitespace stage options.
type Whitespace struct {
	CollapseRuns  bool   `toml:"collapse_runs"`
	Indent        string `toml:"indent"`
	MaxBlankLines int    `toml:"max_blank_lines"`
	Punctuation   bool   `toml:"punctuation"`
	JoinLines     bool   `toml:"join_lines"`
}

// Load decodes path onto Defaults. A missing file yields the defaults unless
// required is set. Keys the config does not know are rejected.
func Load(path string, required bool) (Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}

		return Config{}, fmt.Errorf("%w: config %s: %w", m.ErrIO, path, err)
	}

	defaults := cfg.Presets
	cfg.Presets = nil

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}

	cfg.Presets = mergePresets(defaults, cfg.Presets, meta)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// mergePresets lays the keys a file sets for a preset over the built-in
// preset of the same name.
func mergePresets(defaults, decoded map[string]Preset, meta toml.MetaData) map[string]Preset {
	out := make(map[string]Preset, len(defaults)+len(decoded))
	for name, p := range defaults {
		out[name] = p
	}

	for name, p := range decoded {
		base := out[name]
		set := func(key ...string) bool {
			return meta.IsDefined(append([]string{"presets", name}, key...)...)
		}

		if set("description") {
			base.Description = p.Description
		}

		if set("target") {
			base.Target = p.Target
		}

		if set("output") {
			base.Output = p.Output
		}

		if set("stages") {
			base.Stages = p.Stages
		}

		if set("callees") {
			base.Callees = p.Callees
		}

		if set("whitespace", "collapse_runs") {
			base.Whitespace.CollapseRuns = p.Whitespace.CollapseRuns
		}

		if set("whitespace", "indent") {
			base.Whitespace.Indent = p.Whitespace.Indent
		}

		if set("whitespace", "max_blank_lines") {
			base.Whitespace.MaxBlankLines = p.Whitespace.MaxBlankLines
		}

		if set("whitespace", "punctuation") {
			base.Whitespace.Punctuation = p.Whitespace.Punctuation
		}

		if set("whitespace", "join_lines") {
			base.Whitespace.JoinLines = p.Whitespace.JoinLines
		}

		out[name] = base
	}

	return out
}

// Validate checks the values that cannot be told apart from typos later.
func (c Config) Validate() error {
	if c.Rename.MinLength < 1 {
		return fmt.Errorf("rename.min_length must be at least 1, got %d", c.Rename.MinLength)
	}

	if c.Run.Parallel < 0 {
		return fmt.Errorf("run.parallel must not be negative, got %d", c.Run.Parallel)
	}

	for _, name := range c.PresetNames() {
		p := c.Presets[name]

		if p.Target == "" {
			return fmt.Errorf("presets.%s: target is empty", name)
		}

		if p.Callees != "" {
			if _, ok := c.Calls[p.Callees]; !ok {
				return fmt.Errorf("presets.%s: unknown callee group %q", name, p.Callees)
			}
		}

		if p.Whitespace.Indent != "" && !slices.Contains([]string{IndentKeep, IndentCollapse, IndentTrim}, p.Whitespace.Indent) {
			return fmt.Errorf("presets.%s: unknown indent %q", name, p.Whitespace.Indent)
		}
	}

	return nil
}

// PresetNames lists the presets in sorted order.
func (c Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
