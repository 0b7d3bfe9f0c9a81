package cmd

import (
	"github.com/mouse-blink/predeploy/internal/config"
	"github.com/spf13/cobra"
)

type presetCommand struct {
	preset string
	short  string
}

var presetCommands = []presetCommand{
	{config.PresetBOM, "Remove a leading UTF-8 byte order mark"},
	{config.PresetDebug, "Remove console.log/warn/debug calls and debug comments"},
	{config.PresetConsole, "Remove every console.* call"},
	{config.PresetAdmin, "Remove console calls from the admin panel's inline scripts"},
	{config.PresetMinify, "Strip comments and minify whitespace"},
	{config.PresetObfuscate, "Minify and rename local identifiers"},
	{config.PresetBuild, "Write a production copy without debug code"},
}

func init() {
	for _, pc := range presetCommands {
		rootCmd.AddCommand(newPresetCmd(pc.preset, pc.short))
	}

	rootCmd.AddCommand(runCmd)
}

// newPresetCmd makes a subcommand that runs one built-in preset.
func newPresetCmd(preset, short string) *cobra.Command {
	return &cobra.Command{
		Use:   preset + " [files...]",
		Short: short,
		Long: short + `.

Without arguments the preset's own target is used. Settings for the preset
can be changed in the [presets.` + preset + `] table of the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreset(cmd, preset, args)
		},
	}
}

var runCmd = newRunCmd()

// newRunCmd runs any preset by name, including ones only the config file defines.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <preset> [files...]",
		Short: "Run a named preset",
		Long: `Run a named preset from the built-in set or the config file.
Use "predeploy list" to see what is available.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreset(cmd, args[0], args[1:])
		},
	}
}
