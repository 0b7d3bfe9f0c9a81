package cmd

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Preset", "Target", "Output", "Stages"})
			table.SetAutoWrapText(false)

			for _, name := range cfg.PresetNames() {
				p := cfg.Presets[name]

				output := p.Output
				if output == "" {
					output = "in place"
				}

				table.Append([]string{name, p.Target, output, strings.Join(p.Stages, ", ")})
			}

			table.Render()

			return nil
		},
	}
}
