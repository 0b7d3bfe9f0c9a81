package cmd

import (
	"github.com/mouse-blink/predeploy/internal/domain"
	m "github.com/mouse-blink/predeploy/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(viewCmd)
}

var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <report.yaml>",
		Short: "Show a report saved with --report",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.View(domain.ViewArgs{Report: m.Path(args[0])})
		},
	}
}
