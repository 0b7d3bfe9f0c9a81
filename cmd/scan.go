package cmd

import (
	"github.com/mouse-blink/predeploy/internal/config"
	"github.com/mouse-blink/predeploy/internal/domain"
	m "github.com/mouse-blink/predeploy/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [files...]",
		Short: "Show how files are split into code, strings and comments",
		Long: `Scan classifies each file without changing it. It reports how many spans
of each kind were found, where the protected declaration is and any
unterminated literal. Defaults to the target of the canonical preset.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				args = []string{cfg.Presets[config.PresetCanonical].Target}
			}

			paths := make([]m.Path, 0, len(args))
			for _, arg := range args {
				paths = append(paths, m.Path(arg))
			}

			return workflow.Scan(domain.ScanArgs{
				Paths:   paths,
				Protect: cfg.Protect.Declaration,
			})
		},
	}
}
