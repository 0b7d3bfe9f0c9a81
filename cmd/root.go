// Package cmd provides the root command and CLI setup for predeploy.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/mouse-blink/predeploy/internal/adapter"
	"github.com/mouse-blink/predeploy/internal/config"
	"github.com/mouse-blink/predeploy/internal/controller"
	"github.com/mouse-blink/predeploy/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore(fsAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		reportStore,
		adapter.NewESBuildSyntaxChecker(),
		adapter.NewTdewolffMinifier(),
		ui,
	)
}

var configFlag string
var dryRunFlag bool
var allowUnterminatedFlag bool
var noVerifyFlag bool
var compareFlag bool
var parallelFlag int
var reportFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predeploy [files...]",
		Short: "Strip debug code and comments from site scripts before deploy",
		Long: `Predeploy rewrites the site's JavaScript before it is deployed. It removes
comments, debug logging and surplus whitespace without touching string
literals or the protected quiz data declaration.

Without arguments it works on script.js in place. Other presets are available
as subcommands:
  - predeploy debug      remove console.log/warn/debug and debug comments
  - predeploy build      write script.production.js
  - predeploy obfuscate  minify and rename local identifiers`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreset(cmd, config.PresetCanonical, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "c", config.DefaultFile, "path to the TOML configuration")
	flags.BoolVarP(&dryRunFlag, "dry-run", "n", false, "report what would change without writing files")
	flags.BoolVar(&allowUnterminatedFlag, "allow-unterminated", false, "treat unterminated literals as warnings")
	flags.BoolVar(&noVerifyFlag, "no-verify", false, "skip the syntax check of rewritten output")
	flags.BoolVar(&compareFlag, "compare", false, "also report the size a full minifier reaches")
	flags.IntVarP(&parallelFlag, "parallel", "p", 0, "number of files processed at once (default from config)")
	flags.StringVar(&reportFlag, "report", "", "save the run report as YAML to this path")
	addKlogFlags(flags)

	return cmd
}

// addKlogFlags exposes klog's -v and friends on the command line.
func addKlogFlags(fs *pflag.FlagSet) {
	goflags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(goflags)
	fs.AddGoFlagSet(goflags)
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configFlag, cmd.Flags().Changed("config"))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer klog.Flush()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
