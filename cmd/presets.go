package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mouse-blink/predeploy/internal/config"
	"github.com/mouse-blink/predeploy/internal/domain"
	"github.com/mouse-blink/predeploy/internal/domain/stages"
	m "github.com/mouse-blink/predeploy/internal/model"
	"github.com/spf13/cobra"
)

type jobOptions struct {
	dryRun            bool
	allowUnterminated bool
	noVerify          bool
	compare           bool
}

func currentJobOptions() jobOptions {
	return jobOptions{
		dryRun:            dryRunFlag,
		allowUnterminated: allowUnterminatedFlag,
		noVerify:          noVerifyFlag,
		compare:           compareFlag,
	}
}

// runPreset loads the configuration and runs the named preset over args, or
// over the preset's own target when args is empty.
func runPreset(cmd *cobra.Command, name string, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	preset, ok := cfg.Presets[name]
	if !ok {
		return fmt.Errorf("unknown preset %q (have %s)", name, strings.Join(cfg.PresetNames(), ", "))
	}

	jobs, err := buildJobs(cfg, preset, args, currentJobOptions())
	if err != nil {
		return fmt.Errorf("preset %s: %w", name, err)
	}

	parallel := parallelFlag
	if parallel <= 0 {
		parallel = cfg.Run.Parallel
	}

	return workflow.Run(cmd.Context(), domain.RunArgs{
		Jobs:     jobs,
		Parallel: parallel,
		Report:   m.Path(reportFlag),
	})
}

func buildJobs(cfg config.Config, preset config.Preset, args []string, opts jobOptions) ([]domain.Job, error) {
	ss, stripBOM, err := domain.BuildStages(preset.Stages, domain.StageOptions{
		Callees:    cfg.Calls[preset.Callees],
		DebugTags:  cfg.Comments.DebugTags,
		Whitespace: whitespaceOptions(preset.Whitespace),
		Reserved:   cfg.Rename.Reserved,
		MinLength:  cfg.Rename.MinLength,
		TopLevel:   cfg.Rename.TopLevel,
		Protect:    cfg.Protect.Declaration,
	})
	if err != nil {
		return nil, err
	}

	pipeline := domain.NewPipeline(cfg.Protect.Declaration,
		cfg.Safety.AllowUnterminated || opts.allowUnterminated, ss...)

	targets := args
	if len(targets) == 0 {
		targets = []string{preset.Target}
	}

	jobs := make([]domain.Job, 0, len(targets))

	for _, target := range targets {
		output, err := outputFor(preset, target, len(args) > 0)
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, domain.Job{
			Target:   m.Path(target),
			Output:   m.Path(output),
			StripBOM: stripBOM,
			Pipeline: pipeline,
			DryRun:   opts.dryRun,
			Verify:   cfg.Safety.VerifySyntax && !opts.noVerify,
			Compare:  opts.compare,
		})
	}

	if len(args) > 1 && preset.Output != "" && jobs[0].Output == jobs[1].Output {
		return nil, fmt.Errorf("output %s is fixed, pass a single file", preset.Output)
	}

	return jobs, nil
}

// outputFor returns where target's result goes. A preset output that
// extends its target's name ("script.js" to "script.production.js") carries
// that infix over to explicit targets.
func outputFor(preset config.Preset, target string, explicit bool) (string, error) {
	if preset.Output == "" {
		return "", nil
	}

	if !explicit {
		return preset.Output, nil
	}

	stem := strings.TrimSuffix(preset.Target, filepath.Ext(preset.Target))
	outExt := filepath.Ext(preset.Output)
	outStem := strings.TrimSuffix(preset.Output, outExt)

	if !strings.HasPrefix(outStem, stem) || len(outStem) == len(stem) {
		return preset.Output, nil
	}

	infix := outStem[len(stem):]
	ext := filepath.Ext(target)

	return strings.TrimSuffix(target, ext) + infix + ext, nil
}

func whitespaceOptions(w config.Whitespace) stages.Whitespace {
	opts := stages.Whitespace{
		CollapseRuns:  w.CollapseRuns,
		MaxBlankLines: w.MaxBlankLines,
		JoinLines:     w.JoinLines,
	}

	switch w.Indent {
	case config.IndentCollapse:
		opts.Indent = stages.IndentCollapse
	case config.IndentTrim:
		opts.Indent = stages.IndentTrim
	default:
		opts.Indent = stages.IndentKeep
	}

	if w.Punctuation {
		opts.Punctuation = stages.DefaultPunctuation
	}

	return opts
}
