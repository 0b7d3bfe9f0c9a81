package domain

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/mouse-blink/predeploy/internal/adapter"
	"github.com/mouse-blink/predeploy/internal/controller"
	"github.com/mouse-blink/predeploy/internal/domain/stages"
	m "github.com/mouse-blink/predeploy/internal/model"
	"github.com/mouse-blink/predeploy/internal/scanner"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// Job is one file to rewrite.
type Job struct {
	Target m.Path
	// Output is where the result goes. Empty means Target.
	Output   m.Path
	StripBOM bool
	Pipeline *Pipeline
	DryRun   bool
	// Verify parses the result before it is written.
	Verify bool
	// Compare records the size a full minifier reaches on the input.
	Compare bool
}

// RunArgs groups the jobs of one command.
type RunArgs struct {
	Jobs     []Job
	Parallel int
	// Report, when set, is where the reports are saved as YAML.
	Report m.Path
}

// ScanArgs groups the inputs of a scan.
type ScanArgs struct {
	Paths   []m.Path
	Protect string
}

// ViewArgs points at a report saved by an earlier run.
type ViewArgs struct {
	Report m.Path
}

// Workflow runs pipelines over files and hands the reports to the UI.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	Scan(args ScanArgs) error
	View(args ViewArgs) error
}

type workflow struct {
	fsAdapter   adapter.SourceFSAdapter
	reportStore adapter.ReportStore
	syntax      adapter.SyntaxChecker
	reference   adapter.ReferenceMinifier
	ui          controller.UI
}

// NewWorkflow creates a Workflow. The report store, syntax checker and
// reference minifier may be nil when no run asks for them.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	syntax adapter.SyntaxChecker,
	reference adapter.ReferenceMinifier,
	ui controller.UI,
) Workflow {
	return &workflow{
		fsAdapter:   fsAdapter,
		reportStore: reportStore,
		syntax:      syntax,
		reference:   reference,
		ui:          ui,
	}
}

// Run processes the jobs, up to Parallel at a time, and displays the
// reports of every job that finished. The first failure cancels jobs that
// have not started and is returned after display.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	limit := args.Parallel
	if limit <= 0 {
		limit = 1
	}

	reports := make([]m.FileReport, len(args.Jobs))
	done := make([]bool, len(args.Jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, job := range args.Jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			report, err := w.runJob(job)
			if err != nil {
				klog.ErrorS(err, "job failed", "target", job.Target)
				return err
			}

			reports[i] = report
			done[i] = true

			return nil
		})
	}

	runErr := g.Wait()

	finished := make([]m.FileReport, 0, len(reports))

	for i, report := range reports {
		if done[i] {
			finished = append(finished, report)
		}
	}

	if len(finished) > 0 {
		if err := w.ui.DisplayReports(finished); err != nil && runErr == nil {
			return err
		}

		if args.Report != "" && w.reportStore != nil {
			if err := w.reportStore.SaveReports(args.Report, finished); err != nil && runErr == nil {
				return fmt.Errorf("save reports: %w", err)
			}
		}
	}

	return runErr
}

func (w *workflow) runJob(job Job) (m.FileReport, error) {
	target, err := w.fsAdapter.ResolvePath(job.Target)
	if err != nil {
		return m.FileReport{}, err
	}

	output := target
	if job.Output != "" {
		if output, err = w.fsAdapter.ResolvePath(job.Output); err != nil {
			return m.FileReport{}, err
		}
	}

	raw, err := w.fsAdapter.ReadFile(target)
	if err != nil {
		return m.FileReport{}, fmt.Errorf("read source: %w", err)
	}

	report := m.FileReport{
		Path:        target,
		Output:      output,
		BytesBefore: len(raw),
		LinesBefore: m.CountLines(string(raw)),
	}

	data := raw
	if job.StripBOM {
		data, report.HadBOM = StripBOM(raw)
		if report.HadBOM {
			report.Stages = append(report.Stages, m.StageReport{
				Stage:       "bom",
				BytesBefore: len(raw),
				BytesAfter:  len(data),
				LinesBefore: report.LinesBefore,
				LinesAfter:  report.LinesBefore,
			})
		}
	}

	if !utf8.Valid(data) {
		return m.FileReport{}, fmt.Errorf("%s: %w", target, m.ErrDecode)
	}

	text := string(data)
	html := isHTML(target)

	out, err := w.transform(text, html, job, &report)
	if err != nil {
		return m.FileReport{}, fmt.Errorf("%s: %w", target, err)
	}

	report.BytesAfter = len(out)
	report.LinesAfter = m.CountLines(out)

	if !job.DryRun && (out != string(raw) || output != target) {
		if err := w.fsAdapter.WriteFileAtomic(output, []byte(out)); err != nil {
			return m.FileReport{}, fmt.Errorf("write result: %w", err)
		}

		report.Written = true
	}

	if job.Compare && w.reference != nil {
		size, err := w.reference.MinifiedSize(text, html)
		if err != nil {
			klog.ErrorS(err, "reference minifier failed", "path", target)
		} else {
			report.ReferenceSize = size
		}
	}

	klog.V(1).InfoS("file processed", "path", target, "output", output,
		"bytesBefore", report.BytesBefore, "bytesAfter", report.BytesAfter, "written", report.Written)

	return report, nil
}

// transform runs the job's pipeline over a script, or over each inline
// script of an HTML document, and checks the result when asked to.
func (w *workflow) transform(text string, html bool, job Job, report *m.FileReport) (string, error) {
	if job.Pipeline == nil || len(job.Pipeline.Stages) == 0 {
		return text, nil
	}

	rc := stages.NewRenameContext()

	run := func(script string) (string, error) {
		res, err := job.Pipeline.TransformWith(script, rc)
		if err != nil {
			return "", err
		}

		for _, s := range res.Stages {
			report.Stages = mergeStage(report.Stages, s)
		}

		report.Warnings = append(report.Warnings, res.Warnings...)
		report.Protected = report.Protected || res.Region != nil

		if job.Verify && w.syntax != nil && res.Text != script {
			if err := w.syntax.Check(res.Text); err != nil {
				return "", err
			}
		}

		return res.Text, nil
	}

	if !html {
		report.Scripts = 1
		return run(text)
	}

	out, scripts, err := adapter.RewriteScripts(text, run)
	report.Scripts = scripts

	return out, err
}

// Scan classifies files without rewriting them and displays the summaries.
func (w *workflow) Scan(args ScanArgs) error {
	summaries := make([]m.ScanSummary, 0, len(args.Paths))

	for _, path := range args.Paths {
		summary, err := w.scanFile(path, args.Protect)
		if err != nil {
			return err
		}

		summaries = append(summaries, summary)
	}

	return w.ui.DisplayScan(summaries)
}

func (w *workflow) scanFile(path m.Path, protect string) (m.ScanSummary, error) {
	target, err := w.fsAdapter.ResolvePath(path)
	if err != nil {
		return m.ScanSummary{}, err
	}

	raw, err := w.fsAdapter.ReadFile(target)
	if err != nil {
		return m.ScanSummary{}, fmt.Errorf("read source: %w", err)
	}

	data, _ := StripBOM(raw)
	if !utf8.Valid(data) {
		return m.ScanSummary{}, fmt.Errorf("%s: %w", target, m.ErrDecode)
	}

	text := string(data)
	summary := m.ScanSummary{
		Path:   target,
		Bytes:  len(text),
		Lines:  m.CountLines(text),
		Counts: map[m.Mode]int{},
	}

	scan := func(script string) (string, error) {
		res := scanner.Scan(script)

		for mode, n := range scanner.Count(res.Spans) {
			summary.Counts[mode] += n
		}

		summary.Issues = append(summary.Issues, res.Issues...)

		if summary.Region == nil {
			if region, ok := Locate(script, res.Spans, protect); ok {
				summary.Region = &region
			}
		}

		return script, nil
	}

	if isHTML(target) {
		if _, _, err := adapter.RewriteScripts(text, scan); err != nil {
			return m.ScanSummary{}, fmt.Errorf("%s: %w", target, err)
		}

		return summary, nil
	}

	_, _ = scan(text)

	return summary, nil
}

// View displays a saved report without touching any source file.
func (w *workflow) View(args ViewArgs) error {
	if w.reportStore == nil {
		return errors.New("view: no report store configured")
	}

	reports, err := w.reportStore.LoadReports(args.Report)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	return w.ui.DisplayReports(reports)
}

func mergeStage(list []m.StageReport, s m.StageReport) []m.StageReport {
	for i := range list {
		if list[i].Stage == s.Stage {
			list[i].BytesBefore += s.BytesBefore
			list[i].BytesAfter += s.BytesAfter
			list[i].LinesBefore += s.LinesBefore
			list[i].LinesAfter += s.LinesAfter

			return list
		}
	}

	return append(list, s)
}

func isHTML(path m.Path) bool {
	switch strings.ToLower(filepath.Ext(string(path))) {
	case ".html", ".htm":
		return true
	}

	return false
}
