package domain

import (
	"fmt"

	"github.com/mouse-blink/predeploy/internal/domain/stages"
	m "github.com/mouse-blink/predeploy/internal/model"
	"github.com/mouse-blink/predeploy/internal/scanner"
	"k8s.io/klog/v2"
)

// Pipeline applies stages to a text in the order given. Every stage gets a
// fresh scan of its own input with the protected region overlaid, and the
// region is checked to come out of every stage unchanged.
//
// The reference order is comments, calls, whitespace (after the BOM
// pre-pass), and running it twice gives the same text. The call remover only
// removes statements it can delimit, so running it after a whitespace stage
// that joins lines finds fewer of them.
type Pipeline struct {
	Stages  []stages.Stage
	Protect string
	// AllowUnterminated turns unterminated literals into warnings instead of
	// failing the run.
	AllowUnterminated bool
}

// NewPipeline builds a pipeline protecting the declaration named protect.
func NewPipeline(protect string, allowUnterminated bool, ss ...stages.Stage) *Pipeline {
	return &Pipeline{Stages: ss, Protect: protect, AllowUnterminated: allowUnterminated}
}

// StageNames lists the stages in order.
func (p *Pipeline) StageNames() []string {
	names := make([]string, 0, len(p.Stages))
	for _, s := range p.Stages {
		names = append(names, s.Name())
	}

	return names
}

// Transform runs the pipeline with a fresh renaming context.
func (p *Pipeline) Transform(text string) (m.TransformResult, error) {
	return p.TransformWith(text, stages.NewRenameContext())
}

// TransformWith runs the pipeline with the caller's renaming context, so
// several texts of one file share one mapping.
func (p *Pipeline) TransformWith(text string, rc *stages.RenameContext) (m.TransformResult, error) {
	result := m.TransformResult{Text: text}
	if len(p.Stages) == 0 {
		return result, nil
	}

	scan := scanner.Scan(text)
	if err := scan.Err(); err != nil {
		if !p.AllowUnterminated {
			return result, err
		}

		result.Warnings = append(result.Warnings, scan.Issues...)
	}

	region, protected := Locate(text, scan.Spans, p.Protect)
	current := text

	for i, stage := range p.Stages {
		if i > 0 {
			scan = scanner.Scan(current)
			if err := scan.Err(); err != nil && !p.AllowUnterminated {
				return result, fmt.Errorf("after %s: %w", p.Stages[i-1].Name(), err)
			}
		}

		spans := scan.Spans

		if protected {
			found, err := p.relocate(current, spans, region)
			if err != nil {
				return result, err
			}

			spans = scanner.Overlay(spans, found.Span)
		}

		out, err := stage.Rewrite(stages.Input{Text: current, Spans: spans, Renames: rc})
		if err != nil {
			return result, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}

		report := m.StageReport{
			Stage:       stage.Name(),
			BytesBefore: len(current),
			BytesAfter:  len(out),
			LinesBefore: m.CountLines(current),
			LinesAfter:  m.CountLines(out),
		}
		result.Stages = append(result.Stages, report)

		klog.V(2).InfoS("stage applied", "stage", report.Stage,
			"bytesBefore", report.BytesBefore, "bytesAfter", report.BytesAfter)

		current = out
	}

	if protected {
		found, err := p.relocate(current, scanner.Scan(current).Spans, region)
		if err != nil {
			return result, err
		}

		result.Region = &found
	}

	result.Text = current

	return result, nil
}

// relocate finds the protected region again and fails unless it is
// byte-identical to the original.
func (p *Pipeline) relocate(text string, spans []m.Span, want m.Region) (m.Region, error) {
	found, ok := Locate(text, spans, p.Protect)
	if !ok {
		return m.Region{}, fmt.Errorf("%w: protected region %q lost", m.ErrProtocolViolation, p.Protect)
	}

	if found.Content != want.Content {
		return m.Region{}, fmt.Errorf("%w: protected region %q changed", m.ErrProtocolViolation, p.Protect)
	}

	return found, nil
}
