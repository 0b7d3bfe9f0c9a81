package controller

import (
	"bytes"
	"fmt"

	m "github.com/mouse-blink/predeploy/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayReports prints a stage table and a size summary per file.
func (s *SimpleUI) DisplayReports(reports []m.FileReport) error {
	if len(reports) == 0 {
		s.printf("No files processed\n")
		return nil
	}

	for _, r := range reports {
		s.printf("\n%s\n", r.Path)
		s.printf("%s", stageTable(r))

		s.printf("Original: %s, %s lines\n", formatKB(r.BytesBefore), formatInt(r.LinesBefore))
		s.printf("New:      %s, %s lines\n", formatKB(r.BytesAfter), formatInt(r.LinesAfter))
		s.printf("Removed:  %s, %s lines (%s)\n",
			formatKB(r.RemovedBytes()), formatInt(r.RemovedLines()), formatPercent(r.Reduction()))

		if r.ReferenceSize > 0 {
			s.printf("Reference minifier: %s\n", formatKB(r.ReferenceSize))
		}

		if r.HadBOM {
			s.printf("BOM removed\n")
		}

		for _, w := range r.Warnings {
			s.printf("warning: %s\n", w)
		}

		s.printf("Result: %s\n", outcome(r))
	}

	if len(reports) > 1 {
		t := sumReports(reports)
		s.printf("\nTotal: %s files, %s → %s (%s)\n",
			formatInt(t.files), formatKB(t.before), formatKB(t.after), formatPercent(t.reduction()))
	}

	return nil
}

// DisplayScan prints the span counts, protected region and issues per file.
func (s *SimpleUI) DisplayScan(summaries []m.ScanSummary) error {
	if len(summaries) == 0 {
		s.printf("No files scanned\n")
		return nil
	}

	for _, sum := range summaries {
		s.printf("\n%s (%s, %s lines)\n", sum.Path, formatKB(sum.Bytes), formatInt(sum.Lines))

		var tableBuffer bytes.Buffer

		table := tablewriter.NewWriter(&tableBuffer)
		table.SetHeader([]string{"Mode", "Spans"})
		table.SetBorder(false)
		table.SetCenterSeparator("")
		table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

		total := 0

		for _, mode := range m.Modes() {
			n := sum.Counts[mode]
			if n == 0 {
				continue
			}

			table.Append([]string{mode.String(), formatInt(n)})

			total += n
		}

		table.SetFooter([]string{"Total", formatInt(total)})
		table.Render()
		s.printf("%s", tableBuffer.String())

		s.printf("Protected: %s\n", protectedLabel(sum.Region))

		for _, issue := range sum.Issues {
			s.printf("issue: %s\n", issue)
		}
	}

	return nil
}

func stageTable(r m.FileReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Stage", "Bytes", "Lines", "Removed"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, st := range r.Stages {
		table.Append([]string{
			st.Stage,
			formatChange(st.BytesBefore, st.BytesAfter),
			formatChange(st.LinesBefore, st.LinesAfter),
			formatInt(st.RemovedBytes()),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d stages", len(r.Stages)),
		formatChange(r.BytesBefore, r.BytesAfter),
		formatChange(r.LinesBefore, r.LinesAfter),
		formatInt(r.RemovedBytes()),
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
