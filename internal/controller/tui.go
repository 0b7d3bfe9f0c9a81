package controller

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "github.com/mouse-blink/predeploy/internal/model"
	"golang.org/x/term"
)

const stageRowFormat = "%-16s %24s %16s %10s"

// TUI implements UI with lipgloss styling. Output taller than the terminal
// is paged in a Bubble Tea program.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayReports renders one box per file plus a grand total.
func (t *TUI) DisplayReports(reports []m.FileReport) error {
	return t.show("predeploy report", renderReports(reports))
}

// DisplayScan renders the span counts of every scanned file.
func (t *TUI) DisplayScan(summaries []m.ScanSummary) error {
	return t.show("predeploy scan", renderScan(summaries))
}

func (t *TUI) show(title, content string) error {
	width, height := terminalSize(t.output)

	// If the content fits, just print and exit
	if height == 0 || lipgloss.Height(content)+pagerChrome <= height {
		_, err := fmt.Fprint(t.output, titleStyle.Render(title)+"\n"+content)
		return err
	}

	program := tea.NewProgram(newPagerModel(title, content, width, height),
		tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func terminalSize(w io.Writer) (int, int) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, 0
	}

	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0
	}

	return width, height
}

func renderReports(reports []m.FileReport) string {
	if len(reports) == 0 {
		return labelStyle.Render("No files processed") + "\n"
	}

	var b strings.Builder

	for _, r := range reports {
		b.WriteString(boxStyle.Render(renderReport(r)))
		b.WriteString("\n")
	}

	if len(reports) > 1 {
		t := sumReports(reports)
		fmt.Fprintf(&b, "%s %s files, %s → %s (%s)\n",
			labelStyle.Render("Total:"),
			accentStyle.Render(formatInt(t.files)),
			valueStyle.Render(formatKB(t.before)),
			valueStyle.Render(formatKB(t.after)),
			goodStyle.Render(formatPercent(t.reduction())))
	}

	return b.String()
}

func renderReport(r m.FileReport) string {
	lines := []string{pathStyle.Render(string(r.Path))}

	lines = append(lines, headerStyle.Render(fmt.Sprintf(stageRowFormat, "Stage", "Bytes", "Lines", "Removed")))

	for _, st := range r.Stages {
		lines = append(lines, valueStyle.Render(fmt.Sprintf(stageRowFormat,
			st.Stage,
			formatChange(st.BytesBefore, st.BytesAfter),
			formatChange(st.LinesBefore, st.LinesAfter),
			formatInt(st.RemovedBytes()))))
	}

	lines = append(lines, "",
		keyValue("Original", formatKB(r.BytesBefore)+", "+formatInt(r.LinesBefore)+" lines"),
		keyValue("New", formatKB(r.BytesAfter)+", "+formatInt(r.LinesAfter)+" lines"),
		labelStyle.Render("Removed: ")+goodStyle.Render(fmt.Sprintf("%s, %s lines (%s)",
			formatKB(r.RemovedBytes()), formatInt(r.RemovedLines()), formatPercent(r.Reduction()))),
	)

	if r.ReferenceSize > 0 {
		lines = append(lines, keyValue("Reference minifier", formatKB(r.ReferenceSize)))
	}

	if r.HadBOM {
		lines = append(lines, accentStyle.Render("BOM removed"))
	}

	for _, w := range r.Warnings {
		lines = append(lines, warnStyle.Render("⚠ "+w.String()))
	}

	lines = append(lines, keyValue("Result", outcome(r)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderScan(summaries []m.ScanSummary) string {
	if len(summaries) == 0 {
		return labelStyle.Render("No files scanned") + "\n"
	}

	var b strings.Builder

	for _, sum := range summaries {
		lines := []string{
			pathStyle.Render(string(sum.Path)) + " " +
				labelStyle.Render(fmt.Sprintf("(%s, %s lines)", formatKB(sum.Bytes), formatInt(sum.Lines))),
			headerStyle.Render(fmt.Sprintf("%-16s %8s", "Mode", "Spans")),
		}

		for _, mode := range m.Modes() {
			if n := sum.Counts[mode]; n > 0 {
				lines = append(lines, valueStyle.Render(fmt.Sprintf("%-16s %8s", mode, formatInt(n))))
			}
		}

		lines = append(lines, "", keyValue("Protected", protectedLabel(sum.Region)))

		for _, issue := range sum.Issues {
			lines = append(lines, warnStyle.Render("⚠ "+issue.String()))
		}

		b.WriteString(boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
		b.WriteString("\n")
	}

	return b.String()
}

func keyValue(key, value string) string {
	return labelStyle.Render(key+": ") + valueStyle.Render(value)
}
