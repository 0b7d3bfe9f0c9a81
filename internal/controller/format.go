package controller

import (
	"fmt"

	m "github.com/mouse-blink/predeploy/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func formatInt(n int) string {
	return printer.Sprintf("%d", n)
}

func formatKB(n int) string {
	return printer.Sprintf("%.2f KB", float64(n)/1024)
}

func formatChange(before, after int) string {
	return formatInt(before) + " → " + formatInt(after)
}

func formatPercent(p float64) string {
	return printer.Sprintf("%.1f%%", p)
}

// outcome says what happened to the file on disk.
func outcome(r m.FileReport) string {
	switch {
	case r.Written:
		return fmt.Sprintf("written to %s", r.Output)
	case r.BytesAfter != r.BytesBefore:
		return "not written (dry run)"
	default:
		return "unchanged"
	}
}

func protectedLabel(region *m.Region) string {
	if region == nil {
		return "none"
	}

	return fmt.Sprintf("%s at %d-%d (%s)", region.Name, region.Span.Start, region.Span.End, formatKB(region.Span.Len()))
}

type totals struct {
	files  int
	before int
	after  int
}

func sumReports(reports []m.FileReport) totals {
	t := totals{files: len(reports)}
	for _, r := range reports {
		t.before += r.BytesBefore
		t.after += r.BytesAfter
	}

	return t
}

func (t totals) reduction() float64 {
	if t.before == 0 {
		return 0
	}

	return float64(t.before-t.after) / float64(t.before) * 100
}
