// Package controller provides output adapters for displaying rewrite reports.
package controller

import (
	m "github.com/mouse-blink/predeploy/internal/model"
)

// UI defines the interface for displaying run results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplayReports shows what a run did to each file.
	DisplayReports(reports []m.FileReport) error
	// DisplayScan shows the lexical summary of each scanned file.
	DisplayScan(summaries []m.ScanSummary) error
}
