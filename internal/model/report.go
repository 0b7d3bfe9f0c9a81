package model

// StageReport records the effect of a single stage.
type StageReport struct {
	Stage       string
	BytesBefore int
	BytesAfter  int
	LinesBefore int
	LinesAfter  int
}

// RemovedBytes is the number of bytes the stage dropped (negative if it grew).
func (r StageReport) RemovedBytes() int {
	return r.BytesBefore - r.BytesAfter
}

// TransformResult is the outcome of one pipeline run over one text.
type TransformResult struct {
	Text     string
	Stages   []StageReport
	Warnings []Issue
	Region   *Region
}

// FileReport summarises one file processed by a workflow run.
type FileReport struct {
	Path          Path
	Output        Path
	BytesBefore   int
	BytesAfter    int
	LinesBefore   int
	LinesAfter    int
	Stages        []StageReport
	Warnings      []Issue
	HadBOM        bool
	Protected     bool
	Written       bool
	Scripts       int
	ReferenceSize int
}

// RemovedBytes is the number of bytes dropped from the file.
func (r FileReport) RemovedBytes() int {
	return r.BytesBefore - r.BytesAfter
}

// RemovedLines is the number of lines dropped from the file.
func (r FileReport) RemovedLines() int {
	return r.LinesBefore - r.LinesAfter
}

// Reduction returns the removed share of the original size in percent.
func (r FileReport) Reduction() float64 {
	if r.BytesBefore == 0 {
		return 0
	}

	return float64(r.RemovedBytes()) / float64(r.BytesBefore) * 100
}

// ScanSummary describes a text without rewriting it.
type ScanSummary struct {
	Path   Path
	Bytes  int
	Lines  int
	Counts map[Mode]int
	Issues []Issue
	Region *Region
}
