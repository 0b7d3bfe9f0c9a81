package adapter

import (
	"fmt"

	m "github.com/mouse-blink/predeploy/internal/model"
	"gopkg.in/yaml.v3"
)

// ReportStore persists and retrieves run reports.
type ReportStore interface {
	SaveReports(path m.Path, reports []m.FileReport) error
	LoadReports(path m.Path) ([]m.FileReport, error)
}

// LocalReportStore keeps reports as a YAML document on disk.
type LocalReportStore struct {
	fs SourceFSAdapter
}

// NewReportStore constructs a ReportStore that reads and writes through fs.
func NewReportStore(fs SourceFSAdapter) *LocalReportStore {
	return &LocalReportStore{fs: fs}
}

type reportDocument struct {
	Files []fileRecord `yaml:"files"`
}

type fileRecord struct {
	Path          string        `yaml:"path"`
	Output        string        `yaml:"output"`
	BytesBefore   int           `yaml:"bytes_before"`
	BytesAfter    int           `yaml:"bytes_after"`
	LinesBefore   int           `yaml:"lines_before"`
	LinesAfter    int           `yaml:"lines_after"`
	Reduction     float64       `yaml:"reduction_percent"`
	HadBOM        bool          `yaml:"had_bom,omitempty"`
	Protected     bool          `yaml:"protected,omitempty"`
	Written       bool          `yaml:"written"`
	Scripts       int           `yaml:"scripts"`
	ReferenceSize int           `yaml:"reference_size,omitempty"`
	Stages        []stageRecord `yaml:"stages"`
	Warnings      []issueRecord `yaml:"warnings,omitempty"`
}

type stageRecord struct {
	Stage       string `yaml:"stage"`
	BytesBefore int    `yaml:"bytes_before"`
	BytesAfter  int    `yaml:"bytes_after"`
	LinesBefore int    `yaml:"lines_before"`
	LinesAfter  int    `yaml:"lines_after"`
}

type issueRecord struct {
	Mode   string `yaml:"mode"`
	Offset int    `yaml:"offset"`
	Line   int    `yaml:"line"`
	Column int    `yaml:"column"`
}

// SaveReports writes reports to path, replacing any previous document.
func (rs *LocalReportStore) SaveReports(path m.Path, reports []m.FileReport) error {
	doc := reportDocument{Files: make([]fileRecord, 0, len(reports))}
	for _, r := range reports {
		doc.Files = append(doc.Files, toRecord(r))
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}

	return rs.fs.WriteFileAtomic(path, data)
}

// LoadReports reads a document written by SaveReports.
func (rs *LocalReportStore) LoadReports(path m.Path) ([]m.FileReport, error) {
	data, err := rs.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc reportDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode reports %s: %w", path, err)
	}

	reports := make([]m.FileReport, 0, len(doc.Files))
	for _, rec := range doc.Files {
		reports = append(reports, fromRecord(rec))
	}

	return reports, nil
}

func toRecord(r m.FileReport) fileRecord {
	rec := fileRecord{
		Path:          string(r.Path),
		Output:        string(r.Output),
		BytesBefore:   r.BytesBefore,
		BytesAfter:    r.BytesAfter,
		LinesBefore:   r.LinesBefore,
		LinesAfter:    r.LinesAfter,
		Reduction:     r.Reduction(),
		HadBOM:        r.HadBOM,
		Protected:     r.Protected,
		Written:       r.Written,
		Scripts:       r.Scripts,
		ReferenceSize: r.ReferenceSize,
		Stages:        make([]stageRecord, 0, len(r.Stages)),
	}

	for _, s := range r.Stages {
		rec.Stages = append(rec.Stages, stageRecord(s))
	}

	for _, w := range r.Warnings {
		rec.Warnings = append(rec.Warnings, issueRecord{
			Mode:   w.Mode.String(),
			Offset: w.Offset,
			Line:   w.Line,
			Column: w.Column,
		})
	}

	return rec
}

func fromRecord(rec fileRecord) m.FileReport {
	r := m.FileReport{
		Path:          m.Path(rec.Path),
		Output:        m.Path(rec.Output),
		BytesBefore:   rec.BytesBefore,
		BytesAfter:    rec.BytesAfter,
		LinesBefore:   rec.LinesBefore,
		LinesAfter:    rec.LinesAfter,
		HadBOM:        rec.HadBOM,
		Protected:     rec.Protected,
		Written:       rec.Written,
		Scripts:       rec.Scripts,
		ReferenceSize: rec.ReferenceSize,
	}

	for _, s := range rec.Stages {
		r.Stages = append(r.Stages, m.StageReport(s))
	}

	for _, w := range rec.Warnings {
		r.Warnings = append(r.Warnings, m.Issue{
			Mode:   modeNamed(w.Mode),
			Offset: w.Offset,
			Line:   w.Line,
			Column: w.Column,
		})
	}

	return r
}

func modeNamed(name string) m.Mode {
	for _, md := range m.Modes() {
		if md.String() == name {
			return md
		}
	}

	return m.Code
}
