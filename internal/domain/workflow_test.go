package domain

import (
	"context"
	"fmt"
	"testing"

	adaptermocks "github.com/mouse-blink/predeploy/internal/adapter/mocks"
	controllermocks "github.com/mouse-blink/predeploy/internal/controller/mocks"
	"github.com/mouse-blink/predeploy/internal/domain/stages"
	m "github.com/mouse-blink/predeploy/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type workflowMocks struct {
	fs        *adaptermocks.MockSourceFSAdapter
	store     *adaptermocks.MockReportStore
	syntax    *adaptermocks.MockSyntaxChecker
	reference *adaptermocks.MockReferenceMinifier
	ui        *controllermocks.MockUI
}

func newTestWorkflow(t *testing.T) (Workflow, workflowMocks) {
	mocks := workflowMocks{
		fs:        adaptermocks.NewMockSourceFSAdapter(t),
		store:     adaptermocks.NewMockReportStore(t),
		syntax:    adaptermocks.NewMockSyntaxChecker(t),
		reference: adaptermocks.NewMockReferenceMinifier(t),
		ui:        controllermocks.NewMockUI(t),
	}

	mocks.fs.EXPECT().ResolvePath(mock.Anything).
		RunAndReturn(func(p m.Path) (m.Path, error) { return p, nil }).Maybe()

	return NewWorkflow(mocks.fs, mocks.store, mocks.syntax, mocks.reference, mocks.ui), mocks
}

func commentsJob(target m.Path) Job {
	return Job{
		Target:   target,
		StripBOM: true,
		Pipeline: NewPipeline("quizData", false, stages.NewCommentStripper()),
	}
}

func captureReports(ui *controllermocks.MockUI) *[]m.FileReport {
	var got []m.FileReport

	ui.EXPECT().DisplayReports(mock.Anything).
		Run(func(reports []m.FileReport) { got = reports }).
		Return(nil).Once()

	return &got
}

func TestWorkflow_Run_WritesResult(t *testing.T) {
	wf, mocks := newTestWorkflow(t)

	mocks.fs.EXPECT().ReadFile(m.Path("/src/app.js")).
		Return([]byte("\xEF\xBB\xBF// c\nlet a = 1;\n"), nil)
	mocks.fs.EXPECT().WriteFileAtomic(m.Path("/src/app.js"), []byte("let a = 1;\n")).Return(nil)

	got := captureReports(mocks.ui)

	err := wf.Run(context.Background(), RunArgs{Jobs: []Job{commentsJob("/src/app.js")}})
	require.NoError(t, err)

	require.Len(t, *got, 1)
	report := (*got)[0]
	assert.True(t, report.HadBOM)
	assert.True(t, report.Written)
	assert.Equal(t, 19, report.BytesBefore)
	assert.Equal(t, 11, report.BytesAfter)
	assert.Equal(t, 1, report.Scripts)
	require.Len(t, report.Stages, 2)
	assert.Equal(t, "bom", report.Stages[0].Stage)
	assert.Equal(t, 3, report.Stages[0].RemovedBytes())
	assert.Equal(t, "comments", report.Stages[1].Stage)
}

func TestWorkflow_Run_DryRun(t *testing.T) {
	wf, mocks := newTestWorkflow(t)

	mocks.fs.EXPECT().ReadFile(m.Path("app.js")).Return([]byte("// c\nrun();\n"), nil)

	got := captureReports(mocks.ui)

	job := commentsJob("app.js")
	job.DryRun = true

	require.NoError(t, wf.Run(context.Background(), RunArgs{Jobs: []Job{job}}))
	require.Len(t, *got, 1)
	assert.False(t, (*got)[0].Written)
	assert.Equal(t, len("run();\n"), (*got)[0].BytesAfter)
}

func TestWorkflow_Run_UnchangedSkipsWrite(t *testing.T) {
	wf, mocks := newTestWorkflow(t)

	mocks.fs.EXPECT().ReadFile(m.Path("app.js")).Return([]byte("run();\n"), nil)

	got := captureReports(mocks.ui)

	require.NoError(t, wf.Run(context.Background(), RunArgs{Jobs: []Job{commentsJob("app.js")}}))
	assert.False(t, (*got)[0].Written)
}

func TestWorkflow_Run_SeparateOutput(t *testing.T) {
	wf, mocks := newTestWorkflow(t)

	mocks.fs.EXPECT().ReadFile(m.Path("script.js")).Return([]byte("run();\n"), nil)
	mocks.fs.EXPECT().WriteFileAtomic(m.Path("script.production.js"), []byte("run();\n")).Return(nil)

	got := captureReports(mocks.ui)

	job := commentsJob("script.js")
	job.Output = "script.production.js"

	require.NoError(t, wf.Run(context.Background(), RunArgs{Jobs: []Job{job}}))
	assert.True(t, (*got)[0].Written)
	assert.Equal(t, m.Path("script.production.js"), (*got)[0].Output)
}

func TestWorkflow_Run_ReadError(t *testing.T) {
	wf, mocks := newTestWorkflow(t)

	mocks.fs.EXPECT().ReadFile(m.Path("missing.js")).
		Return(nil, fmt.Errorf("%w: read missing.js: no such file", m.ErrIO))

	err := wf.Run(context.Background(), RunArgs{Jobs: []Job{commentsJob("missing.js")}})
	assert.ErrorIs(t, err, m.ErrIO)
}

func TestWorkflow_Run_InvalidUTF8(t *testing.T) {
	wf, mocks := newTestWorkflow(t)

	mocks.fs.EXPECT().ReadFile(m.Path("bin.js")).Return([]byte{'a', 0xff, 'b'}, nil)

	err := wf.Run(context.Background(), RunArgs{Jobs: []Job{commentsJob("bin.js")}})
	assert.ErrorIs(t, err, m.ErrDecode)
}

func TestWorkflow_Run_Unterminated(t *testing.T) {
	wf, mocks := newTestWorkflow(t)

	mocks.fs.EXPECT().ReadFile(m.Path("app.js")).Return([]byte("x = `abc"), nil)

	err := wf.Run(context.Background(), RunArgs{Jobs: []Job{commentsJob("app.js")}})
	assert.ErrorIs(t, err, m.ErrUnterminatedLiteral)
}

func TestWorkflow_Run_VerifyRejects(t *testing.T) {
	wf, mocks := newTestWorkflow(t)

	mocks.fs.EXPECT().ReadFile(m.Path("app.js")).Return([]byte("// c\nrun();\n"), nil)
	mocks.syntax.EXPECT().Check("run();\n").Return(fmt.Errorf("%w: 1:1: bad", m.ErrSyntax))

	job := commentsJob("app.js")
	job.Verify = true

	err := wf.Run(context.Background(), RunArgs{Jobs: []Job{job}})
	assert.ErrorIs(t, err, m.ErrSyntax)
}

func TestWorkflow_Run_VerifyAccepts(t *testing.T) {
	wf, mocks := newTestWorkflow(t)

	mocks.fs.EXPECT().ReadFile(m.Path("app.js")).Return([]byte("// c\nrun();\n"), nil)
	mocks.fs.EXPECT().WriteFileAtomic(m.Path("app.js"), []byte("run();\n")).Return(nil)
	mocks.syntax.EXPECT().Check("run();\n").Return(nil)

	captureReports(mocks.ui)

	job := commentsJob("app.js")
	job.Verify = true

	require.NoError(t, wf.Run(context.Background(), RunArgs{Jobs: []Job{job}}))
}

func TestWorkflow_Run_HTML(t *testing.T) {
	wf, mocks := newTestWorkflow(t)

	doc := "<html><script>// c\nrun();</script><p>// text</p>" +
		"<script src=\"x.js\">// kept</script></html>"
	want := "<html><script>run();</script><p>// text</p>" +
		"<script src=\"x.js\">// kept</script></html>"

	mocks.fs.EXPECT().ReadFile(m.Path("admin-panel.html")).Return([]byte(doc), nil)
	mocks.fs.EXPECT().WriteFileAtomic(m.Path("admin-panel.html"), []byte(want)).Return(nil)

	got := captureReports(mocks.ui)

	require.NoError(t, wf.Run(context.Background(), RunArgs{Jobs: []Job{commentsJob("admin-panel.html")}}))
	assert.Equal(t, 1, (*got)[0].Scripts)
}

func TestWorkflow_Run_Compare(t *testing.T) {
	wf, mocks := newTestWorkflow(t)

	mocks.fs.EXPECT().ReadFile(m.Path("app.js")).Return([]byte("run();\n"), nil)
	mocks.reference.EXPECT().MinifiedSize("run();\n", false).Return(6, nil)

	got := captureReports(mocks.ui)

	job := commentsJob("app.js")
	job.Compare = true

	require.NoError(t, wf.Run(context.Background(), RunArgs{Jobs: []Job{job}}))
	assert.Equal(t, 6, (*got)[0].ReferenceSize)
}

func TestWorkflow_Run_Parallel(t *testing.T) {
	wf, mocks := newTestWorkflow(t)

	paths := []m.Path{"a.js", "b.js", "c.js", "d.js"}
	jobs := make([]Job, 0, len(paths))

	for _, p := range paths {
		mocks.fs.EXPECT().ReadFile(p).Return([]byte("// "+string(p)+"\nrun();\n"), nil)
		mocks.fs.EXPECT().WriteFileAtomic(p, []byte("run();\n")).Return(nil)

		jobs = append(jobs, commentsJob(p))
	}

	got := captureReports(mocks.ui)

	require.NoError(t, wf.Run(context.Background(), RunArgs{Jobs: jobs, Parallel: 3}))
	require.Len(t, *got, len(paths))

	for i, p := range paths {
		assert.Equal(t, p, (*got)[i].Path)
	}
}

func TestWorkflow_Run_PartialFailureStillReports(t *testing.T) {
	wf, mocks := newTestWorkflow(t)

	mocks.fs.EXPECT().ReadFile(m.Path("ok.js")).Return([]byte("run();\n"), nil)

	got := captureReports(mocks.ui)

	jobs := []Job{commentsJob("ok.js")}
	jobs[0].DryRun = true

	mocks.fs.EXPECT().ReadFile(m.Path("bad.js")).Return(nil, fmt.Errorf("%w: denied", m.ErrIO))
	jobs = append(jobs, commentsJob("bad.js"))

	err := wf.Run(context.Background(), RunArgs{Jobs: jobs})
	require.ErrorIs(t, err, m.ErrIO)
	require.Len(t, *got, 1)
	assert.Equal(t, m.Path("ok.js"), (*got)[0].Path)
}

func TestWorkflow_Run_SavesReport(t *testing.T) {
	wf, mocks := newTestWorkflow(t)

	mocks.fs.EXPECT().ReadFile(m.Path("app.js")).Return([]byte("run();\n"), nil)
	mocks.store.EXPECT().SaveReports(m.Path("report.yaml"), mock.MatchedBy(func(r []m.FileReport) bool {
		return len(r) == 1 && r[0].Path == "app.js"
	})).Return(nil)

	captureReports(mocks.ui)

	err := wf.Run(context.Background(), RunArgs{Jobs: []Job{commentsJob("app.js")}, Report: "report.yaml"})
	require.NoError(t, err)
}

func TestWorkflow_Scan(t *testing.T) {
	wf, mocks := newTestWorkflow(t)

	mocks.fs.EXPECT().ReadFile(m.Path("app.js")).
		Return([]byte("const quizData = [1]; // b\n'c'"), nil)

	var got []m.ScanSummary

	mocks.ui.EXPECT().DisplayScan(mock.Anything).
		Run(func(s []m.ScanSummary) { got = s }).
		Return(nil)

	require.NoError(t, wf.Scan(ScanArgs{Paths: []m.Path{"app.js"}, Protect: "quizData"}))
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Counts[m.LineComment])
	assert.Equal(t, 1, got[0].Counts[m.SingleQuoted])
	require.NotNil(t, got[0].Region)
	assert.Equal(t, "const quizData = [1];", got[0].Region.Content)
	assert.Empty(t, got[0].Issues)
}

func TestWorkflow_View(t *testing.T) {
	wf, mocks := newTestWorkflow(t)

	saved := []m.FileReport{{Path: "/site/script.js", BytesBefore: 10, BytesAfter: 8}}
	mocks.store.EXPECT().LoadReports(m.Path("report.yaml")).Return(saved, nil)
	mocks.ui.EXPECT().DisplayReports(saved).Return(nil)

	require.NoError(t, wf.View(ViewArgs{Report: "report.yaml"}))
}

func TestWorkflow_View_LoadError(t *testing.T) {
	wf, mocks := newTestWorkflow(t)

	mocks.store.EXPECT().LoadReports(m.Path("missing.yaml")).
		Return(nil, fmt.Errorf("%w: read missing.yaml", m.ErrIO))

	err := wf.View(ViewArgs{Report: "missing.yaml"})
	assert.ErrorIs(t, err, m.ErrIO)
}
