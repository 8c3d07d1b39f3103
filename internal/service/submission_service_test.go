package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/itdept/dutyreport/config"
	"github.com/itdept/dutyreport/internal/catalog"
	"github.com/itdept/dutyreport/internal/dto"
	"github.com/itdept/dutyreport/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	created *model.Response
	id      uint
	err     error
}

func (f *fakeRepo) Create(ctx context.Context, response *model.Response) (uint, error) {
	f.created = response
	if f.err != nil {
		return 0, f.err
	}
	return f.id, nil
}

type fakePDF struct {
	called     bool
	outputPath string
	footer     string
	err        error
}

func (f *fakePDF) Generate(ctx context.Context, html, footerHTML, outputPath string) error {
	f.called = true
	f.footer = footerHTML
	f.outputPath = outputPath
	return f.err
}

type fakeMailer struct {
	called bool
	mail   ReportMail
	err    error
}

func (f *fakeMailer) SendReport(mail ReportMail) error {
	f.called = true
	f.mail = mail
	return f.err
}

func testSubmission(t *testing.T) (*submissionService, *fakeRepo, *fakePDF, *fakeMailer) {
	t.Helper()
	repo := &fakeRepo{id: 12}
	pdf := &fakePDF{}
	mailer := &fakeMailer{}
	svc := NewSubmissionService(repo, newTestRenderer(), pdf, mailer, &config.Config{
		Report: config.Report{PDFDir: t.TempDir()},
	}).(*submissionService)
	return svc, repo, pdf, mailer
}

func testRequest() *dto.SaveResponseRequest {
	ts := time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)
	return &dto.SaveResponseRequest{
		Username:  "duty1",
		Name:      "Duty Manager",
		Timestamp: &ts,
		Answers: &dto.AnswerSet{
			Questions: map[catalog.QuestionKey]dto.SurveyAnswer{
				catalog.AttendanceAll:  {Answer: "yes", Time: "08:00"},
				catalog.WarehouseClean: {Answer: "no", Reason: "نقص عمالة", Action: "تم التبليغ"},
			},
			CustomTasks: []string{"متابعة الصيانة"},
			Actions: []dto.ActionRow{
				{Notes: "تسريب", ActionTaken: "إبلاغ الصيانة", ActionDate: "2026-08-27", Departments: []string{"الإنتاج"}},
				{Notes: "ملاحظة ثانية"},
			},
		},
	}
}

var fileNamePattern = regexp.MustCompile(`^Response \d+ - \d{2}-\d{2}-\d{4} - \d{2}-\d{2} - \S+\.pdf$`)

func TestSave_HappyPath(t *testing.T) {
	svc, repo, pdf, mailer := testSubmission(t)

	result, err := svc.Save(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "Response saved and emailed", result.Message)
	assert.Equal(t, uint(12), result.ResponseID)
	assert.Regexp(t, fileNamePattern, result.FileName)
	assert.Equal(t, "Response 12 - 28-08-2026 - 09-30 - duty1.pdf", result.FileName)

	// Field rows: the two answered questions plus the custom_tasks row.
	require.NotNil(t, repo.created)
	assert.Len(t, repo.created.Fields, 3)
	assert.Equal(t, string(catalog.AttendanceAll), repo.created.Fields[0].FieldName)
	assert.Equal(t, "custom_tasks", repo.created.Fields[len(repo.created.Fields)-1].FieldName)
	require.Len(t, repo.created.Actions, 2)
	require.NotNil(t, repo.created.Actions[0].ActionDate)
	assert.Nil(t, repo.created.Actions[1].ActionDate)

	assert.True(t, pdf.called)
	assert.Contains(t, pdf.footer, "pageNumber")
	assert.Equal(t, pdf.outputPath, mailer.mail.FilePath)

	assert.True(t, mailer.called)
	assert.Equal(t, uint(12), mailer.mail.ResponseID)
	assert.Equal(t, "Duty Manager", mailer.mail.DisplayName)
	assert.Equal(t, "28/08/2026", mailer.mail.FormattedDate)
	assert.Equal(t, "09:30", mailer.mail.FormattedTime)
	assert.Equal(t, 2, mailer.mail.ActionCount)
}

func TestSave_MissingAnswers(t *testing.T) {
	svc, repo, pdf, mailer := testSubmission(t)

	_, err := svc.Save(context.Background(), &dto.SaveResponseRequest{Username: "duty1"})
	assert.ErrorIs(t, err, ErrMissingAnswers)
	assert.Nil(t, repo.created)
	assert.False(t, pdf.called)
	assert.False(t, mailer.called)
}

func TestSave_Defaults(t *testing.T) {
	svc, repo, _, mailer := testSubmission(t)

	result, err := svc.Save(context.Background(), &dto.SaveResponseRequest{Answers: &dto.AnswerSet{}})
	require.NoError(t, err)

	assert.Equal(t, "unknown", repo.created.Username)
	assert.Equal(t, "unknown", mailer.mail.DisplayName)
	assert.Contains(t, result.FileName, "unknown.pdf")
	// An empty answer set still writes the custom_tasks row.
	require.Len(t, repo.created.Fields, 1)
	assert.Equal(t, "custom_tasks", repo.created.Fields[0].FieldName)
	assert.JSONEq(t, `[]`, string(repo.created.Fields[0].FieldValue))
}

func TestSave_UsernameWhitespaceCollapsedInFileName(t *testing.T) {
	svc, _, _, _ := testSubmission(t)

	req := testRequest()
	req.Username = "duty  manager one"
	result, err := svc.Save(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Response 12 - 28-08-2026 - 09-30 - duty_manager_one.pdf", result.FileName)
}

func TestSave_UnknownAnswerKeyNeverPersisted(t *testing.T) {
	svc, repo, _, _ := testSubmission(t)

	req := testRequest()
	req.Answers.Questions[catalog.QuestionKey("made_up_key")] = dto.SurveyAnswer{Answer: "yes"}
	_, err := svc.Save(context.Background(), req)
	require.NoError(t, err)

	for _, field := range repo.created.Fields {
		assert.NotEqual(t, "made_up_key", field.FieldName)
	}
	// The two catalog answers plus custom_tasks; the stray key adds nothing.
	assert.Len(t, repo.created.Fields, 3)
}

func TestSave_PersistFailureAbortsPipeline(t *testing.T) {
	svc, repo, pdf, mailer := testSubmission(t)
	repo.err = errors.New("connection reset")

	_, err := svc.Save(context.Background(), testRequest())
	require.Error(t, err)
	assert.ErrorContains(t, err, "persist submission")
	assert.False(t, pdf.called)
	assert.False(t, mailer.called)
}

func TestSave_PDFFailureSkipsMail(t *testing.T) {
	svc, _, pdf, mailer := testSubmission(t)
	pdf.err = errors.New("chrome exited")

	_, err := svc.Save(context.Background(), testRequest())
	require.Error(t, err)
	assert.ErrorContains(t, err, "generate pdf")
	assert.False(t, mailer.called)
}

func TestSave_MailFailureFailsRequest(t *testing.T) {
	svc, _, pdf, mailer := testSubmission(t)
	mailer.err = errors.New("smtp auth failed")

	_, err := svc.Save(context.Background(), testRequest())
	require.Error(t, err)
	assert.ErrorContains(t, err, "send mail")
	// The PDF was already written before the dispatch attempt.
	assert.True(t, pdf.called)
}

func TestSave_BadActionDateRejectedBeforePersist(t *testing.T) {
	svc, repo, _, _ := testSubmission(t)

	req := testRequest()
	req.Answers.Actions[0].ActionDate = "27/08/2026"
	_, err := svc.Save(context.Background(), req)
	require.Error(t, err)
	assert.ErrorContains(t, err, "build response rows")
	assert.Nil(t, repo.created)
}

func TestBuildFileName(t *testing.T) {
	ts := time.Date(2026, 1, 5, 23, 7, 0, 0, time.UTC)
	assert.Equal(t, "Response 3 - 05-01-2026 - 23-07 - duty1.pdf", buildFileName(3, ts, "duty1"))
}
