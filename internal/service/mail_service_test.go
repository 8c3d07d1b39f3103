package service

import (
	"errors"
	"testing"

	"github.com/itdept/dutyreport/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "gopkg.in/gomail.v2"
)

func TestParseRecipients(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single", "ops@example.com", []string{"ops@example.com"}},
		{"commas", "a@x.com,b@x.com", []string{"a@x.com", "b@x.com"}},
		{"semicolons", "a@x.com;b@x.com", []string{"a@x.com", "b@x.com"}},
		{"mixed with whitespace", " a@x.com ; b@x.com , c@x.com", []string{"a@x.com", "b@x.com", "c@x.com"}},
		{"empty entries dropped", "a@x.com;;,b@x.com,", []string{"a@x.com", "b@x.com"}},
		{"blank", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRecipients(tt.raw))
		})
	}
}

func newTestMailer(mailCfg config.Mail, captured **gomail.Message) *smtpMailer {
	return &smtpMailer{
		cfg:     mailCfg,
		baseURL: "http://localhost:3000",
		send: func(m *gomail.Message) error {
			*captured = m
			return nil
		},
	}
}

func testReportMail() ReportMail {
	return ReportMail{
		ResponseID:    12,
		DisplayName:   "Duty Manager",
		Username:      "duty1",
		FormattedDate: "28/08/2026",
		FormattedTime: "09:30",
		ActionCount:   2,
		FileName:      "Response 12 - 28-08-2026 - 09-30 - duty1.pdf",
		FilePath:      "/tmp/report.pdf",
	}
}

func TestSendReport_Headers(t *testing.T) {
	var sent *gomail.Message
	mailer := newTestMailer(config.Mail{
		User:        "reports@example.com",
		AdminEmails: "ops@example.com; manager@example.com",
	}, &sent)

	require.NoError(t, mailer.SendReport(testReportMail()))
	require.NotNil(t, sent)

	assert.Equal(t, []string{"reports@example.com"}, sent.GetHeader("From"))
	assert.Equal(t, []string{"ops@example.com", "manager@example.com"}, sent.GetHeader("To"))
	assert.Equal(t,
		[]string{"Duty_Manager_Report - Response 12 - duty1 - Duty Manager - 28/08/2026 – 09:30"},
		sent.GetHeader("Subject"))
}

func TestSendReport_RecipientPrecedence(t *testing.T) {
	t.Run("AdminEmails wins over AdminEmail", func(t *testing.T) {
		var sent *gomail.Message
		mailer := newTestMailer(config.Mail{
			User:        "reports@example.com",
			AdminEmail:  "legacy@example.com",
			AdminEmails: "ops@example.com",
		}, &sent)

		require.NoError(t, mailer.SendReport(testReportMail()))
		assert.Equal(t, []string{"ops@example.com"}, sent.GetHeader("To"))
	})

	t.Run("AdminEmail used when list is empty", func(t *testing.T) {
		var sent *gomail.Message
		mailer := newTestMailer(config.Mail{
			User:       "reports@example.com",
			AdminEmail: "legacy@example.com",
		}, &sent)

		require.NoError(t, mailer.SendReport(testReportMail()))
		assert.Equal(t, []string{"legacy@example.com"}, sent.GetHeader("To"))
	})

	t.Run("falls back to sender when nothing configured", func(t *testing.T) {
		var sent *gomail.Message
		mailer := newTestMailer(config.Mail{User: "reports@example.com"}, &sent)

		require.NoError(t, mailer.SendReport(testReportMail()))
		assert.Equal(t, []string{"reports@example.com"}, sent.GetHeader("To"))
	})
}

func TestSendReport_DialFailure(t *testing.T) {
	mailer := &smtpMailer{
		cfg:     config.Mail{User: "reports@example.com"},
		baseURL: "http://localhost:3000",
		send: func(m *gomail.Message) error {
			return errors.New("dial tcp: connection refused")
		},
	}

	err := mailer.SendReport(testReportMail())
	require.Error(t, err)
	assert.ErrorContains(t, err, "send report mail")
}

func TestBuildMailBodies(t *testing.T) {
	mail := testReportMail()
	downloadURL := "http://localhost:3000/pdfs/Response%2012%20-%2028-08-2026%20-%2009-30%20-%20duty1.pdf"

	text := buildMailText(mail, downloadURL)
	assert.Contains(t, text, "رقم التقرير: 12")
	assert.Contains(t, text, "Duty Manager (duty1)")
	assert.Contains(t, text, "عدد الإجراءات المسجلة: 2")
	assert.Contains(t, text, downloadURL)

	html := buildMailHTML(mail, downloadURL)
	assert.Contains(t, html, "cid:"+logoContentID)
	assert.Contains(t, html, "<strong>12</strong>")
	assert.Contains(t, html, `<a href="`+downloadURL+`">`)
}

func TestBuildMailHTML_EscapesRequestSuppliedNames(t *testing.T) {
	mail := testReportMail()
	mail.DisplayName = `<img src=x onerror=alert(1)>`
	mail.Username = `duty1"><script>alert(2)</script>`

	html := buildMailHTML(mail, "http://localhost:3000/pdfs/x.pdf")

	assert.NotContains(t, html, "<img src=x")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;img src=x onerror=alert(1)&gt;")
	assert.Contains(t, html, "&lt;script&gt;")
}
