package service

import (
	"fmt"
	"html"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/itdept/dutyreport/config"
	"github.com/rs/zerolog/log"
	gomail "gopkg.in/gomail.v2"
)

const logoContentID = "logo.png"

// ReportMail is everything the dispatcher needs to announce one submission.
type ReportMail struct {
	ResponseID    uint
	DisplayName   string
	Username      string
	FormattedDate string
	FormattedTime string
	ActionCount   int
	FileName      string
	FilePath      string
}

// Mailer sends the report notification to the distribution list.
type Mailer interface {
	SendReport(mail ReportMail) error
}

type smtpMailer struct {
	cfg      config.Mail
	baseURL  string
	logoPath string
	send     func(m *gomail.Message) error
}

// NewMailer builds the SMTP-backed dispatcher.
func NewMailer(cfg *config.Config) Mailer {
	dialer := gomail.NewDialer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password)
	return &smtpMailer{
		cfg:      cfg.Mail,
		baseURL:  cfg.Server.BaseURL,
		logoPath: cfg.Report.LogoPath,
		send: func(m *gomail.Message) error {
			return dialer.DialAndSend(m)
		},
	}
}

// ParseRecipients splits a configured recipient list on commas or semicolons,
// trimming whitespace and dropping empty entries.
func ParseRecipients(raw string) []string {
	var recipients []string
	for _, part := range regexp.MustCompile(`[;,]`).Split(raw, -1) {
		if addr := strings.TrimSpace(part); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	return recipients
}

func (s *smtpMailer) recipients() []string {
	raw := s.cfg.AdminEmails
	if raw == "" {
		raw = s.cfg.AdminEmail
	}
	recipients := ParseRecipients(raw)
	if len(recipients) == 0 {
		log.Warn().Msg("No ADMIN_EMAIL/ADMIN_EMAILS configured. Mail will be sent to EMAIL_USER as fallback.")
		recipients = []string{s.cfg.User}
	}
	return recipients
}

func (s *smtpMailer) SendReport(mail ReportMail) error {
	downloadURL := s.baseURL + "/pdfs/" + url.PathEscape(mail.FileName)

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.User)
	m.SetHeader("To", s.recipients()...)
	m.SetHeader("Subject", fmt.Sprintf(
		"Duty_Manager_Report - Response %d - %s - %s - %s – %s",
		mail.ResponseID, mail.Username, mail.DisplayName, mail.FormattedDate, mail.FormattedTime,
	))
	m.SetBody("text/plain", buildMailText(mail, downloadURL))
	m.AddAlternative("text/html", buildMailHTML(mail, downloadURL))
	m.Attach(mail.FilePath, gomail.Rename(mail.FileName))

	if s.logoPath != "" {
		if _, err := os.Stat(s.logoPath); err == nil {
			m.Embed(s.logoPath, gomail.Rename(logoContentID))
		}
	}

	if err := s.send(m); err != nil {
		return fmt.Errorf("send report mail: %w", err)
	}
	return nil
}

func buildMailText(mail ReportMail, downloadURL string) string {
	return fmt.Sprintf(`تـحـيـة طـيـبـة،

أرفق لكم تقرير "Duty Manager Report".

الملخص:
- رقم التقرير: %d
- المرسل: %s (%s)
- تاريخ الإرسال: %s – %s
- عدد الإجراءات المسجلة: %d

للاطلاع أو التحميل:
%s

(يوجد نسخة PDF مرفقة بالتقرير).`,
		mail.ResponseID, mail.DisplayName, mail.Username,
		mail.FormattedDate, mail.FormattedTime, mail.ActionCount, downloadURL)
}

func buildMailHTML(mail ReportMail, downloadURL string) string {
	return fmt.Sprintf(`
      <div dir="rtl" style="font-family:Tahoma,Arial,sans-serif;color:#111;line-height:1.8">
        <div style="text-align:center;margin-bottom:12px">
          <img src="cid:%s" alt="Company Logo" style="height:64px;max-width:100%%;display:inline-block" />
        </div>
        <p>تحية طيبة،</p>
        <p>أرفق لكم تقرير "Duty Manager Report".</p>
        <ul style="padding-right:20px;margin:0 0 12px 0">
          <li>رقم التقرير: <strong>%d</strong></li>
          <li>المرسل: <strong>%s</strong> || أسم المستخدم: (<span dir="ltr">%s</span>)</li>
          <li>تاريخ الإرسال: <strong>%s – %s</strong></li>
          <li>عدد الإجراءات المسجلة: <strong>%d</strong></li>
        </ul>
        <p>
          رابط العرض/التحميل:
          <a href="%s">%s</a>
        </p>
        <p style="margin-top:16px;color:#555">مع خالص الشكر،<br>قسم الـ IT</p>
      </div>`,
		logoContentID, mail.ResponseID,
		html.EscapeString(mail.DisplayName), html.EscapeString(mail.Username),
		mail.FormattedDate, mail.FormattedTime, mail.ActionCount,
		downloadURL, downloadURL)
}
