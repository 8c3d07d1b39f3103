package service

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/itdept/dutyreport/config"
	"github.com/itdept/dutyreport/internal/catalog"
	"github.com/itdept/dutyreport/internal/dto"
)

// ReportData is everything the renderer needs for one submission.
type ReportData struct {
	ResponseID  uint
	Username    string
	SubmittedAt time.Time
	Answers     map[catalog.QuestionKey]dto.SurveyAnswer
	CustomTasks []string
	Actions     []dto.ActionRow
}

// ReportRenderer turns a submission into the self-contained HTML document the
// print engine consumes. Rendering is pure: same input, same output.
type ReportRenderer interface {
	RenderHTML(data ReportData) (string, error)
	// FooterHTML is the page-number-bearing footer, templated independently
	// of the body for the print engine.
	FooterHTML() string
}

type reportRenderer struct {
	logoURL  string
	fontPath string
}

// NewReportRenderer wires the renderer to the deployment's logo URL and
// report font.
func NewReportRenderer(cfg *config.Config) ReportRenderer {
	logoURL := ""
	if cfg.Report.LogoPath != "" {
		logoURL = cfg.Server.BaseURL + "/logo.png"
	}
	return &reportRenderer{
		logoURL:  logoURL,
		fontPath: cfg.Report.FontPath,
	}
}

type reportView struct {
	Username         string
	SubmittedAt      string
	LogoURL          template.URL
	FontFace         template.CSS
	Sections         []sectionView
	CustomTasksTitle string
	CustomTasks      []string
	Actions          []actionView
}

type sectionView struct {
	Title string
	Rows  []questionView
}

type questionView struct {
	Label  string
	Answer string
	Time   string
	Reason string
	Action string
}

type actionView struct {
	HasImage    bool
	Image       template.URL
	Notes       string
	Date        string
	ActionTaken string
	Departments string
}

func (r *reportRenderer) RenderHTML(data ReportData) (string, error) {
	view := reportView{
		Username:         orPlaceholder(data.Username),
		SubmittedAt:      data.SubmittedAt.Format("02/01/2006 15:04"),
		FontFace:         r.fontFace(),
		CustomTasksTitle: catalog.CustomTasksTitle,
		CustomTasks:      data.CustomTasks,
	}
	if r.logoURL != "" {
		view.LogoURL = template.URL(r.logoURL)
	}

	for _, sec := range catalog.Sections {
		sv := sectionView{Title: sec.Title}
		for _, key := range sec.Keys {
			a := data.Answers[key]
			qv := questionView{
				Label:  catalog.Label(key),
				Answer: catalog.LocalizeAnswer(a.Answer),
				Time:   catalog.Placeholder,
				Reason: catalog.Placeholder,
				Action: catalog.Placeholder,
			}
			switch a.Answer {
			case catalog.AnswerYes:
				qv.Time = orPlaceholder(a.Time)
			case catalog.AnswerNo:
				qv.Reason = orPlaceholder(a.Reason)
				qv.Action = orPlaceholder(a.Action)
			}
			sv.Rows = append(sv.Rows, qv)
		}
		view.Sections = append(view.Sections, sv)
	}

	for _, action := range data.Actions {
		av := actionView{
			Notes:       orPlaceholder(action.Notes),
			ActionTaken: orPlaceholder(action.ActionTaken),
			Date:        catalog.Placeholder,
			Departments: catalog.Placeholder,
		}
		if action.ActionDate != "" {
			if d, err := time.Parse("2006-01-02", action.ActionDate); err == nil {
				av.Date = d.Format("02/01/2006")
			}
		}
		if len(action.Departments) > 0 {
			av.Departments = strings.Join(action.Departments, "، ")
		}
		// Only embeddable image payloads make it into the document; anything
		// else degrades to the placeholder.
		if strings.HasPrefix(action.Image, "data:image/") {
			av.HasImage = true
			av.Image = template.URL(action.Image)
		}
		view.Actions = append(view.Actions, av)
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render report html: %w", err)
	}
	return buf.String(), nil
}

func (r *reportRenderer) FooterHTML() string {
	return reportFooterHTML
}

// fontFace builds the @font-face rule pointing at the local report font, or
// nothing when the font file is absent.
func (r *reportRenderer) fontFace() template.CSS {
	if r.fontPath == "" {
		return ""
	}
	abs, err := filepath.Abs(r.fontPath)
	if err != nil {
		return ""
	}
	if _, err := os.Stat(abs); err != nil {
		return ""
	}
	fontURL := "file:///" + filepath.ToSlash(abs)
	return template.CSS(fmt.Sprintf(
		"@font-face{font-family:'Amiri';src:url('%s') format('truetype');font-weight:normal;font-style:normal;}",
		fontURL,
	))
}

func orPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return catalog.Placeholder
	}
	return v
}

var reportTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html lang="ar" dir="rtl">
  <head>
    <meta charset="utf-8" />
    <style>
      {{.FontFace}}
      *{ box-sizing:border-box; }
      body{
        font-family:'Amiri','Tahoma',sans-serif;
        direction:rtl; text-align:right; color:#111;
        margin:0; padding:18mm 12mm 22mm;
        background:#fff;
      }
      .header{
        display:flex; align-items:center; gap:12px; margin-bottom:12px;
        border:1px solid #1565c033; border-radius:12px; padding:10px 12px; background:#fff;
        box-shadow:0 2px 10px rgba(0,0,0,0.06);
      }
      .logo{ width:64px; height:auto; }
      .head-text{ flex:1; }
      .title{ font-size:18px; font-weight:700; color:#1565c0; margin-bottom:4px; }
      .meta{ font-size:12px; color:#333; display:grid; gap:2px; }

      .sec{ margin-top:14px; }
      .sec-title{
        display:inline-block;
        background:#1565c0; color:#fff; padding:6px 10px; border-radius:8px;
        font-size:13px; font-weight:700; margin-bottom:8px;
      }

      table.grid{ width:100%; border-collapse:collapse; margin-top:8px; table-layout:fixed; }
      table.grid th, table.grid td{
        border:1px solid #9eb6cf; padding:10px 12px; vertical-align:top; word-break:break-word; line-height:1.6; font-size:13px;
      }
      table.grid thead th{ background:#e3f2fd; color:#1565c0; text-align:center; font-weight:700; }
      table.grid tbody tr:nth-child(odd){ background:#fafcff; }
      td.time, td.ans, td.date { text-align:center; }
      td.q{ width:34%; } td.reason{ width:22%; } td.act{ width:16%; }

      table.grid td.img { padding:6px; }
      table.grid td.img img.thumb{
        display:block; width:100%; height:auto; max-width:100%;
        margin:4px auto; border:1px solid #e0e0e0; border-radius:8px; page-break-inside:avoid;
      }
      table.grid tr{ page-break-inside:avoid; }

      .tasks .task{
        border:1px solid #9eb6cf; padding:6px 8px; margin:6px 0; border-radius:8px; background:#fff;
      }
    </style>
  </head>
  <body>
    <div class="header">
      {{if .LogoURL}}<img src="{{.LogoURL}}" class="logo" />{{end}}
      <div class="head-text">
        <div class="title">تقرير السيرفاي اليومي</div>
        <div class="meta">
          <div>المستخدم: {{.Username}}</div>
          <div>تاريخ التقديم: {{.SubmittedAt}}</div>
        </div>
      </div>
    </div>
    {{range .Sections}}
    <div class="sec">
      <div class="sec-title">{{.Title}}</div>
      <table class="grid">
        <thead>
          <tr>
            <th class="q">السؤال</th>
            <th class="ans">الإجابة</th>
            <th class="time">وقت الملاحظة</th>
            <th class="reason">السبب</th>
            <th class="act">الإجراء</th>
          </tr>
        </thead>
        <tbody>
          {{range .Rows}}
          <tr>
            <td class="q">{{.Label}}</td>
            <td class="ans">{{.Answer}}</td>
            <td class="time">{{.Time}}</td>
            <td class="reason">{{.Reason}}</td>
            <td class="act">{{.Action}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
    </div>
    {{end}}
    {{if .CustomTasks}}
    <div class="sec">
      <div class="sec-title">{{.CustomTasksTitle}}</div>
      <div class="tasks">
        {{range .CustomTasks}}<div class="task">- {{.}}</div>{{end}}
      </div>
    </div>
    {{end}}
    {{if .Actions}}
    <div class="sec">
      <div class="sec-title">جدول الإجراءات (ملاحظات + صور)</div>
      <table class="grid">
        <colgroup>
          <col style="width:16%">
          <col style="width:36%">
          <col style="width:14%">
          <col style="width:20%">
          <col style="width:14%">
        </colgroup>
        <thead>
          <tr>
            <th class="img">الصورة</th>
            <th class="notes">الملاحظات</th>
            <th class="date">التاريخ</th>
            <th class="taken">الإجراء المتخذ</th>
            <th class="dept">الإدارة</th>
          </tr>
        </thead>
        <tbody>
          {{range .Actions}}
          <tr>
            <td class="img">{{if .HasImage}}<img class="thumb" src="{{.Image}}" />{{else}}-{{end}}</td>
            <td class="notes">{{.Notes}}</td>
            <td class="date">{{.Date}}</td>
            <td class="taken">{{.ActionTaken}}</td>
            <td class="dept">{{.Departments}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
    </div>
    {{end}}
  </body>
</html>`))

const reportFooterHTML = `
  <div dir="rtl" style="
      width:100%;
      font-size:10px;
      padding:6px 10px;
      color:#1565c0;
      border-top:1px solid #1565c033;
      display:flex; align-items:center; justify-content:space-between;">
    <div style="visibility:hidden">.</div>
    <div>تحت إدارة قسم الـ IT</div>
    <div><span class="pageNumber"></span> / <span class="totalPages"></span></div>
  </div>`
