package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/itdept/dutyreport/config"
	"github.com/itdept/dutyreport/internal/catalog"
	"github.com/itdept/dutyreport/internal/dto"
	"github.com/itdept/dutyreport/internal/model"
	"github.com/itdept/dutyreport/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// ErrMissingAnswers marks a request without an answers object; the controller
// maps it to 400.
var ErrMissingAnswers = errors.New("missing answers")

// SubmissionService runs the whole pipeline for one submission: transactional
// persistence, report rendering, PDF printing and mail dispatch, strictly in
// that order. Any failure aborts the remaining steps and fails the request;
// a failure after the commit leaves the persisted rows in place and is logged
// with the response id so the report can be re-sent by hand.
type SubmissionService interface {
	Save(ctx context.Context, req *dto.SaveResponseRequest) (*dto.SaveResponseResult, error)
}

type submissionService struct {
	repo     repository.ResponseRepository
	renderer ReportRenderer
	pdf      PDFGenerator
	mailer   Mailer
	pdfDir   string
}

func NewSubmissionService(
	repo repository.ResponseRepository,
	renderer ReportRenderer,
	pdf PDFGenerator,
	mailer Mailer,
	cfg *config.Config,
) SubmissionService {
	return &submissionService{
		repo:     repo,
		renderer: renderer,
		pdf:      pdf,
		mailer:   mailer,
		pdfDir:   cfg.Report.PDFDir,
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

func (s *submissionService) Save(ctx context.Context, req *dto.SaveResponseRequest) (*dto.SaveResponseResult, error) {
	if req.Answers == nil {
		return nil, ErrMissingAnswers
	}

	username := req.Username
	if username == "" {
		username = "unknown"
	}
	displayName := req.Name
	if displayName == "" {
		displayName = username
	}
	submissionDate := time.Now()
	if req.Timestamp != nil {
		submissionDate = *req.Timestamp
	}

	response, err := buildResponseModel(username, submissionDate, req.Answers)
	if err != nil {
		return nil, fmt.Errorf("build response rows: %w", err)
	}

	responseID, err := s.repo.Create(ctx, response)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Save: persisting submission failed")
		return nil, fmt.Errorf("persist submission: %w", err)
	}
	// Committed. Everything below can still fail the request, but the data
	// survives; keep the id visible for manual recovery.
	log.Info().Uint("responseID", responseID).Str("username", username).Msg("Save: submission persisted")

	fileName := buildFileName(responseID, submissionDate, username)
	filePath := filepath.Join(s.pdfDir, fileName)

	html, err := s.renderer.RenderHTML(ReportData{
		ResponseID:  responseID,
		Username:    username,
		SubmittedAt: submissionDate,
		Answers:     req.Answers.Questions,
		CustomTasks: req.Answers.CustomTasks,
		Actions:     req.Answers.Actions,
	})
	if err != nil {
		log.Error().Err(err).Uint("responseID", responseID).Msg("Save: report rendering failed after commit")
		return nil, fmt.Errorf("render report: %w", err)
	}

	if err := s.pdf.Generate(ctx, html, s.renderer.FooterHTML(), filePath); err != nil {
		log.Error().Err(err).Uint("responseID", responseID).Msg("Save: pdf generation failed after commit")
		return nil, fmt.Errorf("generate pdf: %w", err)
	}

	err = s.mailer.SendReport(ReportMail{
		ResponseID:    responseID,
		DisplayName:   displayName,
		Username:      username,
		FormattedDate: submissionDate.Format("02/01/2006"),
		FormattedTime: submissionDate.Format("15:04"),
		ActionCount:   len(req.Answers.Actions),
		FileName:      fileName,
		FilePath:      filePath,
	})
	if err != nil {
		log.Error().Err(err).Uint("responseID", responseID).Str("file", fileName).
			Msg("Save: mail dispatch failed after commit; report file kept")
		return nil, fmt.Errorf("send mail: %w", err)
	}

	log.Info().Uint("responseID", responseID).Str("file", fileName).Msg("Save: response saved and emailed")
	return &dto.SaveResponseResult{
		Message:    "Response saved and emailed",
		ResponseID: responseID,
		FileName:   fileName,
	}, nil
}

// buildFileName derives the deterministic report name:
// "Response {id} - {dd-mm-yyyy} - {hh-mm} - {username}.pdf".
func buildFileName(responseID uint, submissionDate time.Time, username string) string {
	safeUsername := whitespaceRun.ReplaceAllString(username, "_")
	return fmt.Sprintf("Response %d - %s - %s - %s.pdf",
		responseID,
		submissionDate.Format("02-01-2006"),
		submissionDate.Format("15-04"),
		safeUsername,
	)
}

// buildResponseModel flattens the answer set into the persisted row shapes.
// Field rows are written in catalog order from the typed question set, so a
// key outside the catalog never reaches the generic field table; the actions
// list goes through its dedicated rows instead.
func buildResponseModel(username string, submissionDate time.Time, answers *dto.AnswerSet) (*model.Response, error) {
	response := &model.Response{
		Username:       username,
		SubmissionDate: submissionDate,
	}

	matched := 0
	for _, key := range catalog.Questions() {
		answer, ok := answers.Questions[key]
		if !ok {
			continue
		}
		matched++
		value, err := json.Marshal(answer)
		if err != nil {
			return nil, fmt.Errorf("encode answer %s: %w", key, err)
		}
		response.Fields = append(response.Fields, model.ResponseField{
			FieldName:  string(key),
			FieldValue: datatypes.JSON(value),
		})
	}
	if matched != len(answers.Questions) {
		for key := range answers.Questions {
			if !catalog.IsQuestion(key) {
				log.Warn().Str("key", string(key)).Msg("buildResponseModel: dropping answer outside the question catalog")
			}
		}
	}

	customTasks := answers.CustomTasks
	if customTasks == nil {
		customTasks = []string{}
	}
	tasksValue, err := json.Marshal(customTasks)
	if err != nil {
		return nil, fmt.Errorf("encode custom tasks: %w", err)
	}
	response.Fields = append(response.Fields, model.ResponseField{
		FieldName:  "custom_tasks",
		FieldValue: datatypes.JSON(tasksValue),
	})

	for i, action := range answers.Actions {
		departments := action.Departments
		if departments == nil {
			departments = []string{}
		}
		deptValue, err := json.Marshal(departments)
		if err != nil {
			return nil, fmt.Errorf("encode departments of action %d: %w", i, err)
		}

		row := model.ResponseAction{
			Notes:       action.Notes,
			ActionTaken: action.ActionTaken,
			Departments: datatypes.JSON(deptValue),
			ImageBase64: action.Image,
		}
		if action.ActionDate != "" {
			date, err := time.Parse("2006-01-02", action.ActionDate)
			if err != nil {
				return nil, fmt.Errorf("parse date of action %d: %w", i, err)
			}
			row.ActionDate = &date
		}
		response.Actions = append(response.Actions, row)
	}

	return response, nil
}
