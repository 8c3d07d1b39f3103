package form

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/itdept/dutyreport/internal/auth"
	"github.com/itdept/dutyreport/internal/catalog"
	"github.com/itdept/dutyreport/internal/dto"
)

var (
	// ErrDepartmentLimit is returned when a row already carries the maximum
	// number of department tags. The existing set is left untouched.
	ErrDepartmentLimit = errors.New("at most two departments per action row")
	// ErrUnknownDepartment is returned for tags outside the catalog.
	ErrUnknownDepartment = errors.New("unknown department")
	// ErrInvalidAnswer is returned for answer tokens other than yes/no/unset.
	ErrInvalidAnswer = errors.New("answer must be yes, no or empty")
	// ErrValidation is returned by BuildSubmission when required survey
	// questions are incomplete; the payload is never built in that case.
	ErrValidation = errors.New("survey validation failed")
)

// Answer is the in-form state of one survey question.
type Answer struct {
	Answer string
	Time   string
	Reason string
	Action string
}

// ActionRow is the in-form state of one remediation entry.
type ActionRow struct {
	Notes       string
	ActionTaken string
	ActionDate  string
	Image       string
	Departments []string
}

func blankAction() ActionRow {
	return ActionRow{Departments: []string{}}
}

// State owns one user's in-progress daily report: the survey answer set, the
// custom-task lines and the action-row list. It is created at login, mutated
// only through its methods, and torn down (Reset) at logout or after submit.
// The action-row list never shrinks below one row.
type State struct {
	user        auth.User
	answers     map[catalog.QuestionKey]*Answer
	customTasks [catalog.MaxCustomTasks]string
	actions     []ActionRow
}

// NewState builds the initial form for an authenticated user: every catalog
// question unset and a single blank action row.
func NewState(user auth.User) *State {
	s := &State{user: user}
	s.Reset()
	return s
}

// Reset restores the freshly-rendered form.
func (s *State) Reset() {
	s.answers = make(map[catalog.QuestionKey]*Answer, len(catalog.Questions()))
	for _, key := range catalog.Questions() {
		s.answers[key] = &Answer{}
	}
	s.customTasks = [catalog.MaxCustomTasks]string{}
	s.actions = []ActionRow{blankAction()}
}

// User returns the session owner.
func (s *State) User() auth.User {
	return s.user
}

/* ----- survey answers ----- */

// SetAnswer records the yes/no/unset choice for a question and clears the
// follow-up fields the new choice makes irrelevant, exactly as the form does
// on an answer change.
func (s *State) SetAnswer(key catalog.QuestionKey, value string) error {
	a, err := s.answer(key)
	if err != nil {
		return err
	}

	switch value {
	case catalog.AnswerYes:
		a.Reason = ""
		a.Action = ""
	case catalog.AnswerNo:
		a.Time = ""
	case "":
		a.Time = ""
		a.Reason = ""
		a.Action = ""
	default:
		return ErrInvalidAnswer
	}
	a.Answer = value
	return nil
}

// SetTime records the observation time for a yes answer.
func (s *State) SetTime(key catalog.QuestionKey, value string) error {
	a, err := s.answer(key)
	if err != nil {
		return err
	}
	a.Time = value
	return nil
}

// SetReason records why a no answer happened.
func (s *State) SetReason(key catalog.QuestionKey, value string) error {
	a, err := s.answer(key)
	if err != nil {
		return err
	}
	a.Reason = value
	return nil
}

// SetFollowUpAction records what was done about a no answer.
func (s *State) SetFollowUpAction(key catalog.QuestionKey, value string) error {
	a, err := s.answer(key)
	if err != nil {
		return err
	}
	a.Action = value
	return nil
}

// Answer returns a copy of the current state of one question.
func (s *State) Answer(key catalog.QuestionKey) (Answer, bool) {
	a, ok := s.answers[key]
	if !ok {
		return Answer{}, false
	}
	return *a, true
}

func (s *State) answer(key catalog.QuestionKey) (*Answer, error) {
	a, ok := s.answers[key]
	if !ok {
		return nil, fmt.Errorf("unknown question key %q", key)
	}
	return a, nil
}

/* ----- custom tasks ----- */

// SetCustomTask sets one of the fixed free-text follow-up lines.
func (s *State) SetCustomTask(index int, value string) error {
	if index < 0 || index >= catalog.MaxCustomTasks {
		return fmt.Errorf("custom task index %d out of range", index)
	}
	s.customTasks[index] = value
	return nil
}

// CustomTasks returns the non-empty task lines in order.
func (s *State) CustomTasks() []string {
	tasks := []string{}
	for _, t := range s.customTasks {
		if v := strings.TrimSpace(t); v != "" {
			tasks = append(tasks, v)
		}
	}
	return tasks
}

/* ----- action rows ----- */

// AddRow appends a blank action row.
func (s *State) AddRow() {
	s.actions = append(s.actions, blankAction())
}

// RemoveRow pops the last action row. When only one row remains its fields are
// cleared instead, so the table never drops below one row; the return value
// reports whether a clear happened in place of a removal.
func (s *State) RemoveRow() (cleared bool) {
	if len(s.actions) <= 1 {
		s.actions[0] = blankAction()
		return true
	}
	s.actions = s.actions[:len(s.actions)-1]
	return false
}

// RowCount returns the current number of action rows.
func (s *State) RowCount() int {
	return len(s.actions)
}

// Rows returns a deep copy of the action rows.
func (s *State) Rows() []ActionRow {
	rows := make([]ActionRow, len(s.actions))
	for i, a := range s.actions {
		rows[i] = a
		rows[i].Departments = append([]string{}, a.Departments...)
	}
	return rows
}

// SetNotes updates a row's notes field.
func (s *State) SetNotes(index int, value string) error {
	row, err := s.row(index)
	if err != nil {
		return err
	}
	row.Notes = value
	return nil
}

// SetActionTaken updates a row's action-taken field.
func (s *State) SetActionTaken(index int, value string) error {
	row, err := s.row(index)
	if err != nil {
		return err
	}
	row.ActionTaken = value
	return nil
}

// SetActionDate updates a row's optional yyyy-mm-dd date.
func (s *State) SetActionDate(index int, value string) error {
	row, err := s.row(index)
	if err != nil {
		return err
	}
	if value != "" {
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return fmt.Errorf("invalid action date %q: %w", value, err)
		}
	}
	row.ActionDate = value
	return nil
}

// ToggleDepartment adds or removes a department tag on a row. Adding past the
// cap fails with ErrDepartmentLimit and leaves the set unchanged; removal is
// unconditional.
func (s *State) ToggleDepartment(index int, dept string) error {
	row, err := s.row(index)
	if err != nil {
		return err
	}
	if !catalog.IsDepartment(dept) {
		return ErrUnknownDepartment
	}

	for i, d := range row.Departments {
		if d == dept {
			row.Departments = append(row.Departments[:i], row.Departments[i+1:]...)
			return nil
		}
	}
	if len(row.Departments) >= catalog.MaxDepartments {
		return ErrDepartmentLimit
	}
	row.Departments = append(row.Departments, dept)
	return nil
}

// SetImage stores an uploaded image as an embeddable data URL.
func (s *State) SetImage(index int, data []byte, mimeType string) error {
	row, err := s.row(index)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		row.Image = ""
		return nil
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return fmt.Errorf("unsupported image type %q", mimeType)
	}
	row.Image = "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
	return nil
}

// DeptButtonLabel is the visible label of a row's department selector.
func (s *State) DeptButtonLabel(index int) string {
	row, err := s.row(index)
	if err != nil {
		return ""
	}
	if len(row.Departments) == 0 {
		return fmt.Sprintf("اختر الإدارة (0/%d)", catalog.MaxDepartments)
	}
	return fmt.Sprintf("الإدارات (%d/%d)", len(row.Departments), catalog.MaxDepartments)
}

// DeptChips returns the selected department tags of a row in selection order.
func (s *State) DeptChips(index int) []string {
	row, err := s.row(index)
	if err != nil {
		return nil
	}
	return append([]string{}, row.Departments...)
}

func (s *State) row(index int) (*ActionRow, error) {
	if index < 0 || index >= len(s.actions) {
		return nil, fmt.Errorf("action row index %d out of range", index)
	}
	return &s.actions[index], nil
}

/* ----- submission ----- */

// BuildSubmission flattens the form into the wire payload. It refuses to
// build anything while validation fails, so an invalid form can never reach
// the network.
func (s *State) BuildSubmission(now time.Time) (*dto.SaveResponseRequest, error) {
	if errs := s.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %d field(s) incomplete", ErrValidation, len(errs))
	}

	answers := &dto.AnswerSet{
		Questions:   make(map[catalog.QuestionKey]dto.SurveyAnswer, len(s.answers)),
		CustomTasks: s.CustomTasks(),
		Actions:     make([]dto.ActionRow, 0, len(s.actions)),
	}
	for key, a := range s.answers {
		answers.Questions[key] = dto.SurveyAnswer{
			Answer: a.Answer,
			Time:   a.Time,
			Reason: a.Reason,
			Action: a.Action,
		}
	}
	for _, row := range s.Rows() {
		answers.Actions = append(answers.Actions, dto.ActionRow{
			Notes:       row.Notes,
			ActionTaken: row.ActionTaken,
			ActionDate:  row.ActionDate,
			Image:       row.Image,
			Departments: row.Departments,
		})
	}

	name := s.user.Name
	if name == "" {
		name = s.user.Username
	}
	return &dto.SaveResponseRequest{
		Username:  s.user.Username,
		Name:      name,
		Timestamp: &now,
		Answers:   answers,
	}, nil
}
