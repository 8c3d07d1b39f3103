package form

import (
	"fmt"

	"github.com/itdept/dutyreport/internal/catalog"
)

// ErrorKind classifies a single validation failure.
type ErrorKind string

const (
	MissingAnswer ErrorKind = "missing_answer"
	MissingTime   ErrorKind = "missing_time"
	MissingReason ErrorKind = "missing_reason"
	MissingAction ErrorKind = "missing_action"
)

// FieldError points the presentation layer at one failing input. FieldID uses
// the form's element-id convention (ans-/time-/reason-/action- plus the
// question key); rendering the marker is the caller's concern.
type FieldError struct {
	FieldID string
	Kind    ErrorKind
}

// Validate walks every catalog question once and returns every failure.
// A question fails with MissingAnswer when unset, MissingTime when answered
// yes without a time, and MissingReason/MissingAction independently when
// answered no with the corresponding field empty, so both can be reported for
// the same question. Action rows and custom tasks are optional and never
// validated. An empty result means the submission may proceed.
func (s *State) Validate() []FieldError {
	var errs []FieldError
	for _, key := range catalog.Questions() {
		a := s.answers[key]
		switch a.Answer {
		case "":
			errs = append(errs, FieldError{fmt.Sprintf("ans-%s", key), MissingAnswer})
		case catalog.AnswerYes:
			if a.Time == "" {
				errs = append(errs, FieldError{fmt.Sprintf("time-%s", key), MissingTime})
			}
		case catalog.AnswerNo:
			if a.Reason == "" {
				errs = append(errs, FieldError{fmt.Sprintf("reason-%s", key), MissingReason})
			}
			if a.Action == "" {
				errs = append(errs, FieldError{fmt.Sprintf("action-%s", key), MissingAction})
			}
		}
	}
	return errs
}
