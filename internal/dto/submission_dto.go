package dto

import (
	"encoding/json"
	"time"

	"github.com/itdept/dutyreport/internal/catalog"
)

// SurveyAnswer is one yes/no question with its conditional follow-up detail.
// Exactly one of time (answer=yes) or reason+action (answer=no) is meaningful;
// the form clears the irrelevant side before submitting.
type SurveyAnswer struct {
	Answer string `json:"answer"`
	Time   string `json:"time"`
	Reason string `json:"reason"`
	Action string `json:"action"`
}

// ActionRow is one remediation entry. ActionDate is the form's yyyy-mm-dd
// string (empty when unset); Image is an embeddable data URL.
type ActionRow struct {
	Notes       string   `json:"notes"`
	ActionTaken string   `json:"action_taken"`
	ActionDate  string   `json:"actionDate"`
	Image       string   `json:"image,omitempty"`
	Departments []string `json:"departments"`
}

// AnswerSet mirrors the front end's answers object, where the custom_tasks and
// actions lists ride inside the same JSON object as the per-question answers.
// The custom codec keeps that wire shape while the Go side stays typed.
type AnswerSet struct {
	Questions   map[catalog.QuestionKey]SurveyAnswer
	CustomTasks []string
	Actions     []ActionRow
}

func (s *AnswerSet) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Questions = make(map[catalog.QuestionKey]SurveyAnswer, len(raw))
	for key, value := range raw {
		switch key {
		case "custom_tasks":
			if err := json.Unmarshal(value, &s.CustomTasks); err != nil {
				return err
			}
		case "actions":
			if err := json.Unmarshal(value, &s.Actions); err != nil {
				return err
			}
		default:
			var answer SurveyAnswer
			if err := json.Unmarshal(value, &answer); err != nil {
				return err
			}
			s.Questions[catalog.QuestionKey(key)] = answer
		}
	}
	return nil
}

func (s AnswerSet) MarshalJSON() ([]byte, error) {
	raw := make(map[string]any, len(s.Questions)+2)
	for key, answer := range s.Questions {
		raw[string(key)] = answer
	}
	if s.CustomTasks == nil {
		raw["custom_tasks"] = []string{}
	} else {
		raw["custom_tasks"] = s.CustomTasks
	}
	if s.Actions == nil {
		raw["actions"] = []ActionRow{}
	} else {
		raw["actions"] = s.Actions
	}
	return json.Marshal(raw)
}

// SaveResponseRequest is the body of POST /save-response.
type SaveResponseRequest struct {
	Username  string     `json:"username"`
	Name      string     `json:"name,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Answers   *AnswerSet `json:"answers"`
}

// SaveResponseResult is the success body of POST /save-response.
type SaveResponseResult struct {
	Message    string `json:"message"`
	ResponseID uint   `json:"responseId"`
	FileName   string `json:"fileName"`
}
