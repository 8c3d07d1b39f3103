package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResponseAction is one remediation entry of a submission. Departments hold a
// JSON array of at most two catalog tags; ActionDate is NULL when the form
// left it empty. ImageBase64 carries the embeddable data URL as uploaded.
type ResponseAction struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	ResponseID  uint           `json:"response_id" gorm:"not null;index"`
	Notes       string         `json:"notes" gorm:"type:text"`
	ActionTaken string         `json:"action_taken" gorm:"type:text"`
	ActionDate  *time.Time     `json:"action_date,omitempty"`
	Departments datatypes.JSON `json:"departments" gorm:"type:jsonb"`
	ImageBase64 string         `json:"image_base64,omitempty" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
