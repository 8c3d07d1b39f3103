package model

import (
	"time"

	"gorm.io/gorm"
)

// Response is the header row of one persisted daily report submission.
// Field and action rows hang off it and share its lifetime.
type Response struct {
	ID             uint             `gorm:"primarykey" json:"id"`
	Username       string           `json:"username" gorm:"not null;index"`
	SubmissionDate time.Time        `json:"submission_date" gorm:"not null"`
	Fields         []ResponseField  `json:"fields,omitempty" gorm:"foreignKey:ResponseID"`
	Actions        []ResponseAction `json:"actions,omitempty" gorm:"foreignKey:ResponseID"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
}
