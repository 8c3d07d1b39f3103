package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResponseField stores one survey answer (or the custom_tasks list) as a
// JSON-encoded value keyed by its catalog field name. The actions key never
// goes through this table; action rows have their own dedicated shape.
type ResponseField struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	ResponseID uint           `json:"response_id" gorm:"not null;index"`
	FieldName  string         `json:"field_name" gorm:"not null"`
	FieldValue datatypes.JSON `json:"field_value" gorm:"type:jsonb"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
