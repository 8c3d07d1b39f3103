package repository

import (
	"context"
	"fmt"

	"github.com/itdept/dutyreport/internal/model"
	"gorm.io/gorm"
)

// ResponseRepository persists complete submissions.
type ResponseRepository interface {
	// Create writes the header row plus all field and action rows in one
	// transaction and returns the newly assigned response id. On any insert
	// failure nothing is committed.
	Create(ctx context.Context, response *model.Response) (uint, error)
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) Create(ctx context.Context, response *model.Response) (uint, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// GORM creates the associated Fields and Actions rows with the header,
		// wiring ResponseID on each child.
		if err := tx.Create(response).Error; err != nil {
			return fmt.Errorf("insert response: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return response.ID, nil
}
