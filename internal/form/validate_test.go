package form

import (
	"testing"

	"github.com/itdept/dutyreport/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AllUnsetFailsEveryQuestion(t *testing.T) {
	s := newTestState()

	errs := s.Validate()
	require.Len(t, errs, len(catalog.Questions()))
	for _, e := range errs {
		assert.Equal(t, MissingAnswer, e.Kind)
	}
	assert.Contains(t, errs, FieldError{"ans-attendance_all", MissingAnswer})
}

func TestValidate_YesRequiresTime(t *testing.T) {
	s := newTestState()
	fillValid(t, s)

	require.NoError(t, s.SetTime(catalog.WarehouseClean, ""))

	errs := s.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, FieldError{"time-warehouse_clean", MissingTime}, errs[0])
}

func TestValidate_NoRequiresReasonAndActionIndependently(t *testing.T) {
	s := newTestState()
	fillValid(t, s)
	key := catalog.CafeteriaReady

	require.NoError(t, s.SetAnswer(key, catalog.AnswerNo))

	t.Run("both missing reported separately", func(t *testing.T) {
		errs := s.Validate()
		assert.Contains(t, errs, FieldError{"reason-cafeteria_ready", MissingReason})
		assert.Contains(t, errs, FieldError{"action-cafeteria_ready", MissingAction})
		assert.Len(t, errs, 2)
	})

	t.Run("reason alone clears its error only", func(t *testing.T) {
		require.NoError(t, s.SetReason(key, "عطل في التجهيز"))
		errs := s.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, FieldError{"action-cafeteria_ready", MissingAction}, errs[0])
	})

	t.Run("both present passes", func(t *testing.T) {
		require.NoError(t, s.SetFollowUpAction(key, "تم الإصلاح"))
		assert.Empty(t, s.Validate())
	})
}

// Submission is blocked iff at least one question is unset, yes without time,
// or no without reason or action; action rows and custom tasks never block.
func TestValidate_BlockedIffProperty(t *testing.T) {
	s := newTestState()
	fillValid(t, s)
	assert.Empty(t, s.Validate())

	// Action rows and custom tasks are never validated.
	require.NoError(t, s.SetNotes(0, ""))
	require.NoError(t, s.SetCustomTask(0, ""))
	assert.Empty(t, s.Validate())

	require.NoError(t, s.SetAnswer(catalog.LeavingOnTime, ""))
	assert.NotEmpty(t, s.Validate())
}
