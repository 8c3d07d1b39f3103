package dto

import (
	"encoding/json"
	"testing"

	"github.com/itdept/dutyreport/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The answers envelope carries per-question objects next to the custom_tasks
// and actions lists; the codec has to split and rejoin them losslessly.
func TestAnswerSet_WireCodec(t *testing.T) {
	wire := `{
		"attendance_all": {"answer":"no","time":"","reason":"نقص عمالة","action":"تم التبليغ"},
		"warehouse_clean": {"answer":"yes","time":"08:00","reason":"","action":""},
		"custom_tasks": ["متابعة الصيانة"],
		"actions": [
			{"notes":"تسريب","action_taken":"إبلاغ الصيانة","actionDate":"2026-08-28",
			 "departments":["الإنتاج","التشغيل"]}
		]
	}`

	var set AnswerSet
	require.NoError(t, json.Unmarshal([]byte(wire), &set))

	assert.Len(t, set.Questions, 2)
	assert.Equal(t, "نقص عمالة", set.Questions[catalog.AttendanceAll].Reason)
	assert.Equal(t, "08:00", set.Questions[catalog.WarehouseClean].Time)
	assert.Equal(t, []string{"متابعة الصيانة"}, set.CustomTasks)
	require.Len(t, set.Actions, 1)
	// Department order is preserved through the codec.
	assert.Equal(t, []string{"الإنتاج", "التشغيل"}, set.Actions[0].Departments)

	out, err := json.Marshal(set)
	require.NoError(t, err)

	var roundTrip AnswerSet
	require.NoError(t, json.Unmarshal(out, &roundTrip))
	assert.Equal(t, set, roundTrip)
}

func TestAnswerSet_MarshalAlwaysEmitsLists(t *testing.T) {
	out, err := json.Marshal(AnswerSet{})
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.JSONEq(t, `[]`, string(raw["custom_tasks"]))
	assert.JSONEq(t, `[]`, string(raw["actions"]))
}
