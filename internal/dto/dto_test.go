package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/category-task-api/internal/models"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-10-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2026-10-20T18:00:00+09:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())

	_, err = ParseDate("next tuesday")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUpdateTaskRequest_DueDateStates(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		set      bool
		null     bool
		wantTime *time.Time
	}{
		{"absent", `{}`, false, false, nil},
		{"null", `{"dueDate":null}`, true, true, nil},
		{"empty string", `{"dueDate":""}`, true, true, nil},
		{"date", `{"dueDate":"2026-10-20"}`, true, false, ptr(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateTaskRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.set, req.DueDate.Set)
			assert.Equal(t, tt.null, req.DueDate.Null)
			assert.Equal(t, tt.wantTime, req.DueDate.Ptr())
		})
	}

	var req UpdateTaskRequest
	err := json.Unmarshal([]byte(`{"dueDate":"soon"}`), &req)
	assert.ErrorIs(t, err, ErrInvalidDate)

	err = json.Unmarshal([]byte(`{"dueDate":12}`), &req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCreateTaskRequest_CategoryRef(t *testing.T) {
	var req CreateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","categoryId":7}`), &req))
	assert.Equal(t, uint64(7), req.CategoryRef())

	req = CreateTaskRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","category":"9"}`), &req))
	assert.Equal(t, uint64(9), req.CategoryRef())

	req = CreateTaskRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x"}`), &req))
	assert.Zero(t, req.CategoryRef())

	err := json.Unmarshal([]byte(`{"category":"abc"}`), &req)
	assert.ErrorIs(t, err, ErrInvalidID)
	err = json.Unmarshal([]byte(`{"category":0}`), &req)
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestUpdateTaskRequest_CategoryRef(t *testing.T) {
	var req UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"completed":true}`), &req))
	_, ok := req.CategoryRef()
	assert.False(t, ok)
	require.NotNil(t, req.Completed)
	assert.True(t, *req.Completed)

	req = UpdateTaskRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"category":3}`), &req))
	id, ok := req.CategoryRef()
	assert.True(t, ok)
	assert.Equal(t, uint64(3), id)
}

func TestToTaskDTO(t *testing.T) {
	due := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	task := models.Task{
		ID:         4,
		Title:      "Ship spec",
		DueDate:    &due,
		Priority:   models.PriorityHigh,
		CategoryID: 2,
		UserID:     1,
		Category:   models.Category{ID: 2, Name: "Work"},
	}

	out := ToTaskDTO(task)
	require.NotNil(t, out.Category)
	assert.Equal(t, CategoryRef{ID: 2, Name: "Work"}, *out.Category)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "2026-10-20T00:00:00Z", body["dueDate"])
	assert.Equal(t, "High", body["priority"])
	assert.Equal(t, float64(2), body["categoryId"])

	task.Category = models.Category{}
	assert.Nil(t, ToTaskDTO(task).Category)
	assert.NotNil(t, ToTaskDTOs(nil))
	assert.NotNil(t, ToCategoryDTOs(nil))
}

func ptr(t time.Time) *time.Time { return &t }
