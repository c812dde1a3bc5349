package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStatusValid(t *testing.T) {
	tests := []struct {
		status TaskStatus
		want   bool
	}{
		{TaskStatusPending, true},
		{TaskStatusInProgress, true},
		{TaskStatusCompleted, true},
		{TaskStatusAbandoned, true},
		{TaskStatusOverdue, true},
		{"", false},
		{"pendente", false},
		{"NotARealStatus", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Valid())
		})
	}
}

func TestTaskStatusesReturnsCopy(t *testing.T) {
	s := TaskStatuses()
	require.Len(t, s, 5)
	s[0] = "mutated"
	assert.Equal(t, TaskStatusPending, TaskStatuses()[0])
}

func TestTaskJSONShape(t *testing.T) {
	due := time.Date(2031, 5, 1, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:      NewID(),
		Title:   "Buy milk",
		Status:  TaskStatusPending,
		DueDate: due,
		OwnerID: NewID(),
	}

	raw, err := json.Marshal(task)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "Buy milk", decoded["titulo"])
	assert.Equal(t, "Pendente", decoded["status"])
	assert.Equal(t, "2031-05-01T12:00:00Z", decoded["dataLimite"])
	assert.Contains(t, decoded, "dataConclusao")
	assert.Nil(t, decoded["dataConclusao"])
	assert.NotContains(t, decoded, "descricao")
	assert.Contains(t, decoded, "_id")
	assert.Contains(t, decoded, "usuario")
	assert.Contains(t, decoded, "data_criacao")
	assert.Contains(t, decoded, "data_ultima_atualizacao")
}

func TestTaskPatchApply(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	done := now.Add(-time.Hour)

	t.Run("sets fields and completion date", func(t *testing.T) {
		task := Task{Title: "a title", Status: TaskStatusPending}
		title := "new title"
		status := TaskStatusCompleted
		TaskPatch{Title: &title, Status: &status, CompletedAt: &done}.Apply(&task, now)

		assert.Equal(t, "new title", task.Title)
		assert.Equal(t, TaskStatusCompleted, task.Status)
		require.NotNil(t, task.CompletedAt)
		assert.True(t, task.CompletedAt.Equal(done))
		assert.Equal(t, now, task.UpdatedAt)
	})

	t.Run("clears completion date", func(t *testing.T) {
		task := Task{CompletedAt: &done}
		TaskPatch{ClearCompletedAt: true}.Apply(&task, now)
		assert.Nil(t, task.CompletedAt)
	})

	t.Run("empty patch", func(t *testing.T) {
		assert.True(t, TaskPatch{}.IsEmpty())
		assert.False(t, TaskPatch{ClearCompletedAt: true}.IsEmpty())
	})
}
