package domain

import (
	"time"
)

// TaskStatus is the lifecycle label of a task. Any status may replace any other.
type TaskStatus string

// Task status values, as they appear on the wire and in storage.
const (
	TaskStatusPending    TaskStatus = "Pendente"
	TaskStatusInProgress TaskStatus = "Em Progresso"
	TaskStatusCompleted  TaskStatus = "Concluída"
	TaskStatusAbandoned  TaskStatus = "Abandonada"
	TaskStatusOverdue    TaskStatus = "Atrasada"
)

var taskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusAbandoned,
	TaskStatusOverdue,
}

// TaskStatuses returns every valid task status in declaration order.
func TaskStatuses() []TaskStatus {
	out := make([]TaskStatus, len(taskStatuses))
	copy(out, taskStatuses)
	return out
}

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	for _, v := range taskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Task is a unit of work owned by a user.
type Task struct {
	ID          string     `json:"_id"`
	Title       string     `json:"titulo"`
	Description string     `json:"descricao,omitempty"`
	Status      TaskStatus `json:"status"`
	DueDate     time.Time  `json:"dataLimite"`
	CompletedAt *time.Time `json:"dataConclusao"`
	OwnerID     string     `json:"usuario"`
	CreatedAt   time.Time  `json:"data_criacao"`
	UpdatedAt   time.Time  `json:"data_ultima_atualizacao"`
}

// TaskPatch carries the fields of a partial task update. Nil pointers are left
// untouched; ClearCompletedAt removes the completion date.
type TaskPatch struct {
	Title            *string
	Description      *string
	Status           *TaskStatus
	DueDate          *time.Time
	CompletedAt      *time.Time
	ClearCompletedAt bool
	OwnerID          *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.DueDate == nil && p.CompletedAt == nil && !p.ClearCompletedAt &&
		p.OwnerID == nil
}

// Apply writes the patch onto t and stamps UpdatedAt with now.
func (p TaskPatch) Apply(t *Task, now time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.ClearCompletedAt {
		t.CompletedAt = nil
	} else if p.CompletedAt != nil {
		c := *p.CompletedAt
		t.CompletedAt = &c
	}
	if p.OwnerID != nil {
		t.OwnerID = *p.OwnerID
	}
	t.UpdatedAt = now
}
