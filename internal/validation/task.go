package validation

import (
	"time"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
)

var taskSchema = schema{
	fields: []string{"titulo", "descricao", "status", "dataLimite", "dataConclusao", "usuario"},
	messages: map[string]string{
		"titulo.required":     "Título é obrigatório",
		"titulo.min":          "Título deve ter pelo menos 3 caracteres",
		"titulo.max":          "Título deve ter no máximo 100 caracteres",
		"descricao.max":       "Descrição deve ter no máximo 500 caracteres",
		"status.required":     "Status é obrigatório",
		"status.taskstatus":   "Status deve ser um dos seguintes: Pendente, Em Progresso, Concluída, Abandonada, Atrasada",
		"dataLimite.required": "Data limite é obrigatória",
		"dataLimite.future":   "Data limite deve ser uma data futura",
		"usuario.required":    "ID do usuário é obrigatório",
		"usuario.objectid":    "ID do usuário deve ser um ObjectId válido",
	},
}

type taskCreateInput struct {
	Title       *string    `json:"titulo" validate:"required,min=3,max=100"`
	Description *string    `json:"descricao" validate:"omitempty,max=500"`
	Status      *string    `json:"status" validate:"required,taskstatus"`
	DueDate     *time.Time `json:"dataLimite" validate:"required,future"`
	CompletedAt *time.Time `json:"dataConclusao"`
	OwnerID     *string    `json:"usuario" validate:"required,objectid"`
}

// The due date is only required to be in the future at creation.
type taskUpdateInput struct {
	Title       *string    `json:"titulo" validate:"omitempty,min=3,max=100"`
	Description *string    `json:"descricao" validate:"omitempty,max=500"`
	Status      *string    `json:"status" validate:"omitempty,taskstatus"`
	DueDate     *time.Time `json:"dataLimite"`
	CompletedAt *time.Time `json:"dataConclusao"`
	OwnerID     *string    `json:"usuario" validate:"omitempty,objectid"`
}

// TaskCreate validates a task creation payload and returns the task it
// describes. Identifier and timestamps are left for the store to assign.
func (v *Validator) TaskCreate(raw map[string]any) (*domain.Task, error) {
	c := newCoercer(raw)
	in := taskCreateInput{
		Title:       c.str("titulo"),
		Description: c.str("descricao"),
		Status:      c.str("status"),
		OwnerID:     c.str("usuario"),
	}
	in.DueDate, _ = c.date("dataLimite", false)
	in.CompletedAt, _ = c.date("dataConclusao", true)

	if err := fail(v.run(taskSchema, &in, c)); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:       *in.Title,
		Status:      domain.TaskStatus(*in.Status),
		DueDate:     *in.DueDate,
		CompletedAt: in.CompletedAt,
		OwnerID:     *in.OwnerID,
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	return task, nil
}

// TaskUpdate validates a partial task update. Only the fields present in raw
// end up in the patch; a null completion date clears it.
func (v *Validator) TaskUpdate(raw map[string]any) (domain.TaskPatch, error) {
	c := newCoercer(raw)
	in := taskUpdateInput{
		Title:       c.str("titulo"),
		Description: c.str("descricao"),
		Status:      c.str("status"),
		OwnerID:     c.str("usuario"),
	}
	in.DueDate, _ = c.date("dataLimite", false)
	var clearCompleted bool
	in.CompletedAt, clearCompleted = c.date("dataConclusao", true)

	if err := fail(v.run(taskSchema, &in, c)); err != nil {
		return domain.TaskPatch{}, err
	}

	patch := domain.TaskPatch{
		Title:            in.Title,
		Description:      in.Description,
		DueDate:          in.DueDate,
		CompletedAt:      in.CompletedAt,
		ClearCompletedAt: clearCompleted,
		OwnerID:          in.OwnerID,
	}
	if in.Status != nil {
		s := domain.TaskStatus(*in.Status)
		patch.Status = &s
	}
	return patch, nil
}

// DueDate validates the due-date path parameter of the due-date lookup.
func (v *Validator) DueDate(raw string) (time.Time, error) {
	t, ok := ParseDate(raw)
	if !ok {
		return time.Time{}, domain.NewValidationError(ValidationFailedMessage,
			domain.FieldError{Field: "dataLimite", Message: "Data inválida"})
	}
	return t, nil
}
