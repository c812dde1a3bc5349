package validation

import (
	"net/url"
	"time"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
)

// Pagination and sort defaults shared by every list endpoint.
const (
	DefaultPage      = 1
	DefaultLimit     = 10
	MaxLimit         = 100
	SortAscending    = "asc"
	SortDescending   = "desc"
	DefaultSortOrder = SortDescending
)

// Sort allow-lists.
var (
	TaskSortFields = []string{"titulo", "status", "dataLimite", "dataConclusao", "data_criacao", "data_ultima_atualizacao"}
	UserSortFields = []string{"nome", "apelido", "email", "createdAt", "updatedAt"}
)

const (
	defaultTaskSort = "data_criacao"
	defaultUserSort = "createdAt"
)

// DateRange is an inclusive range; a nil bound is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.From == nil && r.To == nil
}

// Pagination is the validated page/sort part of a list query.
type Pagination struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// TaskQuery is a validated task list query.
type TaskQuery struct {
	Title          *string
	Description    *string
	Status         *domain.TaskStatus
	OwnerID        *string
	DueDate        DateRange
	CreatedAt      DateRange
	CompletedAt    DateRange
	HasCompletedAt *bool
	Pagination
}

// UserQuery is a validated user list query.
type UserQuery struct {
	Name      *string
	Handle    *string
	Email     *string
	Status    *domain.UserStatus
	ID        *string
	CreatedAt DateRange
	UpdatedAt DateRange
	Pagination
}

var taskQuerySchema = schema{
	fields: []string{
		"titulo", "descricao", "status", "usuario",
		"dataLimiteInicio", "dataLimiteFim",
		"dataCriacaoInicio", "dataCriacaoFim",
		"comDataConclusao", "dataConclusaoInicio", "dataConclusaoFim",
		"page", "limit", "sortBy", "sortOrder",
	},
	messages: map[string]string{
		"status.taskstatus": "Status deve ser um dos seguintes: Pendente, Em Progresso, Concluída, Abandonada, Atrasada",
		"usuario.objectid":  "ID de usuário inválido",
		"page.min":          "Página deve ser maior ou igual a 1",
		"limit.min":         "Limite deve ser maior ou igual a 1",
		"limit.max":         "Limite deve ser no máximo 100",
		"sortBy.oneof":      "Campo de ordenação deve ser um dos seguintes: titulo, status, dataLimite, dataConclusao, data_criacao, data_ultima_atualizacao",
		"sortOrder.oneof":   "Ordem deve ser asc ou desc",
	},
}

var userQuerySchema = schema{
	fields: []string{
		"nome", "apelido", "email", "status", "id",
		"dataCadastroInicio", "dataCadastroFim",
		"dataAtualizacaoInicio", "dataAtualizacaoFim",
		"page", "limit", "sortBy", "sortOrder",
	},
	messages: map[string]string{
		"status.userstatus": "Status deve ser um dos seguintes: Ativo, Inativo, Banido",
		"id.objectid":       "ID de usuário inválido",
		"page.min":          "Página deve ser maior ou igual a 1",
		"limit.min":         "Limite deve ser maior ou igual a 1",
		"limit.max":         "Limite deve ser no máximo 100",
		"sortBy.oneof":      "Campo de ordenação deve ser um dos seguintes: nome, apelido, email, createdAt, updatedAt",
		"sortOrder.oneof":   "Ordem deve ser asc ou desc",
	},
}

type taskQueryInput struct {
	Title          *string    `json:"titulo"`
	Description    *string    `json:"descricao"`
	Status         *string    `json:"status" validate:"omitempty,taskstatus"`
	OwnerID        *string    `json:"usuario" validate:"omitempty,objectid"`
	DueDateFrom    *time.Time `json:"dataLimiteInicio"`
	DueDateTo      *time.Time `json:"dataLimiteFim"`
	CreatedFrom    *time.Time `json:"dataCriacaoInicio"`
	CreatedTo      *time.Time `json:"dataCriacaoFim"`
	HasCompletedAt *bool      `json:"comDataConclusao"`
	CompletedFrom  *time.Time `json:"dataConclusaoInicio"`
	CompletedTo    *time.Time `json:"dataConclusaoFim"`
	Page           *int       `json:"page" validate:"omitempty,min=1"`
	Limit          *int       `json:"limit" validate:"omitempty,min=1,max=100"`
	SortBy         *string    `json:"sortBy" validate:"omitempty,oneof=titulo status dataLimite dataConclusao data_criacao data_ultima_atualizacao"`
	SortOrder      *string    `json:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type userQueryInput struct {
	Name        *string    `json:"nome"`
	Handle      *string    `json:"apelido"`
	Email       *string    `json:"email"`
	Status      *string    `json:"status" validate:"omitempty,userstatus"`
	ID          *string    `json:"id" validate:"omitempty,objectid"`
	CreatedFrom *time.Time `json:"dataCadastroInicio"`
	CreatedTo   *time.Time `json:"dataCadastroFim"`
	UpdatedFrom *time.Time `json:"dataAtualizacaoInicio"`
	UpdatedTo   *time.Time `json:"dataAtualizacaoFim"`
	Page        *int       `json:"page" validate:"omitempty,min=1"`
	Limit       *int       `json:"limit" validate:"omitempty,min=1,max=100"`
	SortBy      *string    `json:"sortBy" validate:"omitempty,oneof=nome apelido email createdAt updatedAt"`
	SortOrder   *string    `json:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

func (c *coercer) rangeOf(fromField, toField string) (*time.Time, *time.Time) {
	from, _ := c.date(fromField, false)
	to, _ := c.date(toField, false)
	return from, to
}

// checkRange is the cross-field pass: a start after its end is reported on
// the start field.
func checkRange(errs []domain.FieldError, fromField string, from, to *time.Time, message string) []domain.FieldError {
	if from != nil && to != nil && from.After(*to) {
		errs = append(errs, domain.FieldError{Field: fromField, Message: message})
	}
	return errs
}

func resolvePagination(page, limit *int, sortBy, sortOrder *string, defaultSort string) Pagination {
	out := Pagination{Page: DefaultPage, Limit: DefaultLimit, SortBy: defaultSort, SortOrder: DefaultSortOrder}
	if page != nil {
		out.Page = *page
	}
	if limit != nil {
		out.Limit = *limit
	}
	if sortBy != nil {
		out.SortBy = *sortBy
	}
	if sortOrder != nil {
		out.SortOrder = *sortOrder
	}
	return out
}

// TaskQuery validates the query string of the task list endpoint.
func (v *Validator) TaskQuery(values url.Values) (*TaskQuery, error) {
	c := newCoercer(queryInput(values))
	in := taskQueryInput{
		Title:          c.str("titulo"),
		Description:    c.str("descricao"),
		Status:         c.str("status"),
		OwnerID:        c.str("usuario"),
		HasCompletedAt: c.boolean("comDataConclusao"),
		Page:           c.integer("page"),
		Limit:          c.integer("limit"),
		SortBy:         c.str("sortBy"),
		SortOrder:      c.str("sortOrder"),
	}
	in.DueDateFrom, in.DueDateTo = c.rangeOf("dataLimiteInicio", "dataLimiteFim")
	in.CreatedFrom, in.CreatedTo = c.rangeOf("dataCriacaoInicio", "dataCriacaoFim")
	in.CompletedFrom, in.CompletedTo = c.rangeOf("dataConclusaoInicio", "dataConclusaoFim")

	errs := v.run(taskQuerySchema, &in, c)
	errs = checkRange(errs, "dataLimiteInicio", in.DueDateFrom, in.DueDateTo,
		"Data limite inicial não pode ser posterior à data limite final")
	errs = checkRange(errs, "dataCriacaoInicio", in.CreatedFrom, in.CreatedTo,
		"Data de criação inicial não pode ser posterior à data de criação final")
	errs = checkRange(errs, "dataConclusaoInicio", in.CompletedFrom, in.CompletedTo,
		"Data de conclusão inicial não pode ser posterior à data de conclusão final")
	if err := fail(errs); err != nil {
		return nil, err
	}

	q := &TaskQuery{
		Title:          in.Title,
		Description:    in.Description,
		OwnerID:        in.OwnerID,
		DueDate:        DateRange{From: in.DueDateFrom, To: in.DueDateTo},
		CreatedAt:      DateRange{From: in.CreatedFrom, To: in.CreatedTo},
		CompletedAt:    DateRange{From: in.CompletedFrom, To: in.CompletedTo},
		HasCompletedAt: in.HasCompletedAt,
		Pagination:     resolvePagination(in.Page, in.Limit, in.SortBy, in.SortOrder, defaultTaskSort),
	}
	if in.Status != nil {
		s := domain.TaskStatus(*in.Status)
		q.Status = &s
	}
	return q, nil
}

// UserQuery validates the query string of the user list endpoint.
func (v *Validator) UserQuery(values url.Values) (*UserQuery, error) {
	c := newCoercer(queryInput(values))
	in := userQueryInput{
		Name:      c.str("nome"),
		Handle:    c.str("apelido"),
		Email:     c.str("email"),
		Status:    c.str("status"),
		ID:        c.str("id"),
		Page:      c.integer("page"),
		Limit:     c.integer("limit"),
		SortBy:    c.str("sortBy"),
		SortOrder: c.str("sortOrder"),
	}
	in.CreatedFrom, in.CreatedTo = c.rangeOf("dataCadastroInicio", "dataCadastroFim")
	in.UpdatedFrom, in.UpdatedTo = c.rangeOf("dataAtualizacaoInicio", "dataAtualizacaoFim")

	errs := v.run(userQuerySchema, &in, c)
	errs = checkRange(errs, "dataCadastroInicio", in.CreatedFrom, in.CreatedTo,
		"Data de cadastro inicial não pode ser posterior à data final")
	errs = checkRange(errs, "dataAtualizacaoInicio", in.UpdatedFrom, in.UpdatedTo,
		"Data de atualização inicial não pode ser posterior à data final")
	if err := fail(errs); err != nil {
		return nil, err
	}

	q := &UserQuery{
		Name:       in.Name,
		Handle:     in.Handle,
		Email:      in.Email,
		ID:         in.ID,
		CreatedAt:  DateRange{From: in.CreatedFrom, To: in.CreatedTo},
		UpdatedAt:  DateRange{From: in.UpdatedFrom, To: in.UpdatedTo},
		Pagination: resolvePagination(in.Page, in.Limit, in.SortBy, in.SortOrder, defaultUserSort),
	}
	if in.Status != nil {
		s := domain.UserStatus(*in.Status)
		q.Status = &s
	}
	return q, nil
}
