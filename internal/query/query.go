// Package query turns list-endpoint query strings into backend-neutral store
// filters and page requests. Building is pure: the same parameters always
// yield equal filters.
package query

import (
	"net/url"

	"github.com/RuanLopes1350/AnotaAi/internal/store"
	"github.com/RuanLopes1350/AnotaAi/internal/validation"
)

// Builder validates list query strings and builds store filters from them.
type Builder struct {
	validator *validation.Validator
}

// NewBuilder creates a Builder that validates with v.
func NewBuilder(v *validation.Validator) *Builder {
	return &Builder{validator: v}
}

// Tasks validates the task list query string and builds its filter.
func (b *Builder) Tasks(values url.Values) (store.Filter, store.PageRequest, error) {
	q, err := b.validator.TaskQuery(values)
	if err != nil {
		return store.Filter{}, store.PageRequest{}, err
	}
	f, p := TaskFilter(q)
	return f, p, nil
}

// Users validates the user list query string and builds its filter.
func (b *Builder) Users(values url.Values) (store.Filter, store.PageRequest, error) {
	q, err := b.validator.UserQuery(values)
	if err != nil {
		return store.Filter{}, store.PageRequest{}, err
	}
	f, p := UserFilter(q)
	return f, p, nil
}

// TaskFilter maps a validated task query to a filter and page request.
func TaskFilter(q *validation.TaskQuery) (store.Filter, store.PageRequest) {
	var f store.Filter

	if q.Title != nil {
		f.Contains(store.TaskFieldTitle, *q.Title)
	}
	if q.Description != nil {
		f.Contains(store.TaskFieldDescription, *q.Description)
	}
	if q.Status != nil {
		f.Eq(store.TaskFieldStatus, string(*q.Status))
	}
	if q.OwnerID != nil {
		f.Eq(store.TaskFieldOwner, *q.OwnerID)
	}
	f.Range(store.TaskFieldDueDate, q.DueDate.From, q.DueDate.To)
	f.Range(store.TaskFieldCreatedAt, q.CreatedAt.From, q.CreatedAt.To)

	// A completion-date range only matches completed tasks.
	switch {
	case !q.CompletedAt.IsZero():
		f.Present(store.TaskFieldCompletedAt, true)
		f.Range(store.TaskFieldCompletedAt, q.CompletedAt.From, q.CompletedAt.To)
	case q.HasCompletedAt != nil:
		f.Present(store.TaskFieldCompletedAt, *q.HasCompletedAt)
	}

	return f, pageRequest(q.Pagination)
}

// UserFilter maps a validated user query to a filter and page request.
func UserFilter(q *validation.UserQuery) (store.Filter, store.PageRequest) {
	var f store.Filter

	if q.Name != nil {
		f.Contains(store.UserFieldName, *q.Name)
	}
	if q.Handle != nil {
		f.Contains(store.UserFieldHandle, *q.Handle)
	}
	if q.Email != nil {
		f.Contains(store.UserFieldEmail, *q.Email)
	}
	if q.Status != nil {
		f.Eq(store.UserFieldStatus, string(*q.Status))
	}
	if q.ID != nil {
		f.Eq(store.FieldID, *q.ID)
	}
	f.Range(store.UserFieldCreatedAt, q.CreatedAt.From, q.CreatedAt.To)
	f.Range(store.UserFieldUpdatedAt, q.UpdatedAt.From, q.UpdatedAt.To)

	return f, pageRequest(q.Pagination)
}

func pageRequest(p validation.Pagination) store.PageRequest {
	return store.PageRequest{
		Page:      p.Page,
		Limit:     p.Limit,
		SortField: p.SortBy,
		SortDesc:  p.SortOrder != validation.SortAscending,
	}
}
