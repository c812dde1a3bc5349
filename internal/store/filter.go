package store

import (
	"time"
)

// Op is a comparison in a backend-neutral filter.
type Op string

// Filter operators.
const (
	// OpEq matches the exact value.
	OpEq Op = "eq"
	// OpContains matches a case-insensitive substring of the literal text.
	OpContains Op = "contains"
	// OpGte and OpLte are inclusive range bounds.
	OpGte Op = "gte"
	OpLte Op = "lte"
	// OpPresent and OpAbsent test whether an optional field has a value.
	OpPresent Op = "present"
	OpAbsent  Op = "absent"
)

// Task and user field names used in filters and sorting. They match the
// stored (and wire) names of the fields.
const (
	FieldID = "_id"

	TaskFieldTitle       = "titulo"
	TaskFieldDescription = "descricao"
	TaskFieldStatus      = "status"
	TaskFieldDueDate     = "dataLimite"
	TaskFieldCompletedAt = "dataConclusao"
	TaskFieldOwner       = "usuario"
	TaskFieldCreatedAt   = "data_criacao"
	TaskFieldUpdatedAt   = "data_ultima_atualizacao"

	UserFieldName      = "nome"
	UserFieldHandle    = "apelido"
	UserFieldEmail     = "email"
	UserFieldStatus    = "status"
	UserFieldCreatedAt = "createdAt"
	UserFieldUpdatedAt = "updatedAt"
)

// Condition is one predicate of a Filter. Value is a string for OpEq and
// OpContains, a time.Time for range bounds and nil for presence tests.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Filter is a conjunction of conditions. Conditions keep insertion order so
// that building the same query twice yields equal filters.
type Filter struct {
	Conditions []Condition
}

// IsEmpty reports whether the filter matches everything.
func (f Filter) IsEmpty() bool {
	return len(f.Conditions) == 0
}

// Eq adds an exact-match condition.
func (f *Filter) Eq(field, value string) *Filter {
	f.Conditions = append(f.Conditions, Condition{Field: field, Op: OpEq, Value: value})
	return f
}

// Contains adds a case-insensitive substring condition.
func (f *Filter) Contains(field, text string) *Filter {
	f.Conditions = append(f.Conditions, Condition{Field: field, Op: OpContains, Value: text})
	return f
}

// Range adds inclusive bounds; nil bounds are omitted.
func (f *Filter) Range(field string, from, to *time.Time) *Filter {
	if from != nil {
		f.Conditions = append(f.Conditions, Condition{Field: field, Op: OpGte, Value: *from})
	}
	if to != nil {
		f.Conditions = append(f.Conditions, Condition{Field: field, Op: OpLte, Value: *to})
	}
	return f
}

// Present adds a presence test on an optional field.
func (f *Filter) Present(field string, present bool) *Filter {
	op := OpAbsent
	if present {
		op = OpPresent
	}
	f.Conditions = append(f.Conditions, Condition{Field: field, Op: op})
	return f
}
