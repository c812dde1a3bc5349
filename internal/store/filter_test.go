package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilterBuilders(t *testing.T) {
	from := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	var f Filter
	assert.True(t, f.IsEmpty())

	f.Contains(TaskFieldTitle, "milk").
		Eq(TaskFieldStatus, "Pendente").
		Range(TaskFieldDueDate, &from, nil).
		Present(TaskFieldCompletedAt, false)

	assert.Equal(t, []Condition{
		{Field: "titulo", Op: OpContains, Value: "milk"},
		{Field: "status", Op: OpEq, Value: "Pendente"},
		{Field: "dataLimite", Op: OpGte, Value: from},
		{Field: "dataConclusao", Op: OpAbsent},
	}, f.Conditions)
}
