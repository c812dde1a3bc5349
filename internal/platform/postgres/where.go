package postgres

import (
	"fmt"
	"strings"

	"github.com/RuanLopes1350/AnotaAi/internal/store"
)

// Filter field to column mappings.
var (
	taskColumns = map[string]string{
		store.FieldID:              "id",
		store.TaskFieldTitle:       "titulo",
		store.TaskFieldDescription: "descricao",
		store.TaskFieldStatus:      "status",
		store.TaskFieldDueDate:     "data_limite",
		store.TaskFieldCompletedAt: "data_conclusao",
		store.TaskFieldOwner:       "usuario",
		store.TaskFieldCreatedAt:   "data_criacao",
		store.TaskFieldUpdatedAt:   "data_ultima_atualizacao",
	}

	userColumns = map[string]string{
		store.FieldID:            "id",
		store.UserFieldName:      "nome",
		store.UserFieldHandle:    "apelido",
		store.UserFieldEmail:     "email",
		store.UserFieldStatus:    "status",
		store.UserFieldCreatedAt: "created_at",
		store.UserFieldUpdatedAt: "updated_at",
	}
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// RenderWhere renders a neutral filter as a WHERE clause (without the keyword)
// and its positional arguments. An empty filter renders as "TRUE".
func RenderWhere(f store.Filter, columns map[string]string) (string, []any, error) {
	if f.IsEmpty() {
		return "TRUE", nil, nil
	}

	clauses := make([]string, 0, len(f.Conditions))
	args := make([]any, 0, len(f.Conditions))
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	for _, c := range f.Conditions {
		col, ok := columns[c.Field]
		if !ok {
			return "", nil, fmt.Errorf("unknown filter field %q", c.Field)
		}

		switch c.Op {
		case store.OpEq:
			v := c.Value
			if col == "id" || col == "usuario" {
				if s, ok := v.(string); ok {
					v = strings.ToLower(s)
				}
			}
			clauses = append(clauses, col+" = "+next(v))
		case store.OpContains:
			s, _ := c.Value.(string)
			clauses = append(clauses, col+" ILIKE "+next("%"+likeEscaper.Replace(s)+"%")+` ESCAPE '\'`)
		case store.OpGte:
			clauses = append(clauses, col+" >= "+next(c.Value))
		case store.OpLte:
			clauses = append(clauses, col+" <= "+next(c.Value))
		case store.OpPresent:
			clauses = append(clauses, col+" IS NOT NULL")
		case store.OpAbsent:
			clauses = append(clauses, col+" IS NULL")
		default:
			return "", nil, fmt.Errorf("unsupported filter operator %q", c.Op)
		}
	}

	return strings.Join(clauses, " AND "), args, nil
}

// orderBy renders the ORDER BY clause of a page request. Ties are broken by id.
func orderBy(p store.PageRequest, columns map[string]string) (string, error) {
	col, ok := columns[p.SortField]
	if !ok {
		return "", fmt.Errorf("unknown sort field %q", p.SortField)
	}
	dir := "ASC"
	if p.SortDesc {
		dir = "DESC"
	}
	if col == "id" {
		return "id " + dir, nil
	}
	return col + " " + dir + ", id " + dir, nil
}
