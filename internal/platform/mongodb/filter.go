package mongodb

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RuanLopes1350/AnotaAi/internal/store"
)

// Fields stored as ObjectIDs.
var objectIDFields = map[string]bool{
	store.FieldID:        true,
	store.TaskFieldOwner: true,
}

// RenderFilter renders a neutral filter as a MongoDB query document. Each
// field maps to an operator document, e.g. {"titulo": {"$regex": ...}}.
func RenderFilter(f store.Filter) (bson.M, error) {
	out := bson.M{}
	for _, c := range f.Conditions {
		ops, ok := out[c.Field].(bson.M)
		if !ok {
			ops = bson.M{}
			out[c.Field] = ops
		}

		switch c.Op {
		case store.OpEq:
			v, err := fieldValue(c.Field, c.Value)
			if err != nil {
				return nil, err
			}
			ops["$eq"] = v
		case store.OpContains:
			s, _ := c.Value.(string)
			ops["$regex"] = primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		case store.OpGte:
			ops["$gte"] = c.Value
		case store.OpLte:
			ops["$lte"] = c.Value
		case store.OpPresent:
			ops["$ne"] = nil
		case store.OpAbsent:
			ops["$eq"] = nil
		default:
			return nil, fmt.Errorf("unsupported filter operator %q", c.Op)
		}
	}
	return out, nil
}

func fieldValue(field string, v any) (any, error) {
	s, ok := v.(string)
	if !ok || !objectIDFields[field] {
		return v, nil
	}
	return objectID(s)
}

// findOptions renders the page request. Ties on the sort field are broken by
// _id so that pages are stable.
func findOptions(p store.PageRequest) *options.FindOptions {
	dir := 1
	if p.SortDesc {
		dir = -1
	}
	sort := bson.D{{Key: p.SortField, Value: dir}}
	if p.SortField != store.FieldID {
		sort = append(sort, bson.E{Key: store.FieldID, Value: dir})
	}
	return options.Find().
		SetSort(sort).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))
}
