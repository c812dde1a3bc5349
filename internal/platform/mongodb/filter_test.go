package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/RuanLopes1350/AnotaAi/internal/store"
)

func TestRenderFilter(t *testing.T) {
	from := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2030, 2, 1, 0, 0, 0, 0, time.UTC)
	owner := "507f1f77bcf86cd799439011"
	ownerOID, _ := primitive.ObjectIDFromHex(owner)

	var f store.Filter
	f.Contains(store.TaskFieldTitle, "a.b*(c)").
		Eq(store.TaskFieldStatus, "Pendente").
		Eq(store.TaskFieldOwner, owner).
		Range(store.TaskFieldDueDate, &from, &to).
		Present(store.TaskFieldCompletedAt, true).
		Range(store.TaskFieldCompletedAt, &from, nil)

	got, err := RenderFilter(f)
	require.NoError(t, err)

	want := bson.M{
		"titulo":        bson.M{"$regex": primitive.Regex{Pattern: `a\.b\*\(c\)`, Options: "i"}},
		"status":        bson.M{"$eq": "Pendente"},
		"usuario":       bson.M{"$eq": ownerOID},
		"dataLimite":    bson.M{"$gte": from, "$lte": to},
		"dataConclusao": bson.M{"$ne": nil, "$gte": from},
	}
	assert.Equal(t, want, got)

	again, err := RenderFilter(f)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestRenderFilter_Absent(t *testing.T) {
	var f store.Filter
	f.Present(store.TaskFieldCompletedAt, false)

	got, err := RenderFilter(f)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"dataConclusao": bson.M{"$eq": nil}}, got)
}

func TestRenderFilter_EmptyMatchesAll(t *testing.T) {
	got, err := RenderFilter(store.Filter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRenderFilter_InvalidObjectID(t *testing.T) {
	var f store.Filter
	f.Eq(store.FieldID, "nope")

	_, err := RenderFilter(f)
	assert.Error(t, err)
}

func TestFindOptions(t *testing.T) {
	opts := findOptions(store.PageRequest{Page: 3, Limit: 20, SortField: "titulo", SortDesc: false})

	require.NotNil(t, opts.Skip)
	assert.Equal(t, int64(40), *opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(20), *opts.Limit)
	assert.Equal(t, bson.D{{Key: "titulo", Value: 1}, {Key: "_id", Value: 1}}, opts.Sort)
}
