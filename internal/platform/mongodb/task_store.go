package mongodb

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
	"github.com/RuanLopes1350/AnotaAi/internal/store"
)

// TaskStore implements store.TaskStore on the tasks collection.
type TaskStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskStore creates a TaskStore on db. If logger is nil, a default logger will be used.
func NewTaskStore(db *mongo.Database, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		coll:   db.Collection(TasksCollection),
		logger: logger.With(slog.String("component", "task_store")),
		now:    time.Now,
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

func (s *TaskStore) mapError(err error, operation string) error {
	return MapError(err, "task", operation, store.ErrTaskNotFound)
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	doc, err := newTaskDocument(task, storedTime(s.now()))
	if err != nil {
		return nil, err
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		s.logger.Error("failed to insert task", slog.String("error", err.Error()))
		return nil, s.mapError(err, "create")
	}

	created := doc.toDomain()
	s.logger.Debug("task created", slog.String("task_id", created.ID))
	return &created, nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	update, err := taskUpdate(patch, storedTime(s.now()))
	if err != nil {
		return nil, err
	}

	var doc taskDocument
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		return nil, s.mapError(err, "update")
	}

	updated := doc.toDomain()
	return &updated, nil
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context, filter store.Filter, page store.PageRequest) (store.Page[domain.Task], error) {
	query, err := RenderFilter(filter)
	if err != nil {
		return store.Page[domain.Task]{}, err
	}

	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return store.Page[domain.Task]{}, s.mapError(err, "count")
	}

	tasks, err := s.find(ctx, query, findOptions(page))
	if err != nil {
		return store.Page[domain.Task]{}, s.mapError(err, "list")
	}

	return store.NewPage(tasks, total, page), nil
}

// FindByTitle implements store.TaskStore.FindByTitle
func (s *TaskStore) FindByTitle(ctx context.Context, title string) (*domain.Task, error) {
	var doc taskDocument
	if err := s.coll.FindOne(ctx, bson.M{"titulo": title}).Decode(&doc); err != nil {
		return nil, s.mapError(err, "find")
	}
	task := doc.toDomain()
	return &task, nil
}

// FindByStatus implements store.TaskStore.FindByStatus
func (s *TaskStore) FindByStatus(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	tasks, err := s.find(ctx, bson.M{"status": string(status)}, defaultSort())
	if err != nil {
		return nil, s.mapError(err, "find")
	}
	return tasks, nil
}

// FindByDueDate implements store.TaskStore.FindByDueDate
func (s *TaskStore) FindByDueDate(ctx context.Context, due time.Time) ([]domain.Task, error) {
	tasks, err := s.find(ctx, bson.M{"dataLimite": storedTime(due)}, defaultSort())
	if err != nil {
		return nil, s.mapError(err, "find")
	}
	return tasks, nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc taskDocument
	if err := s.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, s.mapError(err, "delete")
	}

	deleted := doc.toDomain()
	s.logger.Debug("task deleted", slog.String("task_id", deleted.ID))
	return &deleted, nil
}

// CountByOwner implements store.TaskStore.CountByOwner
func (s *TaskStore) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	oid, err := objectID(ownerID)
	if err != nil {
		return 0, err
	}
	n, err := s.coll.CountDocuments(ctx, bson.M{"usuario": oid})
	if err != nil {
		return 0, s.mapError(err, "count")
	}
	return n, nil
}

func (s *TaskStore) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]domain.Task, error) {
	cur, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	var docs []taskDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(docs))
	for i := range docs {
		tasks = append(tasks, docs[i].toDomain())
	}
	return tasks, nil
}

func defaultSort() *options.FindOptions {
	return options.Find().SetSort(bson.D{
		{Key: store.TaskFieldCreatedAt, Value: -1},
		{Key: store.FieldID, Value: -1},
	})
}
