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

// UserStore implements store.UserStore on the usuarios collection.
type UserStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
	now    func() time.Time
}

// NewUserStore creates a UserStore on db. If logger is nil, a default logger will be used.
func NewUserStore(db *mongo.Database, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		coll:   db.Collection(UsersCollection),
		logger: logger.With(slog.String("component", "user_store")),
		now:    time.Now,
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

func (s *UserStore) mapError(err error, operation string) error {
	return MapError(err, "user", operation, store.ErrUserNotFound)
}

// Create implements store.UserStore.Create
func (s *UserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc, err := newUserDocument(user, storedTime(s.now()))
	if err != nil {
		return nil, err
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, s.mapError(err, "create")
	}

	created := doc.toDomain()
	s.logger.Debug("user created", slog.String("user_id", created.ID))
	return &created, nil
}

// GetByID implements store.UserStore.GetByID
func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

// Update implements store.UserStore.Update
func (s *UserStore) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc userDocument
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, userUpdate(patch, storedTime(s.now())), opts).Decode(&doc)
	if err != nil {
		return nil, s.mapError(err, "update")
	}

	updated := doc.toDomain()
	return &updated, nil
}

// List implements store.UserStore.List
func (s *UserStore) List(ctx context.Context, filter store.Filter, page store.PageRequest) (store.Page[domain.User], error) {
	query, err := RenderFilter(filter)
	if err != nil {
		return store.Page[domain.User]{}, err
	}

	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return store.Page[domain.User]{}, s.mapError(err, "count")
	}

	cur, err := s.coll.Find(ctx, query, findOptions(page))
	if err != nil {
		return store.Page[domain.User]{}, s.mapError(err, "list")
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return store.Page[domain.User]{}, s.mapError(err, "list")
	}

	users := make([]domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return store.NewPage(users, total, page), nil
}

// Delete implements store.UserStore.Delete
func (s *UserStore) Delete(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc userDocument
	if err := s.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, s.mapError(err, "delete")
	}

	deleted := doc.toDomain()
	s.logger.Debug("user deleted", slog.String("user_id", deleted.ID))
	return &deleted, nil
}

func (s *UserStore) findOne(ctx context.Context, query bson.M) (*domain.User, error) {
	var doc userDocument
	if err := s.coll.FindOne(ctx, query).Decode(&doc); err != nil {
		return nil, s.mapError(err, "find")
	}
	user := doc.toDomain()
	return &user, nil
}
