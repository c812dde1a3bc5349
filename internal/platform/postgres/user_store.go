package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
	"github.com/RuanLopes1350/AnotaAi/internal/store"
)

const userSelectColumns = `id, nome, apelido, email, senha, resposta_seguranca, status, created_at, updated_at`

// UserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type UserStore struct {
	db     DBTX
	logger *slog.Logger
	now    func() time.Time
}

// NewUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewUserStore(db DBTX, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
		now:    time.Now,
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

func (s *UserStore) mapError(err error, operation string) error {
	return MapError(err, "user", operation, store.ErrUserNotFound)
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u      domain.User
		status string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Handle, &u.Email, &u.SecretHash, &u.SecurityAnswerHash,
		&status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Status = domain.UserStatus(status)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}

// Create implements store.UserStore.Create
func (s *UserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := storedTime(s.now())
	id := strings.ToLower(user.ID)
	if id == "" {
		id = domain.NewID()
	}

	query := `INSERT INTO usuarios (` + userSelectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userSelectColumns

	created, err := scanUser(s.db.QueryRowContext(ctx, query,
		id, user.Name, user.Handle, user.Email, user.SecretHash, user.SecurityAnswerHash,
		string(user.Status), now, now))
	if err != nil {
		return nil, s.mapError(err, "create")
	}
	s.logger.Debug("user created", slog.String("user_id", created.ID))
	return created, nil
}

// GetByID implements store.UserStore.GetByID
func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userSelectColumns + ` FROM usuarios WHERE id = $1`
	u, err := scanUser(s.db.QueryRowContext(ctx, query, strings.ToLower(id)))
	if err != nil {
		return nil, s.mapError(err, "find")
	}
	return u, nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userSelectColumns + ` FROM usuarios WHERE email = $1`
	u, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, s.mapError(err, "find")
	}
	return u, nil
}

// Update implements store.UserStore.Update
func (s *UserStore) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Name != nil {
		set("nome", *patch.Name)
	}
	if patch.Handle != nil {
		set("apelido", *patch.Handle)
	}
	if patch.Email != nil {
		set("email", *patch.Email)
	}
	if patch.SecretHash != nil {
		set("senha", *patch.SecretHash)
	}
	if patch.SecurityAnswerHash != nil {
		set("resposta_seguranca", *patch.SecurityAnswerHash)
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	set("updated_at", storedTime(s.now()))

	args = append(args, strings.ToLower(id))
	query := fmt.Sprintf(`UPDATE usuarios SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), userSelectColumns)

	u, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, s.mapError(err, "update")
	}
	return u, nil
}

// List implements store.UserStore.List
func (s *UserStore) List(ctx context.Context, filter store.Filter, page store.PageRequest) (store.Page[domain.User], error) {
	where, args, err := RenderWhere(filter, userColumns)
	if err != nil {
		return store.Page[domain.User]{}, err
	}
	order, err := orderBy(page, userColumns)
	if err != nil {
		return store.Page[domain.User]{}, err
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM usuarios WHERE `+where, args...).Scan(&total); err != nil {
		return store.Page[domain.User]{}, s.mapError(err, "count")
	}

	query := fmt.Sprintf(`SELECT %s FROM usuarios WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		userSelectColumns, where, order, len(args)+1, len(args)+2)
	rows, err := s.db.QueryContext(ctx, query, append(args, page.Limit, page.Skip())...)
	if err != nil {
		return store.Page[domain.User]{}, s.mapError(err, "list")
	}
	defer func() { _ = rows.Close() }()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return store.Page[domain.User]{}, s.mapError(err, "list")
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return store.Page[domain.User]{}, s.mapError(err, "list")
	}

	return store.NewPage(users, total, page), nil
}

// Delete implements store.UserStore.Delete
func (s *UserStore) Delete(ctx context.Context, id string) (*domain.User, error) {
	query := `DELETE FROM usuarios WHERE id = $1 RETURNING ` + userSelectColumns
	u, err := scanUser(s.db.QueryRowContext(ctx, query, strings.ToLower(id)))
	if err != nil {
		return nil, s.mapError(err, "delete")
	}
	return u, nil
}
