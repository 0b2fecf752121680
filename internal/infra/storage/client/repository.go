package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/studio-booking/internal/domain"
	"github.com/m04kA/studio-booking/pkg/dbmetrics"
	"github.com/m04kA/studio-booking/pkg/pgerr"
	"github.com/m04kA/studio-booking/pkg/psqlbuilder"
)

// Repository репозиторий клиентов студии
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByEmail получает клиента по email (без учета регистра)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.getOne(ctx, "GetByEmail", squirrel.Eq{"email": strings.ToLower(email)})
}

// Create создает клиента, email сохраняется в нижнем регистре
func (r *Repository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	c.Email = strings.ToLower(c.Email)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("first_name", "last_name", "email", "phone").
		Values(c.FirstName, c.LastName, c.Email, c.Phone).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time

	return c, nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"first_name",
		"last_name",
		"email",
		"phone",
		"created_at",
	).
		From("clients").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var c domain.Client
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan client: %v", ErrScanRow, op, err)
	}

	c.CreatedAt = createdAt.Time

	return &c, nil
}
