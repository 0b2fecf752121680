package testimonial

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/studio-booking/internal/domain"
	"github.com/m04kA/studio-booking/pkg/dbmetrics"
	"github.com/m04kA/studio-booking/pkg/psqlbuilder"
)

var testimonialColumns = []string{
	"id",
	"name",
	"quote",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий отзывов
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает отзыв по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Testimonial, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(testimonialColumns...).
		From("testimonials").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	testimonial, err := scanTestimonial(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTestimonialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan testimonial: %v", ErrScanRow, err)
	}

	return testimonial, nil
}

// List получает отзывы, новые первыми
// onlyActive = true - только опубликованные (главная страница)
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]*domain.Testimonial, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(testimonialColumns...).
		From("testimonials").
		OrderBy("created_at DESC", "id DESC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	testimonials := make([]*domain.Testimonial, 0)
	for rows.Next() {
		testimonial, err := scanTestimonial(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		testimonials = append(testimonials, testimonial)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return testimonials, nil
}

// Create создает новый отзыв
func (r *Repository) Create(ctx context.Context, testimonial *domain.Testimonial) (*domain.Testimonial, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("testimonials").
		Columns("name", "quote", "active").
		Values(testimonial.Name, testimonial.Quote, testimonial.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&testimonial.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	testimonial.CreatedAt = createdAt.Time
	testimonial.UpdatedAt = updatedAt.Time

	return testimonial, nil
}

// Update перезаписывает имя, текст и видимость отзыва
func (r *Repository) Update(ctx context.Context, testimonial *domain.Testimonial) (*domain.Testimonial, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("testimonials").
		Set("name", testimonial.Name).
		Set("quote", testimonial.Quote).
		Set("active", testimonial.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": testimonial.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTestimonialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	testimonial.CreatedAt = createdAt.Time
	testimonial.UpdatedAt = updatedAt.Time

	return testimonial, nil
}

// Delete удаляет отзыв
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("testimonials").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTestimonialNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTestimonial(row rowScanner) (*domain.Testimonial, error) {
	var t domain.Testimonial
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Quote,
		&t.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}
