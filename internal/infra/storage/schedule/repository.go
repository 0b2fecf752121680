package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/studio-booking/internal/domain"
	"github.com/m04kA/studio-booking/pkg/dbmetrics"
	"github.com/m04kA/studio-booking/pkg/pgerr"
	"github.com/m04kA/studio-booking/pkg/psqlbuilder"
)

// Repository репозиторий расписания студии: рабочие часы по дням недели и закрытые даты
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByWeekday получает расписание для дня недели (0 = понедельник)
// Неактивные дни тоже возвращаются - решение принимает вызывающий код
func (r *Repository) GetByWeekday(ctx context.Context, weekday int) (*domain.WeekdaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"weekday",
		"active",
		"opens_at",
		"closes_at",
	).
		From("weekday_schedules").
		Where(squirrel.Eq{"weekday": weekday}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.WeekdaySchedule
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Weekday,
		&s.Active,
		&s.OpensAt,
		&s.ClosesAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - scan schedule: %v", ErrScanRow, err)
	}

	return &s, nil
}

// List получает расписание на неделю, упорядоченное по дню недели
// onlyActive = true - только рабочие дни (публичная страница)
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]*domain.WeekdaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"weekday",
		"active",
		"opens_at",
		"closes_at",
	).
		From("weekday_schedules").
		OrderBy("weekday ASC")

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

	schedules := make([]*domain.WeekdaySchedule, 0, 7)
	for rows.Next() {
		var s domain.WeekdaySchedule
		if err := rows.Scan(&s.ID, &s.Weekday, &s.Active, &s.OpensAt, &s.ClosesAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		schedules = append(schedules, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// Upsert создает или обновляет расписание дня недели (не более одной строки на день)
func (r *Repository) Upsert(ctx context.Context, s *domain.WeekdaySchedule) (*domain.WeekdaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekday_schedules").
		Columns("weekday", "active", "opens_at", "closes_at").
		Values(s.Weekday, s.Active, s.OpensAt, s.ClosesAt).
		Suffix(`ON CONFLICT (weekday) DO UPDATE
			SET active = EXCLUDED.active,
				opens_at = EXCLUDED.opens_at,
				closes_at = EXCLUDED.closes_at
			RETURNING id`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID)
	if pgerr.IsCheckViolation(err) {
		return nil, ErrInvalidHours
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// IsBlackout проверяет, закрыта ли дата целиком
func (r *Repository) IsBlackout(ctx context.Context, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("blackouts").
		Where(squirrel.Eq{"blackout_date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsBlackout - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsBlackout - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// ListBlackouts получает закрытые даты начиная с from (nil - все), по возрастанию
func (r *Repository) ListBlackouts(ctx context.Context, from *time.Time) ([]*domain.Blackout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "blackout_date", "reason").
		From("blackouts").
		OrderBy("blackout_date ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"blackout_date": from.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlackouts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlackouts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blackouts := make([]*domain.Blackout, 0)
	for rows.Next() {
		var b domain.Blackout
		if err := rows.Scan(&b.ID, &b.Date, &b.Reason); err != nil {
			return nil, fmt.Errorf("%w: ListBlackouts - scan row: %v", ErrScanRow, err)
		}
		blackouts = append(blackouts, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlackouts - rows error: %v", ErrScanRow, err)
	}

	return blackouts, nil
}

// CreateBlackout закрывает дату для записи
func (r *Repository) CreateBlackout(ctx context.Context, b *domain.Blackout) (*domain.Blackout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blackouts").
		Columns("blackout_date", "reason").
		Values(b.Date.Format(domain.DateFormat), b.Reason).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlackout - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrDuplicateBlackout
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlackout - execute insert: %v", ErrExecQuery, err)
	}

	return b, nil
}

// DeleteBlackout снова открывает дату для записи
func (r *Repository) DeleteBlackout(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blackouts").
		Where(squirrel.Eq{"blackout_date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlackout - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlackout - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlackout - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlackoutNotFound
	}

	return nil
}
