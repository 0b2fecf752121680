package appointment

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
	"github.com/m04kA/studio-booking/pkg/types"
)

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Если в контексте передана активная транзакция, использует её.
// Нарушение уникального индекса (date, start_time) среди неотменённых записей
// возвращается как ErrSlotTaken - так БД отсекает второго конкурентного писателя.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"client_id",
			"service_id",
			"appointment_date",
			"start_time",
			"status",
			"notes",
		).
		Values(
			appt.ClientID,
			appt.ServiceID,
			appt.Date.Format(domain.DateFormat),
			appt.StartTime,
			appt.Status,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	switch {
	case pgerr.IsUniqueViolation(err):
		return nil, ErrSlotTaken
	case pgerr.IsForeignKeyViolation(err):
		return nil, ErrReferenceNotFound
	case err != nil:
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// ExistsActiveAt проверяет, есть ли неотменённая запись ровно на (date, startTime)
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) ExistsActiveAt(ctx context.Context, date time.Time, startTime types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("appointments").
		Where(squirrel.Eq{"appointment_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"start_time": startTime}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveAt - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveAt - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// GetOccupiedIntervals возвращает занятые интервалы на дату:
// все неотменённые записи с длительностью их услуги, по возрастанию времени начала
func (r *Repository) GetOccupiedIntervals(ctx context.Context, date time.Time) ([]domain.OccupiedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"a.start_time",
		"s.duration_minutes",
	).
		From("appointments a").
		Join("services s ON s.id = a.service_id").
		Where(squirrel.Eq{"a.appointment_date": date.Format(domain.DateFormat)}).
		Where(squirrel.NotEq{"a.status": domain.StatusCancelled}).
		OrderBy("a.start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupiedIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupiedIntervals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.OccupiedInterval, 0)
	for rows.Next() {
		var interval domain.OccupiedInterval
		if err := rows.Scan(&interval.StartTime, &interval.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%w: GetOccupiedIntervals - scan row: %v", ErrScanRow, err)
		}
		intervals = append(intervals, interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOccupiedIntervals - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// GetByID получает запись по ID вместе с данными клиента и услуги
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"a.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	list, err := r.scanDetails(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrAppointmentNotFound
	}

	return list[0], nil
}

// List получает записи для админки
// Сортировка по дате и времени начала (ASC)
//
// Примеры:
//
//	filter := domain.AppointmentsFilter{From: &today}                  // все будущие
//	filter := domain.AppointmentsFilter{From: &day, To: &day}          // на конкретную дату
//	filter := domain.AppointmentsFilter{Status: ptr.Ptr(domain.StatusPending)}
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := detailsSelect()

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"a.appointment_date": filter.From.Format(domain.DateFormat)})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"a.appointment_date": filter.To.Format(domain.DateFormat)})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.status": *filter.Status})
	}

	query, args, err := selectBuilder.
		OrderBy("a.appointment_date ASC", "a.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanDetails(rows)
}

// UpdateStatus обновляет статус записи
// Нарушение уникального индекса слота возвращается как ErrSlotTaken
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerr.IsUniqueViolation(err) {
		return ErrSlotTaken
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func detailsSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"a.id",
		"a.client_id",
		"a.service_id",
		"a.appointment_date",
		"a.start_time",
		"a.status",
		"a.notes",
		"a.created_at",
		"a.updated_at",
		"TRIM(c.first_name || ' ' || c.last_name)",
		"c.email",
		"c.phone",
		"s.name",
		"s.duration_minutes",
	).
		From("appointments a").
		Join("clients c ON c.id = a.client_id").
		Join("services s ON s.id = a.service_id")
}

// scanDetails сканирует результаты запроса в слайс записей
func (r *Repository) scanDetails(rows *sql.Rows) ([]*domain.AppointmentDetails, error) {
	list := make([]*domain.AppointmentDetails, 0)

	for rows.Next() {
		var d domain.AppointmentDetails
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&d.ID,
			&d.ClientID,
			&d.ServiceID,
			&d.Date,
			&d.StartTime,
			&d.Status,
			&d.Notes,
			&createdAt,
			&updatedAt,
			&d.ClientName,
			&d.ClientEmail,
			&d.ClientPhone,
			&d.ServiceName,
			&d.DurationMinutes,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanDetails - scan row: %v", ErrScanRow, err)
		}

		d.CreatedAt = createdAt.Time
		d.UpdatedAt = updatedAt.Time

		list = append(list, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDetails - rows error: %v", ErrScanRow, err)
	}

	return list, nil
}
