package schedule

import (
	"context"
	"time"

	"github.com/m04kA/studio-booking/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания и закрытых дат
type ScheduleRepository interface {
	List(ctx context.Context, onlyActive bool) ([]*domain.WeekdaySchedule, error)
	Upsert(ctx context.Context, s *domain.WeekdaySchedule) (*domain.WeekdaySchedule, error)
	ListBlackouts(ctx context.Context, from *time.Time) ([]*domain.Blackout, error)
	CreateBlackout(ctx context.Context, b *domain.Blackout) (*domain.Blackout, error)
	DeleteBlackout(ctx context.Context, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
