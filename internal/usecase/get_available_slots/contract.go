package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/studio-booking/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания студии
type ScheduleRepository interface {
	// GetByWeekday получает расписание дня недели (0 = понедельник)
	GetByWeekday(ctx context.Context, weekday int) (*domain.WeekdaySchedule, error)
	// IsBlackout проверяет, закрыта ли дата целиком
	IsBlackout(ctx context.Context, date time.Time) (bool, error)
}

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetOccupiedIntervals возвращает интервалы неотменённых записей на дату
	GetOccupiedIntervals(ctx context.Context, date time.Time) ([]domain.OccupiedInterval, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
