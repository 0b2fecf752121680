package appointments

import (
	"context"

	"github.com/m04kA/studio-booking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentDetails, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.AppointmentDetails, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
