package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/studio-booking/internal/domain"
	"github.com/m04kA/studio-booking/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ExistsActiveAt проверяет наличие неотменённой записи ровно на (date, startTime)
	ExistsActiveAt(ctx context.Context, date time.Time, startTime types.TimeString) (bool, error)
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier отправляет уведомления о новой записи
// Вызов не должен блокировать: ошибки доставки только логируются
type Notifier interface {
	AppointmentCreated(details domain.AppointmentDetails)
}

// Metrics счетчик исходов бронирования
type Metrics interface {
	IncAppointment(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
