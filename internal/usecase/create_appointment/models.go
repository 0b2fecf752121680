package create_appointment

import (
	"time"

	"github.com/m04kA/studio-booking/internal/domain"
	"github.com/m04kA/studio-booking/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ServiceID int64            // ID услуги
	ClientID  int64            // ID клиента
	Date      time.Time        // Календарная дата записи
	StartTime types.TimeString // Время начала (например, "10:00")
	Notes     *string          // Комментарий клиента (опционально)

	// Контакт, указанный в форме (для уведомлений; если не задан, берется из карточки клиента)
	ClientName  *string
	ClientPhone *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	ClientID        int64
	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	Status          domain.AppointmentStatus
	Notes           *string
	ServiceName     string
	DurationMinutes int
	CreatedAt       time.Time
}
