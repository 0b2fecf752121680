package get_available_slots

import (
	"time"

	"github.com/m04kA/studio-booking/pkg/types"
)

// Request модель запроса на получение свободных времен начала
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Календарная дата (используются только год, месяц, день)
}

// Response модель ответа со списком свободных времен начала
type Response struct {
	Date            time.Time          // Дата, на которую запрашивались слоты
	ServiceID       int64              // ID услуги
	DurationMinutes int                // Длительность услуги (0, если услуга не загружалась)
	Slots           []types.TimeString // Времена начала по возрастанию
}
