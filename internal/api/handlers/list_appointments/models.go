package list_appointments

import (
	"net/url"

	"github.com/m04kA/studio-booking/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// Пустые параметры означают отсутствие фильтра
func ToServiceRequest(query url.Values) *models.ListAppointmentsRequest {
	return &models.ListAppointmentsRequest{
		From:   optional(query.Get("from")),
		To:     optional(query.Get("to")),
		Status: optional(query.Get("status")),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
