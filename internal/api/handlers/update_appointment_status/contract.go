package update_appointment_status

import (
	"context"

	"github.com/m04kA/studio-booking/internal/service/appointments/models"
)

type AppointmentsService interface {
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
