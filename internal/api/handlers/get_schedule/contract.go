package get_schedule

import (
	"context"

	"github.com/m04kA/studio-booking/internal/service/schedule/models"
)

type ScheduleService interface {
	GetWeek(ctx context.Context, onlyActive bool) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
