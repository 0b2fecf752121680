package update_weekday

import (
	"context"

	"github.com/m04kA/studio-booking/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertWeekday(ctx context.Context, weekday int, req *models.UpsertWeekdayRequest) (*models.WeekdayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
