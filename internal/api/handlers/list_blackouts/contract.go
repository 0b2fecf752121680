package list_blackouts

import (
	"context"

	"github.com/m04kA/studio-booking/internal/service/schedule/models"
)

type ScheduleService interface {
	ListBlackouts(ctx context.Context, from string) (*models.BlackoutListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
