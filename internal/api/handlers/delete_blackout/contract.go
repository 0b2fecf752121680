package delete_blackout

import "context"

type ScheduleService interface {
	DeleteBlackout(ctx context.Context, date string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
