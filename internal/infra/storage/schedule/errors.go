package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда для дня недели нет расписания
	ErrScheduleNotFound = errors.New("schedule.repository: weekday schedule not found")

	// ErrBlackoutNotFound возвращается, когда закрытая дата не найдена
	ErrBlackoutNotFound = errors.New("schedule.repository: blackout not found")

	// ErrDuplicateBlackout возвращается при попытке закрыть уже закрытую дату
	ErrDuplicateBlackout = errors.New("schedule.repository: date already blocked")

	// ErrInvalidHours возвращается, когда БД отклонила часы работы (opens_at >= closes_at)
	ErrInvalidHours = errors.New("schedule.repository: invalid working hours")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
