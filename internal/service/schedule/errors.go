package schedule

import "errors"

var (
	// ErrBlackoutNotFound возвращается, когда закрытая дата не найдена
	ErrBlackoutNotFound = errors.New("schedule: blackout not found")

	// ErrBlackoutExists возвращается, если дата уже закрыта
	ErrBlackoutExists = errors.New("schedule: date is already blacked out")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
