package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или снята с каталога
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("create_appointment: client not found")

	// ErrSlotNotAvailable возвращается, когда на это время уже есть неотменённая запись
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

// Исходы бронирования для метрик
const (
	outcomeCreated  = "created"
	outcomeConflict = "conflict"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)
