package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken возвращается, когда на это время уже есть неотменённая запись
	// (сработал уникальный индекс appointments_active_slot_uniq)
	ErrSlotTaken = errors.New("appointment.repository: slot already taken")

	// ErrReferenceNotFound возвращается, когда клиент или услуга не существуют
	ErrReferenceNotFound = errors.New("appointment.repository: referenced client or service not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
