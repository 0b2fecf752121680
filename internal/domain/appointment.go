package domain

import (
	"time"

	"github.com/m04kA/studio-booking/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ParseAppointmentStatus конвертирует строку в статус
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return AppointmentStatus(s), true
	default:
		return "", false
	}
}

// Appointment запись клиента на услугу
type Appointment struct {
	ID        int64
	ClientID  int64
	ServiceID int64
	Date      time.Time
	StartTime types.TimeString
	Status    AppointmentStatus
	Notes     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive отменённая запись не занимает время
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanTransitionTo проверяет допустимость смены статуса
// pending -> confirmed | cancelled, confirmed -> cancelled, cancelled - финальный
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled
	default:
		return false
	}
}

// AppointmentsFilter фильтр для списка записей в админке
type AppointmentsFilter struct {
	From   *time.Time         // Начало периода (включительно)
	To     *time.Time         // Конец периода (включительно)
	Status *AppointmentStatus // Фильтр по статусу
}

// OccupiedInterval занятый интервал [StartTime, StartTime+DurationMinutes)
type OccupiedInterval struct {
	StartTime       types.TimeString
	DurationMinutes int
}

// StartMinutes начало интервала в минутах от полуночи
func (i OccupiedInterval) StartMinutes() int {
	return i.StartTime.Minutes()
}

// EndMinutes конец интервала (не включительно) в минутах от полуночи
func (i OccupiedInterval) EndMinutes() int {
	return i.StartTime.Minutes() + i.DurationMinutes
}

// Overlaps пересекается ли интервал с [start, end)
// Интервалы, которые только соприкасаются границами, не пересекаются
func (i OccupiedInterval) Overlaps(start, end int) bool {
	return start < i.EndMinutes() && i.StartMinutes() < end
}

// AppointmentDetails запись вместе с данными клиента и услуги (для админки и уведомлений)
type AppointmentDetails struct {
	Appointment

	ClientName      string
	ClientEmail     string
	ClientPhone     *string
	ServiceName     string
	DurationMinutes int
}
