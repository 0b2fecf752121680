package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/studio-booking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidDate возвращается при некорректной дате фильтра
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// Request модели

// ListAppointmentsRequest фильтр списка записей (все поля опциональны)
type ListAppointmentsRequest struct {
	From   *string `json:"from,omitempty"`   // "2026-03-01"
	To     *string `json:"to,omitempty"`     // "2026-03-31"
	Status *string `json:"status,omitempty"` // pending | confirmed | cancelled
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	var filter domain.AppointmentsFilter

	if r.From != nil {
		from, err := time.Parse(domain.DateFormat, *r.From)
		if err != nil {
			return filter, fmt.Errorf("%w: from=%q", ErrInvalidDate, *r.From)
		}
		filter.From = &from
	}

	if r.To != nil {
		to, err := time.Parse(domain.DateFormat, *r.To)
		if err != nil {
			return filter, fmt.Errorf("%w: to=%q", ErrInvalidDate, *r.To)
		}
		filter.To = &to
	}

	if r.Status != nil {
		status, ok := domain.ParseAppointmentStatus(*r.Status)
		if !ok {
			return filter, fmt.Errorf("%w: %q", ErrInvalidStatus, *r.Status)
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// AppointmentResponse запись с данными клиента и услуги
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`      // "2026-03-11"
	StartTime       string  `json:"startTime"` // "10:00"
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	ClientName      string  `json:"clientName"`
	ClientEmail     string  `json:"clientEmail"`
	ClientPhone     *string `json:"clientPhone,omitempty"`
	ServiceName     string  `json:"serviceName"`
	DurationMinutes int     `json:"durationMinutes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.AppointmentDetails) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              a.ID,
		ClientID:        a.ClientID,
		ServiceID:       a.ServiceID,
		Date:            a.Date.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		Status:          string(a.Status),
		Notes:           a.Notes,
		ClientName:      a.ClientName,
		ClientEmail:     a.ClientEmail,
		ClientPhone:     a.ClientPhone,
		ServiceName:     a.ServiceName,
		DurationMinutes: a.DurationMinutes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(list []*domain.AppointmentDetails) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
	}

	for _, a := range list {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}
