package create_appointment

import (
	"errors"
	"time"

	"github.com/m04kA/studio-booking/internal/domain"
	createAppointment "github.com/m04kA/studio-booking/internal/usecase/create_appointment"
	"github.com/m04kA/studio-booking/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID   int64   `json:"serviceId"`
	ClientID    int64   `json:"clientId"`
	Date        string  `json:"date"`      // "2026-03-10"
	StartTime   string  `json:"startTime"` // "10:00"
	Notes       *string `json:"notes,omitempty"`
	ClientName  *string `json:"clientName,omitempty"`
	ClientPhone *string `json:"clientPhone,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	DurationMinutes int     `json:"durationMinutes"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil || startTime.Validate() != nil {
		return nil, errInvalidTime
	}

	return &createAppointment.Request{
		ServiceID:   r.ServiceID,
		ClientID:    r.ClientID,
		Date:        date,
		StartTime:   startTime,
		Notes:       r.Notes,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		Status:          string(resp.Status),
		ServiceName:     resp.ServiceName,
		DurationMinutes: resp.DurationMinutes,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
