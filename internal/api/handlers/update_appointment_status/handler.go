package update_appointment_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/studio-booking/internal/api/handlers"
	"github.com/m04kA/studio-booking/internal/service/appointments"
	"github.com/m04kA/studio-booking/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgAppointmentNotFound  = "запись не найдена"
	msgInvalidTransition    = "недопустимая смена статуса"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/appointments/{appointmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), appointmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /admin/appointments/{id}/status - Appointment not found: id=%d", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PATCH /admin/appointments/{id}/status - %v", err)
			handlers.RespondConflict(w, msgInvalidTransition)
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/appointments/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PATCH /admin/appointments/{id}/status - Failed to update status: id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/appointments/{id}/status - Status updated: id=%d, status=%s", appointmentID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
