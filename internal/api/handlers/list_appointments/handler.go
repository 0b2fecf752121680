package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/studio-booking/internal/api/handlers"
	"github.com/m04kA/studio-booking/internal/service/appointments"
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

// Handle GET /api/v1/admin/appointments
// Query params: from, to (optional, YYYY-MM-DD), status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), ToServiceRequest(r.URL.Query()))
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			h.logger.Warn("GET /admin/appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /admin/appointments - Failed to list appointments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/appointments - Appointments retrieved: count=%d", len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
