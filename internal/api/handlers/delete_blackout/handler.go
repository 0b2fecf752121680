package delete_blackout

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/studio-booking/internal/api/handlers"
	"github.com/m04kA/studio-booking/internal/service/schedule"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBlackoutNotFound = "дата не закрыта"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/blackouts/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	if err := h.service.DeleteBlackout(r.Context(), date); err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /admin/blackouts/{date} - Invalid date: %q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)
		case errors.Is(err, schedule.ErrBlackoutNotFound):
			h.logger.Warn("DELETE /admin/blackouts/{date} - Blackout not found: %s", date)
			handlers.RespondNotFound(w, msgBlackoutNotFound)
		default:
			h.logger.Error("DELETE /admin/blackouts/{date} - Failed to delete blackout: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/blackouts/{date} - Date reopened: %s", date)
	handlers.RespondNoContent(w)
}
