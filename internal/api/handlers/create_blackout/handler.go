package create_blackout

import (
	"errors"
	"net/http"

	"github.com/m04kA/studio-booking/internal/api/handlers"
	"github.com/m04kA/studio-booking/internal/service/schedule"
	"github.com/m04kA/studio-booking/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBlackoutExists     = "дата уже закрыта"
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

// Handle POST /api/v1/admin/blackouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBlackoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blackouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateBlackout(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrBlackoutExists):
			h.logger.Warn("POST /admin/blackouts - Date already closed: %s", req.Date)
			handlers.RespondConflict(w, msgBlackoutExists)
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/blackouts - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /admin/blackouts - Failed to create blackout: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/blackouts - Date closed: %s", result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
