package update_weekday

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/studio-booking/internal/api/handlers"
	"github.com/m04kA/studio-booking/internal/domain"
	"github.com/m04kA/studio-booking/internal/service/schedule"
	"github.com/m04kA/studio-booking/internal/service/schedule/models"
)

const (
	msgInvalidWeekday     = "некорректный день недели, ожидается 0 (понедельник) - 6 (воскресенье)"
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle PUT /api/v1/admin/schedule/{weekday}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	weekday, err := strconv.Atoi(mux.Vars(r)["weekday"])
	if err != nil || !domain.IsValidWeekday(weekday) {
		h.logger.Warn("PUT /admin/schedule/{weekday} - Invalid weekday: %q", mux.Vars(r)["weekday"])
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	var req models.UpsertWeekdayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule/{weekday} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertWeekday(r.Context(), weekday, &req)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("PUT /admin/schedule/{weekday} - Validation failed: weekday=%d, error=%v", weekday, err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("PUT /admin/schedule/{weekday} - Failed to save schedule: weekday=%d, error=%v", weekday, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/schedule/{weekday} - Schedule saved: weekday=%d, active=%t", weekday, result.Active)
	handlers.RespondJSON(w, http.StatusOK, result)
}
