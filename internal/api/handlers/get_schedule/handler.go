package get_schedule

import (
	"net/http"

	"github.com/m04kA/studio-booking/internal/api/handlers"
)

type Handler struct {
	service    ScheduleService
	onlyActive bool
	logger     Logger
}

// NewHandler onlyActive = true для публичной страницы (только рабочие дни)
func NewHandler(service ScheduleService, onlyActive bool, logger Logger) *Handler {
	return &Handler{
		service:    service,
		onlyActive: onlyActive,
		logger:     logger,
	}
}

// Handle GET /api/v1/schedule, GET /api/v1/admin/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetWeek(r.Context(), h.onlyActive)
	if err != nil {
		h.logger.Error("GET %s - Failed to get schedule: %v", r.URL.Path, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
