package list_testimonials

import (
	"net/http"

	"github.com/m04kA/studio-booking/internal/api/handlers"
)

type Handler struct {
	service    TestimonialService
	onlyActive bool
	logger     Logger
}

// NewHandler onlyActive = true для главной страницы, false для админки
func NewHandler(service TestimonialService, onlyActive bool, logger Logger) *Handler {
	return &Handler{
		service:    service,
		onlyActive: onlyActive,
		logger:     logger,
	}
}

// Handle GET /api/v1/testimonials, GET /api/v1/admin/testimonials
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), h.onlyActive)
	if err != nil {
		h.logger.Error("GET %s - Failed to list testimonials: %v", r.URL.Path, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
