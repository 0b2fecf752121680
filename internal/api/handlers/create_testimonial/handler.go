package create_testimonial

import (
	"errors"
	"net/http"

	"github.com/m04kA/studio-booking/internal/api/handlers"
	"github.com/m04kA/studio-booking/internal/service/testimonials"
	"github.com/m04kA/studio-booking/internal/service/testimonials/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	service TestimonialService
	logger  Logger
}

func NewHandler(service TestimonialService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/testimonials
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTestimonialRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/testimonials - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, testimonials.ErrInvalidInput) {
			h.logger.Warn("POST /admin/testimonials - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /admin/testimonials - Failed to create testimonial: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/testimonials - Testimonial created: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
