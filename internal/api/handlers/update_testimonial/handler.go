package update_testimonial

import (
	"errors"
	"net/http"

	"github.com/m04kA/studio-booking/internal/api/handlers"
	"github.com/m04kA/studio-booking/internal/service/testimonials"
	"github.com/m04kA/studio-booking/internal/service/testimonials/models"
)

const (
	msgInvalidTestimonialID = "некорректный ID отзыва"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgTestimonialNotFound  = "отзыв не найден"
)

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

// Handle PUT /api/v1/admin/testimonials/{testimonialId}
// Скрыть отзыв с главной можно через {"active": false}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	testimonialID, err := handlers.PathInt64(r, "testimonialId")
	if err != nil {
		h.logger.Warn("PUT /admin/testimonials/{id} - Invalid testimonial ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTestimonialID)
		return
	}

	var req models.UpdateTestimonialRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/testimonials/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), testimonialID, &req)
	if err != nil {
		switch {
		case errors.Is(err, testimonials.ErrTestimonialNotFound):
			h.logger.Warn("PUT /admin/testimonials/{id} - Testimonial not found: id=%d", testimonialID)
			handlers.RespondNotFound(w, msgTestimonialNotFound)
		case errors.Is(err, testimonials.ErrInvalidInput):
			h.logger.Warn("PUT /admin/testimonials/{id} - Validation failed: id=%d, error=%v", testimonialID, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PUT /admin/testimonials/{id} - Failed to update testimonial: id=%d, error=%v", testimonialID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/testimonials/{id} - Testimonial updated: id=%d", testimonialID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
