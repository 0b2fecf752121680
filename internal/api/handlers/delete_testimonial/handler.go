package delete_testimonial

import (
	"errors"
	"net/http"

	"github.com/m04kA/studio-booking/internal/api/handlers"
	"github.com/m04kA/studio-booking/internal/service/testimonials"
)

const (
	msgInvalidTestimonialID = "некорректный ID отзыва"
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

// Handle DELETE /api/v1/admin/testimonials/{testimonialId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	testimonialID, err := handlers.PathInt64(r, "testimonialId")
	if err != nil {
		h.logger.Warn("DELETE /admin/testimonials/{id} - Invalid testimonial ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTestimonialID)
		return
	}

	if err := h.service.Delete(r.Context(), testimonialID); err != nil {
		if errors.Is(err, testimonials.ErrTestimonialNotFound) {
			h.logger.Warn("DELETE /admin/testimonials/{id} - Testimonial not found: id=%d", testimonialID)
			handlers.RespondNotFound(w, msgTestimonialNotFound)
			return
		}
		h.logger.Error("DELETE /admin/testimonials/{id} - Failed to delete testimonial: id=%d, error=%v", testimonialID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/testimonials/{id} - Testimonial deleted: id=%d", testimonialID)
	handlers.RespondNoContent(w)
}
