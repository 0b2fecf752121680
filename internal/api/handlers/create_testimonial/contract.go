package create_testimonial

import (
	"context"

	"github.com/m04kA/studio-booking/internal/service/testimonials/models"
)

type TestimonialService interface {
	Create(ctx context.Context, req *models.CreateTestimonialRequest) (*models.TestimonialResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
