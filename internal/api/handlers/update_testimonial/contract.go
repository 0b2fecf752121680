package update_testimonial

import (
	"context"

	"github.com/m04kA/studio-booking/internal/service/testimonials/models"
)

type TestimonialService interface {
	Update(ctx context.Context, id int64, req *models.UpdateTestimonialRequest) (*models.TestimonialResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
