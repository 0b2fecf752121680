package list_testimonials

import (
	"context"

	"github.com/m04kA/studio-booking/internal/service/testimonials/models"
)

type TestimonialService interface {
	List(ctx context.Context, onlyActive bool) (*models.TestimonialListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
