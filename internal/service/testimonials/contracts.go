package testimonials

import (
	"context"

	"github.com/m04kA/studio-booking/internal/domain"
)

// TestimonialRepository интерфейс репозитория отзывов
type TestimonialRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Testimonial, error)
	List(ctx context.Context, onlyActive bool) ([]*domain.Testimonial, error)
	Create(ctx context.Context, testimonial *domain.Testimonial) (*domain.Testimonial, error)
	Update(ctx context.Context, testimonial *domain.Testimonial) (*domain.Testimonial, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
