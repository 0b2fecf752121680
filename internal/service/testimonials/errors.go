package testimonials

import "errors"

var (
	// ErrTestimonialNotFound возвращается, когда отзыв не найден
	ErrTestimonialNotFound = errors.New("testimonials: testimonial not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("testimonials: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("testimonials: internal error")
)
