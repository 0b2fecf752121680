package domain

import "time"

// Testimonial отзыв клиента для главной страницы
type Testimonial struct {
	ID        int64
	Name      string
	Quote     string
	Active    bool // неактивные отзывы видны только в админке
	CreatedAt time.Time
	UpdatedAt time.Time
}
