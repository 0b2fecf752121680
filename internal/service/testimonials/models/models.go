package models

import (
	"time"

	"github.com/m04kA/studio-booking/internal/domain"
)

// CreateTestimonialRequest запрос на создание отзыва
// Новый отзыв сразу опубликован
type CreateTestimonialRequest struct {
	Name  string `json:"name"`
	Quote string `json:"quote"`
}

// UpdateTestimonialRequest запрос на обновление отзыва
// Все поля опциональны - обновляются только переданные значения
type UpdateTestimonialRequest struct {
	Name   *string `json:"name,omitempty"`
	Quote  *string `json:"quote,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// TestimonialResponse ответ с данными отзыва
type TestimonialResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Quote     string    `json:"quote"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TestimonialListResponse ответ со списком отзывов
type TestimonialListResponse struct {
	Testimonials []TestimonialResponse `json:"testimonials"`
}

func FromDomainTestimonial(t *domain.Testimonial) *TestimonialResponse {
	if t == nil {
		return nil
	}

	return &TestimonialResponse{
		ID:        t.ID,
		Name:      t.Name,
		Quote:     t.Quote,
		Active:    t.Active,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func FromDomainTestimonialList(list []*domain.Testimonial) *TestimonialListResponse {
	resp := &TestimonialListResponse{
		Testimonials: make([]TestimonialResponse, 0, len(list)),
	}

	for _, t := range list {
		if item := FromDomainTestimonial(t); item != nil {
			resp.Testimonials = append(resp.Testimonials, *item)
		}
	}

	return resp
}
