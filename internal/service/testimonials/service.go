package testimonials

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/studio-booking/internal/domain"
	testimonialRepo "github.com/m04kA/studio-booking/internal/infra/storage/testimonial"
	"github.com/m04kA/studio-booking/internal/service/testimonials/models"
)

// Service сервис отзывов клиентов
type Service struct {
	repo   TestimonialRepository
	logger Logger
}

func NewService(repo TestimonialRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List получает отзывы, новые первыми
// onlyActive = true - главная страница, false - админка
func (s *Service) List(ctx context.Context, onlyActive bool) (*models.TestimonialListResponse, error) {
	list, err := s.repo.List(ctx, onlyActive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTestimonialList(list), nil
}

// Create публикует новый отзыв
func (s *Service) Create(ctx context.Context, req *models.CreateTestimonialRequest) (*models.TestimonialResponse, error) {
	testimonial := &domain.Testimonial{
		Name:   strings.TrimSpace(req.Name),
		Quote:  strings.TrimSpace(req.Quote),
		Active: true,
	}

	if err := validateTestimonial(testimonial); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, testimonial)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: testimonial id=%d from %q created", created.ID, created.Name)
	return models.FromDomainTestimonial(created), nil
}

// Update обновляет переданные поля отзыва
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateTestimonialRequest) (*models.TestimonialResponse, error) {
	testimonial, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	if req.Name != nil {
		testimonial.Name = strings.TrimSpace(*req.Name)
	}
	if req.Quote != nil {
		testimonial.Quote = strings.TrimSpace(*req.Quote)
	}
	if req.Active != nil {
		testimonial.Active = *req.Active
	}

	if err := validateTestimonial(testimonial); err != nil {
		s.logger.Warn("Update: validation failed for testimonial id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.repo.Update(ctx, testimonial)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	s.logger.Info("Update: testimonial id=%d updated (active=%t)", id, updated.Active)
	return models.FromDomainTestimonial(updated), nil
}

// Delete удаляет отзыв
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", id, err)
	}

	s.logger.Info("Delete: testimonial id=%d deleted", id)
	return nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, testimonialRepo.ErrTestimonialNotFound) {
		s.logger.Warn("%s: testimonial id=%d not found", op, id)
		return ErrTestimonialNotFound
	}
	s.logger.Error("%s: repository error for testimonial id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func validateTestimonial(t *domain.Testimonial) error {
	if t.Name == "" || t.Quote == "" {
		return fmt.Errorf("%w: name and quote are required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(t.Name) > domain.MaxTestimonialNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxTestimonialNameLength)
	}
	if utf8.RuneCountInString(t.Quote) > domain.MaxTestimonialQuoteLength {
		return fmt.Errorf("%w: quote must be at most %d characters", ErrInvalidInput, domain.MaxTestimonialQuoteLength)
	}
	return nil
}
