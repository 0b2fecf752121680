package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/studio-booking/internal/domain"
	catalogRepo "github.com/m04kA/studio-booking/internal/infra/storage/catalog"
	"github.com/m04kA/studio-booking/internal/service/catalog/models"
)

// Service сервис каталога услуг студии
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// List получает услуги
// onlyActive = true - публичный каталог, false - админка (включая неактивные)
func (s *Service) List(ctx context.Context, onlyActive bool) (*models.ServiceListResponse, error) {
	list, err := s.serviceRepo.List(ctx, onlyActive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(list), nil
}

// Get получает услугу по ID
func (s *Service) Get(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Get", id, err)
	}

	return models.FromDomainService(service), nil
}

// Create создает новую услугу
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	service := &domain.Service{
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Active:          true,
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := validateService(service); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, service)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: service id=%d %q (%d min) created", created.ID, created.Name, created.DurationMinutes)
	return models.FromDomainService(created), nil
}

// Update обновляет переданные поля услуги
// Изменение длительности не трогает уже созданные записи: их интервал считается по текущей длительности
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := validateService(service); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.serviceRepo.Update(ctx, service)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	s.logger.Info("Update: service id=%d updated", id)
	return models.FromDomainService(updated), nil
}

// Delete удаляет услугу без записей
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", id, err)
	}

	s.logger.Info("Delete: service id=%d deleted", id)
	return nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, catalogRepo.ErrServiceNotFound):
		s.logger.Warn("%s: service id=%d not found", op, id)
		return ErrServiceNotFound
	case errors.Is(err, catalogRepo.ErrServiceInUse):
		s.logger.Warn("%s: service id=%d has appointments", op, id)
		return ErrServiceInUse
	default:
		s.logger.Error("%s: repository error for service id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

// validateService проверяет бизнес-ограничения услуги
func validateService(s *domain.Service) error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(s.Name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}
	if s.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if s.DurationMinutes < domain.MinServiceDurationMinutes || s.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	return nil
}
