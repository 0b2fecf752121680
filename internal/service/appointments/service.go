package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/studio-booking/internal/domain"
	appointmentRepo "github.com/m04kA/studio-booking/internal/infra/storage/appointment"
	"github.com/m04kA/studio-booking/internal/service/appointments/models"
)

// Service сервис администрирования записей
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// List получает записи с фильтрацией по периоду и статусу
//
// Примеры:
// - Все записи: List(ctx, &ListAppointmentsRequest{})
// - На дату: From и To указывают на одну дату
// - Только ожидающие подтверждения: Status = "pending"
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		s.logger.Warn("List: period end is before start")
		return nil, fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidInput)
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments", len(list))
	return models.FromDomainAppointmentList(list), nil
}

// UpdateStatus меняет статус записи
// Допустимые переходы: pending -> confirmed | cancelled, confirmed -> cancelled
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: appointment id must be positive", ErrInvalidInput)
	}

	next, ok := domain.ParseAppointmentStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%q for appointment id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	var updated *domain.AppointmentDetails

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if !current.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, next); err != nil {
			return err
		}

		current.Status = next
		updated = current
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		s.logger.Warn("UpdateStatus: appointment id=%d not found", id)
		return nil, ErrAppointmentNotFound
	case errors.Is(err, ErrInvalidTransition):
		s.logger.Warn("UpdateStatus: appointment id=%d: %v", id, err)
		return nil, err
	default:
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%d is now %s", id, next)
	return models.FromDomainAppointment(updated), nil
}
