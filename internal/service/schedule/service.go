package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/studio-booking/internal/domain"
	scheduleRepo "github.com/m04kA/studio-booking/internal/infra/storage/schedule"
	"github.com/m04kA/studio-booking/internal/service/schedule/models"
	"github.com/m04kA/studio-booking/pkg/types"
)

// Service сервис расписания студии: рабочие часы и закрытые даты
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// GetWeek получает расписание на неделю
// onlyActive = true - только рабочие дни (публичная страница)
func (s *Service) GetWeek(ctx context.Context, onlyActive bool) (*models.ScheduleResponse, error) {
	list, err := s.scheduleRepo.List(ctx, onlyActive)
	if err != nil {
		s.logger.Error("GetWeek: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(list), nil
}

// UpsertWeekday задает рабочие часы для дня недели (0 = понедельник)
// Изменения видны следующему же расчету свободного времени
func (s *Service) UpsertWeekday(ctx context.Context, weekday int, req *models.UpsertWeekdayRequest) (*models.WeekdayResponse, error) {
	if !domain.IsValidWeekday(weekday) {
		return nil, fmt.Errorf("%w: weekday must be between 0 (monday) and 6 (sunday)", ErrInvalidInput)
	}

	opensAt, err := types.NewTimeStringFromString(req.OpensAt)
	if err != nil {
		return nil, fmt.Errorf("%w: opensAt: %v", ErrInvalidInput, err)
	}
	closesAt, err := types.NewTimeStringFromString(req.ClosesAt)
	if err != nil {
		return nil, fmt.Errorf("%w: closesAt: %v", ErrInvalidInput, err)
	}
	if !opensAt.IsBefore(closesAt) {
		s.logger.Warn("UpsertWeekday: opensAt=%s is not before closesAt=%s", opensAt, closesAt)
		return nil, fmt.Errorf("%w: opensAt must be before closesAt", ErrInvalidInput)
	}

	saved, err := s.scheduleRepo.Upsert(ctx, &domain.WeekdaySchedule{
		Weekday:  weekday,
		Active:   req.Active,
		OpensAt:  opensAt,
		ClosesAt: closesAt,
	})
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrInvalidHours) {
			return nil, fmt.Errorf("%w: opensAt must be before closesAt", ErrInvalidInput)
		}
		s.logger.Error("UpsertWeekday: repository error for weekday=%d: %v", weekday, err)
		return nil, fmt.Errorf("%w: UpsertWeekday - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertWeekday: weekday=%d active=%t %s-%s", weekday, saved.Active, saved.OpensAt, saved.ClosesAt)
	resp := models.FromDomainWeekday(saved)
	return &resp, nil
}

// ListBlackouts получает закрытые даты, начиная с from (пустая строка - все)
func (s *Service) ListBlackouts(ctx context.Context, from string) (*models.BlackoutListResponse, error) {
	var fromDate *time.Time
	if from != "" {
		parsed, err := parseDate(from)
		if err != nil {
			return nil, err
		}
		fromDate = &parsed
	}

	list, err := s.scheduleRepo.ListBlackouts(ctx, fromDate)
	if err != nil {
		s.logger.Error("ListBlackouts: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBlackouts - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlackoutList(list), nil
}

// CreateBlackout закрывает дату для записи
// Уже существующие записи на эту дату не отменяются
func (s *Service) CreateBlackout(ctx context.Context, req *models.CreateBlackoutRequest) (*models.BlackoutResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(req.Reason)
	if utf8.RuneCountInString(reason) > domain.MaxBlackoutReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxBlackoutReasonLength)
	}

	created, err := s.scheduleRepo.CreateBlackout(ctx, &domain.Blackout{Date: date, Reason: reason})
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateBlackout) {
			s.logger.Warn("CreateBlackout: date %s is already blacked out", req.Date)
			return nil, ErrBlackoutExists
		}
		s.logger.Error("CreateBlackout: repository error for %s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: CreateBlackout - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlackout: date %s closed (%s)", req.Date, reason)
	resp := models.FromDomainBlackout(created)
	return &resp, nil
}

// DeleteBlackout снова открывает дату
func (s *Service) DeleteBlackout(ctx context.Context, dateStr string) error {
	date, err := parseDate(dateStr)
	if err != nil {
		return err
	}

	if err := s.scheduleRepo.DeleteBlackout(ctx, date); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlackoutNotFound) {
			return ErrBlackoutNotFound
		}
		s.logger.Error("DeleteBlackout: repository error for %s: %v", dateStr, err)
		return fmt.Errorf("%w: DeleteBlackout - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlackout: date %s reopened", dateStr)
	return nil
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidInput, s)
	}
	return date, nil
}
