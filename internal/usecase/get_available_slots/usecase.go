package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/studio-booking/internal/domain"
	catalogRepo "github.com/m04kA/studio-booking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/studio-booking/internal/infra/storage/schedule"
	"github.com/m04kA/studio-booking/pkg/types"
)

// UseCase use case для получения свободных времен начала записи на услугу
type UseCase struct {
	scheduleRepo    ScheduleRepository
	serviceRepo     ServiceRepository
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// location - часовой пояс студии, в нем определяются "сегодня" и "сейчас"
func NewUseCase(
	scheduleRepo ScheduleRepository,
	serviceRepo ServiceRepository,
	appointmentRepo AppointmentRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.Local
	}
	return &UseCase{
		scheduleRepo:    scheduleRepo,
		serviceRepo:     serviceRepo,
		appointmentRepo: appointmentRepo,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных времен начала
// Прошедшая дата, закрытая дата и нерабочий день дают пустой список, а не ошибку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	dateStr := req.Date.Format(domain.DateFormat)
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s", req.ServiceID, dateStr)

	response := &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     []types.TimeString{},
	}

	now := uc.timeProvider.Now().In(uc.location)

	// 2. Прошедшая дата
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", dateStr)
		return response, nil
	}

	// 3. Закрытая дата
	blackout, err := uc.scheduleRepo.IsBlackout(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check blackout for %s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: failed to check blackout: %v", ErrInternal, err)
	}
	if blackout {
		uc.logger.Info("GetAvailableSlots: date %s is blacked out", dateStr)
		return response, nil
	}

	// 4. Расписание дня недели
	schedule, err := uc.scheduleRepo.GetByWeekday(ctx, domain.WeekdayIndex(req.Date))
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get schedule for %s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	if schedule == nil || !schedule.IsOpen() {
		uc.logger.Info("GetAvailableSlots: studio is closed on %s", dateStr)
		return response, nil
	}

	// 5. Услуга
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	response.DurationMinutes = service.DurationMinutes

	// 6. Занятые интервалы
	occupied, err := uc.appointmentRepo.GetOccupiedIntervals(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for %s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 7. Обход рабочего дня
	response.Slots = computeSlots(slotInput{
		Schedule:        *schedule,
		DurationMinutes: service.DurationMinutes,
		Occupied:        occupied,
		Date:            req.Date,
		Now:             now,
	})

	uc.logger.Info("GetAvailableSlots: %d slots for service=%d on %s (occupied=%d)",
		len(response.Slots), req.ServiceID, dateStr, len(occupied))

	return response, nil
}
