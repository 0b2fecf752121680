package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/studio-booking/internal/domain"
	appointmentRepo "github.com/m04kA/studio-booking/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/studio-booking/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/studio-booking/internal/infra/storage/client"
)

// UseCase use case для создания записи (защита от двойного бронирования)
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	clientRepo      ClientRepository
	txManager       TransactionManager
	notifier        Notifier
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// notifier и metrics могут быть nil
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		clientRepo:      clientRepo,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
//
// Проверка занятости и вставка идут в одной транзакции. Предварительная проверка
// дает понятный ответ, а частичный уникальный индекс (appointment_date, start_time)
// среди неотменённых записей отсекает конкурентную вставку на уровне БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		uc.record(outcomeRejected)
		return nil, err
	}

	dateStr := req.Date.Format(domain.DateFormat)
	uc.logger.Info("CreateAppointment: client=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.ServiceID, dateStr, req.StartTime)

	// 2. Услуга
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			uc.record(outcomeRejected)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		uc.record(outcomeFailed)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
		uc.record(outcomeRejected)
		return nil, ErrServiceNotFound
	}

	// 3. Клиент
	client, err := uc.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			uc.logger.Warn("CreateAppointment: client id=%d not found", req.ClientID)
			uc.record(outcomeRejected)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get client id=%d: %v", req.ClientID, err)
		uc.record(outcomeFailed)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	var created *domain.Appointment

	// 4. Проверка слота и вставка в транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		taken, err := uc.appointmentRepo.ExistsActiveAt(txCtx, req.Date, req.StartTime)
		if err != nil {
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}
		if taken {
			return ErrSlotNotAvailable
		}

		appt, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ClientID:  client.ID,
			ServiceID: service.ID,
			Date:      req.Date,
			StartTime: req.StartTime,
			Status:    domain.StatusPending,
			Notes:     normalizeOptional(req.Notes),
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return ErrSlotNotAvailable
			}
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		created = appt
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Warn("CreateAppointment: slot %s %s is already taken", dateStr, req.StartTime)
			uc.record(outcomeConflict)
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Error("CreateAppointment: failed to book %s %s: %v", dateStr, req.StartTime, err)
		uc.record(outcomeFailed)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d (%s %s)", created.ID, dateStr, req.StartTime)
	uc.record(outcomeCreated)

	// 5. Уведомления после фиксации транзакции, без ожидания
	if uc.notifier != nil {
		uc.notifier.AppointmentCreated(buildDetails(created, client, service, req))
	}

	return &Response{
		ID:              created.ID,
		ClientID:        created.ClientID,
		ServiceID:       created.ServiceID,
		Date:            created.Date,
		StartTime:       created.StartTime,
		Status:          created.Status,
		Notes:           created.Notes,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		CreatedAt:       created.CreatedAt,
	}, nil
}

func (uc *UseCase) record(outcome string) {
	if uc.metrics != nil {
		uc.metrics.IncAppointment(outcome)
	}
}

// buildDetails собирает данные для уведомлений
// Имя и телефон из формы имеют приоритет над карточкой клиента
func buildDetails(appt *domain.Appointment, client *domain.Client, service *domain.Service, req *Request) domain.AppointmentDetails {
	details := domain.AppointmentDetails{
		Appointment:     *appt,
		ClientName:      client.FullName(),
		ClientEmail:     client.Email,
		ClientPhone:     client.Phone,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
	}

	if name := normalizeOptional(req.ClientName); name != nil {
		details.ClientName = *name
	}
	if phone := normalizeOptional(req.ClientPhone); phone != nil {
		details.ClientPhone = phone
	}

	return details
}
