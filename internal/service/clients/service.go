package clients

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/studio-booking/internal/domain"
	clientRepo "github.com/m04kA/studio-booking/internal/infra/storage/client"
	"github.com/m04kA/studio-booking/internal/service/clients/models"
)

// Service сервис клиентов студии
type Service struct {
	clientRepo ClientRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(clientRepo ClientRepository, logger Logger) *Service {
	return &Service{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// Register находит клиента по email или создает нового
// created = true, если клиент был создан этим вызовом.
// Данные существующего клиента не перезаписываются.
func (s *Service) Register(ctx context.Context, req *models.RegisterClientRequest) (*models.ClientResponse, bool, error) {
	client, err := normalize(req)
	if err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, false, err
	}

	existing, err := s.clientRepo.GetByEmail(ctx, client.Email)
	switch {
	case err == nil:
		s.logger.Info("Register: client id=%d already exists", existing.ID)
		return models.FromDomainClient(existing), false, nil
	case !errors.Is(err, clientRepo.ErrClientNotFound):
		s.logger.Error("Register: failed to get client by email: %v", err)
		return nil, false, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	created, err := s.clientRepo.Create(ctx, client)
	if errors.Is(err, clientRepo.ErrDuplicateEmail) {
		// Параллельная регистрация с тем же email
		existing, getErr := s.clientRepo.GetByEmail(ctx, client.Email)
		if getErr != nil {
			s.logger.Error("Register: failed to reload client after duplicate email: %v", getErr)
			return nil, false, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, getErr)
		}
		return models.FromDomainClient(existing), false, nil
	}
	if err != nil {
		s.logger.Error("Register: failed to create client: %v", err)
		return nil, false, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: client id=%d created", created.ID)
	return models.FromDomainClient(created), true, nil
}

// normalize валидирует форму и подставляет фамилию по умолчанию
func normalize(req *models.RegisterClientRequest) (*domain.Client, error) {
	firstName := strings.TrimSpace(req.FirstName)
	if utf8.RuneCountInString(firstName) < domain.MinClientNameLength {
		return nil, fmt.Errorf("%w: firstName must be at least %d characters", ErrInvalidInput, domain.MinClientNameLength)
	}

	lastName := strings.TrimSpace(req.LastName)
	if lastName == "" {
		lastName = domain.DefaultClientLastName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: invalid email %q", ErrInvalidInput, req.Email)
	}

	var phone *string
	if req.Phone != nil {
		if p := strings.TrimSpace(*req.Phone); p != "" {
			phone = &p
		}
	}

	return &domain.Client{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
	}, nil
}
