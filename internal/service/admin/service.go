package admin

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Session выданная администратору сессия
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Service аутентификация администратора по паролю из конфига
// Сессии хранятся в памяти процесса и теряются при перезапуске.
type Service struct {
	password []byte
	ttl      time.Duration
	now      func() time.Time
	logger   Logger

	mu       sync.Mutex
	sessions map[string]time.Time
}

// NewService создает сервис сессий администратора
func NewService(password string, ttl time.Duration, logger Logger) *Service {
	return &Service{
		password: []byte(password),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
		sessions: make(map[string]time.Time),
	}
}

// Login проверяет пароль и выдает новую сессию
func (s *Service) Login(password string) (*Session, error) {
	if len(s.password) == 0 || subtle.ConstantTimeCompare([]byte(password), s.password) != 1 {
		s.logger.Warn("Login: invalid admin password")
		return nil, ErrInvalidPassword
	}

	session := &Session{
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(s.ttl),
	}

	s.mu.Lock()
	s.purgeExpiredLocked()
	s.sessions[session.Token] = session.ExpiresAt
	s.mu.Unlock()

	s.logger.Info("Login: admin session issued, expires at %s", session.ExpiresAt.Format(time.RFC3339))
	return session, nil
}

// Validate проверяет, что сессия существует и не истекла
func (s *Service) Validate(token string) error {
	if token == "" {
		return ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.sessions[token]
	if !ok {
		return ErrSessionNotFound
	}
	if !s.now().Before(expiresAt) {
		delete(s.sessions, token)
		return ErrSessionNotFound
	}

	return nil
}

// Logout завершает сессию, неизвестный токен игнорируется
func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func (s *Service) purgeExpiredLocked() {
	now := s.now()
	for token, expiresAt := range s.sessions {
		if !now.Before(expiresAt) {
			delete(s.sessions, token)
		}
	}
}
