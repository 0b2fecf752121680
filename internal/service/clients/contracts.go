package clients

import (
	"context"

	"github.com/m04kA/studio-booking/internal/domain"
)

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
