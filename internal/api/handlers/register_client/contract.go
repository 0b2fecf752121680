package register_client

import (
	"context"

	"github.com/m04kA/studio-booking/internal/service/clients/models"
)

type ClientsService interface {
	Register(ctx context.Context, req *models.RegisterClientRequest) (*models.ClientResponse, bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
