package register_client

import (
	"errors"
	"net/http"

	"github.com/m04kA/studio-booking/internal/api/handlers"
	"github.com/m04kA/studio-booking/internal/service/clients"
	"github.com/m04kA/studio-booking/internal/service/clients/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	service ClientsService
	logger  Logger
}

func NewHandler(service ClientsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/clients
// 201 - клиент создан, 200 - клиент с таким email уже был
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterClientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clients - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, created, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, clients.ErrInvalidInput) {
			h.logger.Warn("POST /clients - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /clients - Failed to register client: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	h.logger.Info("POST /clients - Client resolved: id=%d, created=%t", result.ID, created)
	handlers.RespondJSON(w, status, result)
}
