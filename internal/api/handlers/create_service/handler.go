package create_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/studio-booking/internal/api/handlers"
	"github.com/m04kA/studio-booking/internal/service/catalog"
	"github.com/m04kA/studio-booking/internal/service/catalog/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("POST /admin/services - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /admin/services - Failed to create service: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/services - Service created: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
