package delete_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/studio-booking/internal/api/handlers"
	"github.com/m04kA/studio-booking/internal/service/catalog"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgServiceNotFound  = "услуга не найдена"
	msgServiceInUse     = "на услугу есть записи, её можно только деактивировать"
)

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

// Handle DELETE /api/v1/admin/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("DELETE /admin/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.service.Delete(r.Context(), serviceID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("DELETE /admin/services/{id} - Service not found: id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, catalog.ErrServiceInUse):
			h.logger.Warn("DELETE /admin/services/{id} - Service in use: id=%d", serviceID)
			handlers.RespondConflict(w, msgServiceInUse)
		default:
			h.logger.Error("DELETE /admin/services/{id} - Failed to delete service: id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/services/{id} - Service deleted: id=%d", serviceID)
	handlers.RespondNoContent(w)
}
