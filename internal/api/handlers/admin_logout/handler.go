package admin_logout

import (
	"net/http"

	"github.com/m04kA/studio-booking/internal/api/handlers"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/logout
// Повторный выход без cookie тоже успешен
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(handlers.AdminSessionCookie); err == nil {
		h.service.Logout(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     handlers.AdminSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	h.logger.Info("POST /admin/logout - Admin logged out")
	handlers.RespondNoContent(w)
}
