package admin_login

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/studio-booking/internal/api/handlers"
	"github.com/m04kA/studio-booking/internal/service/admin"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPassword    = "неверный пароль"
)

type Handler struct {
	service       SessionService
	secureCookies bool
	logger        Logger
}

func NewHandler(service SessionService, secureCookies bool, logger Logger) *Handler {
	return &Handler{
		service:       service,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// Handle POST /api/v1/admin/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.Login(req.Password)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidPassword) {
			h.logger.Warn("POST /admin/login - Invalid password from %s", r.RemoteAddr)
			handlers.RespondUnauthorized(w, msgInvalidPassword)
			return
		}
		h.logger.Error("POST /admin/login - Failed to create session: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     handlers.AdminSessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("POST /admin/login - Admin logged in")
	handlers.RespondJSON(w, http.StatusOK, LoginResponse{ExpiresAt: session.ExpiresAt.Format(time.RFC3339)})
}
