package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/studio-booking/internal/api/handlers"
)

const msgUnauthorized = "требуется вход администратора"

// SessionValidator проверка токена сессии администратора
type SessionValidator interface {
	Validate(token string) error
}

// AdminAuth пропускает запрос только с действующей cookie admin_session
func AdminAuth(sessions SessionValidator) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(handlers.AdminSessionCookie)
			if err != nil || sessions.Validate(cookie.Value) != nil {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
