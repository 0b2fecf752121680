package admin_login

import "github.com/m04kA/studio-booking/internal/service/admin"

type SessionService interface {
	Login(password string) (*admin.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
