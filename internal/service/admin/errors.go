package admin

import "errors"

var (
	// ErrInvalidPassword возвращается при неверном пароле администратора
	ErrInvalidPassword = errors.New("admin: invalid password")

	// ErrSessionNotFound возвращается для неизвестной или истекшей сессии
	ErrSessionNotFound = errors.New("admin: session not found or expired")
)
