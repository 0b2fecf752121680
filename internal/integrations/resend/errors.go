package resend

import "errors"

var (
	// ErrNotConfigured возвращается, если API ключ не задан
	ErrNotConfigured = errors.New("resend client: api key is not configured")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("resend client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от Resend
	ErrInvalidResponse = errors.New("resend client: invalid response")
)
