package callmebot

import "errors"

var (
	// ErrNotConfigured возвращается, если не заданы номер или API ключ
	ErrNotConfigured = errors.New("callmebot client: phone or api key is not configured")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("callmebot client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от CallMeBot
	ErrInvalidResponse = errors.New("callmebot client: invalid response")
)
