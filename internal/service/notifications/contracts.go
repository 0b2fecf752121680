package notifications

import (
	"context"

	"github.com/m04kA/studio-booking/internal/integrations/resend"
)

// EmailSender отправка писем (Resend)
type EmailSender interface {
	Enabled() bool
	Send(ctx context.Context, email resend.Email) (string, error)
}

// WhatsAppSender отправка WhatsApp сообщений владельцу (CallMeBot)
type WhatsAppSender interface {
	Enabled() bool
	SendMessage(ctx context.Context, text string) error
}

// Metrics счетчик исходов отправки уведомлений
type Metrics interface {
	IncNotification(channel, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
