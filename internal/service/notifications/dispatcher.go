package notifications

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/studio-booking/internal/domain"
	"github.com/m04kA/studio-booking/internal/integrations/resend"
)

// Каналы и исходы для метрик
const (
	ChannelAdminEmail  = "email_admin"
	ChannelClientEmail = "email_client"
	ChannelWhatsApp    = "whatsapp"

	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

// Config параметры диспетчера
type Config struct {
	AdminEmail string
	StudioName string
	// Timeout на всю отправку уведомлений по одной записи
	Timeout time.Duration
	// WhatsAppLimiter ограничивает частоту запросов к CallMeBot (nil - без ограничения)
	WhatsAppLimiter *rate.Limiter
}

// Dispatcher отправляет уведомления о новых записях в фоне
// Ошибки доставки логируются и никогда не возвращаются вызывающему коду.
type Dispatcher struct {
	email    EmailSender
	whatsapp WhatsAppSender
	cfg      Config
	metrics  Metrics
	logger   Logger

	wg sync.WaitGroup
}

// NewDispatcher создает диспетчер уведомлений
// email, whatsapp и metrics могут быть nil
func NewDispatcher(email EmailSender, whatsapp WhatsAppSender, cfg Config, metrics Metrics, logger Logger) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Dispatcher{
		email:    email,
		whatsapp: whatsapp,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
	}
}

// AppointmentCreated запускает отправку уведомлений и сразу возвращает управление
func (d *Dispatcher) AppointmentCreated(details domain.AppointmentDetails) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		// Запрос клиента уже завершен, поэтому контекст не наследуется
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout)
		defer cancel()

		d.dispatch(ctx, details)
	}()
}

// Wait ждет завершения отправок, запущенных до этого момента, либо отмены ctx
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, details domain.AppointmentDetails) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Notifications: panic while notifying appointment id=%d: %v", details.ID, r)
		}
	}()

	d.sendEmail(ctx, ChannelAdminEmail, details.ID, resend.Email{
		To:      []string{d.cfg.AdminEmail},
		Subject: adminEmailSubject(),
		HTML:    adminEmailHTML(details),
	})

	d.sendEmail(ctx, ChannelClientEmail, details.ID, resend.Email{
		To:      []string{details.ClientEmail},
		Subject: clientEmailSubject(d.cfg.StudioName),
		HTML:    clientEmailHTML(details),
	})

	d.sendWhatsApp(ctx, details)
}

func (d *Dispatcher) sendEmail(ctx context.Context, channel string, appointmentID int64, email resend.Email) {
	if d.email == nil || !d.email.Enabled() || len(email.To) == 0 || email.To[0] == "" {
		d.record(channel, OutcomeSkipped)
		return
	}

	if _, err := d.email.Send(ctx, email); err != nil {
		d.logger.Warn("Notifications: %s for appointment id=%d failed: %v", channel, appointmentID, err)
		d.record(channel, OutcomeFailed)
		return
	}

	d.record(channel, OutcomeSent)
}

func (d *Dispatcher) sendWhatsApp(ctx context.Context, details domain.AppointmentDetails) {
	if d.whatsapp == nil || !d.whatsapp.Enabled() {
		d.record(ChannelWhatsApp, OutcomeSkipped)
		return
	}

	if d.cfg.WhatsAppLimiter != nil {
		if err := d.cfg.WhatsAppLimiter.Wait(ctx); err != nil {
			d.logger.Warn("Notifications: whatsapp for appointment id=%d throttled: %v", details.ID, err)
			d.record(ChannelWhatsApp, OutcomeSkipped)
			return
		}
	}

	if err := d.whatsapp.SendMessage(ctx, whatsAppText(details)); err != nil {
		d.logger.Warn("Notifications: whatsapp for appointment id=%d failed: %v", details.ID, err)
		d.record(ChannelWhatsApp, OutcomeFailed)
		return
	}

	d.record(ChannelWhatsApp, OutcomeSent)
}

func (d *Dispatcher) record(channel, outcome string) {
	if d.metrics != nil {
		d.metrics.IncNotification(channel, outcome)
	}
}
