package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/m04kA/studio-booking/internal/domain"
	"github.com/m04kA/studio-booking/internal/integrations/resend"
	"github.com/m04kA/studio-booking/pkg/logger"
	"github.com/m04kA/studio-booking/pkg/ptr"
)

type fakeEmail struct {
	mu      sync.Mutex
	enabled bool
	err     error
	block   chan struct{}
	sent    []resend.Email
}

func (f *fakeEmail) Enabled() bool { return f.enabled }

func (f *fakeEmail) Send(ctx context.Context, email resend.Email) (string, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, email)
	if f.err != nil {
		return "", f.err
	}
	return "email-id", nil
}

func (f *fakeEmail) emails() []resend.Email {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]resend.Email(nil), f.sent...)
}

type fakeWhatsApp struct {
	mu      sync.Mutex
	enabled bool
	err     error
	texts   []string
}

func (f *fakeWhatsApp) Enabled() bool { return f.enabled }

func (f *fakeWhatsApp) SendMessage(ctx context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return f.err
}

func (f *fakeWhatsApp) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

type fakeMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{counts: make(map[string]int)}
}

func (m *fakeMetrics) IncNotification(channel, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[channel+"/"+outcome]++
}

func (m *fakeMetrics) get(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key]
}

func testDetails() domain.AppointmentDetails {
	return domain.AppointmentDetails{
		Appointment: domain.Appointment{
			ID:        42,
			Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			StartTime: "10:30",
			Status:    domain.StatusPending,
		},
		ClientName:      "Ana Gómez",
		ClientEmail:     "ana@example.com",
		ClientPhone:     ptr.Ptr("+5491122334455"),
		ServiceName:     "Limpieza facial",
		DurationMinutes: 60,
	}
}

func waitDone(t *testing.T, d *Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Wait(ctx))
}

func TestAppointmentCreated_SendsAllChannels(t *testing.T) {
	email := &fakeEmail{enabled: true}
	wa := &fakeWhatsApp{enabled: true}
	m := newFakeMetrics()

	d := NewDispatcher(email, wa, Config{
		AdminEmail:      "owner@studio.com",
		StudioName:      "Estudio",
		Timeout:         time.Second,
		WhatsAppLimiter: rate.NewLimiter(rate.Inf, 1),
	}, m, logger.NewNop())

	d.AppointmentCreated(testDetails())
	waitDone(t, d)

	sent := email.emails()
	require.Len(t, sent, 2)
	assert.Equal(t, []string{"owner@studio.com"}, sent[0].To)
	assert.Contains(t, sent[0].HTML, "Ana Gómez")
	assert.Contains(t, sent[0].HTML, "+5491122334455")
	assert.Equal(t, []string{"ana@example.com"}, sent[1].To)
	assert.Contains(t, sent[1].Subject, "Estudio")
	assert.Contains(t, sent[1].HTML, "10:30")

	texts := wa.messages()
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "NUEVO TURNO")
	assert.Contains(t, texts[0], "Limpieza facial")
	assert.Contains(t, texts[0], "2026-03-10 a las 10:30hs")

	assert.Equal(t, 1, m.get(ChannelAdminEmail+"/"+OutcomeSent))
	assert.Equal(t, 1, m.get(ChannelClientEmail+"/"+OutcomeSent))
	assert.Equal(t, 1, m.get(ChannelWhatsApp+"/"+OutcomeSent))
}

func TestAppointmentCreated_DoesNotBlockCaller(t *testing.T) {
	email := &fakeEmail{enabled: true, block: make(chan struct{})}
	d := NewDispatcher(email, nil, Config{AdminEmail: "owner@studio.com", Timeout: time.Second}, nil, logger.NewNop())

	returned := make(chan struct{})
	go func() {
		d.AppointmentCreated(testDetails())
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("AppointmentCreated blocked on delivery")
	}

	close(email.block)
	waitDone(t, d)
	assert.Len(t, email.emails(), 2)
}

func TestAppointmentCreated_FailureIsIsolated(t *testing.T) {
	email := &fakeEmail{enabled: true, err: errors.New("resend down")}
	wa := &fakeWhatsApp{enabled: true}
	m := newFakeMetrics()

	d := NewDispatcher(email, wa, Config{AdminEmail: "owner@studio.com", Timeout: time.Second}, m, logger.NewNop())

	d.AppointmentCreated(testDetails())
	waitDone(t, d)

	assert.Equal(t, 1, m.get(ChannelAdminEmail+"/"+OutcomeFailed))
	assert.Equal(t, 1, m.get(ChannelClientEmail+"/"+OutcomeFailed))
	assert.Len(t, wa.messages(), 1)
	assert.Equal(t, 1, m.get(ChannelWhatsApp+"/"+OutcomeSent))
}

func TestAppointmentCreated_SkipsDisabledChannels(t *testing.T) {
	email := &fakeEmail{enabled: false}
	wa := &fakeWhatsApp{enabled: false}
	m := newFakeMetrics()

	d := NewDispatcher(email, wa, Config{AdminEmail: "owner@studio.com"}, m, logger.NewNop())

	d.AppointmentCreated(testDetails())
	waitDone(t, d)

	assert.Empty(t, email.emails())
	assert.Empty(t, wa.messages())
	assert.Equal(t, 1, m.get(ChannelAdminEmail+"/"+OutcomeSkipped))
	assert.Equal(t, 1, m.get(ChannelClientEmail+"/"+OutcomeSkipped))
	assert.Equal(t, 1, m.get(ChannelWhatsApp+"/"+OutcomeSkipped))
}

func TestAppointmentCreated_NoAdminEmailConfigured(t *testing.T) {
	email := &fakeEmail{enabled: true}
	m := newFakeMetrics()

	d := NewDispatcher(email, nil, Config{}, m, logger.NewNop())

	d.AppointmentCreated(testDetails())
	waitDone(t, d)

	sent := email.emails()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"ana@example.com"}, sent[0].To)
	assert.Equal(t, 1, m.get(ChannelAdminEmail+"/"+OutcomeSkipped))
}

func TestWhatsAppText_WithoutPhone(t *testing.T) {
	details := testDetails()
	details.ClientPhone = nil

	text := whatsAppText(details)
	assert.Contains(t, text, noPhone)
}

func TestAdminEmailHTML_EscapesInput(t *testing.T) {
	details := testDetails()
	details.ClientName = "<script>x</script>"

	body := adminEmailHTML(details)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestWait_RespectsContext(t *testing.T) {
	email := &fakeEmail{enabled: true, block: make(chan struct{})}
	d := NewDispatcher(email, nil, Config{AdminEmail: "owner@studio.com", Timeout: time.Second}, nil, logger.NewNop())

	d.AppointmentCreated(testDetails())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Wait(ctx), context.DeadlineExceeded)

	close(email.block)
	waitDone(t, d)
}
