package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/studio-booking/internal/domain"
	appointmentRepo "github.com/m04kA/studio-booking/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/studio-booking/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/studio-booking/internal/infra/storage/client"
	"github.com/m04kA/studio-booking/pkg/logger"
	"github.com/m04kA/studio-booking/pkg/ptr"
	"github.com/m04kA/studio-booking/pkg/types"
)

// memoryAppointments хранит записи в памяти и ведет себя как таблица
// с уникальным индексом (date, start_time) среди неотменённых записей
type memoryAppointments struct {
	mu      sync.Mutex
	items   []*domain.Appointment
	nextID  int64
	creates int

	// skipPrecheck имитирует конкурента, вставившего запись между проверкой и вставкой
	skipPrecheck bool
	createErr    error
}

func (m *memoryAppointments) ExistsActiveAt(_ context.Context, date time.Time, start types.TimeString) (bool, error) {
	if m.skipPrecheck {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findActive(date, start), nil
}

func (m *memoryAppointments) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.creates++
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.findActive(appt.Date, appt.StartTime) {
		return nil, appointmentRepo.ErrSlotTaken
	}

	m.nextID++
	appt.ID = m.nextID
	appt.CreatedAt = time.Now()
	m.items = append(m.items, appt)
	return appt, nil
}

func (m *memoryAppointments) findActive(date time.Time, start types.TimeString) bool {
	for _, a := range m.items {
		if a.IsActive() && a.Date.Equal(date) && a.StartTime == start {
			return true
		}
	}
	return false
}

type fakeServices map[int64]*domain.Service

func (f fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

type fakeClients map[int64]*domain.Client

func (f fakeClients) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	if c, ok := f[id]; ok {
		return c, nil
	}
	return nil, clientRepo.ErrClientNotFound
}

type passTx struct {
	calls    atomic.Int32
	beginErr error
}

func (p *passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls.Add(1)
	if p.beginErr != nil {
		return p.beginErr
	}
	return fn(ctx)
}

type recordingNotifier struct {
	sent []domain.AppointmentDetails
}

func (n *recordingNotifier) AppointmentCreated(details domain.AppointmentDetails) {
	n.sent = append(n.sent, details)
}

type countingMetrics map[string]int

func (c countingMetrics) IncAppointment(outcome string) { c[outcome]++ }

type fixture struct {
	appts    *memoryAppointments
	tx       *passTx
	notifier *recordingNotifier
	metrics  countingMetrics
	uc       *UseCase
}

var bookingDate = time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		appts:    &memoryAppointments{},
		tx:       &passTx{},
		notifier: &recordingNotifier{},
		metrics:  countingMetrics{},
	}
	services := fakeServices{
		1: {ID: 1, Name: "Limpieza facial", DurationMinutes: 60, Active: true},
		2: {ID: 2, Name: "Peeling", DurationMinutes: 30, Active: false},
	}
	clients := fakeClients{
		7: {ID: 7, FirstName: "Ana", LastName: "Gómez", Email: "ana@example.com", Phone: ptr.Ptr("+5491100000001")},
	}
	f.uc = NewUseCase(f.appts, services, clients, f.tx, f.notifier, f.metrics, logger.NewNop())
	return f
}

func validRequest() *Request {
	return &Request{
		ServiceID: 1,
		ClientID:  7,
		Date:      bookingDate,
		StartTime: "10:00",
		Notes:     ptr.Ptr("  primera vez  "),
	}
}

func TestExecute_CreatesPendingAppointment(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, "Limpieza facial", resp.ServiceName)
	assert.Equal(t, 60, resp.DurationMinutes)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "primera vez", *resp.Notes)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "Ana Gómez", f.notifier.sent[0].ClientName)
	assert.Equal(t, "ana@example.com", f.notifier.sent[0].ClientEmail)
	assert.Equal(t, 1, f.metrics[outcomeCreated])
}

func TestExecute_RejectsOccupiedSlot(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	assert.Equal(t, 1, f.appts.creates, "second insert must not be attempted")
	assert.Len(t, f.notifier.sent, 1)
	assert.Equal(t, 1, f.metrics[outcomeConflict])
}

func TestExecute_AcceptsSlotWhoseOnlyOccupantIsCancelled(t *testing.T) {
	f := newFixture()
	f.appts.items = append(f.appts.items, &domain.Appointment{
		ID:        100,
		Date:      bookingDate,
		StartTime: "10:00",
		Status:    domain.StatusCancelled,
	})
	f.appts.nextID = 100

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.ID)
}

func TestExecute_UniqueViolationIsConflict(t *testing.T) {
	f := newFixture()
	f.appts.items = append(f.appts.items, &domain.Appointment{
		ID:        1,
		Date:      bookingDate,
		StartTime: "10:00",
		Status:    domain.StatusConfirmed,
	})
	f.appts.skipPrecheck = true

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.notifier.sent)
}

func TestExecute_PersistenceFailureIsNotConflict(t *testing.T) {
	f := newFixture()
	f.appts.createErr = fmt.Errorf("%w: connection reset", appointmentRepo.ErrExecQuery)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.notifier.sent)
	assert.Equal(t, 1, f.metrics[outcomeFailed])
}

func TestExecute_TransactionFailureIsInternal(t *testing.T) {
	f := newFixture()
	f.tx.beginErr = errors.New("txmanager: failed to begin transaction")

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.ServiceID = 99
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	req = validRequest()
	req.ServiceID = 2
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	req = validRequest()
	req.ClientID = 99
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClientNotFound)

	assert.Zero(t, f.tx.calls.Load())
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	cases := map[string]func(r *Request){
		"zero service": func(r *Request) { r.ServiceID = 0 },
		"zero client":  func(r *Request) { r.ClientID = -1 },
		"no date":      func(r *Request) { r.Date = time.Time{} },
		"no time":      func(r *Request) { r.StartTime = "" },
		"bad time":     func(r *Request) { r.StartTime = "9:00" },
		"long notes": func(r *Request) {
			long := make([]rune, domain.MaxNotesLength+1)
			for i := range long {
				long[i] = 'a'
			}
			r.Notes = ptr.Ptr(string(long))
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_FormContactOverridesClientCard(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.ClientName = ptr.Ptr("Ana G.")
	req.ClientPhone = ptr.Ptr("+5491199999999")

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "Ana G.", f.notifier.sent[0].ClientName)
	assert.Equal(t, "+5491199999999", *f.notifier.sent[0].ClientPhone)
}

func TestExecute_ConcurrentSubmissionsBookOnce(t *testing.T) {
	f := newFixture()
	f.uc.notifier = nil
	f.uc.metrics = nil

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), validRequest())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, conflicts int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrSlotNotAvailable):
			conflicts++
		}
	}

	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, conflicts)
}
