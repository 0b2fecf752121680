package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/studio-booking/internal/domain"
	appointmentRepo "github.com/m04kA/studio-booking/internal/infra/storage/appointment"
	"github.com/m04kA/studio-booking/internal/service/appointments/models"
	"github.com/m04kA/studio-booking/pkg/logger"
	"github.com/m04kA/studio-booking/pkg/ptr"
)

type fakeRepo struct {
	items      map[int64]*domain.AppointmentDetails
	lastFilter domain.AppointmentsFilter
	listErr    error
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.AppointmentDetails, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.AppointmentDetails, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.AppointmentDetails, 0, len(f.items))
	for _, a := range f.items {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	a, ok := f.items[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.Status = status
	return nil
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func newService(items ...*domain.AppointmentDetails) (*Service, *fakeRepo) {
	repo := &fakeRepo{items: map[int64]*domain.AppointmentDetails{}}
	for _, a := range items {
		repo.items[a.ID] = a
	}
	return NewService(repo, passTx{}, logger.NewNop()), repo
}

func appointmentWithStatus(id int64, status domain.AppointmentStatus) *domain.AppointmentDetails {
	return &domain.AppointmentDetails{
		Appointment: domain.Appointment{
			ID:        id,
			Date:      time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
			StartTime: "10:00",
			Status:    status,
		},
		ClientName:      "Ana Gómez",
		ServiceName:     "Limpieza facial",
		DurationMinutes: 60,
	}
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    domain.AppointmentStatus
		to      string
		wantErr error
	}{
		{domain.StatusPending, "confirmed", nil},
		{domain.StatusPending, "cancelled", nil},
		{domain.StatusConfirmed, "cancelled", nil},
		{domain.StatusConfirmed, "pending", ErrInvalidTransition},
		{domain.StatusCancelled, "pending", ErrInvalidTransition},
		{domain.StatusCancelled, "confirmed", ErrInvalidTransition},
		{domain.StatusPending, "done", ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+tt.to, func(t *testing.T) {
			svc, repo := newService(appointmentWithStatus(1, tt.from))

			resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, repo.items[1].Status)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
			assert.Equal(t, "2026-03-11", resp.Date)
			assert.Equal(t, domain.AppointmentStatus(tt.to), repo.items[1].Status)
		})
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc, _ := newService()

	_, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestList_BuildsFilter(t *testing.T) {
	svc, repo := newService(appointmentWithStatus(1, domain.StatusPending))

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
		From:   ptr.Ptr("2026-03-01"),
		To:     ptr.Ptr("2026-03-31"),
		Status: ptr.Ptr("pending"),
	})
	require.NoError(t, err)

	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, "Limpieza facial", resp.Appointments[0].ServiceName)

	require.NotNil(t, repo.lastFilter.From)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusPending, *repo.lastFilter.Status)
	assert.Equal(t, 31, repo.lastFilter.To.Day())
}

func TestList_InvalidFilter(t *testing.T) {
	svc, _ := newService()

	for _, req := range []*models.ListAppointmentsRequest{
		{From: ptr.Ptr("01/03/2026")},
		{Status: ptr.Ptr("archived")},
		{From: ptr.Ptr("2026-03-10"), To: ptr.Ptr("2026-03-01")},
	} {
		_, err := svc.List(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestList_RepositoryError(t *testing.T) {
	svc, repo := newService()
	repo.listErr = errors.New("boom")

	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{})
	assert.ErrorIs(t, err, ErrInternal)
}
