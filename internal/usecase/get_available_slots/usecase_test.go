package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/studio-booking/internal/domain"
	catalogRepo "github.com/m04kA/studio-booking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/studio-booking/internal/infra/storage/schedule"
	"github.com/m04kA/studio-booking/pkg/logger"
	"github.com/m04kA/studio-booking/pkg/types"
)

type fakeSchedule struct {
	byWeekday map[int]*domain.WeekdaySchedule
	blackouts map[string]bool
	err       error
}

func (f *fakeSchedule) GetByWeekday(_ context.Context, weekday int) (*domain.WeekdaySchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.byWeekday[weekday]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return s, nil
}

func (f *fakeSchedule) IsBlackout(_ context.Context, date time.Time) (bool, error) {
	return f.blackouts[date.Format(domain.DateFormat)], nil
}

type fakeServices map[int64]*domain.Service

func (f fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

type fakeAppointments struct {
	byDate map[string][]domain.OccupiedInterval
	err    error
	calls  int
}

func (f *fakeAppointments) GetOccupiedIntervals(_ context.Context, date time.Time) ([]domain.OccupiedInterval, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.byDate[date.Format(domain.DateFormat)], nil
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

// 2026-03-11 - среда
var wednesday = time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

func newTestUseCase(schedule *fakeSchedule, services fakeServices, appts *fakeAppointments, now time.Time) *UseCase {
	uc := NewUseCase(schedule, services, appts, time.UTC, logger.NewNop())
	uc.timeProvider = fixedClock(now)
	return uc
}

func defaultSchedule() *fakeSchedule {
	return &fakeSchedule{
		byWeekday: map[int]*domain.WeekdaySchedule{
			domain.WeekdayIndex(wednesday): {Weekday: 2, Active: true, OpensAt: "09:00", ClosesAt: "12:00"},
		},
		blackouts: map[string]bool{},
	}
}

func defaultServices() fakeServices {
	return fakeServices{
		1: {ID: 1, Name: "Limpieza facial", DurationMinutes: 60, Active: true},
		2: {ID: 2, Name: "Retirada", DurationMinutes: 30, Active: false},
	}
}

func TestExecute_ReturnsFreeStarts(t *testing.T) {
	appts := &fakeAppointments{byDate: map[string][]domain.OccupiedInterval{
		"2026-03-11": {{StartTime: "10:00", DurationMinutes: 30}},
	}}
	uc := newTestUseCase(defaultSchedule(), defaultServices(), appts, wednesday.Add(-24*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: wednesday})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.DurationMinutes)
	// 09:00-10:00 только касается занятого [10:00,10:30)
	assert.Equal(t, []types.TimeString{"09:00", "10:30", "11:00"}, resp.Slots)
}

func TestExecute_PastDateIsEmpty(t *testing.T) {
	appts := &fakeAppointments{}
	uc := newTestUseCase(defaultSchedule(), defaultServices(), appts, wednesday.Add(48*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: wednesday})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.Zero(t, appts.calls)
}

func TestExecute_PastDateIsEmptyEvenForUnknownService(t *testing.T) {
	uc := newTestUseCase(defaultSchedule(), defaultServices(), &fakeAppointments{}, wednesday.Add(48*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 404, Date: wednesday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BlackoutIsEmpty(t *testing.T) {
	schedule := defaultSchedule()
	schedule.blackouts["2026-03-11"] = true
	appts := &fakeAppointments{}
	uc := newTestUseCase(schedule, defaultServices(), appts, wednesday.Add(-time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: wednesday})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.Zero(t, appts.calls)
}

func TestExecute_ClosedOrMissingWeekdayIsEmpty(t *testing.T) {
	inactive := defaultSchedule()
	inactive.byWeekday[domain.WeekdayIndex(wednesday)].Active = false

	missing := &fakeSchedule{byWeekday: map[int]*domain.WeekdaySchedule{}}

	for name, schedule := range map[string]*fakeSchedule{"inactive": inactive, "missing": missing} {
		t.Run(name, func(t *testing.T) {
			uc := newTestUseCase(schedule, defaultServices(), &fakeAppointments{}, wednesday.Add(-time.Hour))

			resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: wednesday})
			require.NoError(t, err)
			assert.Empty(t, resp.Slots)
		})
	}
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(defaultSchedule(), defaultServices(), &fakeAppointments{}, wednesday.Add(-time.Hour))

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 99, Date: wednesday})
	assert.ErrorIs(t, err, ErrServiceNotFound)

}

func TestExecute_InactiveServiceStillHasSlots(t *testing.T) {
	uc := newTestUseCase(defaultSchedule(), defaultServices(), &fakeAppointments{}, wednesday.Add(-time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 2, Date: wednesday})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, resp.Slots)
	assert.Equal(t, 30, resp.DurationMinutes)
}

func TestExecute_TodayUsesStudioClock(t *testing.T) {
	// 10:05 по времени студии
	now := time.Date(2026, 3, 11, 10, 5, 0, 0, time.UTC)
	uc := newTestUseCase(defaultSchedule(), defaultServices(), &fakeAppointments{}, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: wednesday})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"10:30", "11:00"}, resp.Slots)
}

func TestExecute_StorageFailureIsInternal(t *testing.T) {
	appts := &fakeAppointments{err: errors.New("connection refused")}
	uc := newTestUseCase(defaultSchedule(), defaultServices(), appts, wednesday.Add(-time.Hour))

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: wednesday})
	assert.ErrorIs(t, err, ErrInternal)

	schedule := defaultSchedule()
	schedule.err = errors.New("timeout")
	uc = newTestUseCase(schedule, defaultServices(), &fakeAppointments{}, wednesday.Add(-time.Hour))

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1, Date: wednesday})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(defaultSchedule(), defaultServices(), &fakeAppointments{}, wednesday)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 0, Date: wednesday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
