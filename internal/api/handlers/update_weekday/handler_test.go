package update_weekday

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/studio-booking/internal/service/schedule"
	"github.com/m04kA/studio-booking/internal/service/schedule/models"
	"github.com/m04kA/studio-booking/pkg/logger"
)

type fakeSchedule struct {
	weekday int
	req     *models.UpsertWeekdayRequest
	err     error
}

func (f *fakeSchedule) UpsertWeekday(ctx context.Context, weekday int, req *models.UpsertWeekdayRequest) (*models.WeekdayResponse, error) {
	f.weekday = weekday
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.WeekdayResponse{Weekday: weekday, Active: req.Active, OpensAt: req.OpensAt, ClosesAt: req.ClosesAt}, nil
}

func put(svc ScheduleService, weekday, body string) *httptest.ResponseRecorder {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body)), map[string]string{"weekday": weekday})
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Saves(t *testing.T) {
	svc := &fakeSchedule{}
	rec := put(svc, "0", `{"active":true,"opensAt":"09:00","closesAt":"18:00"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, svc.weekday)
	require.NotNil(t, svc.req)
	assert.Equal(t, "18:00", svc.req.ClosesAt)
}

func TestHandle_Errors(t *testing.T) {
	body := `{"active":true,"opensAt":"18:00","closesAt":"09:00"}`

	assert.Equal(t, http.StatusBadRequest, put(&fakeSchedule{}, "7", body).Code)
	assert.Equal(t, http.StatusBadRequest, put(&fakeSchedule{}, "mon", body).Code)
	assert.Equal(t, http.StatusBadRequest, put(&fakeSchedule{}, "1", `{`).Code)
	assert.Equal(t, http.StatusBadRequest,
		put(&fakeSchedule{err: fmt.Errorf("%w: opensAt must be before closesAt", schedule.ErrInvalidInput)}, "1", body).Code)
	assert.Equal(t, http.StatusInternalServerError, put(&fakeSchedule{err: schedule.ErrInternal}, "1", body).Code)
}
