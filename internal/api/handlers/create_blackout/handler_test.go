package create_blackout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/studio-booking/internal/service/schedule"
	"github.com/m04kA/studio-booking/internal/service/schedule/models"
	"github.com/m04kA/studio-booking/pkg/logger"
)

type fakeSchedule struct {
	err error
}

func (f fakeSchedule) CreateBlackout(ctx context.Context, req *models.CreateBlackoutRequest) (*models.BlackoutResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BlackoutResponse{ID: 1, Date: req.Date, Reason: req.Reason}, nil
}

func TestHandle(t *testing.T) {
	body := `{"date":"2026-12-25","reason":"Navidad"}`

	tests := []struct {
		name       string
		err        error
		body       string
		wantStatus int
	}{
		{"created", nil, body, http.StatusCreated},
		{"bad body", nil, `[]`, http.StatusBadRequest},
		{"already closed", schedule.ErrBlackoutExists, body, http.StatusConflict},
		{"invalid date", schedule.ErrInvalidInput, body, http.StatusBadRequest},
		{"internal", schedule.ErrInternal, body, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(fakeSchedule{err: tt.err}, logger.NewNop()).
				Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/blackouts", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
