package list_testimonials

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/studio-booking/internal/service/testimonials/models"
	"github.com/m04kA/studio-booking/pkg/logger"
)

type fakeTestimonials struct {
	onlyActive *bool
	err        error
}

func (f *fakeTestimonials) List(ctx context.Context, onlyActive bool) (*models.TestimonialListResponse, error) {
	f.onlyActive = &onlyActive
	if f.err != nil {
		return nil, f.err
	}
	return &models.TestimonialListResponse{Testimonials: []models.TestimonialResponse{
		{ID: 2, Name: "Lucía", Quote: "Volveré", Active: true},
	}}, nil
}

func TestHandle_PassesVisibility(t *testing.T) {
	for _, onlyActive := range []bool{true, false} {
		svc := &fakeTestimonials{}
		rec := httptest.NewRecorder()
		NewHandler(svc, onlyActive, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/testimonials", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		if assert.NotNil(t, svc.onlyActive) {
			assert.Equal(t, onlyActive, *svc.onlyActive)
		}

		var body models.TestimonialListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Len(t, body.Testimonials, 1)
		assert.Equal(t, "Volveré", body.Testimonials[0].Quote)
	}
}

func TestHandle_InternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeTestimonials{err: errors.New("db down")}, true, logger.NewNop()).
		Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/testimonials", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
