package update_testimonial

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/studio-booking/internal/service/testimonials"
	"github.com/m04kA/studio-booking/internal/service/testimonials/models"
	"github.com/m04kA/studio-booking/pkg/logger"
)

type fakeTestimonials struct {
	err    error
	gotID  int64
	gotReq *models.UpdateTestimonialRequest
}

func (f *fakeTestimonials) Update(ctx context.Context, id int64, req *models.UpdateTestimonialRequest) (*models.TestimonialResponse, error) {
	f.gotID = id
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.TestimonialResponse{ID: id, Name: "Ana", Quote: "Genial"}, nil
}

func newRequest(id, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/testimonials/"+id, strings.NewReader(body))
	return mux.SetURLVars(req, map[string]string{"testimonialId": id})
}

func TestHandle_HidesTestimonial(t *testing.T) {
	svc := &fakeTestimonials{}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, newRequest("4", `{"active":false}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), svc.gotID)
	require.NotNil(t, svc.gotReq.Active)
	assert.False(t, *svc.gotReq.Active)
	assert.Nil(t, svc.gotReq.Quote)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		err        error
		wantStatus int
	}{
		{"bad id", "x", `{}`, nil, http.StatusBadRequest},
		{"broken body", "4", `{"active":`, nil, http.StatusBadRequest},
		{"not found", "4", `{"active":true}`, testimonials.ErrTestimonialNotFound, http.StatusNotFound},
		{"validation", "4", `{"quote":""}`, testimonials.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "4", `{"name":"Ana"}`, testimonials.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeTestimonials{err: tt.err}, logger.NewNop()).Handle(rec, newRequest(tt.id, tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
