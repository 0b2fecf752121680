package delete_testimonial

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/studio-booking/internal/service/testimonials"
	"github.com/m04kA/studio-booking/pkg/logger"
)

type fakeTestimonials struct {
	err error
}

func (f fakeTestimonials) Delete(ctx context.Context, id int64) error {
	return f.err
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{"deleted", "4", nil, http.StatusNoContent},
		{"bad id", "-1", nil, http.StatusBadRequest},
		{"not found", "4", testimonials.ErrTestimonialNotFound, http.StatusNotFound},
		{"internal", "4", testimonials.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/", nil), map[string]string{"testimonialId": tt.id})
			rec := httptest.NewRecorder()
			NewHandler(fakeTestimonials{err: tt.err}, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
