package callmebot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	var query map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/whatsapp.php", r.URL.Path)
		q := r.URL.Query()
		query = map[string]string{"phone": q.Get("phone"), "text": q.Get("text"), "apikey": q.Get("apikey")}
		_, _ = w.Write([]byte("Message queued. You will receive it in a few seconds."))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "+5491100000000", "123456", time.Second)

	require.NoError(t, c.SendMessage(context.Background(), "NUEVO TURNO!\nAna & Co"))
	assert.Equal(t, "+5491100000000", query["phone"])
	assert.Equal(t, "NUEVO TURNO!\nAna & Co", query["text"])
	assert.Equal(t, "123456", query["apikey"])
}

func TestSendMessage_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") == "bad" {
			_, _ = w.Write([]byte("APIKey is invalid. Please check it."))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "+54911", "bad", time.Second).SendMessage(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrInvalidResponse)

	err = NewClient(srv.URL, "+54911", "good", time.Second).SendMessage(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrInvalidResponse)

	err = NewClient(srv.URL, "", "good", time.Second).SendMessage(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
