package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	var got SendRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/send/message/", r.URL.Path)

		login, password, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "bot", login)
		assert.Equal(t, "secret", password)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cl := New(srv.URL, "bot", "secret")
	err := cl.Send(context.Background(), "557185350004", "Oi!")

	require.NoError(t, err)
	assert.Equal(t, "557185350004", got.Phone)
	assert.Equal(t, "Oi!", got.Text)
}

func TestSetHook(t *testing.T) {
	var got HookSetupRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/hook/", r.URL.Path)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cl := New(srv.URL, "bot", "secret")
	_, err := cl.SetHook("https://bot.example.com/whatsapp-push/receive/")

	require.NoError(t, err)
	assert.Equal(t, "bot", got.Type)
	assert.Equal(t, "https://bot.example.com/whatsapp-push/receive/", got.Url)
}

func TestCheckNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/number/status/", r.URL.Path)
		assert.Equal(t, "557185350004", r.URL.Query().Get("phone"))

		_, _ = w.Write([]byte(`{"exists": true}`))
	}))
	defer srv.Close()

	cl := New(srv.URL, "bot", "secret")
	exists, err := cl.CheckNumber(context.Background(), "557185350004")

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestInvokeHttpError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "hook already registered", http.StatusConflict)
	}))
	defer srv.Close()

	cl := New(srv.URL, "bot", "secret")
	_, err := cl.SetHook("https://bot.example.com/whatsapp-push/receive/")

	var httpErr *HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
	assert.Contains(t, httpErr.Message, "hook already registered")
}

func TestMessageBody(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{
			"plain text",
			Message{Type: MESSAGE_TEXT, Text: "  cardápio  "},
			"cardápio",
		},
		{
			"location drops the place name line",
			Message{Type: MESSAGE_LOCATION, Location: &Location{
				Description: "Pizzaria X\nRua das Flores, 123, Centro",
			}},
			"Rua das Flores, 123, Centro",
		},
		{
			"single line location kept",
			Message{Type: MESSAGE_LOCATION, Location: &Location{
				Description: "Rua das Flores, 123, Centro",
			}},
			"Rua das Flores, 123, Centro",
		},
		{
			"location without payload falls back to text",
			Message{Type: MESSAGE_LOCATION, Text: "Rua das Flores, 123"},
			"Rua das Flores, 123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.msg.Body())
		})
	}
}
