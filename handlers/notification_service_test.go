package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsAppNotifierSend(t *testing.T) {
	var got map[string]string
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWhatsAppNotifier(srv.URL, "secret-key")
	err := n.Send("9876543210", "Soni Painting - Quotation QUO-2024-0001")
	require.NoError(t, err)
	assert.Equal(t, "9876543210", got["phone"])
	assert.Equal(t, "Soni Painting - Quotation QUO-2024-0001", got["message"])
	assert.Equal(t, "Bearer secret-key", auth)
}

func TestWhatsAppNotifierGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewWhatsAppNotifier(srv.URL, "")
	err := n.Send("9876543210", "hello")
	assert.Error(t, err)
}

func TestWhatsAppNotifierUnreachableGateway(t *testing.T) {
	n := NewWhatsAppNotifier("http://127.0.0.1:1", "")
	err := n.Send("9876543210", "hello")
	assert.Error(t, err)
}

func TestNoopNotifier(t *testing.T) {
	assert.NoError(t, NoopNotifier{}.Send("9876543210", "dropped"))
}
