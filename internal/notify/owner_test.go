package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotification_Normalize(t *testing.T) {
	n, err := Notification{Title: "  Hi ", Content: "\nbody\n"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, Notification{Title: "Hi", Content: "body"}, n)

	cases := map[string]Notification{
		"empty title":   {Title: "   ", Content: "x"},
		"empty content": {Title: "x", Content: ""},
		"long title":    {Title: strings.Repeat("a", TitleMaxLength+1), Content: "x"},
		"long content":  {Title: "x", Content: strings.Repeat("a", ContentMaxLength+1)},
	}
	for name, in := range cases {
		_, err := in.Normalize()
		assert.ErrorIs(t, err, ErrInvalidNotification, name)
	}

	_, err = Notification{Title: strings.Repeat("é", TitleMaxLength), Content: "x"}.Normalize()
	assert.NoError(t, err, "limit counts characters, not bytes")
}

func TestWebhookNotifier_Delivers(t *testing.T) {
	var got Notification
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, "key-123", time.Second)
	delivered, err := n.NotifyOwner(context.Background(), Notification{Title: " New order ", Content: "Body"})
	require.NoError(t, err)
	assert.True(t, delivered)
	assert.Equal(t, "Bearer key-123", auth)
	assert.Equal(t, Notification{Title: "New order", Content: "Body"}, got)
}

func TestWebhookNotifier_FailureIsNotDelivered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream sad", http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, "key", time.Second)
	delivered, err := n.NotifyOwner(context.Background(), Notification{Title: "t", Content: "c"})
	assert.NoError(t, err)
	assert.False(t, delivered)

	srv.Close()
	delivered, err = n.NotifyOwner(context.Background(), Notification{Title: "t", Content: "c"})
	assert.NoError(t, err)
	assert.False(t, delivered)
}

func TestWebhookNotifier_Unconfigured(t *testing.T) {
	n := NewWebhookNotifier("", "", time.Second)
	_, err := n.NotifyOwner(context.Background(), Notification{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = n.NotifyOwner(context.Background(), Notification{})
	assert.ErrorIs(t, err, ErrInvalidNotification)
}
