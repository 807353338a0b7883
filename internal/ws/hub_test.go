package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bordamax/tienda-api/internal/models"
)

func TestHubBroadcastsOrderEvents(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := hub.Subscribe(w, r); err != nil {
			t.Errorf("subscribe: %v", err)
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration happens inside Subscribe before it returns, but the
	// dial response races with it on slow machines.
	time.Sleep(50 * time.Millisecond)

	hub.NotifyOrderStatus(&models.Order{
		ID:          42,
		UUID:        "11111111-2222-3333-4444-555555555555",
		Status:      models.OrderStatusShipped,
		TotalAmount: 30.50,
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event OrderEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, uint(42), event.OrderID)
	assert.Equal(t, "#42", event.DisplayRef)
	assert.Equal(t, models.OrderStatusShipped, event.Status)
	assert.InDelta(t, 30.50, event.Total, 0.001)
}

func TestHubDropsDeadClients(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Subscribe(w, r)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	conn.Close()

	// Both the read-pump error path and the write error path should
	// eventually clear the registry.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.NotifyOrderStatus(&models.Order{ID: 1, Status: models.OrderStatusProcessing})
		hub.mu.Lock()
		n := len(hub.clients)
		hub.mu.Unlock()
		if n == 0 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("disconnected client was never dropped")
}
