// Package ws feeds live order-status updates to the admin panel over
// websockets.
package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/bordamax/tienda-api/internal/models"
)

// OrderEvent is the message pushed to subscribers on every status
// change or newly placed order.
type OrderEvent struct {
	OrderID    uint               `json:"order_id"`
	UUID       string             `json:"uuid"`
	DisplayRef string             `json:"display_ref"`
	Status     models.OrderStatus `json:"status"`
	Total      float64            `json:"total"`
}

// Hub tracks connected admin clients and broadcasts order events.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The SPA and the API live on different origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Subscribe upgrades the request and keeps the connection registered
// until the peer goes away.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	// Drain reads so close frames are processed; drop on any error.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return nil
}

// NotifyOrderStatus implements services.StatusNotifier.
func (h *Hub) NotifyOrderStatus(order *models.Order) {
	event := OrderEvent{
		OrderID:    order.ID,
		UUID:       order.UUID,
		DisplayRef: order.DisplayRef(),
		Status:     order.Status,
		Total:      order.TotalAmount,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("ws: write: %v", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}
