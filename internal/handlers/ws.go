package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/melodybeans/coffeestore/internal/types"
)

var (
	orderFeedClients   = make(map[*websocket.Conn]bool)
	orderFeedClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type orderEvent struct {
	Type    string `json:"type"`
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// BroadcastOrderEvent pushes an order lifecycle event to every connected
// admin feed client. Clients that fail the write are dropped.
func BroadcastOrderEvent(eventType string, orderID uint, status string) {
	orderFeedClientsMu.RLock()
	if len(orderFeedClients) == 0 {
		orderFeedClientsMu.RUnlock()
		return
	}

	clients := make([]*websocket.Conn, 0, len(orderFeedClients))
	for conn := range orderFeedClients {
		clients = append(clients, conn)
	}
	orderFeedClientsMu.RUnlock()

	event := orderEvent{
		Type:    eventType,
		OrderID: orderID,
		Status:  status,
	}

	for _, conn := range clients {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for order broadcast: %v", err)
			continue
		}

		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Failed to broadcast order event to client: %v", err)
			orderFeedClientsMu.Lock()
			delete(orderFeedClients, conn)
			orderFeedClientsMu.Unlock()
			conn.Close()
		}
	}
}

// OrderFeed upgrades an admin connection and keeps it registered for order
// events until it closes.
func OrderFeed(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	orderFeedClientsMu.Lock()
	orderFeedClients[conn] = true
	orderFeedClientsMu.Unlock()

	defer func() {
		orderFeedClientsMu.Lock()
		delete(orderFeedClients, conn)
		orderFeedClientsMu.Unlock()
		conn.Close()

		log.Println("Order feed connection closed")
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":    "connected",
		"message": "Order feed connection established",
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for order feed ping: %v", err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Order feed ping failed: %v", err)
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline for order feed: %v", err)
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Order feed error: %v", err)
			}
			break
		}
	}
}
