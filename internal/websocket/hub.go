package websocket

import (
	"context"
	"encoding/json"

	"github.com/BalbhadraDaxini/Undhyu-v.2/internal/checkout"
)

type OrderUpdate struct {
	OrderID  string `json:"order_id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type Client struct {
	hub  *Hub
	conn *Conn
	send chan []byte
}

// Hub is a single live feed of paid orders for dashboard clients. All
// connected clients receive every update.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan OrderUpdate
	clients    map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan OrderUpdate),
		clients:    make(map[*Client]bool),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case upd := <-h.broadcast:
			msg, _ := json.Marshal(upd)
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
			}
			return
		}
	}
}

func (h *Hub) Broadcast(u OrderUpdate) {
	go func() { h.broadcast <- u }()
}

func (h *Hub) BroadcastOrderPaid(orderID string, amount int64, currency string) {
	h.Broadcast(OrderUpdate{
		OrderID:  orderID,
		Status:   string(checkout.StatusPaid),
		Amount:   amount,
		Currency: currency,
	})
}
