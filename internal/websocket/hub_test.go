package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastOrderPaid(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.register <- client

	hub.BroadcastOrderPaid("order_123", 199900, "INR")

	select {
	case msg := <-client.send:
		var upd OrderUpdate
		require.NoError(t, json.Unmarshal(msg, &upd))
		require.Equal(t, "order_123", upd.OrderID)
		require.Equal(t, "paid", upd.Status)
		require.Equal(t, int64(199900), upd.Amount)
		require.Equal(t, "INR", upd.Currency)
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
	}
}

func TestHub_SlowClientDropped(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	// Unbuffered send channel with no reader simulates a stalled client.
	client := &Client{hub: hub, send: make(chan []byte)}
	hub.register <- client

	hub.BroadcastOrderPaid("order_123", 100, "INR")

	select {
	case _, ok := <-client.send:
		require.False(t, ok, "send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("stalled client was not dropped")
	}
}
