package websocket

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"nhooyr.io/websocket"

	"github.com/rocketscienceinc/gridclash-backend/internal/entity"
)

// Client is one websocket connection. It is registered with the hub as a subscriber.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once

	mu    sync.Mutex
	seats []entity.Seat
}

func newClient(id string, conn *websocket.Conn, buffer int) *Client {
	return &Client{
		id:   id,
		conn: conn,
		send: make(chan []byte, buffer),
	}
}

func (that *Client) ID() string {
	return that.id
}

// Deliver queues a payload without blocking; a full queue drops it.
func (that *Client) Deliver(payload []byte) bool {
	select {
	case that.send <- payload:
		return true
	default:
		return false
	}
}

func (that *Client) bindSeat(seat entity.Seat) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.seats = append(that.seats, seat)
}

func (that *Client) boundSeats() []entity.Seat {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]entity.Seat(nil), that.seats...)
}

// closeSend must only be called after the client is unsubscribed from the hub.
func (that *Client) closeSend() {
	that.closeOnce.Do(func() {
		close(that.send)
	})
}

// writePump drains the send queue and keeps the connection alive with pings.
func (that *Client) writePump(ctx context.Context, log *slog.Logger) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case payload, ok := <-that.send:
			if !ok {
				return
			}

			if err := that.write(ctx, payload); err != nil {
				log.Error("failed to write message", "error", err)
				_ = that.conn.Close(websocket.StatusGoingAway, "write failed")
				return
			}
		case <-ping.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := that.conn.Ping(pingCtx)
			cancel()

			if err != nil {
				log.Info("ping failed", "error", err)
				_ = that.conn.Close(websocket.StatusGoingAway, "ping failed")
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (that *Client) write(ctx context.Context, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	return that.conn.Write(ctx, websocket.MessageText, payload)
}
