package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"

	"github.com/rocketscienceinc/gridclash-backend/internal/apperror"
	"github.com/rocketscienceinc/gridclash-backend/internal/broadcast"
	"github.com/rocketscienceinc/gridclash-backend/internal/entity"
)

const (
	pingInterval    = 15 * time.Second
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
	readLimit       = 32 << 10
)

type matchUseCase interface {
	Join(ctx context.Context, seat entity.Seat, names []string) error
	MakeMove(ctx context.Context, seat entity.Seat, token entity.MoveToken) error
	LegalMoves(ctx context.Context, id entity.PieceID) ([]entity.LegalMove, error)
	NewGame(ctx context.Context) error
	SendSnapshot(ctx context.Context, reply func(entity.Event) error) error
	SeatDisconnected(ctx context.Context, seat entity.Seat)
}

type hub interface {
	Subscribe(sub broadcast.Subscriber)
	Unsubscribe(id string)
	Reply(id string, event entity.Event) error
}

type Server struct {
	logger       *slog.Logger
	matchUseCase matchUseCase
	hub          hub

	originPatterns []string
	sendBuffer     int

	handlers map[string]func(ctx context.Context, message *Message, client *Client) error
}

func New(logger *slog.Logger, matchUseCase matchUseCase, hub hub, originPatterns []string, sendBuffer int) *Server {
	if sendBuffer < 1 {
		sendBuffer = 1
	}

	server := &Server{
		logger:       logger.With("component", "websocket"),
		matchUseCase: matchUseCase,
		hub:          hub,

		originPatterns: originPatterns,
		sendBuffer:     sendBuffer,

		handlers: make(map[string]func(context.Context, *Message, *Client) error),
	}

	server.handlers[actionInitialize] = server.handleInitialize
	server.handlers[actionMove] = server.handleMove
	server.handlers[actionRequestValidMoves] = server.handleRequestValidMoves
	server.handlers[actionNewGame] = server.handleNewGame

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.upgradeToWebSocket)

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection and serves it until the client goes away.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := websocket.Accept(writer, req, &websocket.AcceptOptions{
		OriginPatterns: that.originPatterns,
	})
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}

	conn.SetReadLimit(readLimit)

	client := newClient(uuid.NewString(), conn, that.sendBuffer)
	log = log.With("clientID", client.ID())

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()

	that.hub.Subscribe(client)
	go client.writePump(ctx, log)

	log.Info("WebSocket connection established")

	err = that.matchUseCase.SendSnapshot(ctx, func(event entity.Event) error {
		return that.hub.Reply(client.ID(), event)
	})
	if err != nil {
		log.Error("failed to send initial state", "error", err)
	}

	if err = that.handleMessages(ctx, client); err != nil {
		log.Error("error handling messages", "error", err)
	}

	that.hub.Unsubscribe(client.ID())
	client.closeSend()
	that.handleDisconnect(ctx, client)

	_ = conn.Close(websocket.StatusNormalClosure, "")

	log.Info("WebSocket connection closed")
}

// handleMessages - processes messages from the client until the connection closes.
func (that *Server) handleMessages(ctx context.Context, client *Client) error {
	log := that.logger.With("method", "handleMessages", "clientID", client.ID())

	for {
		_, data, err := client.conn.Read(ctx)
		if err != nil {
			if isClosed(err) {
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Type]
		if !ok {
			log.Warn("message dropped", "error", fmt.Errorf("%w: %q", apperror.ErrUnknownMessage, message.Type))
			continue
		}

		if err = handler(ctx, &message, client); err != nil {
			log.Error("error processing message", "type", message.Type, "error", err)
		}
	}
}

func isClosed(err error) bool {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}

	return errors.Is(err, context.Canceled)
}
