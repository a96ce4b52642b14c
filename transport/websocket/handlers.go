package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gridclash-backend/internal/apperror"
	"github.com/rocketscienceinc/gridclash-backend/internal/entity"
)

// rejections are expected user-facing errors; their text is sent back to the requester.
var rejections = []error{
	apperror.ErrSeatTaken,
	apperror.ErrNotYourTurn,
	apperror.ErrPieceNotFound,
	apperror.ErrIllegalMove,
	apperror.ErrMatchConcluded,
	apperror.ErrMatchNotStarted,
	apperror.ErrUnknownSeat,
	apperror.ErrUnknownPieceKind,
	apperror.ErrUnknownDirection,
	apperror.ErrInvalidPieceName,
	apperror.ErrInvalidMoveToken,
	apperror.ErrInvalidRoster,
}

const errCharacterMismatch = "character does not match move"

func (that *Server) handleInitialize(ctx context.Context, msg *Message, client *Client) error {
	log := that.logger.With("method", "handleInitialize", "clientID", client.ID())

	seat, err := entity.ParseSeat(msg.Player)
	if err != nil {
		return that.sendRejection(client, entity.EventError, err)
	}

	if err = that.matchUseCase.Join(ctx, seat, msg.Characters); err != nil {
		log.Info("join rejected", "seat", seat, "error", err)
		return that.sendRejection(client, entity.EventError, err)
	}

	client.bindSeat(seat)

	return nil
}

func (that *Server) handleMove(ctx context.Context, msg *Message, client *Client) error {
	log := that.logger.With("method", "handleMove", "clientID", client.ID())

	seat, err := entity.ParseSeat(msg.Player)
	if err != nil {
		return that.sendRejection(client, entity.EventInvalidMove, err)
	}

	token, err := entity.ParseMoveToken(msg.Move, seat)
	if err != nil {
		return that.sendRejection(client, entity.EventInvalidMove, err)
	}

	if msg.Character != "" {
		character, err := entity.ParsePieceID(msg.Character, seat)
		if err != nil {
			return that.sendRejection(client, entity.EventInvalidMove, err)
		}

		if character != token.Piece {
			return that.sendErrorResponse(client, entity.EventInvalidMove, errCharacterMismatch)
		}
	}

	if err = that.matchUseCase.MakeMove(ctx, seat, token); err != nil {
		log.Info("move rejected", "seat", seat, "move", msg.Move, "error", err)
		return that.sendRejection(client, entity.EventInvalidMove, err)
	}

	return nil
}

func (that *Server) handleRequestValidMoves(ctx context.Context, msg *Message, client *Client) error {
	fallback := entity.NoSeat
	if msg.Player != "" {
		seat, err := entity.ParseSeat(msg.Player)
		if err != nil {
			return that.sendRejection(client, entity.EventError, err)
		}
		fallback = seat
	}

	id, err := entity.ParsePieceID(msg.Character, fallback)
	if err != nil {
		return that.sendRejection(client, entity.EventError, err)
	}

	moves, err := that.matchUseCase.LegalMoves(ctx, id)
	if err != nil {
		return that.sendRejection(client, entity.EventError, err)
	}

	return that.reply(client, entity.NewValidMovesEvent(moves))
}

func (that *Server) handleNewGame(ctx context.Context, _ *Message, client *Client) error {
	if err := that.matchUseCase.NewGame(ctx); err != nil {
		return that.sendRejection(client, entity.EventError, err)
	}

	return nil
}

// handleDisconnect hands every seat this connection joined to the disconnect policy.
func (that *Server) handleDisconnect(ctx context.Context, client *Client) {
	ctx = context.WithoutCancel(ctx)

	for _, seat := range client.boundSeats() {
		that.matchUseCase.SeatDisconnected(ctx, seat)
	}
}

// sendRejection replies with the rejection text. Unexpected errors get a generic message and are returned for logging.
func (that *Server) sendRejection(client *Client, eventType entity.EventType, err error) error {
	for _, rejection := range rejections {
		if errors.Is(err, rejection) {
			return that.sendErrorResponse(client, eventType, rejection.Error())
		}
	}

	if replyErr := that.sendErrorResponse(client, entity.EventError, "internal error"); replyErr != nil {
		return errors.Join(err, replyErr)
	}

	return err
}

func (that *Server) sendErrorResponse(client *Client, eventType entity.EventType, message string) error {
	event := entity.NewErrorEvent(message)
	if eventType == entity.EventInvalidMove {
		event = entity.NewInvalidMoveEvent(message)
	}

	return that.reply(client, event)
}

func (that *Server) reply(client *Client, event entity.Event) error {
	if err := that.hub.Reply(client.ID(), event); err != nil {
		return fmt.Errorf("failed to send %s reply: %w", event.Type, err)
	}

	return nil
}
