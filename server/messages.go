package server

import (
	"encoding/json"
	"errors"

	"github.com/tkahng/chopsticks/sticks"
)

type MessageType string

const (
	MessageTypeAttack    MessageType = "attack"
	MessageTypeReset     MessageType = "reset"
	MessageTypeGameState MessageType = "game_state"
	MessageTypeError     MessageType = "error"
	MessageTypeGameEnd   MessageType = "game_end"
)

var (
	errBadRequest  = errors.New("bad request")
	errNotYourTurn = errors.New("not your turn")
)

type (
	// Message is the envelope for everything sent over the socket.
	Message struct {
		Type MessageType     `json:"type"`
		Data json.RawMessage `json:"data,omitempty"`
	}
	outMessage struct {
		Type MessageType `json:"type"`
		Data any         `json:"data"`
	}
	AttackMessageData struct {
		Attack string `json:"attack"`
	}
	GameStateData struct {
		Session  string              `json:"session"`
		Game     sticks.GameSnapshot `json:"game"`
		MaxTurns int                 `json:"maxTurns"`
		BotMove  *sticks.Attack      `json:"botMove,omitempty"`
	}
	GameEndData struct {
		Reason     string `json:"reason"`
		Winner     string `json:"winner,omitempty"`
		WinnerName string `json:"winnerName,omitempty"`
	}
	ErrorData struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
)

func errorCode(err error) string {
	switch {
	case errors.Is(err, sticks.ErrIllegalMove):
		return "illegal_move"
	case errors.Is(err, sticks.ErrAlreadyFinished):
		return "game_finished"
	case errors.Is(err, errNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, errBadRequest):
		return "bad_request"
	case errors.Is(err, ErrServerFull):
		return "server_full"
	default:
		return "internal"
	}
}

func errorMessage(err error) outMessage {
	return outMessage{
		Type: MessageTypeError,
		Data: ErrorData{Code: errorCode(err), Message: err.Error()},
	}
}
