package server

import (
	"encoding/json"
	"fmt"

	"github.com/tkahng/chopsticks/sticks"
)

// processMessage handles one client message for s and returns the replies.
func (gs *GameServer) processMessage(s *Session, msg Message) ([]outMessage, error) {
	switch msg.Type {
	case MessageTypeAttack:
		var data AttackMessageData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return nil, fmt.Errorf("%w: invalid attack data: %v", errBadRequest, err)
		}
		a, err := sticks.ParseAttack(data.Attack)
		if err != nil {
			return nil, err
		}
		return gs.playTurn(s, a)

	case MessageTypeReset:
		return gs.reset(s), nil

	default:
		return nil, fmt.Errorf("%w: unknown message type %q", errBadRequest, msg.Type)
	}
}

// playTurn applies the human attack and, if the game goes on, the bot's
// reply.
func (gs *GameServer) playTurn(s *Session, a sticks.Attack) ([]outMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.endReason != "" {
		return nil, sticks.ErrAlreadyFinished
	}
	g := s.game
	if g.Active().ID != sticks.Player1ID {
		return nil, errNotYourTurn
	}
	if err := g.Apply(a); err != nil {
		return nil, err
	}
	Moves.WithLabelValues("human").Inc()
	gs.logger.Debug().Str("session", s.ID).Stringer("attack", a).Int("turn", g.Turn()-1).Msg("human move")

	if end := gs.checkEnd(s); end != nil {
		return []outMessage{gs.stateMessage(s, nil), *end}, nil
	}

	reply, err := gs.bot(g.Clone())
	if err != nil {
		return nil, fmt.Errorf("bot failed to move: %w", err)
	}
	if err := g.Apply(reply); err != nil {
		return nil, fmt.Errorf("bot chose %s: %w", reply, err)
	}
	Moves.WithLabelValues("bot").Inc()
	gs.logger.Debug().Str("session", s.ID).Stringer("attack", reply).Int("turn", g.Turn()-1).Msg("bot move")

	msgs := []outMessage{gs.stateMessage(s, &reply)}
	if end := gs.checkEnd(s); end != nil {
		msgs = append(msgs, *end)
	}
	return msgs, nil
}

// checkEnd marks the session ended when the game is won or the turn cap is
// reached. Callers hold s.mu.
func (gs *GameServer) checkEnd(s *Session) *outMessage {
	g := s.game
	var data GameEndData
	switch {
	case g.IsFinished():
		data = GameEndData{Reason: EndEliminated, Winner: g.Winner().ID, WinnerName: g.Winner().Name}
	case g.Turn()-1 >= gs.cfg.MaxTurns:
		data = GameEndData{Reason: EndMaxTurns}
	default:
		return nil
	}
	s.endReason = data.Reason
	GamesEnded.WithLabelValues(data.Reason, data.Winner).Inc()
	gs.logger.Info().Str("session", s.ID).Str("reason", data.Reason).Str("winner", data.Winner).Int("turns", g.Turn()-1).Msg("game ended")
	return &outMessage{Type: MessageTypeGameEnd, Data: data}
}

func (gs *GameServer) reset(s *Session) []outMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.game = gs.newGame()
	s.endReason = ""
	gs.logger.Info().Str("session", s.ID).Msg("game reset")
	return []outMessage{gs.stateMessage(s, nil)}
}

// stateMessage snapshots s. Callers hold s.mu.
func (gs *GameServer) stateMessage(s *Session, botMove *sticks.Attack) outMessage {
	return outMessage{
		Type: MessageTypeGameState,
		Data: GameStateData{
			Session:  s.ID,
			Game:     s.game.Snapshot(),
			MaxTurns: gs.cfg.MaxTurns,
			BotMove:  botMove,
		},
	}
}
