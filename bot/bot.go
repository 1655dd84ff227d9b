// Package bot holds the automated players. Each strategy turns a game into
// the attack its active player should make.
package bot

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/tkahng/chopsticks/search"
	"github.com/tkahng/chopsticks/sticks"
	"golang.org/x/exp/rand"
)

// Strategy chooses an attack for the active player of g without modifying it.
type Strategy func(g *sticks.Game) (sticks.Attack, error)

// NewLockedRand returns a generator that is safe to share between
// goroutines.
func NewLockedRand(seed uint64) *rand.Rand {
	src := &rand.LockedSource{}
	src.Seed(seed)
	return rand.New(src)
}

// Random picks uniformly among the legal moves.
func Random(r *rand.Rand) Strategy {
	return func(g *sticks.Game) (sticks.Attack, error) {
		if g.IsFinished() {
			return 0, sticks.ErrAlreadyFinished
		}
		moves := g.LegalMoves()
		if len(moves) == 0 {
			return 0, sticks.ErrNoMoveAvailable
		}
		return moves[r.Intn(len(moves))], nil
	}
}

// Minimax asks s for the best move and uses fallback when the search has
// nothing to offer.
func Minimax(s *search.Searcher, fallback Strategy) Strategy {
	return func(g *sticks.Game) (sticks.Attack, error) {
		a, err := s.BestMove(context.Background(), g)
		if errors.Is(err, sticks.ErrNoMoveAvailable) && fallback != nil {
			log.Debug().Err(err).Int("turn", g.Turn()).Msg("minimax fell back")
			return fallback(g)
		}
		return a, err
	}
}

// Play drives g to the end, asking player1's and player2's strategies in turn
// until the game finishes or maxTurns turns have been played. maxTurns <= 0
// means no limit.
func Play(g *sticks.Game, player1, player2 Strategy, maxTurns int) error {
	for !g.IsFinished() {
		if maxTurns > 0 && g.Turn() > maxTurns {
			return nil
		}
		strategy := player1
		if g.Active().ID == sticks.Player2ID {
			strategy = player2
		}
		a, err := strategy(g)
		if err != nil {
			return err
		}
		if err := g.Apply(a); err != nil {
			return err
		}
	}
	return nil
}
