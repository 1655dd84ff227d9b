package sticks

import (
	"fmt"
)

// Move is one applied attack.
type Move struct {
	PlayerID string `json:"playerId"`
	Attack   Attack `json:"attack"`
	Turn     int    `json:"turn"`
}

// Game holds one live chopsticks position. It is not safe for concurrent use;
// callers that share a Game must serialise access, and search works on
// clones.
type Game struct {
	Player1  *Player
	Player2  *Player
	active   int // 0 for player1, 1 for player2
	turn     int
	finished bool
	winner   *Player
	history  []Move
}

func NewGame(name1, name2 string) *Game {
	return &Game{
		Player1: NewPlayer(Player1ID, name1),
		Player2: NewPlayer(Player2ID, name2),
		active:  0,
		turn:    1,
	}
}

// NewGameFromHands builds a game with player1 to move from the given
// (left, right) counts.
func NewGameFromHands(name1, name2 string, p1, p2 [2]int) (*Game, error) {
	g := NewGame(name1, name2)
	for _, side := range []struct {
		player *Player
		counts [2]int
	}{{g.Player1, p1}, {g.Player2, p2}} {
		left, err := newHandWith(side.counts[0])
		if err != nil {
			return nil, fmt.Errorf("%s left: %w", side.player.ID, err)
		}
		right, err := newHandWith(side.counts[1])
		if err != nil {
			return nil, fmt.Errorf("%s right: %w", side.player.ID, err)
		}
		side.player.LeftHand = left
		side.player.RightHand = right
	}
	g.checkFinished()
	return g, nil
}

func (g *Game) players() [2]*Player {
	return [2]*Player{g.Player1, g.Player2}
}

// Active returns the player to move.
func (g *Game) Active() *Player {
	return g.players()[g.active]
}

// Inactive returns the defending player.
func (g *Game) Inactive() *Player {
	return g.players()[1-g.active]
}

func (g *Game) Turn() int {
	return g.turn
}

func (g *Game) IsFinished() bool {
	return g.finished
}

// Winner returns nil while the game is in progress.
func (g *Game) Winner() *Player {
	return g.winner
}

// History returns a copy of the applied moves in order.
func (g *Game) History() []Move {
	out := make([]Move, len(g.history))
	copy(out, g.history)
	return out
}

// LegalMoves lists attacks whose attacking and targeted hands are both alive,
// in the order of Attacks.
func (g *Game) LegalMoves() []Attack {
	if g.finished {
		return nil
	}
	active, inactive := g.Active(), g.Inactive()
	moves := make([]Attack, 0, len(Attacks))
	for _, a := range Attacks {
		if active.GetHand(a.FromLeft()).Alive() && inactive.GetHand(a.TargetsLeft()).Alive() {
			moves = append(moves, a)
		}
	}
	return moves
}

// IsLegal reports whether a is in LegalMoves.
func (g *Game) IsLegal(a Attack) bool {
	if g.finished || !a.Valid() {
		return false
	}
	return g.Active().GetHand(a.FromLeft()).Alive() && g.Inactive().GetHand(a.TargetsLeft()).Alive()
}

// Apply plays a for the active player. On error the game is unchanged.
func (g *Game) Apply(a Attack) error {
	if g.finished {
		return ErrAlreadyFinished
	}
	if !g.IsLegal(a) {
		return fmt.Errorf("%w: %s on turn %d", ErrIllegalMove, a, g.turn)
	}

	attacker := g.Active()
	if err := attacker.GetHand(a.FromLeft()).Attack(g.Inactive().GetHand(a.TargetsLeft())); err != nil {
		return err
	}
	g.history = append(g.history, Move{PlayerID: attacker.ID, Attack: a, Turn: g.turn})

	g.checkFinished()
	g.EndTurn()
	return nil
}

// EndTurn swaps the active and inactive players and advances the turn.
func (g *Game) EndTurn() {
	g.active = 1 - g.active
	g.turn++
}

// checkFinished looks at player2 before player1; if both were out the later
// check decides the winner.
func (g *Game) checkFinished() {
	if g.Player2.Eliminated() {
		g.finished = true
		g.winner = g.Player1
	}
	if g.Player1.Eliminated() {
		g.finished = true
		g.winner = g.Player2
	}
}

// Clone returns a deep copy that shares nothing with g.
func (g *Game) Clone() *Game {
	c := &Game{
		Player1:  g.Player1.clone(),
		Player2:  g.Player2.clone(),
		active:   g.active,
		turn:     g.turn,
		finished: g.finished,
		history:  g.History(),
	}
	switch g.winner {
	case g.Player1:
		c.winner = c.Player1
	case g.Player2:
		c.winner = c.Player2
	}
	return c
}
