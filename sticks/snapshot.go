package sticks

// PlayerSnapshot is the serialisable view of a player.
type PlayerSnapshot struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Left  int    `json:"left"`
	Right int    `json:"right"`
}

// GameSnapshot is the serialisable view of a game sent to clients.
type GameSnapshot struct {
	Player1    PlayerSnapshot `json:"player1"`
	Player2    PlayerSnapshot `json:"player2"`
	Turn       int            `json:"turn"`
	Active     string         `json:"active"`
	Finished   bool           `json:"finished"`
	Winner     string         `json:"winner,omitempty"`
	LegalMoves []Attack       `json:"legalMoves"`
	History    []Move         `json:"history"`
}

func snapshotPlayer(p *Player) PlayerSnapshot {
	return PlayerSnapshot{
		ID:    p.ID,
		Name:  p.Name,
		Left:  p.LeftHand.fingers,
		Right: p.RightHand.fingers,
	}
}

func (g *Game) Snapshot() GameSnapshot {
	s := GameSnapshot{
		Player1:    snapshotPlayer(g.Player1),
		Player2:    snapshotPlayer(g.Player2),
		Turn:       g.turn,
		Active:     g.Active().ID,
		Finished:   g.finished,
		LegalMoves: g.LegalMoves(),
		History:    g.History(),
	}
	if s.LegalMoves == nil {
		s.LegalMoves = []Attack{}
	}
	if g.winner != nil {
		s.Winner = g.winner.ID
	}
	return s
}
