package sticks

const (
	Player1ID = "player1"
	Player2ID = "player2"
)

type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	LeftHand  *Hand  `json:"-"`
	RightHand *Hand  `json:"-"`
}

func NewPlayer(id, name string) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		LeftHand:  NewHand(),
		RightHand: NewHand(),
	}
}

// Eliminated reports whether both hands are out.
func (p *Player) Eliminated() bool {
	return !p.LeftHand.Alive() && !p.RightHand.Alive()
}

func (p *Player) GetHand(isLeft bool) *Hand {
	if isLeft {
		return p.LeftHand
	}
	return p.RightHand
}

// Counts returns the (left, right) finger counts.
func (p *Player) Counts() [2]int {
	return [2]int{p.LeftHand.fingers, p.RightHand.fingers}
}

func (p *Player) clone() *Player {
	return &Player{
		ID:        p.ID,
		Name:      p.Name,
		LeftHand:  &Hand{fingers: p.LeftHand.fingers},
		RightHand: &Hand{fingers: p.RightHand.fingers},
	}
}
