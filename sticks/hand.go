package sticks

import "fmt"

const (
	// MaxFingers is the highest count a hand can hold and stay in play.
	MaxFingers = 4
)

type Hand struct {
	fingers int // 0–4 (5+ becomes 0)
}

func NewHand() *Hand {
	return &Hand{
		fingers: 1,
	}
}

func newHandWith(fingers int) (*Hand, error) {
	if fingers < 0 || fingers > MaxFingers {
		return nil, fmt.Errorf("hand count %d out of range 0..%d", fingers, MaxFingers)
	}
	return &Hand{fingers: fingers}, nil
}

func (h *Hand) Fingers() int {
	return h.fingers
}

func (h *Hand) Alive() bool {
	return h.fingers > 0
}

// Receive adds points to the hand. A total above MaxFingers eliminates the
// hand instead of wrapping.
func (h *Hand) Receive(points int) {
	h.fingers += points
	if h.fingers > MaxFingers {
		h.fingers = 0
	}
}

// Attack adds this hand's count onto opp. Both hands must be alive.
func (h *Hand) Attack(opp *Hand) error {
	if opp == nil {
		return fmt.Errorf("%w: opponent hand is nil", ErrIllegalMove)
	}
	if !h.Alive() {
		return fmt.Errorf("%w: attacking hand is out", ErrIllegalMove)
	}
	if !opp.Alive() {
		return fmt.Errorf("%w: opponent hand is out", ErrIllegalMove)
	}
	opp.Receive(h.fingers)
	return nil
}
