package sticks

import (
	"fmt"
	"strings"
)

// Attack names the active player's hand used and the inactive player's hand
// targeted.
type Attack uint8

const (
	LeftAttacksLeft Attack = iota
	LeftAttacksRight
	RightAttacksLeft
	RightAttacksRight
)

// Attacks lists every attack in the fixed enumeration order used for move
// generation and tie-breaking.
var Attacks = [4]Attack{LeftAttacksLeft, LeftAttacksRight, RightAttacksLeft, RightAttacksRight}

var attackCodes = [4]string{"ll", "lr", "rl", "rr"}

func (a Attack) Valid() bool {
	return a <= RightAttacksRight
}

// FromLeft reports whether the attacking hand is the left one.
func (a Attack) FromLeft() bool {
	return a == LeftAttacksLeft || a == LeftAttacksRight
}

// TargetsLeft reports whether the targeted hand is the left one.
func (a Attack) TargetsLeft() bool {
	return a == LeftAttacksLeft || a == RightAttacksLeft
}

func (a Attack) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Attack(%d)", uint8(a))
	}
	return attackCodes[a]
}

// ParseAttack converts a two letter code such as "lr" into an Attack.
func ParseAttack(s string) (Attack, error) {
	code := strings.ToLower(strings.TrimSpace(s))
	for i, c := range attackCodes {
		if c == code {
			return Attack(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown attack code %q", ErrIllegalMove, s)
}

func (a Attack) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: invalid attack %d", ErrIllegalMove, uint8(a))
	}
	return []byte(a.String()), nil
}

func (a *Attack) UnmarshalText(text []byte) error {
	parsed, err := ParseAttack(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
