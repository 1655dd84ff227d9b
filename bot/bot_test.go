package bot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkahng/chopsticks/search"
	"github.com/tkahng/chopsticks/sticks"
	"golang.org/x/exp/rand"
)

func TestRandom(t *testing.T) {
	g, err := sticks.NewGameFromHands("a", "b", [2]int{1, 1}, [2]int{2, 0})
	require.NoError(t, err)
	strategy := Random(rand.New(rand.NewSource(7)))

	seen := map[sticks.Attack]bool{}
	for i := 0; i < 200; i++ {
		a, err := strategy(g)
		require.NoError(t, err)
		require.True(t, g.IsLegal(a), "%s is not legal", a)
		seen[a] = true
	}
	assert.Len(t, seen, 2, "both legal moves should come up")
	assert.Equal(t, 1, g.Turn())
}

func TestRandom_SameSeedSameMoves(t *testing.T) {
	g := sticks.NewGame("a", "b")
	r1 := Random(rand.New(rand.NewSource(42)))
	r2 := Random(rand.New(rand.NewSource(42)))
	for i := 0; i < 20; i++ {
		a1, err := r1(g)
		require.NoError(t, err)
		a2, err := r2(g)
		require.NoError(t, err)
		assert.Equal(t, a1, a2)
	}
}

func TestRandom_Finished(t *testing.T) {
	g, err := sticks.NewGameFromHands("a", "b", [2]int{0, 0}, [2]int{1, 1})
	require.NoError(t, err)

	_, err = Random(rand.New(rand.NewSource(1)))(g)
	assert.ErrorIs(t, err, sticks.ErrAlreadyFinished)
}

func TestMinimax(t *testing.T) {
	g, err := sticks.NewGameFromHands("a", "b", [2]int{1, 1}, [2]int{4, 0})
	require.NoError(t, err)

	a, err := Minimax(search.New(search.WithDepth(3)), nil)(g)
	require.NoError(t, err)
	assert.Equal(t, sticks.LeftAttacksLeft, a)
}

func TestMinimax_FallsBack(t *testing.T) {
	g := sticks.NewGame("a", "b")
	called := false
	fallback := func(g *sticks.Game) (sticks.Attack, error) {
		called = true
		return sticks.RightAttacksRight, nil
	}

	a, err := Minimax(search.New(search.WithDepth(0)), fallback)(g)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, sticks.RightAttacksRight, a)
}

func TestMinimax_NoFallback(t *testing.T) {
	_, err := Minimax(search.New(search.WithDepth(0)), nil)(sticks.NewGame("a", "b"))
	assert.True(t, errors.Is(err, sticks.ErrNoMoveAvailable))
}

func TestPlay(t *testing.T) {
	tests := []struct {
		name     string
		maxTurns int
	}{
		{name: "no limit", maxTurns: 0},
		{name: "generous limit", maxTurns: 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := sticks.NewGame("minimax", "random")
			smart := Minimax(search.New(search.WithDepth(4)), Random(rand.New(rand.NewSource(3))))
			dumb := Random(rand.New(rand.NewSource(5)))

			require.NoError(t, Play(g, smart, dumb, tt.maxTurns))
			assert.True(t, g.IsFinished())
		})
	}
}

func TestPlay_TurnCap(t *testing.T) {
	g := sticks.NewGame("a", "b")
	r := Random(rand.New(rand.NewSource(9)))

	require.NoError(t, Play(g, r, r, 1))
	assert.Equal(t, 2, g.Turn())
	assert.False(t, g.IsFinished())
}
