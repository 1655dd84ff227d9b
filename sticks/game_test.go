package sticks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func mustGame(t *testing.T, p1, p2 [2]int) *Game {
	t.Helper()
	g, err := NewGameFromHands("David", "Jill", p1, p2)
	require.NoError(t, err)
	return g
}

func TestNewGame(t *testing.T) {
	g := NewGame("David", "Jill")

	assert.Equal(t, 1, g.Turn())
	assert.Equal(t, Player1ID, g.Active().ID)
	assert.Equal(t, Player2ID, g.Inactive().ID)
	assert.Equal(t, [2]int{1, 1}, g.Player1.Counts())
	assert.Equal(t, [2]int{1, 1}, g.Player2.Counts())
	assert.False(t, g.IsFinished())
	assert.Nil(t, g.Winner())
	assert.Empty(t, g.History())
}

func TestNewGameFromHands(t *testing.T) {
	tests := []struct {
		name       string
		p1, p2     [2]int
		wantErr    bool
		wantWinner string
	}{
		{name: "in progress", p1: [2]int{1, 2}, p2: [2]int{3, 0}},
		{name: "player2 already out", p1: [2]int{1, 0}, p2: [2]int{0, 0}, wantWinner: Player1ID},
		{name: "both out resolves to player2", p1: [2]int{0, 0}, p2: [2]int{0, 0}, wantWinner: Player2ID},
		{name: "count too high", p1: [2]int{5, 1}, p2: [2]int{1, 1}, wantErr: true},
		{name: "negative count", p1: [2]int{1, 1}, p2: [2]int{1, -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGameFromHands("a", "b", tt.p1, tt.p2)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewGameFromHands() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tt.wantWinner == "" {
				assert.False(t, g.IsFinished())
				return
			}
			require.True(t, g.IsFinished())
			assert.Equal(t, tt.wantWinner, g.Winner().ID)
		})
	}
}

func TestGame_LegalMoves(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 [2]int
		want   []Attack
	}{
		{
			name: "all hands alive",
			p1:   [2]int{1, 1},
			p2:   [2]int{1, 1},
			want: []Attack{LeftAttacksLeft, LeftAttacksRight, RightAttacksLeft, RightAttacksRight},
		},
		{
			name: "attacker left hand out",
			p1:   [2]int{0, 2},
			p2:   [2]int{1, 1},
			want: []Attack{RightAttacksLeft, RightAttacksRight},
		},
		{
			name: "defender right hand out",
			p1:   [2]int{1, 2},
			p2:   [2]int{3, 0},
			want: []Attack{LeftAttacksLeft, RightAttacksLeft},
		},
		{
			name: "one hand each",
			p1:   [2]int{0, 4},
			p2:   [2]int{0, 2},
			want: []Attack{RightAttacksRight},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGame(t, tt.p1, tt.p2)
			assert.Equal(t, tt.want, g.LegalMoves())
			for _, a := range Attacks {
				assert.Equal(t, contains(tt.want, a), g.IsLegal(a), "IsLegal(%s)", a)
			}
		})
	}
}

func TestGame_Apply_FirstMove(t *testing.T) {
	g := NewGame("David", "Jill")

	require.NoError(t, g.Apply(LeftAttacksLeft))

	assert.Equal(t, [2]int{1, 1}, g.Player1.Counts())
	assert.Equal(t, [2]int{2, 1}, g.Player2.Counts())
	assert.Equal(t, 2, g.Turn())
	assert.Equal(t, Player2ID, g.Active().ID)
	assert.Equal(t, Player1ID, g.Inactive().ID)
	assert.Equal(t, []Move{{PlayerID: Player1ID, Attack: LeftAttacksLeft, Turn: 1}}, g.History())
	assert.False(t, g.IsFinished())
}

func TestGame_Apply(t *testing.T) {
	type args struct {
		attack Attack
	}
	tests := []struct {
		name       string
		p1, p2     [2]int
		args       args
		wantErr    error
		wantP2     [2]int
		wantWinner string
	}{
		{
			name:   "sum below limit",
			p1:     [2]int{2, 1},
			p2:     [2]int{1, 1},
			args:   args{attack: LeftAttacksRight},
			wantP2: [2]int{1, 3},
		},
		{
			name:   "overflow resets to zero",
			p1:     [2]int{3, 1},
			p2:     [2]int{2, 1},
			args:   args{attack: LeftAttacksLeft},
			wantP2: [2]int{0, 1},
		},
		{
			name:       "last hand eliminated wins",
			p1:         [2]int{1, 1},
			p2:         [2]int{4, 0},
			args:       args{attack: RightAttacksLeft},
			wantP2:     [2]int{0, 0},
			wantWinner: Player1ID,
		},
		{
			name:    "target hand already out",
			p1:      [2]int{1, 1},
			p2:      [2]int{4, 0},
			args:    args{attack: LeftAttacksRight},
			wantErr: ErrIllegalMove,
			wantP2:  [2]int{4, 0},
		},
		{
			name:    "attacking hand out",
			p1:      [2]int{0, 1},
			p2:      [2]int{1, 1},
			args:    args{attack: LeftAttacksLeft},
			wantErr: ErrIllegalMove,
			wantP2:  [2]int{1, 1},
		},
		{
			name:    "invalid code",
			p1:      [2]int{1, 1},
			p2:      [2]int{1, 1},
			args:    args{attack: Attack(7)},
			wantErr: ErrIllegalMove,
			wantP2:  [2]int{1, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGame(t, tt.p1, tt.p2)
			before := g.Snapshot()

			err := g.Apply(tt.args.attack)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Game.Apply() error = %v, want %v", err, tt.wantErr)
				}
				assert.Equal(t, before, g.Snapshot(), "rejected move must not change the game")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantP2, g.Player2.Counts())
			assert.Equal(t, before.Turn+1, g.Turn())
			assert.Equal(t, Player2ID, g.Active().ID)
			if tt.wantWinner != "" {
				require.True(t, g.IsFinished())
				assert.Equal(t, tt.wantWinner, g.Winner().ID)
			}
		})
	}
}

func TestGame_Apply_AfterFinish(t *testing.T) {
	g := mustGame(t, [2]int{1, 1}, [2]int{4, 0})
	require.NoError(t, g.Apply(LeftAttacksLeft))
	require.True(t, g.IsFinished())

	before := g.Snapshot()
	err := g.Apply(LeftAttacksLeft)

	assert.ErrorIs(t, err, ErrAlreadyFinished)
	assert.Equal(t, before, g.Snapshot())
	assert.Empty(t, g.LegalMoves())
}

func TestGame_Clone(t *testing.T) {
	g := mustGame(t, [2]int{1, 2}, [2]int{3, 1})
	require.NoError(t, g.Apply(RightAttacksLeft))

	c := g.Clone()
	assert.Equal(t, g.Snapshot(), c.Snapshot())

	require.NoError(t, c.Apply(RightAttacksLeft))
	assert.NotEqual(t, g.Snapshot(), c.Snapshot())
	assert.Equal(t, [2]int{1, 2}, g.Player1.Counts())
	assert.Len(t, g.History(), 1)
}

func TestGame_Clone_KeepsWinnerIdentity(t *testing.T) {
	g := mustGame(t, [2]int{1, 0}, [2]int{0, 0})
	c := g.Clone()

	require.NotNil(t, c.Winner())
	assert.Same(t, c.Player1, c.Winner())
}

// Random legal play must always end: hands only grow until they are
// eliminated and never come back.
func TestGame_RandomPlayTerminates(t *testing.T) {
	const maxTurns = 200
	for seed := uint64(1); seed <= 100; seed++ {
		r := rand.New(rand.NewSource(seed))
		g := NewGame("David", "Jill")
		for !g.IsFinished() && g.Turn() <= maxTurns {
			moves := g.LegalMoves()
			require.NotEmpty(t, moves, "seed %d: unfinished game without moves", seed)
			turn, active := g.Turn(), g.Active().ID

			require.NoError(t, g.Apply(moves[r.Intn(len(moves))]))

			assert.Equal(t, turn+1, g.Turn())
			assert.NotEqual(t, active, g.Active().ID)
			for _, p := range []*Player{g.Player1, g.Player2} {
				for _, c := range p.Counts() {
					require.True(t, c >= 0 && c <= MaxFingers, "seed %d: count %d out of range", seed, c)
				}
			}
		}
		require.True(t, g.IsFinished(), "seed %d: game did not finish in %d turns", seed, maxTurns)
		assert.True(t, g.Winner().ID != g.Active().ID, "seed %d: loser should be left to move", seed)
	}
}

func contains(moves []Attack, a Attack) bool {
	for _, m := range moves {
		if m == a {
			return true
		}
	}
	return false
}
