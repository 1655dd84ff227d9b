package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkahng/chopsticks/sticks"
)

func firstLegal(g *sticks.Game) (sticks.Attack, error) {
	return g.LegalMoves()[0], nil
}

func play(t *testing.T, input string, opts Options) string {
	t.Helper()
	ascii := termenv.Ascii
	opts.Profile = &ascii
	if opts.PlayerName == "" {
		opts.PlayerName = "David"
	}
	if opts.BotName == "" {
		opts.BotName = "Jill"
	}
	if opts.Bot == nil {
		opts.Bot = firstLegal
	}
	var out bytes.Buffer
	require.NoError(t, Play(strings.NewReader(input), &out, opts))
	return out.String()
}

func TestPlay(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		position *[2][2]int
		maxTurns int
		want     []string
		notWant  []string
	}{
		{
			name:  "opening board",
			input: "quit\n",
			want:  []string{"Turn 1", "> David", "[1] [1]", "Moves: ll lr rl rr"},
		},
		{
			name:  "bot answers",
			input: "ll\n",
			want:  []string{"Jill plays ll", "Turn 3", "[3] [1]"},
		},
		{
			name:     "illegal attack",
			input:    "lr\nzz\n",
			position: &[2][2]int{{1, 1}, {3, 0}},
			want:     []string{"illegal move", "Moves: ll rl"},
			notWant:  []string{"Jill plays"},
		},
		{
			name:     "human wins",
			input:    "ll\nrr\n",
			position: &[2][2]int{{1, 1}, {4, 0}},
			want:     []string{"David wins!", "The game is over"},
			notWant:  []string{"Jill plays"},
		},
		{
			name:     "bot wins",
			input:    "ll\n",
			position: &[2][2]int{{4, 0}, {1, 1}},
			want:     []string{"Jill plays rl", "Jill wins!"},
		},
		{
			name:     "turn limit",
			input:    "rr\nll\n",
			maxTurns: 2,
			want:     []string{"Turn limit of 2 reached", "The game is over"},
		},
		{
			name:  "reset",
			input: "ll\nreset\n",
			want:  []string{"Turn 3", "Turn 1\n"},
		},
		{
			name:  "help",
			input: "help\n",
			want:  []string{help},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := play(t, tt.input, Options{Position: tt.position, MaxTurns: tt.maxTurns})
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestPlay_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, Play(strings.NewReader(""), &out, Options{}))

	err := Play(strings.NewReader(""), &out, Options{Bot: firstLegal, Position: &[2][2]int{{5, 1}, {1, 1}}})
	assert.Error(t, err)
}

func TestRender_Finished(t *testing.T) {
	g, err := sticks.NewGameFromHands("David", "Jill", [2]int{1, 1}, [2]int{0, 0})
	require.NoError(t, err)

	out := Render(termenv.NewOutput(&bytes.Buffer{}, termenv.WithProfile(termenv.Ascii)), g)

	assert.NotContains(t, out, ">")
	assert.NotContains(t, out, "Moves:")
	assert.Contains(t, out, "[0] [0]")
}
