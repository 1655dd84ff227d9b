package cli

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
	"github.com/tkahng/chopsticks/sticks"
)

func hand(out *termenv.Output, n int) string {
	s := out.String(fmt.Sprintf("[%d]", n))
	if n == 0 {
		return s.Foreground(out.Color("1")).Faint().String()
	}
	return s.Foreground(out.Color("2")).Bold().String()
}

func row(out *termenv.Output, p *sticks.Player, active bool) string {
	marker := " "
	if active {
		marker = ">"
	}
	counts := p.Counts()
	return fmt.Sprintf("%s %-10s %s %s\n", marker, p.Name, hand(out, counts[0]), hand(out, counts[1]))
}

// Render draws the board with player2 on top, followed by the active
// player's legal moves.
func Render(out *termenv.Output, g *sticks.Game) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Turn %d\n", g.Turn())
	b.WriteString(row(out, g.Player2, !g.IsFinished() && g.Active() == g.Player2))
	b.WriteString(row(out, g.Player1, !g.IsFinished() && g.Active() == g.Player1))
	if moves := g.LegalMoves(); len(moves) > 0 {
		codes := make([]string, len(moves))
		for i, m := range moves {
			codes[i] = m.String()
		}
		fmt.Fprintf(&b, "Moves: %s\n", strings.Join(codes, " "))
	}
	return b.String()
}
