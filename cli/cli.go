// Package cli plays a game against the bot in a terminal.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"github.com/tkahng/chopsticks/bot"
	"github.com/tkahng/chopsticks/sticks"
)

const help = "enter ll, lr, rl or rr to attack (your hand, then theirs), reset for a new game, quit to leave"

type Options struct {
	PlayerName string
	BotName    string
	// MaxTurns ends the game after that many moves. Zero means no limit.
	MaxTurns int
	// Position, when set, is the starting {left, right} of each player.
	Position *[2][2]int
	Bot      bot.Strategy
	// Profile forces a color profile. Nil detects it from out.
	Profile *termenv.Profile
}

type session struct {
	opts  Options
	out   *termenv.Output
	game  *sticks.Game
	ended bool
}

func (s *session) newGame() error {
	if s.opts.Position == nil {
		s.game = sticks.NewGame(s.opts.PlayerName, s.opts.BotName)
	} else {
		g, err := sticks.NewGameFromHands(s.opts.PlayerName, s.opts.BotName, s.opts.Position[0], s.opts.Position[1])
		if err != nil {
			return err
		}
		s.game = g
	}
	s.ended = false
	s.show()
	s.checkEnd()
	return nil
}

func (s *session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *session) show() {
	s.printf("%s", Render(s.out, s.game))
}

func (s *session) checkEnd() {
	switch {
	case s.game.IsFinished():
		s.printf("%s\n", s.out.String(s.game.Winner().Name+" wins!").Bold())
	case s.opts.MaxTurns > 0 && s.game.Turn()-1 >= s.opts.MaxTurns:
		s.printf("Turn limit of %d reached, it's a draw.\n", s.opts.MaxTurns)
	default:
		return
	}
	s.ended = true
	s.printf("Type reset to play again or quit to leave.\n")
}

// attack plays the human move and the bot's answer.
func (s *session) attack(a sticks.Attack) error {
	if err := s.game.Apply(a); err != nil {
		return err
	}
	s.checkEnd()
	if s.ended {
		s.show()
		return nil
	}

	reply, err := s.opts.Bot(s.game.Clone())
	if err != nil {
		return fmt.Errorf("bot failed to move: %w", err)
	}
	if err := s.game.Apply(reply); err != nil {
		return fmt.Errorf("bot chose %s: %w", reply, err)
	}
	s.printf("%s plays %s\n", s.opts.BotName, reply)
	s.show()
	s.checkEnd()
	return nil
}

// Play reads commands from in until quit or EOF, playing the human as
// player1 against opts.Bot.
func Play(in io.Reader, out io.Writer, opts Options) error {
	if opts.Bot == nil {
		return errors.New("cli: no bot strategy")
	}
	var outOpts []termenv.OutputOption
	if opts.Profile != nil {
		outOpts = append(outOpts, termenv.WithProfile(*opts.Profile))
	}
	s := &session{opts: opts, out: termenv.NewOutput(out, outOpts...)}
	if err := s.newGame(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		s.printf("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch input {
		case "":
			continue
		case "quit", "q", "exit":
			return nil
		case "help", "?":
			s.printf("%s\n", help)
			continue
		case "reset":
			if err := s.newGame(); err != nil {
				return err
			}
			continue
		}

		if s.ended {
			s.printf("The game is over. Type reset or quit.\n")
			continue
		}
		a, err := sticks.ParseAttack(input)
		if err == nil {
			err = s.attack(a)
		}
		if err != nil {
			log.Debug().Err(err).Str("input", input).Msg("move rejected")
			s.printf("%s\n", s.out.String(err.Error()).Foreground(s.out.Color("1")))
		}
	}
}
