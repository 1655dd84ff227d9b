package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tkahng/chopsticks/bot"
	"github.com/tkahng/chopsticks/cli"
	"github.com/tkahng/chopsticks/config"
	"github.com/tkahng/chopsticks/logger"
	"github.com/tkahng/chopsticks/search"
)

func main() {
	cfg := config.Load()

	depth := flag.Int("depth", cfg.SearchDepth, "bot search depth in plies")
	parallel := flag.Int("parallel", cfg.SearchParallel, "root moves searched concurrently")
	maxTurns := flag.Int("max-turns", cfg.MaxTurns, "moves before the game is a draw, 0 for no limit")
	position := flag.String("position", "", "starting hands as \"l,r/l,r\" (you, then the bot)")
	name := flag.String("name", cfg.PlayerName, "your name")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "seed for the bot's fallback moves")
	level := flag.String("log-level", "warn", "log level")
	flag.Parse()

	logger.InitWriter(os.Stderr, *level, false)

	opts := cli.Options{
		PlayerName: *name,
		BotName:    cfg.BotName,
		MaxTurns:   *maxTurns,
		Bot: bot.Minimax(
			search.New(search.WithDepth(*depth), search.WithParallel(*parallel)),
			bot.Random(bot.NewLockedRand(*seed)),
		),
	}
	if *position != "" {
		var p [2][2]int
		if _, err := fmt.Sscanf(*position, "%d,%d/%d,%d", &p[0][0], &p[0][1], &p[1][0], &p[1][1]); err != nil {
			log.Fatal().Err(err).Str("position", *position).Msg("invalid position")
		}
		opts.Position = &p
	}

	if err := cli.Play(os.Stdin, os.Stdout, opts); err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
}
