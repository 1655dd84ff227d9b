package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tkahng/chopsticks/sticks"
	"golang.org/x/sync/errgroup"
)

// DefaultDepth is the number of plies searched when no depth is given.
const DefaultDepth = 5

type Option func(s *Searcher)

// Score is the backed-up minimax value of one root attack.
type Score struct {
	Attack sticks.Attack `json:"attack"`
	Value  int           `json:"value"`
}

// Result describes one move decision.
type Result struct {
	Attack sticks.Attack `json:"attack"`
	Score  int           `json:"score"`
	Scores []Score       `json:"scores"`
	Nodes  int           `json:"nodes"`
	Pruned int           `json:"pruned"`
}

// Searcher picks moves by exhaustive minimax to a fixed depth.
type Searcher struct {
	depth    int
	parallel int
	logger   zerolog.Logger
}

// WithDepth sets the search horizon in plies. A depth of zero or less
// disables search and every call reports sticks.ErrNoMoveAvailable.
func WithDepth(depth int) Option {
	return func(s *Searcher) {
		s.depth = depth
	}
}

// WithParallel searches each root attack in its own goroutine, with at most n
// running at once. n <= 1 keeps the search sequential.
func WithParallel(n int) Option {
	return func(s *Searcher) {
		if n > 1 {
			s.parallel = n
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Searcher) {
		s.logger = logger
	}
}

func New(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		depth:  DefaultDepth,
		logger: log.Logger,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Searcher) Depth() int {
	return s.depth
}

// BestMove is a one-shot search of g to the given depth.
func BestMove(g *sticks.Game, depth int) (sticks.Attack, error) {
	return New(WithDepth(depth)).BestMove(context.Background(), g)
}

func (s *Searcher) BestMove(ctx context.Context, g *sticks.Game) (sticks.Attack, error) {
	res, err := s.Search(ctx, g)
	if err != nil {
		return 0, err
	}
	return res.Attack, nil
}

// Search evaluates every legal attack of g and returns the best one for the
// player to move. g itself is never modified.
func (s *Searcher) Search(ctx context.Context, g *sticks.Game) (*Result, error) {
	start := time.Now()
	res, err := s.search(ctx, g)
	observe(res, err, time.Since(start))
	if err != nil {
		s.logger.Debug().Err(err).Int("depth", s.depth).Int("turn", g.Turn()).Msg("search found no move")
		return nil, err
	}
	s.logger.Debug().
		Stringer("attack", res.Attack).
		Int("score", res.Score).
		Int("nodes", res.Nodes).
		Int("pruned", res.Pruned).
		Dur("took", time.Since(start)).
		Msg("search complete")
	return res, nil
}

func (s *Searcher) search(ctx context.Context, g *sticks.Game) (*Result, error) {
	if g.IsFinished() {
		return nil, sticks.ErrAlreadyFinished
	}
	if s.depth <= 0 {
		return nil, fmt.Errorf("%w: search depth %d", sticks.ErrNoMoveAvailable, s.depth)
	}

	root := g.Clone()
	var (
		res *Result
		err error
	)
	if s.parallel > 1 {
		res, err = s.searchParallel(ctx, root)
	} else {
		res, err = s.searchSequential(ctx, root)
	}
	if err != nil {
		return nil, err
	}

	best := pick(res.Scores)
	if best < 0 {
		return nil, sticks.ErrNoMoveAvailable
	}
	res.Attack = res.Scores[best].Attack
	res.Score = res.Scores[best].Value
	return res, nil
}

func (s *Searcher) searchSequential(ctx context.Context, root *sticks.Game) (*Result, error) {
	t, err := buildTree(ctx, root, s.depth, nil)
	if err != nil {
		return nil, err
	}
	return &Result{
		Scores: t.rootScores(),
		Nodes:  t.size(),
		Pruned: t.pruned,
	}, nil
}

// searchParallel builds one tree per root attack. Results are collected by
// enumeration index so scheduling order cannot affect the chosen move.
func (s *Searcher) searchParallel(ctx context.Context, root *sticks.Game) (*Result, error) {
	first := sticks.Attacks[:]
	trees := make([]*tree, len(first))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.parallel)
	for i, a := range first {
		i, a := i, a
		eg.Go(func() error {
			t, err := buildTree(ctx, root, s.depth, []sticks.Attack{a})
			if err != nil {
				return err
			}
			t.evaluate(0)
			trees[i] = t
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	res := &Result{}
	for _, t := range trees {
		res.Nodes += t.size()
		res.Pruned += t.pruned
		for _, c := range t.nodes[0].children {
			res.Scores = append(res.Scores, Score{Attack: t.nodes[c].attack, Value: t.nodes[c].score})
		}
	}
	return res, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, sticks.ErrAlreadyFinished):
		return "finished"
	case errors.Is(err, sticks.ErrNoMoveAvailable):
		return "no_move"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}
