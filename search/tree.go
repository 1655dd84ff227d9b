package search

import (
	"context"

	"github.com/tkahng/chopsticks/sticks"
)

const noParent = -1

// node is one hypothetical position reached from the root. Nodes live in the
// tree's arena and refer to each other by index.
type node struct {
	parent   int
	attack   sticks.Attack
	depth    int
	mover    string // player to move in this position
	terminal bool
	winner   string
	children []int
	score    int
}

// tree is the bounded game tree for a single decision. It is discarded once a
// move has been picked.
type tree struct {
	root      *sticks.Game
	maximizer string
	horizon   int
	nodes     []node
	pruned    int
}

// buildTree expands every position reachable from root in at most horizon
// plies. Each child's position is re-derived by replaying its whole path on a
// fresh copy of root. When first is non-nil only those attacks are tried at
// the root.
func buildTree(ctx context.Context, root *sticks.Game, horizon int, first []sticks.Attack) (*tree, error) {
	t := &tree{
		root:      root,
		maximizer: root.Active().ID,
		horizon:   horizon,
		nodes: []node{{
			parent: noParent,
			mover:  root.Active().ID,
		}},
	}

	frontier := []int{0}
	for ply := 1; ply <= horizon && len(frontier) > 0; ply++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var next []int
		for _, idx := range frontier {
			candidates := sticks.Attacks[:]
			if idx == 0 && first != nil {
				candidates = first
			}
			path := t.path(idx)
			for _, a := range candidates {
				g, ok := t.replay(append(path, a))
				if !ok {
					t.pruned++
					continue
				}
				child := node{
					parent:   idx,
					attack:   a,
					depth:    ply,
					mover:    g.Active().ID,
					terminal: g.IsFinished(),
				}
				if w := g.Winner(); w != nil {
					child.winner = w.ID
				}
				t.nodes = append(t.nodes, child)
				ci := len(t.nodes) - 1
				t.nodes[idx].children = append(t.nodes[idx].children, ci)
				if !child.terminal {
					next = append(next, ci)
				}
			}
		}
		frontier = next
	}
	return t, nil
}

// path returns the attacks leading from the root to idx.
func (t *tree) path(idx int) []sticks.Attack {
	n := t.nodes[idx].depth
	path := make([]sticks.Attack, n, n+1)
	for i := idx; t.nodes[i].parent != noParent; i = t.nodes[i].parent {
		n--
		path[n] = t.nodes[i].attack
	}
	return path
}

// replay applies path to a copy of the root. It reports false when the path
// is not playable.
func (t *tree) replay(path []sticks.Attack) (*sticks.Game, bool) {
	g := t.root.Clone()
	for _, a := range path {
		if err := g.Apply(a); err != nil {
			return nil, false
		}
	}
	return g, true
}

// size is the number of generated positions, root excluded.
func (t *tree) size() int {
	return len(t.nodes) - 1
}
