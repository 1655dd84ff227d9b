package search

// Scores are from the point of view of the player to move at the root.
const (
	Win  = 1
	Loss = -Win
	// Unknown is given to positions cut off by the depth limit.
	Unknown = 0
)

// evaluate backs up minimax scores below idx and returns the score of idx.
// Even depths maximize, odd depths minimize.
func (t *tree) evaluate(idx int) int {
	n := &t.nodes[idx]
	switch {
	case n.terminal:
		if n.winner == t.maximizer {
			n.score = Win
		} else {
			n.score = Loss
		}
	case len(n.children) == 0 && n.depth >= t.horizon:
		n.score = Unknown
	case len(n.children) == 0:
		// Cannot happen in real play; a stuck position counts against the
		// maximizer.
		n.score = Loss
	default:
		maximizing := n.depth%2 == 0
		best := t.evaluate(n.children[0])
		for _, c := range n.children[1:] {
			s := t.evaluate(c)
			if (maximizing && s > best) || (!maximizing && s < best) {
				best = s
			}
		}
		n.score = best
	}
	return n.score
}

// rootScores evaluates the tree and returns the score of each root child in
// enumeration order.
func (t *tree) rootScores() []Score {
	t.evaluate(0)
	scores := make([]Score, 0, len(t.nodes[0].children))
	for _, c := range t.nodes[0].children {
		scores = append(scores, Score{Attack: t.nodes[c].attack, Value: t.nodes[c].score})
	}
	return scores
}

// pick returns the index of the first highest score, or -1 when empty.
func pick(scores []Score) int {
	best := -1
	for i, s := range scores {
		if best == -1 || s.Value > scores[best].Value {
			best = i
		}
	}
	return best
}
