package tictactoe

import (
	"github.com/timpalpant/go-mdp"
)

// Opponent decides how the other player replies to the agent.
type Opponent interface {
	// Replies returns the probability of playing each of the given legal
	// moves in s. The probabilities must sum to 1.
	Replies(s State, moves []Move) []float64
}

// RandomOpponent replies uniformly at random among the legal moves.
type RandomOpponent struct{}

func (RandomOpponent) Replies(s State, moves []Move) []float64 {
	return uniformDist(len(moves))
}

// PolicyOpponent replies according to a fixed policy, for example one
// trained for the other mark. It plays uniformly at random in positions
// the policy has no recommendation for.
type PolicyOpponent struct {
	Policy *mdp.Policy
}

func (o PolicyOpponent) Replies(s State, moves []Move) []float64 {
	a, ok := o.Policy.ActionFor(s)
	if !ok {
		return uniformDist(len(moves))
	}

	result := make([]float64, len(moves))
	for i, m := range moves {
		if m.Key() == a.Key() {
			result[i] = 1.0
			return result
		}
	}

	return uniformDist(len(moves))
}

func uniformDist(n int) []float64 {
	result := make([]float64, n)
	for i := range result {
		result[i] = 1.0 / float64(n)
	}
	return result
}
