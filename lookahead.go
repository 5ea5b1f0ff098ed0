package mdp

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// successorValue looks up the value of a state reached by a transition.
// Terminal states have no future, so a terminal state missing from the
// table is worth 0.
func successorValue(values ValueTable, next State) (float64, error) {
	v, ok := values.Get(next)
	if ok {
		return v, nil
	} else if next.IsTerminal() {
		return 0, nil
	}

	return 0, errors.Wrapf(ErrMissingValue, "no value for successor state %v", next)
}

// expectedReturn is the one-step Bellman backup of taking action a in s:
//
//	Σ P(s'|s,a) · (R(s,a,s') + γ·V(s'))
func expectedReturn(model Model, values ValueTable, s State, a Action, discount float64) (float64, error) {
	transitions, err := model.Transitions(s, a)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, tp := range transitions {
		v, err := successorValue(values, tp.Outcome.Next)
		if err != nil {
			return 0, err
		}

		total += tp.P * (tp.Outcome.Reward + discount*v)
	}

	return total, nil
}

// Expected returns within tieTolerance of the maximum are treated as tied.
const tieTolerance = 1e-9

// greedyAction performs an expectimax lookahead over every legal action of
// non-terminal state s and returns the best one with its expected return.
// Ties go to the first action in LegalActions order.
func greedyAction(model Model, values ValueTable, s State, discount float64, pool *floatSlicePool) (Action, float64, error) {
	actions := s.LegalActions()
	if len(actions) == 0 {
		return nil, 0, errors.Wrapf(ErrInvalidArgument, "no legal actions in state %v", s)
	}

	returns := pool.alloc(len(actions))
	defer pool.free(returns)
	for i, a := range actions {
		q, err := expectedReturn(model, values, s, a, discount)
		if err != nil {
			return nil, 0, err
		}

		returns[i] = q
	}

	best := firstMaxIdx(returns)
	return actions[best], returns[best], nil
}

// firstMaxIdx returns the index of the first element of s that is within
// tieTolerance of the maximum.
func firstMaxIdx(s []float64) int {
	top := floats.Max(s)
	for i, v := range s {
		if v >= top-tieTolerance {
			return i
		}
	}

	return floats.MaxIdx(s)
}
