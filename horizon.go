package mdp

import (
	"github.com/pkg/errors"
)

// Horizon returns the maximum number of decisions the agent can still face
// from any state in space before reaching a terminal state. Value Iteration
// with at least this many sweeps computes exact values on an acyclic MDP.
//
// Horizon fails with ErrInvalidArgument if the transition graph has a cycle.
func Horizon(space []State, model Model) (int, error) {
	h := &horizonSearch{
		model:   model,
		depth:   make(map[string]int),
		onStack: make(map[string]bool),
	}

	result := 0
	for _, s := range space {
		d, err := h.visit(s)
		if err != nil {
			return 0, err
		}

		if d > result {
			result = d
		}
	}

	return result, nil
}

type horizonSearch struct {
	model   Model
	depth   map[string]int
	onStack map[string]bool
}

func (h *horizonSearch) visit(s State) (int, error) {
	if s.IsTerminal() {
		return 0, nil
	}

	key := s.Key()
	if d, ok := h.depth[key]; ok {
		return d, nil
	} else if h.onStack[key] {
		return 0, errors.Wrapf(ErrInvalidArgument, "transition graph has a cycle through %v", s)
	}

	h.onStack[key] = true
	defer delete(h.onStack, key)

	longest := 0
	for _, a := range s.LegalActions() {
		transitions, err := h.model.Transitions(s, a)
		if err != nil {
			return 0, err
		}

		for _, tp := range transitions {
			d, err := h.visit(tp.Outcome.Next)
			if err != nil {
				return 0, err
			}

			if d > longest {
				longest = d
			}
		}
	}

	h.depth[key] = longest + 1
	return longest + 1, nil
}
