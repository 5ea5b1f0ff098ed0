package mdp

import (
	"github.com/pkg/errors"
)

// Policy maps non-terminal states to the action the agent should take,
// looked up by State.Key(). Every entry is a legal action of its state.
type Policy struct {
	// Map of State Key -> index into entries.
	index   map[string]int
	entries []policyEntry
}

type policyEntry struct {
	state  State
	action Action
}

// NewPolicy creates a new, empty Policy.
func NewPolicy() *Policy {
	return &Policy{
		index: make(map[string]int),
	}
}

// ActionFor returns the recommended action for s. If s was never assigned
// an action (for example, it was never visited during training) ok is false,
// which callers should treat as "no recommendation".
func (p *Policy) ActionFor(s State) (a Action, ok bool) {
	i, ok := p.index[s.Key()]
	if !ok {
		return nil, false
	}

	return p.entries[i].action, true
}

// Set assigns action a to state s. Terminal states and actions that are not
// legal in s are rejected with ErrInvalidArgument.
func (p *Policy) Set(s State, a Action) error {
	if s.IsTerminal() {
		return errors.Wrapf(ErrInvalidArgument, "cannot assign an action to terminal state %v", s)
	}

	if !IsLegal(s, a) {
		return errors.Wrapf(ErrInvalidArgument, "action %v is not legal in state %v", a, s)
	}

	key := s.Key()
	if i, ok := p.index[key]; ok {
		p.entries[i].action = a
		return nil
	}

	p.index[key] = len(p.entries)
	p.entries = append(p.entries, policyEntry{s, a})
	return nil
}

// Len returns the number of states with an assigned action.
func (p *Policy) Len() int {
	return len(p.entries)
}

// Range calls fn for every (state, action) entry in the order the states
// were first assigned, stopping early if fn returns false.
func (p *Policy) Range(fn func(s State, a Action) bool) {
	for _, e := range p.entries {
		if !fn(e.state, e.action) {
			return
		}
	}
}
