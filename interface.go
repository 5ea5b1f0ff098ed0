// Package mdp implements tabular solvers for finite Markov decision processes:
// Policy Iteration, Value Iteration and Q-Learning.
package mdp

// State is a position of a finite Markov decision process.
type State interface {
	// Key is an identifier used to uniquely look up this State
	// in value tables, Q-tables and policies.
	//
	// It must be derived only from the content of the state, so that
	// two equal positions reached by different paths share a key.
	// It does not need to be human-readable.
	Key() string
	// IsTerminal returns true if no further decisions can be made.
	IsTerminal() bool
	// LegalActions returns the actions available to the agent.
	// It is empty if and only if the state is terminal.
	LegalActions() []Action
}

// Action is a decision the agent can take in a State.
type Action interface {
	// Key identifies the action within the states it is legal in.
	Key() string
}

// Outcome is one observed (or possible) step of the decision process:
// taking Action in S yields Reward and moves to Next.
type Outcome struct {
	S      State
	Action Action
	Reward float64
	Next   State
}

// TransitionProb is an Outcome together with the probability of observing it.
type TransitionProb struct {
	P       float64
	Outcome Outcome
}

// Model is a full transition model of an MDP.
type Model interface {
	// Transitions returns the distribution over outcomes of taking action a
	// in non-terminal state s. The probabilities are non-negative and sum to 1.
	//
	// Querying a terminal state or an illegal action is an error wrapping
	// ErrInvalidArgument.
	Transitions(s State, a Action) ([]TransitionProb, error)
}

// Environment is a live, sample-based view of an MDP used by
// model-free learners.
type Environment interface {
	// Reset starts a new episode.
	Reset()
	CurrentState() State
	IsTerminal() bool
	LegalActions() []Action
	// Execute takes action a in the current state and advances the
	// environment. An illegal action returns an error wrapping
	// ErrIllegalMove and leaves the environment unchanged.
	Execute(a Action) (Outcome, error)
}

// IsLegal returns true if a is one of the legal actions of s.
func IsLegal(s State, a Action) bool {
	if a == nil {
		return false
	}

	key := a.Key()
	for _, legal := range s.LegalActions() {
		if legal.Key() == key {
			return true
		}
	}

	return false
}
