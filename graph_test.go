package mdp

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// graphState is a state of a small hand-built MDP. It is terminal
// if it has no actions.
type graphState struct {
	name    string
	actions []string
}

func (s *graphState) Key() string      { return s.name }
func (s *graphState) IsTerminal() bool { return len(s.actions) == 0 }
func (s *graphState) String() string   { return s.name }

func (s *graphState) LegalActions() []Action {
	if len(s.actions) == 0 {
		return nil
	}

	result := make([]Action, len(s.actions))
	for i, a := range s.actions {
		result[i] = graphAction(a)
	}
	return result
}

type graphAction string

func (a graphAction) Key() string { return string(a) }

// graphModel is a Model given by an explicit table of transitions.
type graphModel struct {
	transitions map[string][]TransitionProb
	// Counts of Transitions queries, in total and for terminal states.
	queries         int
	terminalQueries int
}

func newGraphModel() *graphModel {
	return &graphModel{transitions: make(map[string][]TransitionProb)}
}

func (m *graphModel) add(s State, a string, p, reward float64, next State) {
	key := s.Key() + "/" + a
	m.transitions[key] = append(m.transitions[key], TransitionProb{
		P:       p,
		Outcome: Outcome{S: s, Action: graphAction(a), Reward: reward, Next: next},
	})
}

func (m *graphModel) Transitions(s State, a Action) ([]TransitionProb, error) {
	m.queries++
	if s.IsTerminal() {
		m.terminalQueries++
		return nil, errors.Wrapf(ErrInvalidArgument, "terminal state %v", s)
	}

	result, ok := m.transitions[s.Key()+"/"+a.Key()]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidArgument, "illegal action %v in %v", a, s)
	}

	return result, nil
}

// chain is the MDP:
//
//	start --left--> end (reward 1)
//	start --right--> mid (reward 0)
//	mid --go--> end (reward 5 or 1, each with probability 1/2)
//
// With γ = 0.9: V(mid) = 3, Q(start, left) = 1, Q(start, right) = 2.7.
type chain struct {
	start, mid, end *graphState
	model           *graphModel
}

func newChain() *chain {
	c := &chain{
		start: &graphState{name: "start", actions: []string{"left", "right"}},
		mid:   &graphState{name: "mid", actions: []string{"go"}},
		end:   &graphState{name: "end"},
		model: newGraphModel(),
	}

	c.model.add(c.start, "left", 1.0, 1.0, c.end)
	c.model.add(c.start, "right", 1.0, 0.0, c.mid)
	c.model.add(c.mid, "go", 0.5, 5.0, c.end)
	c.model.add(c.mid, "go", 0.5, 1.0, c.end)
	return c
}

func (c *chain) space() []State {
	return []State{c.start, c.mid, c.end}
}

// graphEnv samples episodes of a graphModel starting from start.
type graphEnv struct {
	model   *graphModel
	start   State
	rng     *rand.Rand
	current State
}

func newGraphEnv(model *graphModel, start State, seed uint64) *graphEnv {
	return &graphEnv{
		model:   model,
		start:   start,
		rng:     rand.New(rand.NewSource(seed)),
		current: start,
	}
}

func (e *graphEnv) Reset()                 { e.current = e.start }
func (e *graphEnv) CurrentState() State    { return e.current }
func (e *graphEnv) IsTerminal() bool       { return e.current.IsTerminal() }
func (e *graphEnv) LegalActions() []Action { return e.current.LegalActions() }

func (e *graphEnv) Execute(a Action) (Outcome, error) {
	if !IsLegal(e.current, a) {
		return Outcome{}, errors.Wrapf(ErrIllegalMove, "%v in %v", a, e.current)
	}

	transitions, err := e.model.Transitions(e.current, a)
	if err != nil {
		return Outcome{}, err
	}

	x := e.rng.Float64()
	outcome := transitions[len(transitions)-1].Outcome
	for _, tp := range transitions {
		if x < tp.P {
			outcome = tp.Outcome
			break
		}
		x -= tp.P
	}

	e.current = outcome.Next
	return outcome, nil
}

// flakyEnv rejects every nth call to Execute as an illegal move.
type flakyEnv struct {
	Environment
	n        int
	calls    int
	rejected int
	accepted int
}

func (e *flakyEnv) Execute(a Action) (Outcome, error) {
	e.calls++
	if e.n > 0 && e.calls%e.n == 0 {
		e.rejected++
		return Outcome{}, errors.Wrapf(ErrIllegalMove, "rejected call %d", e.calls)
	}

	e.accepted++
	return e.Environment.Execute(a)
}
