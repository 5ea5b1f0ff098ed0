package mdp

import (
	"maps"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// QLearningStats summarizes the experience gathered during training.
type QLearningStats struct {
	Episodes int
	// Number of (state, action) updates performed.
	Steps int
	// Number of episodes that ended early because the environment
	// rejected the selected action.
	IllegalMoves int
	// Map of State Key -> number of updates made from that state.
	Visits map[string]int
}

// QLearning is a model-free tabular learner: it estimates Q-values from
// episodes of simulated play using epsilon-greedy exploration and
// temporal-difference updates.
type QLearning struct {
	env    Environment
	space  []State
	params QLearningParams
	rng    *rand.Rand

	qValues   QTable
	stats     QLearningStats
	slicePool *floatSlicePool
}

// NewQLearning creates a Q-Learning solver for env. The Q-table is zeroed
// for every legal action of every non-terminal state in space. rng drives
// exploration.
func NewQLearning(env Environment, space []State, params QLearningParams, rng *rand.Rand, opts ...Option) (*QLearning, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if rng == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "q-learning requires a random source")
	}

	o := newOptions(opts)
	ql := &QLearning{
		env:       env,
		space:     space,
		params:    params,
		rng:       rng,
		qValues:   o.qValues,
		slicePool: &floatSlicePool{},
	}

	ql.Init()
	return ql, nil
}

// Init zeroes the Q-table and the training statistics.
func (ql *QLearning) Init() {
	for _, s := range ql.space {
		for _, a := range s.LegalActions() {
			ql.qValues.Set(s, a, 0)
		}
	}

	ql.stats = QLearningStats{Visits: make(map[string]int)}
}

// RunEpisode plays one episode from a fresh environment, updating the
// Q-table after every step.
//
// If the environment rejects an action as illegal, the episode ends at that
// point with no update for the rejected step, and RunEpisode returns nil.
func (ql *QLearning) RunEpisode() error {
	ql.env.Reset()
	ql.stats.Episodes++
	for !ql.env.IsTerminal() {
		s := ql.env.CurrentState()
		a, err := ql.selectAction(s, ql.env.LegalActions())
		if err != nil {
			return err
		}

		outcome, err := ql.env.Execute(a)
		if errors.Is(err, ErrIllegalMove) {
			ql.stats.IllegalMoves++
			glog.Warningf("Episode %d: environment rejected action %v in state %v: %v",
				ql.stats.Episodes, a, s, err)
			return nil
		} else if err != nil {
			return err
		}

		if err := ql.update(s, a, outcome); err != nil {
			return err
		}
	}

	return nil
}

func (ql *QLearning) update(s State, a Action, outcome Outcome) error {
	q, ok := ql.qValues.Get(s, a)
	if !ok {
		return errors.Wrapf(ErrMissingValue, "no Q-value for action %v in state %v", a, s)
	}

	sample := outcome.Reward
	if next := outcome.Next; !next.IsTerminal() {
		_, maxQ, err := ql.bestAction(next, next.LegalActions())
		if err != nil {
			return err
		}

		sample += ql.params.Discount * maxQ
	}

	alpha := ql.params.LearningRate
	ql.qValues.Set(s, a, (1-alpha)*q+alpha*sample)
	ql.stats.Steps++
	ql.stats.Visits[s.Key()]++
	return nil
}

// selectAction chooses epsilon-greedily among the given legal actions.
func (ql *QLearning) selectAction(s State, actions []Action) (Action, error) {
	if len(actions) == 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "no legal actions in state %v", s)
	}

	if ql.rng.Float64() < ql.params.Epsilon {
		return actions[ql.rng.Intn(len(actions))], nil
	}

	a, _, err := ql.bestAction(s, actions)
	return a, err
}

// bestAction returns the first action with the highest Q-value.
func (ql *QLearning) bestAction(s State, actions []Action) (Action, float64, error) {
	qs := ql.slicePool.alloc(len(actions))
	defer ql.slicePool.free(qs)
	for i, a := range actions {
		q, ok := ql.qValues.Get(s, a)
		if !ok {
			return nil, 0, errors.Wrapf(ErrMissingValue, "no Q-value for action %v in state %v", a, s)
		}

		qs[i] = q
	}

	best := floats.MaxIdx(qs)
	return actions[best], qs[best], nil
}

// Train runs the configured number of episodes.
func (ql *QLearning) Train() error {
	glog.Infof("Running %d episodes of Q-learning (α=%v, γ=%v, ε=%v)",
		ql.params.Episodes, ql.params.LearningRate, ql.params.Discount, ql.params.Epsilon)
	logEvery := max(ql.params.Episodes/10, 1)
	for i := 1; i <= ql.params.Episodes; i++ {
		if err := ql.RunEpisode(); err != nil {
			return errors.Wrapf(err, "episode %d", ql.stats.Episodes)
		}

		if i%logEvery == 0 {
			glog.V(1).Infof("Q-learning: %d episodes, %d updates, %d states visited",
				i, ql.stats.Steps, len(ql.stats.Visits))
		}
	}

	glog.Infof("Q-learning finished: %d updates, %d illegal moves",
		ql.stats.Steps, ql.stats.IllegalMoves)
	return nil
}

// ExtractPolicy returns the greedy policy for every non-terminal state
// of the state space that has Q-values for all of its legal actions.
func (ql *QLearning) ExtractPolicy() (*Policy, error) {
	policy := NewPolicy()
	for _, s := range ql.space {
		if s.IsTerminal() {
			continue
		}

		a, _, err := ql.bestAction(s, s.LegalActions())
		if errors.Is(err, ErrMissingValue) {
			continue
		} else if err != nil {
			return nil, err
		}

		if err := policy.Set(s, a); err != nil {
			return nil, err
		}
	}

	return policy, nil
}

// Solve trains for the configured number of episodes and extracts the
// greedy policy.
func (ql *QLearning) Solve() (*Policy, error) {
	if err := ql.Train(); err != nil {
		return nil, err
	}

	return ql.ExtractPolicy()
}

func (ql *QLearning) QValue(s State, a Action) (float64, bool) {
	return ql.qValues.Get(s, a)
}

// Stats returns a snapshot of the training statistics.
func (ql *QLearning) Stats() QLearningStats {
	stats := ql.stats
	stats.Visits = maps.Clone(ql.stats.Visits)
	return stats
}
