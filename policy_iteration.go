package mdp

import (
	"math"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// PolicyIteration solves a Model by alternating policy evaluation
// and greedy policy improvement until the policy stops changing.
type PolicyIteration struct {
	space  []State
	model  Model
	params PolicyIterationParams
	rng    *rand.Rand

	values    ValueTable
	policy    *Policy
	slicePool *floatSlicePool
	iter      int
}

// NewPolicyIteration creates a PolicyIteration solver over the given
// enumerated state space. rng seeds the random initial policy.
func NewPolicyIteration(space []State, model Model, params PolicyIterationParams, rng *rand.Rand, opts ...Option) (*PolicyIteration, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if rng == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "policy iteration requires a random source")
	}

	o := newOptions(opts)
	return &PolicyIteration{
		space:     space,
		model:     model,
		params:    params,
		rng:       rng,
		values:    o.values,
		slicePool: &floatSlicePool{},
	}, nil
}

// Init zeroes the value of every state and assigns each non-terminal state
// a uniformly random legal action.
func (pi *PolicyIteration) Init() error {
	pi.policy = NewPolicy()
	pi.iter = 0
	for _, s := range pi.space {
		pi.values.Set(s, 0)
		if s.IsTerminal() {
			continue
		}

		actions := s.LegalActions()
		a := actions[pi.rng.Intn(len(actions))]
		if err := pi.policy.Set(s, a); err != nil {
			return err
		}
	}

	return nil
}

// EvaluatePolicy performs in-place Bellman expectation sweeps over the state
// space under the current policy until no value changes by more than Delta.
// It returns the number of sweeps performed.
func (pi *PolicyIteration) EvaluatePolicy() (int, error) {
	if err := pi.ensureInit(); err != nil {
		return 0, err
	}

	for sweep := 1; ; sweep++ {
		maxDelta := 0.0
		for _, s := range pi.space {
			if s.IsTerminal() {
				continue
			}

			a, ok := pi.policy.ActionFor(s)
			if !ok {
				return sweep, errors.Wrapf(ErrMissingValue, "no policy action for state %v", s)
			}

			v, err := expectedReturn(pi.model, pi.values, s, a, pi.params.Discount)
			if err != nil {
				return sweep, err
			}

			old, _ := pi.values.Get(s)
			maxDelta = math.Max(maxDelta, math.Abs(v-old))
			pi.values.Set(s, v)
		}

		glog.V(2).Infof("Policy evaluation sweep %d: max delta %.6g", sweep, maxDelta)
		if maxDelta < pi.params.Delta {
			return sweep, nil
		}

		if pi.params.MaxSweeps > 0 && sweep >= pi.params.MaxSweeps {
			return sweep, errors.Wrapf(ErrNotConverged,
				"policy evaluation still changing by %v after %d sweeps", maxDelta, sweep)
		}
	}
}

// ImprovePolicy makes the policy greedy with respect to the current values
// and returns the number of states whose action changed. Ties go to the
// first legal action, whatever the current action is.
func (pi *PolicyIteration) ImprovePolicy() (int, error) {
	if err := pi.ensureInit(); err != nil {
		return 0, err
	}

	changes := 0
	for _, s := range pi.space {
		if s.IsTerminal() {
			continue
		}

		best, _, err := greedyAction(pi.model, pi.values, s, pi.params.Discount, pi.slicePool)
		if err != nil {
			return changes, err
		}

		if current, ok := pi.policy.ActionFor(s); ok && current.Key() == best.Key() {
			continue
		}

		if err := pi.policy.Set(s, best); err != nil {
			return changes, err
		}
		changes++
	}

	return changes, nil
}

// Solve runs policy evaluation and improvement until the policy is stable,
// initializing the solver first if needed.
func (pi *PolicyIteration) Solve() (*Policy, error) {
	if err := pi.ensureInit(); err != nil {
		return nil, err
	}

	glog.Infof("Running policy iteration over %d states (γ=%v, δ=%v)",
		len(pi.space), pi.params.Discount, pi.params.Delta)
	for {
		pi.iter++
		sweeps, err := pi.EvaluatePolicy()
		if err != nil {
			return nil, err
		}

		changes, err := pi.ImprovePolicy()
		if err != nil {
			return nil, err
		}

		glog.V(1).Infof("Policy iteration %d: %d evaluation sweeps, %d policy changes",
			pi.iter, sweeps, changes)
		if changes == 0 {
			glog.Infof("Policy iteration converged after %d iterations", pi.iter)
			return pi.policy, nil
		}

		if pi.params.MaxIterations > 0 && pi.iter >= pi.params.MaxIterations {
			return nil, errors.Wrapf(ErrNotConverged,
				"policy still changing in %d states after %d iterations", changes, pi.iter)
		}
	}
}

// Value returns the current value estimate for s.
func (pi *PolicyIteration) Value(s State) (float64, bool) {
	return pi.values.Get(s)
}

// Policy returns the current policy, or nil before Init.
func (pi *PolicyIteration) Policy() *Policy {
	return pi.policy
}

// Iter returns the number of completed evaluation/improvement iterations of Solve.
func (pi *PolicyIteration) Iter() int {
	return pi.iter
}

func (pi *PolicyIteration) ensureInit() error {
	if pi.policy != nil {
		return nil
	}

	return pi.Init()
}
