package mdp

import (
	"math"

	"github.com/golang/glog"
)

// ValueIteration solves a Model by a fixed number of synchronous
// Bellman optimality sweeps followed by greedy policy extraction.
type ValueIteration struct {
	space  []State
	model  Model
	params ValueIterationParams

	values    ValueTable
	next      []float64
	slicePool *floatSlicePool
	sweeps    int
	init      bool
}

func NewValueIteration(space []State, model Model, params ValueIterationParams, opts ...Option) (*ValueIteration, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	o := newOptions(opts)
	return &ValueIteration{
		space:     space,
		model:     model,
		params:    params,
		values:    o.values,
		next:      make([]float64, len(space)),
		slicePool: &floatSlicePool{},
	}, nil
}

// Init zeroes the value of every state.
func (vi *ValueIteration) Init() {
	for _, s := range vi.space {
		vi.values.Set(s, 0)
	}

	vi.sweeps = 0
	vi.init = true
}

// Sweep performs one synchronous sweep: every new value is computed from
// the values of the previous sweep before any of them are written back.
// It returns the largest absolute change.
func (vi *ValueIteration) Sweep() (float64, error) {
	if !vi.init {
		vi.Init()
	}

	for i, s := range vi.space {
		if s.IsTerminal() {
			vi.next[i], _ = vi.values.Get(s)
			continue
		}

		_, v, err := greedyAction(vi.model, vi.values, s, vi.params.Discount, vi.slicePool)
		if err != nil {
			return 0, err
		}

		vi.next[i] = v
	}

	maxDelta := 0.0
	for i, s := range vi.space {
		if s.IsTerminal() {
			continue
		}

		old, _ := vi.values.Get(s)
		maxDelta = math.Max(maxDelta, math.Abs(vi.next[i]-old))
		vi.values.Set(s, vi.next[i])
	}

	vi.sweeps++
	return maxDelta, nil
}

// Iterate performs the configured number of sweeps.
func (vi *ValueIteration) Iterate() error {
	for k := 0; k < vi.params.Sweeps; k++ {
		maxDelta, err := vi.Sweep()
		if err != nil {
			return err
		}

		glog.V(1).Infof("Value iteration sweep %d: max delta %.6g", vi.sweeps, maxDelta)
	}

	return nil
}

// ExtractPolicy returns the policy that is greedy with respect to the
// current values. Ties go to the first legal action.
func (vi *ValueIteration) ExtractPolicy() (*Policy, error) {
	policy := NewPolicy()
	for _, s := range vi.space {
		if s.IsTerminal() {
			continue
		}

		a, _, err := greedyAction(vi.model, vi.values, s, vi.params.Discount, vi.slicePool)
		if err != nil {
			return nil, err
		}

		if err := policy.Set(s, a); err != nil {
			return nil, err
		}
	}

	return policy, nil
}

// Solve zeroes the values, performs the configured number of sweeps
// and extracts the greedy policy.
func (vi *ValueIteration) Solve() (*Policy, error) {
	glog.Infof("Running %d sweeps of value iteration over %d states (γ=%v)",
		vi.params.Sweeps, len(vi.space), vi.params.Discount)
	vi.Init()
	if err := vi.Iterate(); err != nil {
		return nil, err
	}

	return vi.ExtractPolicy()
}

// Value returns the current value estimate for s.
func (vi *ValueIteration) Value(s State) (float64, bool) {
	return vi.values.Get(s)
}

// Sweeps returns the number of sweeps performed since Init.
func (vi *ValueIteration) Sweeps() int {
	return vi.sweeps
}
