package mdp

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// SimulateReturns plays the given number of episodes in env following policy
// and returns the mean and standard deviation of the discounted return.
// States without a policy entry fall back to their first legal action.
func SimulateReturns(env Environment, policy *Policy, episodes int, discount float64) (mean, stdDev float64, err error) {
	if episodes <= 0 {
		return 0, 0, errors.Wrapf(ErrInvalidArgument, "episodes must be positive, got %d", episodes)
	}

	if err := validateDiscount(discount); err != nil {
		return 0, 0, err
	}

	returns := make([]float64, episodes)
	for i := range returns {
		returns[i], err = playEpisode(env, policy, discount)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "episode %d", i+1)
		}
	}

	mean, stdDev = stat.MeanStdDev(returns, nil)
	return mean, stdDev, nil
}

func playEpisode(env Environment, policy *Policy, discount float64) (float64, error) {
	env.Reset()
	total, weight := 0.0, 1.0
	for !env.IsTerminal() {
		a, ok := policy.ActionFor(env.CurrentState())
		if !ok {
			actions := env.LegalActions()
			if len(actions) == 0 {
				return total, errors.Wrapf(ErrInvalidArgument,
					"no legal actions in non-terminal state %v", env.CurrentState())
			}
			a = actions[0]
		}

		outcome, err := env.Execute(a)
		if err != nil {
			return total, err
		}

		total += weight * outcome.Reward
		weight *= discount
	}

	return total, nil
}
