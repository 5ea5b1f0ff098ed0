package mdp

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	params, err := ParseConfig(" discount = 0.95, episodes=10,flag")
	require.NoError(t, err)
	require.Equal(t, Config{"discount": "0.95", "episodes": "10", "flag": ""}, params)

	params, err = ParseConfig("")
	require.NoError(t, err)
	require.Empty(t, params)

	for _, config := range []string{"=1", "a=1,,b=2", "a=1,a=2"} {
		_, err := ParseConfig(config)
		require.True(t, errors.Is(err, ErrInvalidArgument), "%q: %v", config, err)
	}
}

func TestPopParamOr(t *testing.T) {
	params := Config{"n": "3", "x": "0.5", "empty": "", "bad": "abc"}

	n, err := PopParamOr(params, "n", 1)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	x, err := PopParamOr(params, "x", 1.0)
	require.NoError(t, err)
	require.Equal(t, 0.5, x)

	missing, err := PopParamOr(params, "missing", 2.5)
	require.NoError(t, err)
	require.Equal(t, 2.5, missing)

	empty, err := PopParamOr(params, "empty", 7)
	require.NoError(t, err)
	require.Equal(t, 7, empty)

	_, err = PopParamOr(params, "bad", 1)
	require.Error(t, err)
	require.Error(t, params.CheckEmpty())

	delete(params, "bad")
	require.NoError(t, params.CheckEmpty())
}

func TestParseParams(t *testing.T) {
	t.Run("policy iteration", func(t *testing.T) {
		p, err := ParsePolicyIterationParams("discount=0.5,delta=1e-4,max_iterations=3")
		require.NoError(t, err)
		require.Equal(t, PolicyIterationParams{
			Discount:      0.5,
			Delta:         1e-4,
			MaxIterations: 3,
			MaxSweeps:     DefaultPolicyIterationParams().MaxSweeps,
		}, p)

		_, err = ParsePolicyIterationParams("delta=0")
		require.True(t, errors.Is(err, ErrInvalidArgument), err)
	})

	t.Run("value iteration", func(t *testing.T) {
		p, err := ParseValueIterationParams("sweeps=5")
		require.NoError(t, err)
		require.Equal(t, ValueIterationParams{Discount: 0.9, Sweeps: 5}, p)

		_, err = ParseValueIterationParams("sweeps=five")
		require.Error(t, err)
	})

	t.Run("q-learning", func(t *testing.T) {
		p, err := ParseQLearningParams("")
		require.NoError(t, err)
		require.Equal(t, DefaultQLearningParams(), p)

		p, err = ParseQLearningParams("learning_rate=0.5,epsilon=0,episodes=10")
		require.NoError(t, err)
		require.Equal(t, QLearningParams{LearningRate: 0.5, Discount: 0.9, Epsilon: 0, Episodes: 10}, p)

		_, err = ParseQLearningParams("alpha=0.5")
		require.True(t, errors.Is(err, ErrInvalidArgument), err)
	})
}
