package mdp

import (
	"github.com/pkg/errors"
)

// PolicyIterationParams are the configuration options for Policy Iteration.
type PolicyIterationParams struct {
	Discount float64 // γ, in [0, 1]
	// Policy evaluation stops once a full sweep changes no value
	// by more than Delta.
	Delta float64
	// Caps on the number of improvement passes and on the number of
	// evaluation sweeps within one pass. Zero means no cap.
	MaxIterations int
	MaxSweeps     int
}

// DefaultPolicyIterationParams returns γ=0.9 and δ=0.1.
func DefaultPolicyIterationParams() PolicyIterationParams {
	return PolicyIterationParams{
		Discount:      0.9,
		Delta:         0.1,
		MaxIterations: 100,
		MaxSweeps:     10000,
	}
}

func (p PolicyIterationParams) Validate() error {
	if err := validateDiscount(p.Discount); err != nil {
		return err
	}

	if !(p.Delta > 0) {
		return errors.Wrapf(ErrInvalidArgument, "delta must be positive, got %v", p.Delta)
	}

	if p.MaxIterations < 0 || p.MaxSweeps < 0 {
		return errors.Wrapf(ErrInvalidArgument, "iteration caps must be non-negative, got %d and %d",
			p.MaxIterations, p.MaxSweeps)
	}

	return nil
}

// ParsePolicyIterationParams parses a configuration string such as
// "discount=0.95,delta=1e-4" on top of DefaultPolicyIterationParams.
func ParsePolicyIterationParams(config string) (PolicyIterationParams, error) {
	p := DefaultPolicyIterationParams()
	params, err := ParseConfig(config)
	if err != nil {
		return p, err
	}

	if p.Discount, err = PopParamOr(params, "discount", p.Discount); err != nil {
		return p, err
	}
	if p.Delta, err = PopParamOr(params, "delta", p.Delta); err != nil {
		return p, err
	}
	if p.MaxIterations, err = PopParamOr(params, "max_iterations", p.MaxIterations); err != nil {
		return p, err
	}
	if p.MaxSweeps, err = PopParamOr(params, "max_sweeps", p.MaxSweeps); err != nil {
		return p, err
	}

	if err := params.CheckEmpty(); err != nil {
		return p, err
	}

	return p, p.Validate()
}

// ValueIterationParams are the configuration options for Value Iteration.
type ValueIterationParams struct {
	Discount float64 // γ, in [0, 1]
	Sweeps   int     // k, the number of synchronous sweeps
}

func DefaultValueIterationParams() ValueIterationParams {
	return ValueIterationParams{
		Discount: 0.9,
		Sweeps:   10,
	}
}

func (p ValueIterationParams) Validate() error {
	if err := validateDiscount(p.Discount); err != nil {
		return err
	}

	if p.Sweeps < 0 {
		return errors.Wrapf(ErrInvalidArgument, "sweeps must be non-negative, got %d", p.Sweeps)
	}

	return nil
}

func ParseValueIterationParams(config string) (ValueIterationParams, error) {
	p := DefaultValueIterationParams()
	params, err := ParseConfig(config)
	if err != nil {
		return p, err
	}

	if p.Discount, err = PopParamOr(params, "discount", p.Discount); err != nil {
		return p, err
	}
	if p.Sweeps, err = PopParamOr(params, "sweeps", p.Sweeps); err != nil {
		return p, err
	}

	if err := params.CheckEmpty(); err != nil {
		return p, err
	}

	return p, p.Validate()
}

// QLearningParams are the configuration options for tabular Q-Learning.
type QLearningParams struct {
	LearningRate float64 // α, in (0, 1]
	Discount     float64 // γ, in [0, 1]
	Epsilon      float64 // ε, the exploration rate, in [0, 1]
	Episodes     int     // N
}

func DefaultQLearningParams() QLearningParams {
	return QLearningParams{
		LearningRate: 0.1,
		Discount:     0.9,
		Epsilon:      0.1,
		Episodes:     50000,
	}
}

func (p QLearningParams) Validate() error {
	if !(p.LearningRate > 0 && p.LearningRate <= 1) {
		return errors.Wrapf(ErrInvalidArgument, "learning rate must be in (0, 1], got %v", p.LearningRate)
	}

	if err := validateDiscount(p.Discount); err != nil {
		return err
	}

	if !(p.Epsilon >= 0 && p.Epsilon <= 1) {
		return errors.Wrapf(ErrInvalidArgument, "epsilon must be in [0, 1], got %v", p.Epsilon)
	}

	if p.Episodes < 0 {
		return errors.Wrapf(ErrInvalidArgument, "episodes must be non-negative, got %d", p.Episodes)
	}

	return nil
}

func ParseQLearningParams(config string) (QLearningParams, error) {
	p := DefaultQLearningParams()
	params, err := ParseConfig(config)
	if err != nil {
		return p, err
	}

	if p.LearningRate, err = PopParamOr(params, "learning_rate", p.LearningRate); err != nil {
		return p, err
	}
	if p.Discount, err = PopParamOr(params, "discount", p.Discount); err != nil {
		return p, err
	}
	if p.Epsilon, err = PopParamOr(params, "epsilon", p.Epsilon); err != nil {
		return p, err
	}
	if p.Episodes, err = PopParamOr(params, "episodes", p.Episodes); err != nil {
		return p, err
	}

	if err := params.CheckEmpty(); err != nil {
		return p, err
	}

	return p, p.Validate()
}

func validateDiscount(discount float64) error {
	if !(discount >= 0 && discount <= 1) {
		return errors.Wrapf(ErrInvalidArgument, "discount must be in [0, 1], got %v", discount)
	}

	return nil
}
