package mdp

type options struct {
	values  ValueTable
	qValues QTable
}

// Option configures the storage used by a solver.
type Option func(*options)

// WithValueTable makes Policy Iteration or Value Iteration keep state
// values in t (for example an on-disk table) instead of a ValueMap.
// Any existing contents are overwritten when the solver initializes.
func WithValueTable(t ValueTable) Option {
	return func(o *options) {
		o.values = t
	}
}

// WithQTable makes Q-Learning keep action values in t instead of a QValueMap.
func WithQTable(t QTable) Option {
	return func(o *options) {
		o.qValues = t
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.values == nil {
		o.values = make(ValueMap)
	}

	if o.qValues == nil {
		o.qValues = make(QValueMap)
	}

	return o
}
