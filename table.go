package mdp

// ValueTable stores the estimated value of each state during Policy
// Iteration and Value Iteration.
type ValueTable interface {
	Get(s State) (float64, bool)
	Set(s State, v float64)
	// Len returns the number of states with a stored value.
	Len() int
}

// QTable stores the estimated value of each (state, action) pair
// during Q-Learning.
type QTable interface {
	Get(s State, a Action) (float64, bool)
	Set(s State, a Action, q float64)
	// Len returns the number of (state, action) pairs with a stored value.
	Len() int
}

// ValueMap is an in-memory ValueTable keyed by State.Key().
type ValueMap map[string]float64

func (m ValueMap) Get(s State) (float64, bool) {
	v, ok := m[s.Key()]
	return v, ok
}

func (m ValueMap) Set(s State, v float64) {
	m[s.Key()] = v
}

func (m ValueMap) Len() int {
	return len(m)
}

// QValueMap is an in-memory QTable: State Key -> Action Key -> Q-value.
type QValueMap map[string]map[string]float64

func (m QValueMap) Get(s State, a Action) (float64, bool) {
	q, ok := m[s.Key()][a.Key()]
	return q, ok
}

func (m QValueMap) Set(s State, a Action, q float64) {
	key := s.Key()
	qs, ok := m[key]
	if !ok {
		qs = make(map[string]float64)
		m[key] = qs
	}

	qs[a.Key()] = q
}

func (m QValueMap) Len() int {
	total := 0
	for _, qs := range m {
		total += len(qs)
	}

	return total
}
