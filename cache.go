package mdp

// CachedModel memoizes the transition distributions of an underlying Model.
// The solvers query each (state, action) pair once per sweep, so caching
// pays for itself from the second sweep on. Errors are not cached.
type CachedModel struct {
	model Model
	// Map of State Key -> Action Key -> transitions.
	cache map[string]map[string][]TransitionProb
}

var _ Model = &CachedModel{}

func NewCachedModel(model Model) *CachedModel {
	return &CachedModel{
		model: model,
		cache: make(map[string]map[string][]TransitionProb),
	}
}

// Transitions implements Model.
func (m *CachedModel) Transitions(s State, a Action) ([]TransitionProb, error) {
	sKey, aKey := s.Key(), a.Key()
	if result, ok := m.cache[sKey][aKey]; ok {
		return result, nil
	}

	result, err := m.model.Transitions(s, a)
	if err != nil {
		return nil, err
	}

	byAction, ok := m.cache[sKey]
	if !ok {
		byAction = make(map[string][]TransitionProb)
		m.cache[sKey] = byAction
	}

	byAction[aKey] = result
	return result, nil
}

// Len returns the number of cached (state, action) distributions.
func (m *CachedModel) Len() int {
	total := 0
	for _, byAction := range m.cache {
		total += len(byAction)
	}

	return total
}
