package mdp

// floatSlicePool recycles the scratch slices used to hold per-action
// values during lookahead. It is not safe for concurrent use.
type floatSlicePool struct {
	pool [][]float64
}

// alloc returns a zeroed slice of length n.
func (p *floatSlicePool) alloc(n int) []float64 {
	if p == nil {
		return make([]float64, n)
	}

	if m := len(p.pool); m > 0 {
		next := p.pool[m-1]
		p.pool = p.pool[:m-1]
		if cap(next) >= n {
			next = next[:n]
			clear(next)
			return next
		}
	}

	return make([]float64, n)
}

func (p *floatSlicePool) free(s []float64) {
	if p != nil && cap(s) > 0 {
		p.pool = append(p.pool, s[:0])
	}
}
