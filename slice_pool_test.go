package mdp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloatSlicePool(t *testing.T) {
	pool := &floatSlicePool{}
	v := pool.alloc(3)
	require.Equal(t, []float64{0, 0, 0}, v)
	v[0], v[1], v[2] = 1, 2, 3
	pool.free(v)

	w := pool.alloc(2)
	require.Equal(t, []float64{0, 0}, w)
	pool.free(w)

	require.Len(t, pool.alloc(10), 10)

	var nilPool *floatSlicePool
	require.Len(t, nilPool.alloc(4), 4)
}

func BenchmarkAllocFree(b *testing.B) {
	pool := &floatSlicePool{}
	for i := 0; i < b.N; i++ {
		v := pool.alloc(10)
		pool.free(v)
	}
}

func BenchmarkGreedyAction(b *testing.B) {
	c := newChain()
	values := ValueMap{"start": 0, "mid": 3, "end": 0}
	pool := &floatSlicePool{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := greedyAction(c.model, values, c.start, 0.9, pool); err != nil {
			b.Fatal(err)
		}
	}
}
