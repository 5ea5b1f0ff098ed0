package ldbstore

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"golang.org/x/exp/rand"

	"github.com/timpalpant/go-mdp"
	"github.com/timpalpant/go-mdp/tictactoe"
)

func newMemDB(t testing.TB) *leveldb.DB {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestValueTable(t *testing.T) {
	table := NewValueTable(newMemDB(t))
	s := tictactoe.NewGame()
	next, err := s.Play(4)
	require.NoError(t, err)

	_, ok := table.Get(s)
	require.False(t, ok)
	require.Zero(t, table.Len())

	table.Set(s, 1.25)
	table.Set(next, -3.5)
	table.Set(s, 2.5)

	v, ok := table.Get(s)
	require.True(t, ok)
	require.Equal(t, 2.5, v)
	v, ok = table.Get(next)
	require.True(t, ok)
	require.Equal(t, -3.5, v)
	require.Equal(t, 2, table.Len())
}

func TestQTable(t *testing.T) {
	db := newMemDB(t)
	table := NewQTable(db)
	values := NewValueTable(db)
	s := tictactoe.NewGame()

	table.Set(s, tictactoe.Move(0), 1)
	table.Set(s, tictactoe.Move(4), 2)
	values.Set(s, 7)

	q, ok := table.Get(s, tictactoe.Move(4))
	require.True(t, ok)
	require.Equal(t, 2.0, q)
	_, ok = table.Get(s, tictactoe.Move(8))
	require.False(t, ok)

	require.Equal(t, 2, table.Len())
	require.Equal(t, 1, values.Len())
	require.Equal(t, map[string]float64{"0": 1, "4": 2}, table.Actions(s))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir, &opt.Options{})
	require.NoError(t, err)

	table := NewValueTable(db)
	table.Set(tictactoe.NewGame(), 4.5)
	require.NoError(t, db.Close())

	db, err = Open(dir, nil)
	require.NoError(t, err)
	defer db.Close()
	table = NewValueTable(db)
	v, ok := table.Get(tictactoe.NewGame())
	require.True(t, ok)
	require.Equal(t, 4.5, v)
}

func TestSharedDB(t *testing.T) {
	db := newMemDB(t)
	values := NewValueTable(db)
	qValues := NewQTable(db)
	s := tictactoe.NewGame()

	values.Set(s, 1)
	qValues.Set(s, tictactoe.Move(4), 2)
	values.Set(s, 3)

	v, ok := values.Get(s)
	require.True(t, ok)
	require.Equal(t, 3.0, v)
	q, ok := qValues.Get(s, tictactoe.Move(4))
	require.True(t, ok)
	require.Equal(t, 2.0, q)
	require.Equal(t, 1, values.Len())
	require.Equal(t, 1, qValues.Len())
}

func TestValueIteration(t *testing.T) {
	rewards := tictactoe.DefaultRewards()
	model, err := tictactoe.NewMDP(tictactoe.X, nil, rewards)
	require.NoError(t, err)
	space := tictactoe.EnumerateStates(tictactoe.X)
	cached := mdp.NewCachedModel(model)
	params := mdp.DefaultValueIterationParams()
	params.Sweeps = 5

	inMemory, err := mdp.NewValueIteration(space, cached, params)
	require.NoError(t, err)
	expected, err := inMemory.Solve()
	require.NoError(t, err)

	table := NewValueTable(newMemDB(t))
	onDisk, err := mdp.NewValueIteration(space, cached, params, mdp.WithValueTable(table))
	require.NoError(t, err)
	policy, err := onDisk.Solve()
	require.NoError(t, err)
	require.Equal(t, len(space), table.Len())

	for _, s := range space {
		v1, _ := inMemory.Value(s)
		v2, ok := onDisk.Value(s)
		require.True(t, ok)
		require.Equal(t, v1, v2, "%v", s)

		a1, _ := expected.ActionFor(s)
		a2, _ := policy.ActionFor(s)
		require.Equal(t, a1, a2, "%v", s)
	}
}

func TestQLearning(t *testing.T) {
	rewards := tictactoe.DefaultRewards()
	space := tictactoe.EnumerateStates(tictactoe.X)
	params := mdp.DefaultQLearningParams()
	params.Episodes = 500

	train := func(opts ...mdp.Option) *mdp.QLearning {
		rng := rand.New(rand.NewSource(1))
		env, err := tictactoe.NewEnvironment(tictactoe.X, nil, rewards, rng)
		require.NoError(t, err)
		ql, err := mdp.NewQLearning(env, space, params, rng, opts...)
		require.NoError(t, err)
		require.NoError(t, ql.Train())
		return ql
	}

	table := NewQTable(newMemDB(t))
	inMemory := train()
	onDisk := train(mdp.WithQTable(table))

	total := 0
	for _, s := range space {
		for _, a := range s.LegalActions() {
			q1, _ := inMemory.QValue(s, a)
			q2, ok := onDisk.QValue(s, a)
			require.True(t, ok)
			require.Equal(t, q1, q2)
			total++
		}
	}
	require.Equal(t, total, table.Len())
}
