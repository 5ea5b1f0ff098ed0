package ldbstore

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/timpalpant/go-mdp"
)

const (
	valuePrefix  = "v:"
	qValuePrefix = "q:"
	// Separates the state key from the action key in Q-table keys.
	keySep = "\x00"
)

// Open opens (or creates) a LevelDB database at the given path.
func Open(path string, opts *opt.Options) (*leveldb.DB, error) {
	db, err := leveldb.OpenFile(path, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open leveldb at %s", path)
	}

	return db, nil
}

// ValueTable is an mdp.ValueTable stored in LevelDB.
type ValueTable struct {
	db    *leveldb.DB
	rOpts *opt.ReadOptions
	wOpts *opt.WriteOptions
}

var _ mdp.ValueTable = &ValueTable{}

// NewValueTable returns a ValueTable backed by db. The same db may also
// back a QTable. The caller owns db and closes it when done.
func NewValueTable(db *leveldb.DB) *ValueTable {
	return &ValueTable{db: db}
}

// Get implements mdp.ValueTable.
func (t *ValueTable) Get(s mdp.State) (float64, bool) {
	return getFloat(t.db, valuePrefix+s.Key(), t.rOpts)
}

// Set implements mdp.ValueTable.
func (t *ValueTable) Set(s mdp.State, v float64) {
	putFloat(t.db, valuePrefix+s.Key(), v, t.wOpts)
}

// Len implements mdp.ValueTable.
func (t *ValueTable) Len() int {
	return countPrefix(t.db, valuePrefix, t.rOpts)
}

// QTable is an mdp.QTable stored in LevelDB.
type QTable struct {
	db    *leveldb.DB
	rOpts *opt.ReadOptions
	wOpts *opt.WriteOptions
}

var _ mdp.QTable = &QTable{}

// NewQTable returns a QTable backed by db. The caller owns db.
func NewQTable(db *leveldb.DB) *QTable {
	return &QTable{db: db}
}

// Get implements mdp.QTable.
func (t *QTable) Get(s mdp.State, a mdp.Action) (float64, bool) {
	return getFloat(t.db, qKey(s, a), t.rOpts)
}

// Set implements mdp.QTable.
func (t *QTable) Set(s mdp.State, a mdp.Action, q float64) {
	putFloat(t.db, qKey(s, a), q, t.wOpts)
}

// Len implements mdp.QTable.
func (t *QTable) Len() int {
	return countPrefix(t.db, qValuePrefix, t.rOpts)
}

// Actions returns the Q-values stored for state s, keyed by action key.
func (t *QTable) Actions(s mdp.State) map[string]float64 {
	prefix := qValuePrefix + s.Key() + keySep
	iter := t.db.NewIterator(util.BytesPrefix([]byte(prefix)), t.rOpts)
	defer iter.Release()

	result := make(map[string]float64)
	for iter.Next() {
		action := string(iter.Key()[len(prefix):])
		result[action] = decodeFloat(iter.Value())
	}

	if err := iter.Error(); err != nil {
		panic(err)
	}

	return result
}

func qKey(s mdp.State, a mdp.Action) string {
	return qValuePrefix + s.Key() + keySep + a.Key()
}

func getFloat(db *leveldb.DB, key string, rOpts *opt.ReadOptions) (float64, bool) {
	buf, err := db.Get([]byte(key), rOpts)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return 0, false
		}

		panic(err)
	}

	return decodeFloat(buf), true
}

func putFloat(db *leveldb.DB, key string, v float64, wOpts *opt.WriteOptions) {
	if err := db.Put([]byte(key), encodeFloat(v), wOpts); err != nil {
		panic(err)
	}
}

func countPrefix(db *leveldb.DB, prefix string, rOpts *opt.ReadOptions) int {
	iter := db.NewIterator(util.BytesPrefix([]byte(prefix)), rOpts)
	defer iter.Release()

	total := 0
	for iter.Next() {
		total++
	}

	if err := iter.Error(); err != nil {
		panic(err)
	}

	return total
}

func encodeFloat(v float64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
	return buf
}

func decodeFloat(buf []byte) float64 {
	if len(buf) != 8 {
		panic(fmt.Errorf("invalid encoded float64 has len %d", len(buf)))
	}

	return math.Float64frombits(binary.LittleEndian.Uint64(buf))
}
