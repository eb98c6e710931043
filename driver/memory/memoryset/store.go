package memoryset

import (
	"context"
	"sync"

	"github.com/dogmatiq/bitmatch/hashset"
	"github.com/dogmatiq/bitmatch/set"
)

// Store is an in-memory implementation of [set.Store] for string members.
//
// Each set is an open-addressing [hashset.Table].
type Store struct {
	// InitialCapacity is the capacity of each new set's hash table. If it is
	// not positive, [hashset.DefaultCapacity] is used.
	InitialCapacity int

	// Hash is the hash function used by each new set's hash table. If it is
	// nil, [hashset.FNVHash] is used.
	Hash hashset.HashFunc

	state sync.Map // map[string]*state
}

// Open returns the set with the given name.
func (s *Store) Open(ctx context.Context, name string) (set.Set[string], error) {
	return &setimpl[string]{
		name:           name,
		state:          load(&s.state, name, s.InitialCapacity, s.Hash),
		marshalValue:   identity[string],
		unmarshalValue: identity[string],
	}, ctx.Err()
}

// Stats returns a snapshot of the occupancy of the named set's hash table. ok
// is false if the set has never been opened.
func (s *Store) Stats(name string) (_ hashset.Stats, ok bool) {
	return stats(&s.state, name)
}

func identity[K any](k K) K {
	return k
}

// BinaryStore is an implementation of [set.BinaryStore] that stores
// sets in memory.
type BinaryStore struct {
	// InitialCapacity is the capacity of each new set's hash table. If it is
	// not positive, [hashset.DefaultCapacity] is used.
	InitialCapacity int

	// Hash is the hash function used by each new set's hash table. If it is
	// nil, [hashset.FNVHash] is used.
	Hash hashset.HashFunc

	state sync.Map // map[string]*state
}

// Open returns the set with the given name.
func (s *BinaryStore) Open(ctx context.Context, name string) (set.BinarySet, error) {
	return &setimpl[[]byte]{
		name:           name,
		state:          load(&s.state, name, s.InitialCapacity, s.Hash),
		marshalValue:   func(v []byte) string { return string(v) },
		unmarshalValue: func(v string) []byte { return []byte(v) },
	}, ctx.Err()
}

// Stats returns a snapshot of the occupancy of the named set's hash table. ok
// is false if the set has never been opened.
func (s *BinaryStore) Stats(name string) (_ hashset.Stats, ok bool) {
	return stats(&s.state, name)
}

func load(m *sync.Map, name string, capacity int, hash hashset.HashFunc) *state {
	if st, ok := m.Load(name); ok {
		return st.(*state)
	}

	var options []hashset.Option
	if hash != nil {
		options = append(options, hashset.WithHash(hash))
	}

	st, _ := m.LoadOrStore(
		name,
		&state{
			Table: hashset.New(capacity, options...),
		},
	)

	return st.(*state)
}

func stats(m *sync.Map, name string) (hashset.Stats, bool) {
	st, ok := m.Load(name)
	if !ok {
		return hashset.Stats{}, false
	}

	s := st.(*state)

	s.RLock()
	defer s.RUnlock()

	return s.Table.Stats(), true
}
