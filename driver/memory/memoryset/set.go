package memoryset

import (
	"context"
	"errors"
	"sync"

	"github.com/dogmatiq/bitmatch/hashset"
	"github.com/dogmatiq/bitmatch/set"
)

// state is the in-memory state of a set.
type state struct {
	sync.RWMutex
	Table *hashset.Table
}

// setimpl is an implementation of [set.Set] that manipulates a set's in-memory
// [state].
type setimpl[T any] struct {
	name           string
	state          *state
	marshalValue   func(T) string
	unmarshalValue func(string) T
}

func (s *setimpl[T]) Name() string {
	return s.name
}

func (s *setimpl[T]) Has(ctx context.Context, v T) (bool, error) {
	_, ok, err := s.Find(ctx, v)
	return ok, err
}

func (s *setimpl[T]) Find(ctx context.Context, v T) (T, bool, error) {
	if s.state == nil {
		panic("set is closed")
	}

	c := s.marshalValue(v)

	s.state.RLock()
	m, ok := s.state.Table.Find(c)
	s.state.RUnlock()

	if !ok {
		var zero T
		return zero, false, ctx.Err()
	}

	return s.unmarshalValue(m), true, ctx.Err()
}

func (s *setimpl[T]) Add(ctx context.Context, v T) error {
	_, err := s.TryAdd(ctx, v)
	return err
}

func (s *setimpl[T]) TryAdd(ctx context.Context, v T) (bool, error) {
	if s.state == nil {
		panic("set is closed")
	}

	c := s.marshalValue(v)

	s.state.Lock()
	defer s.state.Unlock()

	return s.state.Table.Insert(c), ctx.Err()
}

func (s *setimpl[T]) Remove(ctx context.Context, v T) error {
	_, err := s.TryRemove(ctx, v)
	return err
}

func (s *setimpl[T]) TryRemove(ctx context.Context, v T) (bool, error) {
	if s.state == nil {
		panic("set is closed")
	}

	c := s.marshalValue(v)

	s.state.Lock()
	defer s.state.Unlock()

	return s.state.Table.Remove(c), ctx.Err()
}

func (s *setimpl[T]) Range(ctx context.Context, fn set.RangeFunc[T]) error {
	if s.state == nil {
		panic("set is closed")
	}

	s.state.RLock()
	members := make([]string, 0, s.state.Table.Len())
	for m := range s.state.Table.All() {
		members = append(members, m)
	}
	s.state.RUnlock()

	for _, m := range members {
		ok, err := fn(ctx, s.unmarshalValue(m))
		if !ok || err != nil {
			return err
		}
	}

	return ctx.Err()
}

func (s *setimpl[T]) Close() error {
	if s.state == nil {
		return errors.New("set is already closed")
	}

	s.state = nil

	return nil
}
