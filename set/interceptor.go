package set

import (
	"context"
	"sync/atomic"
)

// Interceptor defines functions that are invoked around set operations.
//
// Functions may be installed, replaced or cleared while sets opened through
// the intercepted store are in use.
type Interceptor[T any] struct {
	beforeOpen   hook[func(string) error]
	beforeAdd    hook[MemberFunc[T]]
	afterAdd     hook[MemberFunc[T]]
	afterFind    hook[LookupFunc[T]]
	beforeRemove hook[MemberFunc[T]]
	afterRemove  hook[MemberFunc[T]]
}

// MemberFunc is an interceptor function that is invoked with the name of a set
// and the member being added or removed.
type MemberFunc[T any] func(set string, v T) error

// LookupFunc is an interceptor function that is invoked after a lookup with
// the name of a set, the value that was looked up and whether it was found.
type LookupFunc[T any] func(set string, v T, found bool) error

// BeforeOpen sets the function that is invoked before a [Set] is opened.
func (i *Interceptor[T]) BeforeOpen(fn func(name string) error) {
	i.beforeOpen.set(fn)
}

// BeforeAdd sets the function that is invoked before a member is added to the
// [Set].
func (i *Interceptor[T]) BeforeAdd(fn MemberFunc[T]) {
	i.beforeAdd.set(fn)
}

// AfterAdd sets the function that is invoked after a member is added to the
// [Set].
func (i *Interceptor[T]) AfterAdd(fn MemberFunc[T]) {
	i.afterAdd.set(fn)
}

// AfterFind sets the function that is invoked after a value is looked up by
// [Set.Has] or [Set.Find].
func (i *Interceptor[T]) AfterFind(fn LookupFunc[T]) {
	i.afterFind.set(fn)
}

// BeforeRemove sets the function that is invoked before a member is removed
// from the [Set].
func (i *Interceptor[T]) BeforeRemove(fn MemberFunc[T]) {
	i.beforeRemove.set(fn)
}

// AfterRemove sets the function that is invoked after a member is removed from
// the [Set].
func (i *Interceptor[T]) AfterRemove(fn MemberFunc[T]) {
	i.afterRemove.set(fn)
}

// WithInterceptor returns a [Store] that invokes the functions defined
// by the given [Interceptor] when performing operations on s.
func WithInterceptor[T any](s Store[T], in *Interceptor[T]) Store[T] {
	if in == nil {
		return s
	}

	return &interceptedStore[T]{s, in}
}

// hook holds an interceptor function that may be swapped atomically. The zero
// value holds a nil function.
type hook[F any] struct {
	fn atomic.Pointer[F]
}

func (h *hook[F]) set(fn F) {
	h.fn.Store(&fn)
}

func (h *hook[F]) get() (fn F) {
	if p := h.fn.Load(); p != nil {
		fn = *p
	}
	return fn
}

type interceptedStore[T any] struct {
	Next        Store[T]
	Interceptor *Interceptor[T]
}

func (s *interceptedStore[T]) Open(ctx context.Context, name string) (Set[T], error) {
	if fn := s.Interceptor.beforeOpen.get(); fn != nil {
		if err := fn(name); err != nil {
			return nil, err
		}
	}

	next, err := s.Next.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	return &interceptedSet[T]{next, s.Interceptor}, nil
}

type interceptedSet[T any] struct {
	Next        Set[T]
	Interceptor *Interceptor[T]
}

func (s *interceptedSet[T]) Name() string {
	return s.Next.Name()
}

func (s *interceptedSet[T]) Has(ctx context.Context, v T) (bool, error) {
	ok, err := s.Next.Has(ctx, v)
	if err != nil {
		return false, err
	}

	return ok, s.lookedUp(v, ok)
}

func (s *interceptedSet[T]) Find(ctx context.Context, v T) (T, bool, error) {
	m, ok, err := s.Next.Find(ctx, v)
	if err == nil {
		err = s.lookedUp(v, ok)
	}

	if err != nil {
		var zero T
		return zero, false, err
	}

	return m, ok, nil
}

func (s *interceptedSet[T]) Add(ctx context.Context, v T) error {
	return s.intercept(
		v,
		&s.Interceptor.beforeAdd,
		&s.Interceptor.afterAdd,
		func() error {
			return s.Next.Add(ctx, v)
		},
	)
}

func (s *interceptedSet[T]) TryAdd(ctx context.Context, v T) (added bool, err error) {
	err = s.intercept(
		v,
		&s.Interceptor.beforeAdd,
		&s.Interceptor.afterAdd,
		func() (err error) {
			added, err = s.Next.TryAdd(ctx, v)
			return err
		},
	)

	return added && err == nil, err
}

func (s *interceptedSet[T]) Remove(ctx context.Context, v T) error {
	return s.intercept(
		v,
		&s.Interceptor.beforeRemove,
		&s.Interceptor.afterRemove,
		func() error {
			return s.Next.Remove(ctx, v)
		},
	)
}

func (s *interceptedSet[T]) TryRemove(ctx context.Context, v T) (removed bool, err error) {
	err = s.intercept(
		v,
		&s.Interceptor.beforeRemove,
		&s.Interceptor.afterRemove,
		func() (err error) {
			removed, err = s.Next.TryRemove(ctx, v)
			return err
		},
	)

	return removed && err == nil, err
}

func (s *interceptedSet[T]) Range(ctx context.Context, fn RangeFunc[T]) error {
	return s.Next.Range(ctx, fn)
}

func (s *interceptedSet[T]) Close() error {
	return s.Next.Close()
}

// intercept calls op between the before and after functions. The after
// function is only called if op succeeds.
func (s *interceptedSet[T]) intercept(
	v T,
	before, after *hook[MemberFunc[T]],
	op func() error,
) error {
	name := s.Next.Name()

	if fn := before.get(); fn != nil {
		if err := fn(name, v); err != nil {
			return err
		}
	}

	if err := op(); err != nil {
		return err
	}

	if fn := after.get(); fn != nil {
		return fn(name, v)
	}

	return nil
}

func (s *interceptedSet[T]) lookedUp(v T, found bool) error {
	if fn := s.Interceptor.afterFind.get(); fn != nil {
		return fn(s.Next.Name(), v, found)
	}
	return nil
}
