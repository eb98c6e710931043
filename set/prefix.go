package set

import "context"

// WithNamePrefix returns a [Store] that opens each set under prefix+name, so
// that several stores can share one underlying store without their set names
// colliding.
//
// Sets opened through the returned store report the unprefixed name.
func WithNamePrefix[T any](s Store[T], prefix string) Store[T] {
	return prefixedStore[T]{s, prefix}
}

type prefixedStore[T any] struct {
	Next   Store[T]
	prefix string
}

func (s prefixedStore[T]) Open(ctx context.Context, name string) (Set[T], error) {
	next, err := s.Next.Open(ctx, s.prefix+name)
	if err != nil {
		return nil, err
	}

	return prefixedSet[T]{next, name}, nil
}

// prefixedSet is a [Set] opened by a [prefixedStore].
type prefixedSet[T any] struct {
	Set[T]
	name string
}

func (s prefixedSet[T]) Name() string {
	return s.name
}
