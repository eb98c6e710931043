// Package marshaler converts values to and from the binary representation
// stored by a [set.BinarySet].
package marshaler

import (
	"encoding/json"

	"google.golang.org/protobuf/proto"
)

// Marshaler is an interface for types that can marshal and unmarshal values of
// type T.
type Marshaler[T any] interface {
	Marshal(T) ([]byte, error)
	Unmarshal([]byte) (T, error)
}

// New returns a new [Marshaler] that marshals and unmarshals values of type T
// using the given functions.
func New[T any](
	marshal func(T) ([]byte, error),
	unmarshal func([]byte) (T, error),
) Marshaler[T] {
	return marshaler[T]{marshal, unmarshal}
}

type marshaler[T any] struct {
	marshal   func(T) ([]byte, error)
	unmarshal func([]byte) (T, error)
}

func (m marshaler[T]) Marshal(v T) ([]byte, error)      { return m.marshal(v) }
func (m marshaler[T]) Unmarshal(data []byte) (T, error) { return m.unmarshal(data) }

// NewJSON returns a marshaler that marshals and unmarshals an arbitrary type
// using Go's standard JSON encoding.
func NewJSON[T any]() Marshaler[T] {
	return New(
		func(v T) ([]byte, error) {
			return json.Marshal(v)
		},
		func(data []byte) (T, error) {
			var v T
			return v, json.Unmarshal(data, &v)
		},
	)
}

// NewProto returns a marshaler that marshals and unmarshals Protocol Buffers
// messages.
//
// Messages are marshaled deterministically so that equal messages produce
// equal set members.
func NewProto[
	T interface {
		proto.Message
		*S
	},
	S any,
]() Marshaler[T] {
	opts := proto.MarshalOptions{Deterministic: true}

	return New(
		func(v T) ([]byte, error) {
			return opts.Marshal(v)
		},
		func(data []byte) (T, error) {
			var v T = new(S)
			return v, proto.Unmarshal(data, v)
		},
	)
}
