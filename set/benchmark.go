package set

import (
	"context"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/dogmatiq/bitmatch/internal/x/xtesting"
)

// RunBenchmarks runs benchmarks against a [BinaryStore] implementation.
//
// Members are random run-length codes describing 28x28 bitmaps.
func RunBenchmarks(
	b *testing.B,
	store BinaryStore,
) {
	b.Run("Store", func(b *testing.B) {
		b.Run("Open", func(b *testing.B) {
			b.Run("existing set", func(b *testing.B) {
				var (
					name string
					set  BinarySet
				)

				xtesting.Benchmark(
					b,
					// SETUP
					func(ctx context.Context) error {
						name = xtesting.SequentialName("set")

						// pre-create the set
						set, err := store.Open(ctx, name)
						if err != nil {
							return err
						}
						return set.Close()
					},
					// BEFORE EACH
					nil,
					// BENCHMARKED CODE
					func(ctx context.Context) (err error) {
						set, err = store.Open(ctx, name)
						return err
					},
					// AFTER EACH
					func(context.Context) error {
						return set.Close()
					},
				)
			})
		})
	})

	ops := []struct {
		Name string
		Fn   func(context.Context, BinarySet, []byte) error
	}{
		{
			"Has",
			func(ctx context.Context, set BinarySet, v []byte) error {
				_, err := set.Has(ctx, v)
				return err
			},
		},
		{
			"Find",
			func(ctx context.Context, set BinarySet, v []byte) error {
				_, _, err := set.Find(ctx, v)
				return err
			},
		},
		{
			"Add",
			func(ctx context.Context, set BinarySet, v []byte) error {
				return set.Add(ctx, v)
			},
		},
		{
			"TryAdd",
			func(ctx context.Context, set BinarySet, v []byte) error {
				_, err := set.TryAdd(ctx, v)
				return err
			},
		},
		{
			"Remove",
			func(ctx context.Context, set BinarySet, v []byte) error {
				return set.Remove(ctx, v)
			},
		},
		{
			"TryRemove",
			func(ctx context.Context, set BinarySet, v []byte) error {
				_, err := set.TryRemove(ctx, v)
				return err
			},
		},
	}

	b.Run("Set", func(b *testing.B) {
		for _, op := range ops {
			b.Run(op.Name, func(b *testing.B) {
				b.Run("non-existent value", func(b *testing.B) {
					var value []byte

					benchmarkSet(
						b,
						store,
						func(context.Context, BinarySet) error {
							value = randomCode()
							return nil
						},
						func(ctx context.Context, set BinarySet) error {
							return op.Fn(ctx, set, value)
						},
					)
				})

				b.Run("existing value", func(b *testing.B) {
					var value []byte

					benchmarkSet(
						b,
						store,
						func(ctx context.Context, set BinarySet) error {
							value = randomCode()
							return set.Add(ctx, value)
						},
						func(ctx context.Context, set BinarySet) error {
							return op.Fn(ctx, set, value)
						},
					)
				})
			})
		}
	})
}

func benchmarkSet(
	b *testing.B,
	store BinaryStore,
	before func(context.Context, BinarySet) error,
	fn func(context.Context, BinarySet) error,
) {
	var set BinarySet

	xtesting.Benchmark(
		b,
		func(ctx context.Context) error {
			var err error
			set, err = store.Open(ctx, xtesting.SequentialName("set"))
			if err != nil {
				return err
			}

			b.Cleanup(func() {
				set.Close()
			})

			return nil
		},
		func(ctx context.Context) error {
			return before(ctx, set)
		},
		func(ctx context.Context) error {
			return fn(ctx, set)
		},
		nil,
	)
}

// randomCode returns the run-length code of a random 28x28 bitmap.
func randomCode() []byte {
	const pixels = 28 * 28

	var (
		code   []byte
		symbol byte = 'B'
	)

	for remaining := pixels; remaining > 0; {
		n := rand.IntN(min(remaining, 64)) + 1
		remaining -= n

		code = strconv.AppendInt(code, int64(n), 10)
		code = append(code, symbol)

		if symbol == 'B' {
			symbol = 'W'
		} else {
			symbol = 'B'
		}
	}

	return code
}
