package xtesting

import (
	"context"
	"testing"
)

// Benchmark benchmarks fn.
//
// setup is called once before the first iteration. pre is called before each
// iteration with the timer stopped. Either may be nil.
//
// Only the time spent in fn is measured.
func Benchmark(
	b *testing.B,
	setup func(context.Context) error,
	pre func(context.Context) error,
	fn func(context.Context) error,
	post func(context.Context) error,
) {
	ctx := b.Context()

	if setup != nil {
		if err := setup(ctx); err != nil {
			b.Fatal(err)
		}
	}

	for b.Loop() {
		b.StopTimer()
		run(b, ctx, pre)
		b.StartTimer()

		if err := fn(ctx); err != nil {
			b.Fatal(err)
		}

		b.StopTimer()
		run(b, ctx, post)
		b.StartTimer()
	}
}

func run(b *testing.B, ctx context.Context, fn func(context.Context) error) {
	if fn == nil {
		return
	}

	if err := fn(ctx); err != nil {
		b.Fatal(err)
	}
}
