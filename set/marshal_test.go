package set_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/dogmatiq/bitmatch/driver/memory/memoryset"
	"github.com/dogmatiq/bitmatch/marshaler"
	"github.com/dogmatiq/bitmatch/rle"
	. "github.com/dogmatiq/bitmatch/set"
)

func TestNewMarshalingStore(t *testing.T) {
	t.Parallel()

	t.Run("it stores members in their marshaled form", func(t *testing.T) {
		t.Parallel()

		underlying := &memoryset.BinaryStore{}
		store := NewMarshalingStore(underlying, rle.Marshaler)

		set, err := store.Open(t.Context(), "<name>")
		if err != nil {
			t.Fatal(err)
		}
		defer set.Close()

		if err := set.Add(t.Context(), "1110001111"); err != nil {
			t.Fatal(err)
		}

		raw, err := underlying.Open(t.Context(), "<name>")
		if err != nil {
			t.Fatal(err)
		}
		defer raw.Close()

		ok, err := raw.Has(t.Context(), []byte("3W3B4W"))
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatal("expected the underlying set to contain the run-length code")
		}
	})

	t.Run("it unmarshals the member returned by Find", func(t *testing.T) {
		t.Parallel()

		store := NewMarshalingStore(&memoryset.BinaryStore{}, rle.Marshaler)

		set, err := store.Open(t.Context(), "<name>")
		if err != nil {
			t.Fatal(err)
		}
		defer set.Close()

		if err := set.Add(t.Context(), "0011"); err != nil {
			t.Fatal(err)
		}

		m, ok, err := set.Find(t.Context(), "0011")
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatal("expected ok to be true")
		}
		if m != "0011" {
			t.Fatalf("unexpected member: got %q, want %q", m, "0011")
		}

		_, ok, err = set.Find(t.Context(), "0111")
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Fatal("expected ok to be false")
		}
	})

	t.Run("it unmarshals members when ranging", func(t *testing.T) {
		t.Parallel()

		store := NewMarshalingStore(&memoryset.BinaryStore{}, rle.Marshaler)

		set, err := store.Open(t.Context(), "<name>")
		if err != nil {
			t.Fatal(err)
		}
		defer set.Close()

		want := []string{"0", "01", "1", "10"}
		for _, v := range want {
			if err := set.Add(t.Context(), v); err != nil {
				t.Fatal(err)
			}
		}

		var got []string
		if err := set.Range(
			t.Context(),
			func(_ context.Context, v string) (bool, error) {
				got = append(got, v)
				return true, nil
			},
		); err != nil {
			t.Fatal(err)
		}

		slices.Sort(got)

		if !slices.Equal(got, want) {
			t.Fatalf("unexpected members: got %v, want %v", got, want)
		}
	})

	t.Run("it returns marshaling errors", func(t *testing.T) {
		t.Parallel()

		store := NewMarshalingStore(&memoryset.BinaryStore{}, rle.Marshaler)

		set, err := store.Open(t.Context(), "<name>")
		if err != nil {
			t.Fatal(err)
		}
		defer set.Close()

		if err := set.Add(t.Context(), ""); !errors.Is(err, rle.ErrEmptyInput) {
			t.Fatalf("unexpected error: got %v, want %v", err, rle.ErrEmptyInput)
		}

		if _, _, err := set.Find(t.Context(), "012"); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("it tracks membership of arbitrary marshaled values", func(t *testing.T) {
		t.Parallel()

		store := NewMarshalingStore(
			&memoryset.BinaryStore{},
			marshaler.NewJSON[int](),
		)

		set, err := store.Open(t.Context(), "<name>")
		if err != nil {
			t.Fatal(err)
		}
		defer set.Close()

		// add [0, 5)
		for v := range 5 {
			if err := set.Add(t.Context(), v); err != nil {
				t.Fatal(err)
			}
		}

		// try-remove [0, 10)
		for v := range 10 {
			want := v < 5
			got, err := set.TryRemove(t.Context(), v)
			if err != nil {
				t.Fatal(err)
			}

			if got != want {
				t.Fatalf("unexpected membership for %d: got %t, want %t", v, got, want)
			}
		}
	})
}
