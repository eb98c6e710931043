package set_test

import (
	"testing"

	"github.com/dogmatiq/bitmatch/driver/memory/memoryset"
	. "github.com/dogmatiq/bitmatch/set"
)

func TestWithNamePrefix(t *testing.T) {
	var underlying memoryset.Store

	store := WithNamePrefix(&underlying, "prefix-")

	ks, err := store.Open(t.Context(), "test")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("it adds the prefix to the name", func(t *testing.T) {
		const value = "3W3B4W"

		if err := ks.Add(t.Context(), value); err != nil {
			t.Fatal(err)
		}

		u, err := underlying.Open(t.Context(), "prefix-test")
		if err != nil {
			t.Fatal(err)
		}

		ok, err := u.Has(t.Context(), value)
		if err != nil {
			t.Fatal(err)
		}

		if !ok {
			t.Errorf("expected set to contain %q", value)
		}
	})

	t.Run("it reports the unprefixed name", func(t *testing.T) {
		if got, want := ks.Name(), "test"; got != want {
			t.Errorf("unexpected name: got %q, want %q", got, want)
		}
	})
}
