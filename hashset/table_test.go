package hashset_test

import (
	"fmt"
	"testing"

	. "github.com/dogmatiq/bitmatch/hashset"
	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

func TestTable(t *testing.T) {
	t.Parallel()

	t.Run("New", func(t *testing.T) {
		t.Parallel()

		t.Run("it rounds the capacity up to an odd prime", func(t *testing.T) {
			t.Parallel()

			cases := []struct {
				Capacity int
				Want     int
			}{
				{1, 3},
				{2, 3},
				{5, 5},
				{6, 7},
				{7, 7},
				{30, 31},
				{100, 101},
			}

			for _, c := range cases {
				if got := New(c.Capacity).Cap(); got != c.Want {
					t.Errorf("unexpected capacity for New(%d): got %d, want %d", c.Capacity, got, c.Want)
				}
			}
		})

		t.Run("it uses the default capacity if the capacity is not positive", func(t *testing.T) {
			t.Parallel()

			if got, want := New(0).Cap(), DefaultCapacity; got != want {
				t.Fatalf("unexpected capacity: got %d, want %d", got, want)
			}
		})
	})

	t.Run("Insert", func(t *testing.T) {
		t.Parallel()

		t.Run("it is idempotent", func(t *testing.T) {
			t.Parallel()

			tbl := New(31)

			if !tbl.Insert("3W3B4W") {
				t.Fatal("expected first insert to add the member")
			}

			if tbl.Insert("3W3B4W") {
				t.Fatal("expected second insert to be a no-op")
			}

			if got, want := tbl.Len(), 1; got != want {
				t.Fatalf("unexpected length: got %d, want %d", got, want)
			}

			var members []string
			for v := range tbl.All() {
				members = append(members, v)
			}

			if diff := cmp.Diff([]string{"3W3B4W"}, members); diff != "" {
				t.Fatal(diff)
			}
		})

		t.Run("it grows the table when it becomes half full", func(t *testing.T) {
			t.Parallel()

			tbl := New(7)
			codes := []string{"784B", "1W783B", "2W782B", "3W781B"}

			for i, c := range codes[:3] {
				tbl.Insert(c)
				if got, want := tbl.Cap(), 7; got != want {
					t.Fatalf("unexpected capacity after %d inserts: got %d, want %d", i+1, got, want)
				}
			}

			tbl.Insert(codes[3])

			if got, want := tbl.Cap(), 17; got != want {
				t.Fatalf("unexpected capacity: got %d, want %d", got, want)
			}

			for _, c := range codes {
				if !tbl.Has(c) {
					t.Errorf("expected %q to be present after rehash", c)
				}
			}

			if got, want := tbl.Stats().Rehashes, 1; got != want {
				t.Fatalf("unexpected rehash count: got %d, want %d", got, want)
			}
		})

		t.Run("it discards tombstones when the table is rebuilt", func(t *testing.T) {
			t.Parallel()

			tbl := New(11, WithHash(LengthHash))

			for _, v := range []string{"0B", "1B", "2B", "3B", "4B"} {
				tbl.Insert(v)
			}

			for _, v := range []string{"0B", "1B", "2B", "3B"} {
				tbl.Remove(v)
			}

			members := []string{"4B", "0W", "1W", "2W", "3W"}
			for _, v := range members[1:] {
				tbl.Insert(v)
			}

			stats := tbl.Stats()

			if stats.Compactions != 1 {
				t.Fatalf("unexpected compaction count: got %d, want 1", stats.Compactions)
			}

			if stats.Rehashes != 0 {
				t.Fatalf("unexpected rehash count: got %d, want 0", stats.Rehashes)
			}

			if stats.Tombstones != 0 {
				t.Fatalf("unexpected tombstones: got %d, want 0", stats.Tombstones)
			}

			for _, s := range slotsOf(tbl) {
				if s.State == Deleted {
					t.Fatalf("unexpected tombstone for %q", s.Value)
				}
			}

			for _, v := range members {
				if !tbl.Has(v) {
					t.Errorf("expected %q to be present", v)
				}
			}
		})

		t.Run("it does not rebuild a half-full table on every insert after a removal", func(t *testing.T) {
			t.Parallel()

			tbl := New(101)

			for i := range 50 {
				tbl.Insert(fmt.Sprintf("%dW", i))
			}

			for i := range 10 {
				tbl.Remove(fmt.Sprintf("%dW", i))
				tbl.Insert(fmt.Sprintf("%dB", i))
			}

			stats := tbl.Stats()

			if stats.Rehashes != 0 || stats.Compactions != 0 {
				t.Fatalf(
					"unexpected rebuilds: got %d rehashes and %d compactions, want none",
					stats.Rehashes,
					stats.Compactions,
				)
			}

			if stats.Live != 50 || stats.Tombstones != 10 {
				t.Fatalf("unexpected occupancy: got %d members and %d tombstones", stats.Live, stats.Tombstones)
			}
		})

		t.Run("it reclaims tombstones without growing when members are repeatedly removed", func(t *testing.T) {
			t.Parallel()

			tbl := New(7, WithHash(LengthHash))

			for i := range 100 {
				v := fmt.Sprintf("%dW", i)
				tbl.Insert(v)
				tbl.Remove(v)
			}

			stats := tbl.Stats()

			if stats.Capacity != 7 {
				t.Fatalf("unexpected capacity: got %d, want 7", stats.Capacity)
			}

			if stats.Compactions == 0 {
				t.Fatal("expected the table to be compacted")
			}

			if tbl.Has("99W") {
				t.Fatal("did not expect removed member to be present")
			}
		})
	})

	t.Run("Find", func(t *testing.T) {
		t.Parallel()

		t.Run("it returns the stored member", func(t *testing.T) {
			t.Parallel()

			tbl := New(31)
			tbl.Insert("3W3B4W")

			got, ok := tbl.Find("3W3B4W")
			if !ok {
				t.Fatal("expected member to be found")
			}

			if got != "3W3B4W" {
				t.Fatalf("unexpected member: got %q, want %q", got, "3W3B4W")
			}
		})

		t.Run("it reports absent members as not found", func(t *testing.T) {
			t.Parallel()

			tbl := New(31)
			tbl.Insert("3W3B4W")

			if _, ok := tbl.Find("4W3B3W"); ok {
				t.Fatal("did not expect member to be found")
			}

			if _, ok := tbl.Find(""); ok {
				t.Fatal("did not expect empty string to be found")
			}
		})

		t.Run("it does not confuse a member with text that resembles a sentinel", func(t *testing.T) {
			t.Parallel()

			tbl := New(31)
			tbl.Insert("Item not found")

			got, ok := tbl.Find("Item not found")
			if !ok || got != "Item not found" {
				t.Fatalf("unexpected result: got (%q, %t)", got, ok)
			}
		})

		t.Run("it finds members whose probe path crosses a tombstone", func(t *testing.T) {
			t.Parallel()

			tbl := New(31, WithHash(LengthHash))

			// Both codes have the same length, so they share a probe path.
			tbl.Insert("5W5B")
			tbl.Insert("4W6B")

			if !tbl.Remove("5W5B") {
				t.Fatal("expected member to be removed")
			}

			if !tbl.Has("4W6B") {
				t.Fatal("expected colliding member to remain reachable")
			}

			if tbl.Has("5W5B") {
				t.Fatal("did not expect removed member to be present")
			}
		})
	})

	t.Run("Remove", func(t *testing.T) {
		t.Parallel()

		t.Run("it returns false if the member is absent", func(t *testing.T) {
			t.Parallel()

			tbl := New(31)

			if tbl.Remove("3W3B4W") {
				t.Fatal("did not expect absent member to be removed")
			}
		})

		t.Run("it never shrinks the table", func(t *testing.T) {
			t.Parallel()

			tbl := New(7)
			for i := range 20 {
				tbl.Insert(fmt.Sprintf("%dW", i))
			}

			before := tbl.Cap()

			for i := range 20 {
				tbl.Remove(fmt.Sprintf("%dW", i))
			}

			if got := tbl.Cap(); got != before {
				t.Fatalf("unexpected capacity: got %d, want %d", got, before)
			}

			if got := tbl.Len(); got != 0 {
				t.Fatalf("unexpected length: got %d, want 0", got)
			}
		})

		t.Run("it retains the payload of the removed slot", func(t *testing.T) {
			t.Parallel()

			tbl := New(31)
			tbl.Insert("3W3B4W")
			tbl.Remove("3W3B4W")

			var found bool
			for _, s := range slotsOf(tbl) {
				if s.State == Deleted && s.Value == "3W3B4W" {
					found = true
				}
			}

			if !found {
				t.Fatal("expected tombstone to retain its payload")
			}
		})
	})

	t.Run("property-based", func(t *testing.T) {
		t.Parallel()

		hashes := map[string]HashFunc{
			"fnv":    FNVHash,
			"length": LengthHash,
		}

		for name, hash := range hashes {
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				rapid.Check(t, func(t *rapid.T) {
					tbl := New(
						rapid.IntRange(1, 50).Draw(t, "capacity"),
						WithHash(hash),
					)

					code := rapid.StringMatching(`([1-9][0-9]?[WB]){1,4}`)
					model := map[string]struct{}{}
					prevCap := tbl.Cap()

					t.Repeat(
						map[string]func(*rapid.T){
							"Insert": func(t *rapid.T) {
								v := code.Draw(t, "code")

								_, exists := model[v]
								if added := tbl.Insert(v); added == exists {
									t.Fatalf("unexpected insert result for %q: got %t, want %t", v, added, !exists)
								}

								model[v] = struct{}{}
							},
							"Remove": func(t *rapid.T) {
								v := code.Draw(t, "code")

								_, exists := model[v]
								if removed := tbl.Remove(v); removed != exists {
									t.Fatalf("unexpected remove result for %q: got %t, want %t", v, removed, exists)
								}

								delete(model, v)
							},
							"Find": func(t *rapid.T) {
								v := code.Draw(t, "code")

								got, ok := tbl.Find(v)
								_, exists := model[v]

								if ok != exists {
									t.Fatalf("unexpected find result for %q: got %t, want %t", v, ok, exists)
								}

								if ok && got != v {
									t.Fatalf("unexpected member: got %q, want %q", got, v)
								}
							},
							"": func(t *rapid.T) {
								stats := tbl.Stats()

								if stats.Live != len(model) {
									t.Fatalf("unexpected length: got %d, want %d", stats.Live, len(model))
								}

								if !IsPrime(stats.Capacity) || stats.Capacity%2 == 0 {
									t.Fatalf("capacity %d is not an odd prime", stats.Capacity)
								}

								if stats.Capacity < prevCap {
									t.Fatalf("capacity shrank from %d to %d", prevCap, stats.Capacity)
								}
								prevCap = stats.Capacity

								if 2*stats.Live >= stats.Capacity || 4*(stats.Live+stats.Tombstones) >= 3*stats.Capacity {
									t.Fatalf(
										"table is over-occupied: %d members, %d tombstones, capacity %d",
										stats.Live,
										stats.Tombstones,
										stats.Capacity,
									)
								}

								for v := range model {
									if !tbl.Has(v) {
										t.Fatalf("expected %q to be present", v)
									}
								}
							},
						},
					)
				})
			})
		}
	})
}

func slotsOf(tbl *Table) []Slot {
	var slots []Slot
	for _, s := range tbl.Slots() {
		slots = append(slots, s)
	}
	return slots
}
