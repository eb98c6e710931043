package hashset

import (
	"iter"
)

// DefaultCapacity is the capacity used by [New] when the requested capacity is
// not positive.
const DefaultCapacity = 101

// Table is an open-addressing hash set of strings.
//
// Collisions are resolved by linear probing. Removed members leave a tombstone
// in their slot so that members inserted later along the same probe path
// remain reachable. Tombstones are only reclaimed when the table is rebuilt.
//
// The size of the backing array is always an odd prime. The table grows to the
// next prime at least twice its current size as soon as it becomes half full.
//
// A Table is not safe for concurrent use.
type Table struct {
	slots       []Slot
	live        int
	tombstones  int
	hash        HashFunc
	rehashes    int
	compactions int
}

// Option is an option that changes the behavior of a [Table].
type Option func(*Table)

// WithHash returns an [Option] that sets the hash function used to select the
// first slot in each probe sequence.
func WithHash(fn HashFunc) Option {
	return func(t *Table) {
		t.hash = fn
	}
}

// New returns an empty table whose backing array has room for at least
// capacity slots.
func New(capacity int, options ...Option) *Table {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	t := &Table{
		slots: make([]Slot, NextPrime(capacity)),
		hash:  FNVHash,
	}

	for _, opt := range options {
		opt(t)
	}

	return t
}

// Len returns the number of members in the table.
func (t *Table) Len() int {
	return t.live
}

// Cap returns the size of the table's backing array.
func (t *Table) Cap() int {
	return len(t.slots)
}

// Insert adds v to the table. It returns false if v is already a member.
//
// If the insertion leaves the table at least half full the table is rebuilt at
// a larger capacity before Insert returns. Otherwise, if members and
// tombstones together occupy at least three quarters of the table, it is
// rebuilt at the same capacity to reclaim the tombstones.
func (t *Table) Insert(v string) bool {
	if !t.put(v) {
		return false
	}

	n := len(t.slots)

	if 2*t.live >= n {
		t.rehashes++
		t.rebuild(NextPrime(2 * n))
	} else if 4*(t.live+t.tombstones) >= 3*n {
		t.compactions++
		t.rebuild(n)
	}

	return true
}

// Find returns the member equal to v. ok is false if v is not a member.
func (t *Table) Find(v string) (_ string, ok bool) {
	i := t.position(v)
	if t.slots[i].State != Active {
		return "", false
	}
	return t.slots[i].Value, true
}

// Has returns true if v is a member of the table.
func (t *Table) Has(v string) bool {
	_, ok := t.Find(v)
	return ok
}

// Remove removes v from the table. It returns false if v was not a member.
//
// The slot that held v becomes a tombstone. The table never shrinks.
func (t *Table) Remove(v string) bool {
	i := t.position(v)
	if t.slots[i].State != Active {
		return false
	}

	t.slots[i].State = Deleted
	t.live--
	t.tombstones++

	return true
}

// All returns an iterator over the members of the table in slot order.
//
// The table must not be modified while iterating.
func (t *Table) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, s := range t.slots {
			if s.State == Active && !yield(s.Value) {
				return
			}
		}
	}
}

// Slots returns an iterator over every slot in the backing array, including
// empty slots and tombstones.
func (t *Table) Slots() iter.Seq2[int, Slot] {
	return func(yield func(int, Slot) bool) {
		for i, s := range t.slots {
			if !yield(i, s) {
				return
			}
		}
	}
}

// put writes v into the first free slot of its probe sequence. It returns
// false if v is already active.
func (t *Table) put(v string) bool {
	i := t.position(v)
	if t.slots[i].State == Active {
		return false
	}

	t.slots[i] = Slot{v, Active}
	t.live++

	return true
}

// position returns the index of the active slot holding v, or the index of the
// empty slot that ends v's probe sequence.
//
// Tombstones do not end a probe sequence. Members and tombstones never occupy
// more than three quarters of the table, so an empty slot is always reachable.
func (t *Table) position(v string) int {
	n := len(t.slots)
	i := int(t.hash(v) % uint64(n))

	for {
		s := &t.slots[i]

		if s.State == Empty {
			return i
		}

		if s.State == Active && s.Value == v {
			return i
		}

		i++
		if i == n {
			i = 0
		}
	}
}

// rebuild replaces the backing array with one of size n and re-inserts every
// member in slot order, discarding all tombstones.
func (t *Table) rebuild(n int) {
	prev := t.slots

	t.slots = make([]Slot, n)
	t.live = 0
	t.tombstones = 0

	for _, s := range prev {
		if s.State == Active {
			t.put(s.Value)
		}
	}
}
