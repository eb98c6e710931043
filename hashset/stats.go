package hashset

// Stats is a snapshot of a table's occupancy.
type Stats struct {
	// Live is the number of members.
	Live int

	// Tombstones is the number of slots holding a removed member.
	Tombstones int

	// Capacity is the size of the backing array.
	Capacity int

	// Rehashes is the number of times the table has grown.
	Rehashes int

	// Compactions is the number of times the table has been rebuilt at the
	// same capacity to reclaim tombstones.
	Compactions int
}

// LoadFactor returns the ratio of members to capacity.
func (s Stats) LoadFactor() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Live) / float64(s.Capacity)
}

// Stats returns a snapshot of the table's occupancy.
func (t *Table) Stats() Stats {
	return Stats{
		Live:        t.live,
		Tombstones:  t.tombstones,
		Capacity:    len(t.slots),
		Rehashes:    t.rehashes,
		Compactions: t.compactions,
	}
}
