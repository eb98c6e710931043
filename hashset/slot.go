package hashset

// SlotState is the state of a [Slot] in a table's backing array.
type SlotState uint8

const (
	// Empty is the state of a slot that has never held a member.
	Empty SlotState = iota

	// Active is the state of a slot that holds a member.
	Active

	// Deleted is the state of a slot whose member has been removed. The slot
	// remains occupied for the purpose of probing until the table is rebuilt.
	Deleted
)

func (s SlotState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Active:
		return "active"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Slot is a single entry in a table's backing array.
type Slot struct {
	// Value is the member most recently written to the slot. It is retained
	// after the member is removed.
	Value string

	State SlotState
}
