package taxlot

import "fmt"

// AllocationMethod defines the method for matching a disposal against lots.
type AllocationMethod int

const (
	// FIFO (First-In, First-Out) consumes the oldest lots first.
	FIFO AllocationMethod = iota
	// LIFO (Last-In, First-Out) consumes the newest lots first.
	LIFO
	// AverageCost treats all open lots as one pool with a blended per-share
	// cost; the consumed quantity is spread back pro-rata over the real lots.
	AverageCost
	// SpecificID consumes an explicit, caller-ordered list of lots.
	SpecificID
)

func (m AllocationMethod) String() string {
	switch m {
	case FIFO:
		return "fifo"
	case LIFO:
		return "lifo"
	case AverageCost:
		return "average"
	case SpecificID:
		return "specific"
	default:
		return "unknown"
	}
}

// ParseAllocationMethod parses a string into an AllocationMethod.
func ParseAllocationMethod(s string) (AllocationMethod, error) {
	switch s {
	case "fifo":
		return FIFO, nil
	case "lifo":
		return LIFO, nil
	case "average":
		return AverageCost, nil
	case "specific":
		return SpecificID, nil
	default:
		return 0, fmt.Errorf("unknown allocation method: %q", s)
	}
}
