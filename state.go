package bumpfill

// State is the phase of a single fill operation.
type State uint8

const (
	// Reserving means the block is being obtained from the allocator.
	Reserving State = iota
	// Constructing means elements are being produced into the block.
	Constructing
	// Finished means every slot is live and the slice belongs to the caller.
	Finished
	// Abandoned means the fill stopped early and its live prefix was destroyed.
	Abandoned
)

func (s State) String() string {
	switch s {
	case Reserving:
		return "reserving"
	case Constructing:
		return "constructing"
	case Finished:
		return "finished"
	case Abandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}
