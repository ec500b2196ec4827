package main

// Push is one crate push: the index of the crate being pushed, in a
// direction. It is the sole unit the A* driver plans over; player-only
// movement between pushes is implicit.
type Push struct {
	CrateIndex int       `json:"crate_index"`
	Direction  Direction `json:"direction"`
}

func NewPush(crateIndex int, dir Direction) Push {
	return Push{CrateIndex: crateIndex, Direction: dir}
}

func (p Push) Equals(other Push) bool {
	return p.CrateIndex == other.CrateIndex && p.Direction == other.Direction
}
