package main

// CrateAtExcluding is CrateAt but ignores the crate currently being moved,
// which still occupies its pre-push cell and is never itself a blocker for
// its own destination.
func (s *State) CrateAtExcluding(p Position, excluded int) int {
	for i, c := range s.Crates {
		if i == excluded {
			continue
		}
		if c == p {
			return i
		}
	}
	return -1
}

// TryPush evaluates pushing the crate at crateIndex in direction d. On
// success it returns a new, independent State; on rejection it returns
// (nil, false) and leaves s untouched — the function is pure. cfg picks
// the heuristic used to score the successor state.
func TryPush(s *State, crateIndex int, d Direction, cfg Config) (*State, bool) {
	lvl := s.Level
	crate := s.Crates[crateIndex]
	q := Move(crate, d)

	if !lvl.InBounds(q) || lvl.IsWall(q) {
		return nil, false
	}
	if s.CrateAtExcluding(q, crateIndex) >= 0 {
		return nil, false
	}
	if lvl.IsDead(q) {
		return nil, false
	}
	if isFreezeDeadlock(s, crateIndex, d, q) {
		return nil, false
	}

	next := s.Clone()
	next.Player = crate
	next.TopReachableSet = false
	next.TopReachable = Position{}

	z := GetZobrist(MaxDim)
	next.Hash = s.Hash ^ z.Crate(crate) ^ z.Crate(q)
	next.Crates[crateIndex] = q
	next.Heuristic = Heuristic(next, cfg)
	return next, true
}

// isFreezeDeadlock is the classical "two adjacent crates locked against a
// wall" check: for each direction nd perpendicular to the push, if q's
// neighbor there is a wall or another crate, and the neighbor along the
// push axis (d') is another crate, and the diagonal corner they share is
// itself wall or crate, the four cells form a frozen 2x2 block — unless
// both q and the other crate's cell are goals, in which case it is safe.
func isFreezeDeadlock(s *State, crateIndex int, d Direction, q Position) bool {
	lvl := s.Level
	for _, nd := range [2]Direction{d.Next(), d.Prev()} {
		ndCell := Move(q, nd)
		ndBlocked := lvl.IsWall(ndCell) || s.CrateAtExcluding(ndCell, crateIndex) >= 0
		if !ndBlocked {
			continue
		}
		for _, dPrime := range [2]Direction{d, d.Opposite()} {
			otherCell := Move(q, dPrime)
			otherCrate := s.CrateAtExcluding(otherCell, crateIndex)
			if otherCrate < 0 {
				continue
			}
			corner := Move(otherCell, nd)
			cornerBlocked := lvl.IsWall(corner) || s.CrateAtExcluding(corner, crateIndex) >= 0
			if !cornerBlocked {
				continue
			}
			if lvl.IsGoal(q) && lvl.IsGoal(otherCell) {
				continue
			}
			return true
		}
	}
	return false
}
