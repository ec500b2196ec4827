package main

import "sync"

// ZobristTable holds two process-wide tables of independent 64-bit random
// values, one per cell key for crates and one for the normalized player
// zone representative, per the spec's resolution of the source's 30-bit
// open question: splitmix64 output is used directly as a 64-bit value.
type ZobristTable struct {
	size   int
	crate  []uint64
	player []uint64
}

type zobristStore struct {
	mu     sync.Mutex
	tables map[int]*ZobristTable
}

var zobristTables = &zobristStore{tables: make(map[int]*ZobristTable)}

// GetZobrist returns the process-wide table sized for a MAX_DIM of size,
// generating it on first use.
func GetZobrist(size int) *ZobristTable {
	zobristTables.mu.Lock()
	defer zobristTables.mu.Unlock()
	if table, ok := zobristTables.tables[size]; ok {
		return table
	}
	rng := splitmix64{state: uint64(0x9e3779b97f4a7c15) ^ uint64(size)}
	table := &ZobristTable{
		size:   size,
		crate:  make([]uint64, size*size),
		player: make([]uint64, size*size),
	}
	for i := range table.crate {
		table.crate[i] = rng.next()
	}
	for i := range table.player {
		table.player[i] = rng.next()
	}
	zobristTables.tables[size] = table
	return table
}

// Crate returns Z_crate[p].
func (z *ZobristTable) Crate(p Position) uint64 {
	return z.crate[Key(p, z.size)]
}

// Player returns Z_player[p].
func (z *ZobristTable) Player(p Position) uint64 {
	return z.player[Key(p, z.size)]
}

// ComputeHash recomputes a state's hash from scratch: the XOR of every
// crate's Z_crate contribution plus Z_player[top_reachable] when set. Used
// to seed the initial state and as a property-test oracle against the
// incremental updates applied elsewhere.
func ComputeHash(crates []Position, topReachable Position, topReachableSet bool) uint64 {
	z := GetZobrist(MaxDim)
	var hash uint64
	for _, c := range crates {
		hash ^= z.Crate(c)
	}
	if topReachableSet {
		hash ^= z.Player(topReachable)
	}
	return hash
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
