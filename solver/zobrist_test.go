package main

import "testing"

func TestComputeHashIsCrateAndPlayerXOR(t *testing.T) {
	old := MaxDim
	MaxDim = 10
	t.Cleanup(func() { MaxDim = old })
	z := GetZobrist(MaxDim)
	crates := []Position{{Row: 1, Col: 1}, {Row: 2, Col: 3}}
	top := Position{Row: 0, Col: 0}

	got := ComputeHash(crates, top, true)
	want := z.Crate(crates[0]) ^ z.Crate(crates[1]) ^ z.Player(top)
	if got != want {
		t.Fatalf("hash mismatch: got %d want %d", got, want)
	}
}

func TestComputeHashOmitsPlayerWhenUnset(t *testing.T) {
	old := MaxDim
	MaxDim = 10
	t.Cleanup(func() { MaxDim = old })
	crates := []Position{{Row: 1, Col: 1}}
	withPlayer := ComputeHash(crates, Position{Row: 5, Col: 5}, true)
	withoutPlayer := ComputeHash(crates, Position{Row: 5, Col: 5}, false)
	if withPlayer == withoutPlayer {
		t.Fatalf("expected hash to differ when top_reachable is unset")
	}
}

func TestComputeHashStableAcrossCrateOrder(t *testing.T) {
	old := MaxDim
	MaxDim = 10
	t.Cleanup(func() { MaxDim = old })
	a := []Position{{Row: 1, Col: 1}, {Row: 2, Col: 2}}
	b := []Position{{Row: 2, Col: 2}, {Row: 1, Col: 1}}
	if ComputeHash(a, Position{}, false) != ComputeHash(b, Position{}, false) {
		t.Fatalf("expected XOR hash to be order-independent")
	}
}

func TestGetZobristIsCachedPerSize(t *testing.T) {
	a := GetZobrist(20)
	b := GetZobrist(20)
	if a != b {
		t.Fatalf("expected GetZobrist to return the same table for a repeated size")
	}
}
