// Package random implements the xoroshiro128+ generator used by every
// simulation. The generator state is part of persisted game state, so the
// step function and seed expansion must never change.
package random

import (
	"encoding/json"
	"fmt"
	"math"
	"math/bits"
)

const (
	seedMix0 uint64 = 0x193a6754a8a7d469
	seedMix1 uint64 = 0x97830e05113ba7bb
)

// Gen is a xoroshiro128+ pseudo-random generator.
type Gen struct {
	state [2]uint64
}

// New creates a generator seeded from the given value.
func New(seed uint32) *Gen {
	g := &Gen{}
	g.ResetSeed(seed)
	return g
}

// NewChild derives an independent generator by drawing two values from parent.
func NewChild(parent *Gen) *Gen {
	a := parent.NextU64()
	b := parent.NextU64()
	return &Gen{state: [2]uint64{a, b}}
}

// FromState rebuilds a generator from a raw state vector.
func FromState(s0, s1 uint64) *Gen {
	return &Gen{state: [2]uint64{s0, s1}}
}

// ResetSeed reinitializes the generator in place.
func (g *Gen) ResetSeed(seed uint32) {
	g.state = [2]uint64{seedMix0 ^ uint64(seed), seedMix1}
}

// State returns a copy of the internal state vector.
func (g *Gen) State() [2]uint64 {
	return g.state
}

// Clone returns an independent copy with identical state.
func (g *Gen) Clone() *Gen {
	c := *g
	return &c
}

// NextU64 advances the generator and returns the next value.
func (g *Gen) NextU64() uint64 {
	s0 := g.state[0]
	s1 := g.state[1]
	result := s0 + s1

	s1 ^= s0
	g.state[0] = bits.RotateLeft64(s0, 55) ^ s1 ^ (s1 << 14)
	g.state[1] = bits.RotateLeft64(s1, 36)

	return result
}

// NextU32 returns the low 32 bits of the next value.
func (g *Gen) NextU32() uint32 {
	return uint32(g.NextU64()) //#nosec G115 -- truncation is the definition
}

// Intn returns a value in [0, n). It panics if n <= 0 or n overflows uint32.
func (g *Gen) Intn(n int) int {
	if n <= 0 || uint64(n) > math.MaxUint32 {
		panic(fmt.Sprintf("random: Intn called with n=%d", n))
	}
	return int(g.below(uint32(n))) //#nosec G115 -- range checked above
}

// below samples [0, n) by widening multiply, rejecting low halves above the
// zone. Each attempt consumes one NextU32, so the draw count per sample must
// never change.
func (g *Gen) below(n uint32) uint32 {
	zone := (n << bits.LeadingZeros32(n)) - 1
	for {
		hi, lo := bits.Mul32(g.NextU32(), n)
		if lo <= zone {
			return hi
		}
	}
}

// Choose returns a uniformly chosen index into a slice of length n and
// whether n was non-zero. The generator only advances when n > 0.
func (g *Gen) Choose(n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	return g.Intn(n), true
}

type genJSON struct {
	State [2]uint64 `json:"state"`
}

// MarshalJSON encodes the generator as {"state":[s0,s1]}.
func (g *Gen) MarshalJSON() ([]byte, error) {
	return json.Marshal(genJSON{State: g.state})
}

// UnmarshalJSON restores a generator encoded by MarshalJSON.
func (g *Gen) UnmarshalJSON(data []byte) error {
	var raw genJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("random: decode state: %w", err)
	}
	g.state = raw.State
	return nil
}
