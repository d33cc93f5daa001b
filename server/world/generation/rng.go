package generation

import "math/rand"

// chunkSeed mixes the pipeline seed, a chunk position, and a per-stage salt into a single deterministic
// 64-bit value. It is the only source of pseudo-randomness builtin stages use, so that every stochastic
// decision remains a pure function of (seed, coords, stage-specific parameters) — no wall-clock, no
// goroutine id, no shared *rand.Rand.
func chunkSeed(seed, chunkX, chunkZ int32, salt int64) int64 {
	h := uint64(seed)*0x9E3779B97F4A7C15 + uint64(uint32(chunkX))*0xBF58476D1CE4E5B9 + uint64(uint32(chunkZ))*0x94D049BB133111EB + uint64(salt)
	// SplitMix64 finishing mix, to spread the low bits of the linear combination above across the whole
	// word before it's used to seed a PRNG.
	h ^= h >> 30
	h *= 0xBF58476D1CE4E5B9
	h ^= h >> 27
	h *= 0x94D049BB133111EB
	h ^= h >> 31
	return int64(h)
}

// chunkRand returns a *rand.Rand seeded deterministically from (seed, chunkX, chunkZ, salt). Every call
// with the same arguments produces a generator in the same initial state.
func chunkRand(seed, chunkX, chunkZ int32, salt int64) *rand.Rand {
	return rand.New(rand.NewSource(chunkSeed(seed, chunkX, chunkZ, salt)))
}
