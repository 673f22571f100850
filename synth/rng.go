// SPDX-License-Identifier: MIT

package synth

import "math/rand"

// DefaultSeed is used when a caller passes seed 0.
const DefaultSeed int64 = 1

// NewRand returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// mixSeed is a SplitMix64 finalizer over (parent, stream).
func mixSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// Stream identifiers for DeriveRand. Each pipeline stage draws from its own
// stream so that, for example, changing the sample count does not change
// the initial weights.
const (
	StreamSamples uint64 = iota + 1
	StreamWeights
	StreamShuffle
	StreamEquity
	StreamDemand
)

// DeriveRand returns an independent stream derived from seed (same zero
// policy as NewRand) and a stream identifier.
//
// math/rand.Rand is not goroutine-safe; derive one stream per consumer.
func DeriveRand(seed int64, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(mixSeed(seed, stream)))
}
