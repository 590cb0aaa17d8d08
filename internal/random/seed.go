// Package random seeds the PRNG that picks noise lines.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// New returns a PRNG seeded with seed, or with a fresh crypto seed when seed
// is zero. The seed actually used is returned so runs can be replayed.
func New(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		var err error
		if seed, err = NewSeed(); err != nil {
			return nil, 0, err
		}
	}
	return rand.New(rand.NewSource(seed)), seed, nil
}
