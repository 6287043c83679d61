// Package cryptorand provides a math/rand source backed by crypto/rand, for
// word picks that shouldn't be predictable from a seed.
package cryptorand

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
)

// New returns a *rand.Rand drawing from the operating system's entropy.
func New() *mrand.Rand {
	return mrand.New(source{})
}

type source struct{}

var _ mrand.Source64 = source{}

func (s source) Int63() int64 {
	return int64(s.Uint64() & (1<<63 - 1))
}

func (source) Uint64() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// Seed is a no-op, the source can't be replayed.
func (source) Seed(int64) {}
