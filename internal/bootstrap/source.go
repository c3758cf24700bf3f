package bootstrap

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// Source hands out random streams. Stream(r) is the stream for replicate r;
// streams for different r, and for sources derived with different labels,
// are independent.
type Source interface {
	Stream(r int) *rand.Rand
	Derive(label string) Source
}

// SeededSource is a deterministic Source built on PCG.
type SeededSource struct {
	seed uint64
}

// NewSource returns a deterministic source for seed.
func NewSource(seed uint64) SeededSource { return SeededSource{seed: seed} }

// RandomSource returns a source with an unpredictable seed.
func RandomSource() SeededSource { return SeededSource{seed: rand.Uint64()} }

// Seed returns the seed the source was built from.
func (s SeededSource) Seed() uint64 { return s.seed }

// Stream returns replicate r's generator.
func (s SeededSource) Stream(r int) *rand.Rand {
	return rand.New(rand.NewPCG(s.seed, uint64(r)))
}

// Derive returns an independent source keyed by label, e.g. "freqs/2/pi".
func (s SeededSource) Derive(label string) Source {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], s.seed)
	d := xxhash.New()
	_, _ = d.Write(b[:])
	_, _ = d.WriteString(label)
	return SeededSource{seed: d.Sum64()}
}
