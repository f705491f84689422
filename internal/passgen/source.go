package passgen

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
)

// Source yields uniform random integers in [0, n).
type Source interface {
	Intn(n int) (int, error)
}

// CryptoSource draws from crypto/rand. It is safe for concurrent use.
type CryptoSource struct{}

func (CryptoSource) Intn(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// SeededSource is a deterministic PCG source. The same seed always yields
// the same sequence. Not safe for concurrent use.
type SeededSource struct {
	rng *mrand.Rand
}

// NewSeededSource returns a SeededSource for seed.
func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{rng: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *SeededSource) Intn(n int) (int, error) {
	return s.rng.IntN(n), nil
}
