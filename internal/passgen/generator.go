// Package passgen validates password lengths and generates passwords from a
// pool of enabled character classes.
package passgen

import (
	"fmt"
	"strings"
)

// Generator builds passwords by sampling its Source.
type Generator struct {
	src Source
}

// NewGenerator returns a Generator backed by src. A nil src falls back to
// CryptoSource.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = CryptoSource{}
	}
	return &Generator{src: src}
}

// Generate returns a password of exactly length characters, each drawn
// independently and with replacement from the pool of enabled classes.
func (g *Generator) Generate(length int, classes ClassSet) (string, error) {
	if _, err := checkLength(length); err != nil {
		return "", err
	}

	pool := classes.Pool()
	if pool == "" {
		return "", ErrEmptyPool
	}

	var sb strings.Builder
	sb.Grow(length)

	for i := 0; i < length; i++ {
		idx, err := g.src.Intn(len(pool))
		if err != nil {
			return "", fmt.Errorf("drawing random index: %w", err)
		}
		sb.WriteByte(pool[idx])
	}

	return sb.String(), nil
}

// Generate is a convenience for NewGenerator(CryptoSource{}).Generate.
func Generate(length int, classes ClassSet) (string, error) {
	return NewGenerator(CryptoSource{}).Generate(length, classes)
}
