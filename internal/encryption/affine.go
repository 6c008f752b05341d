package encryption

import (
	"fmt"

	"github.com/cipherloom-go/internal/alphabet"
	"github.com/cipherloom-go/internal/errors"
	"github.com/cipherloom-go/internal/modmath"
)

// Affine maps letter i to a*i + b mod 26
type Affine struct {
	a, b int
	aInv int
}

// NewAffine creates an Affine cipher. a must be coprime with 26.
func NewAffine(a, b int) (*Affine, error) {
	aInv, err := modmath.ModInverse(a, alphabet.Size)
	if err != nil {
		return nil, errors.NewNonInvertibleKey(fmt.Sprintf("affine multiplier %d is not coprime with 26", a), err)
	}
	return &Affine{a: alphabet.Mod(a, alphabet.Size), b: alphabet.Mod(b, alphabet.Size), aInv: aInv}, nil
}

// Kind returns KindAffine
func (c *Affine) Kind() Kind {
	return KindAffine
}

// Encrypt computes a*i + b
func (c *Affine) Encrypt(message string) (string, error) {
	return transformLetters(message, func(_, i int) int { return c.a*i + c.b }), nil
}

// Decrypt computes a^-1 * (i - b)
func (c *Affine) Decrypt(message string) (string, error) {
	return transformLetters(message, func(_, i int) int { return c.aInv * (i - c.b) }), nil
}
