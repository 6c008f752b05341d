// Package modmath implements the modular arithmetic and small integer matrix
// algebra used by the Affine and Hill ciphers. All arithmetic is exact.
package modmath

import (
	"errors"

	"github.com/cipherloom-go/internal/alphabet"
)

var (
	// ErrNotInvertible is returned when no modular inverse exists
	ErrNotInvertible = errors.New("modular inverse does not exist")
	// ErrNotSquare is returned when values cannot form a square matrix
	ErrNotSquare = errors.New("length is not a perfect square")
)

// GCD returns the non-negative greatest common divisor of a and b
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ExtendedEuclid returns g = gcd(a, b) and x, y with a*x + b*y = g.
// a and b are expected to be non-negative.
func ExtendedEuclid(a, b int) (g, x, y int) {
	if a == 0 {
		return b, 0, 1
	}
	g, x1, y1 := ExtendedEuclid(b%a, a)
	return g, y1 - (b/a)*x1, x1
}

// ModInverse returns x in [0, m) with a*x ≡ 1 (mod m)
func ModInverse(a, m int) (int, error) {
	g, x, _ := ExtendedEuclid(alphabet.Mod(a, m), m)
	if g != 1 {
		return 0, ErrNotInvertible
	}
	return alphabet.Mod(x, m), nil
}
