package encryption

import (
	"fmt"

	"github.com/cipherloom-go/internal/alphabet"
	"github.com/cipherloom-go/internal/errors"
)

// Monoalphabetic substitutes each letter through a fixed 26-letter table
type Monoalphabetic struct {
	kind    Kind
	forward [alphabet.Size]int
	inverse [alphabet.Size]int
}

// NewMonoalphabetic creates a substitution cipher mapping a-z onto key.
// key must be exactly 26 letters; whether it is a permutation is not checked,
// and decrypting with a key that repeats letters gives unspecified output.
func NewMonoalphabetic(key string) (*Monoalphabetic, error) {
	return NewSubstitution(alphabet.Lower, key)
}

// NewAtbash creates the self-inverse substitution a<->z, b<->y, ...
func NewAtbash() *Monoalphabetic {
	m, _ := NewSubstitution(alphabet.Lower, alphabet.LowerReversed)
	m.kind = KindAtbash
	return m
}

// NewSubstitution creates a cipher translating source[i] to target[i]
func NewSubstitution(source, target string) (*Monoalphabetic, error) {
	src, err := substitutionAlphabet(source)
	if err != nil {
		return nil, err
	}
	dst, err := substitutionAlphabet(target)
	if err != nil {
		return nil, err
	}

	m := &Monoalphabetic{kind: KindMonoalphabetic}
	for i := range src {
		m.forward[src[i]] = dst[i]
		m.inverse[dst[i]] = src[i]
	}
	return m, nil
}

func substitutionAlphabet(s string) ([]int, error) {
	runes := []rune(s)
	letters := alphabet.Encode(s)
	if len(runes) != alphabet.Size || len(letters) != alphabet.Size {
		return nil, errors.NewMalformedAlphabet(fmt.Sprintf("substitution alphabet must be 26 letters, got %q", s))
	}
	return letters, nil
}

// Kind returns KindMonoalphabetic or KindAtbash
func (m *Monoalphabetic) Kind() Kind {
	return m.kind
}

// Encrypt translates through the forward table
func (m *Monoalphabetic) Encrypt(message string) (string, error) {
	return transformLetters(message, func(_, i int) int { return m.forward[i] }), nil
}

// Decrypt translates through the inverse table
func (m *Monoalphabetic) Decrypt(message string) (string, error) {
	return transformLetters(message, func(_, i int) int { return m.inverse[i] }), nil
}
