package encryption

import (
	"github.com/cipherloom-go/internal/alphabet"
	"github.com/cipherloom-go/internal/keysched"
	"github.com/cipherloom-go/internal/textfmt"
)

// Vigenere shifts the n-th letter by the n-th letter of the repeated key.
// Punctuation in the message does not consume key letters.
type Vigenere struct {
	key []int
}

// NewVigenere creates a Vigenère cipher. Non-letters in key are ignored.
func NewVigenere(key string) (*Vigenere, error) {
	letters, err := keysched.KeyLetters(key)
	if err != nil {
		return nil, err
	}
	return &Vigenere{key: letters}, nil
}

// Kind returns KindVigenere
func (v *Vigenere) Kind() Kind {
	return KindVigenere
}

// Encrypt adds the key stream
func (v *Vigenere) Encrypt(message string) (string, error) {
	return v.apply(message, 1), nil
}

// Decrypt subtracts the key stream
func (v *Vigenere) Decrypt(message string) (string, error) {
	return v.apply(message, -1), nil
}

func (v *Vigenere) apply(message string, sign int) string {
	tpl, stream := textfmt.Parse(message)
	ks := keysched.RepeatKey(v.key, len(stream))
	return tpl.Render(alphabet.ApplyIndexFunction(stream, func(pos, i int) int {
		return i + sign*ks[pos]
	}))
}
