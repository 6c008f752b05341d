package encryption

import (
	"github.com/cipherloom-go/internal/alphabet"
	"github.com/cipherloom-go/internal/textfmt"
)

// Kind names a cipher family
type Kind string

const (
	KindCaesar         Kind = "caesar"
	KindROT13          Kind = "rot13"
	KindTrithemius     Kind = "trithemius"
	KindAtbash         Kind = "atbash"
	KindMonoalphabetic Kind = "monoalphabetic"
	KindVigenere       Kind = "vigenere"
	KindTransposition  Kind = "transposition"
	KindAffine         Kind = "affine"
	KindHill           Kind = "hill"
	KindPlayfair       Kind = "playfair"
)

// AllKinds lists the built-in cipher families
var AllKinds = []Kind{
	KindCaesar, KindROT13, KindTrithemius, KindAtbash, KindMonoalphabetic,
	KindVigenere, KindTransposition, KindAffine, KindHill, KindPlayfair,
}

// Cipher encrypts and decrypts text with a key bound at construction.
// Non-letters pass through unchanged and letters keep their case.
type Cipher interface {
	// Kind returns the cipher family
	Kind() Kind
	// Encrypt returns the ciphertext of message
	Encrypt(message string) (string, error)
	// Decrypt returns the plaintext of message
	Decrypt(message string) (string, error)
}

// transformLetters runs f over the letters of message and re-applies the
// original formatting.
func transformLetters(message string, f func(pos, index int) int) string {
	tpl, stream := textfmt.Parse(message)
	return tpl.Render(alphabet.ApplyIndexFunction(stream, f))
}
