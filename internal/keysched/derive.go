package keysched

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/pbkdf2"

	"github.com/cipherloom-go/internal/alphabet"
)

const (
	deriveSalt       = "cipherloom-alphabet"
	deriveIterations = 1000
)

// DeriveAlphabet expands a passphrase into a substitution alphabet: PBKDF2
// stretches it into a ChaCha20 key whose keystream drives a Fisher-Yates
// shuffle of a-z. The same passphrase always yields the same alphabet.
func DeriveAlphabet(passphrase string) (string, error) {
	if passphrase == "" {
		return "", fmt.Errorf("derive alphabet: empty passphrase")
	}

	key := pbkdf2.Key([]byte(passphrase), []byte(deriveSalt), deriveIterations, chacha20.KeySize, sha256.New)
	nonce := make([]byte, chacha20.NonceSize)
	stream, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return "", fmt.Errorf("failed to create ChaCha20 cipher: %w", err)
	}

	letters := []byte(alphabet.Lower)
	buf := make([]byte, 4)
	for i := len(letters) - 1; i > 0; i-- {
		for j := range buf {
			buf[j] = 0
		}
		stream.XORKeyStream(buf, buf)
		j := int(binary.LittleEndian.Uint32(buf) % uint32(i+1))
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters), nil
}
