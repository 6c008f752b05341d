package encryption

import (
	"fmt"

	"github.com/cipherloom-go/internal/alphabet"
	"github.com/cipherloom-go/internal/errors"
	"github.com/cipherloom-go/internal/keysched"
	"github.com/cipherloom-go/internal/modmath"
	"github.com/cipherloom-go/internal/textfmt"
)

// Hill multiplies blocks of n letters, taken as column vectors, by an n×n key
// matrix filled row by row from the key letters.
type Hill struct {
	key     modmath.Matrix
	inverse modmath.Matrix
	opts    options
}

// MaxHillBlockSize bounds the key matrix at 16×16 (256 letters)
const MaxHillBlockSize = 16

// NewHill creates a Hill cipher. The key must have a square number of letters
// and its matrix must be invertible mod 26. Only letters count towards the
// key length, so "CD FH" is the 2×2 key "CDFH". Keys above MaxHillBlockSize
// are rejected as InvalidKeyShape.
func NewHill(key string, opts ...Option) (*Hill, error) {
	letters, err := keysched.KeyLetters(key)
	if err != nil {
		return nil, err
	}
	if n, _ := modmath.SquareRoot(len(letters)); n > MaxHillBlockSize {
		return nil, errors.NewInvalidKeyShape(fmt.Sprintf("hill key has %d letters, limit is %d", len(letters), MaxHillBlockSize*MaxHillBlockSize), nil)
	}
	m, err := modmath.SquareFromSlice(letters)
	if err != nil {
		return nil, errors.NewInvalidKeyShape(fmt.Sprintf("hill key has %d letters", len(letters)), err)
	}
	inv, err := m.InverseMod(alphabet.Size)
	if err != nil {
		return nil, errors.NewNonInvertibleKey("hill key matrix has no inverse mod 26", err)
	}
	if !m.Mul(inv, alphabet.Size).Equal(modmath.Identity(m.Size())) {
		return nil, errors.NewInternal("hill key inverse check failed")
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Hill{key: m, inverse: inv, opts: o}, nil
}

// Kind returns KindHill
func (h *Hill) Kind() Kind {
	return KindHill
}

// BlockSize returns n
func (h *Hill) BlockSize() int {
	return h.key.Size()
}

// Encrypt pads to whole blocks with the filler, which is appended after the
// last character of the message.
func (h *Hill) Encrypt(message string) (string, error) {
	tpl, stream := textfmt.Parse(message)
	padded, rec := textfmt.InsertBlockPadding(stream, h.BlockSize(), h.opts.fillerIndex())
	out := multiplyBlocks(h.key, padded)
	return tpl.AppendFillers(rec.Len(), h.opts.fillerUpper()).Render(out), nil
}

// Decrypt multiplies by the inverse key. Unless disabled, a trailing run of
// up to n-1 filler letters is treated as padding and dropped.
func (h *Hill) Decrypt(message string) (string, error) {
	tpl, stream := textfmt.Parse(message)
	n := h.BlockSize()
	if len(stream)%n != 0 {
		return "", errors.NewBadRequest(fmt.Sprintf("ciphertext has %d letters, not a multiple of the block size %d", len(stream), n))
	}
	out := multiplyBlocks(h.inverse, stream)
	if !h.opts.removal(true) {
		return tpl.Render(out), nil
	}
	return tpl.RenderWithout(out, textfmt.DetectBlockPadding(out, n, h.opts.fillerIndex())), nil
}

func multiplyBlocks(m modmath.Matrix, stream []int) []int {
	n := m.Size()
	out := make([]int, 0, len(stream))
	for b := 0; b < len(stream); b += n {
		out = append(out, m.MulVec(stream[b:b+n], alphabet.Size)...)
	}
	return out
}
