package encryption

import "github.com/cipherloom-go/internal/alphabet"

// Caesar shifts every letter by a fixed amount
type Caesar struct {
	kind  Kind
	shift int
}

// NewCaesar creates a Caesar cipher. Negative shifts move left.
func NewCaesar(shift int) *Caesar {
	return &Caesar{kind: KindCaesar, shift: alphabet.Mod(shift, alphabet.Size)}
}

// NewROT13 creates the self-inverse Caesar cipher with shift 13
func NewROT13() *Caesar {
	return &Caesar{kind: KindROT13, shift: 13}
}

// Kind returns KindCaesar or KindROT13
func (c *Caesar) Kind() Kind {
	return c.kind
}

// Encrypt shifts letters forward
func (c *Caesar) Encrypt(message string) (string, error) {
	return transformLetters(message, func(_, i int) int { return i + c.shift }), nil
}

// Decrypt shifts letters back
func (c *Caesar) Decrypt(message string) (string, error) {
	return transformLetters(message, func(_, i int) int { return i - c.shift }), nil
}

// Trithemius is a progressive Caesar: the n-th letter is shifted by
// n + initialShift, forward when ascending and backward otherwise.
type Trithemius struct {
	ascending    bool
	initialShift int
}

// NewTrithemius creates a Trithemius cipher
func NewTrithemius(ascending bool, initialShift int) *Trithemius {
	return &Trithemius{ascending: ascending, initialShift: alphabet.Mod(initialShift, alphabet.Size)}
}

// Kind returns KindTrithemius
func (t *Trithemius) Kind() Kind {
	return KindTrithemius
}

// Encrypt applies the progressive shift
func (t *Trithemius) Encrypt(message string) (string, error) {
	return t.apply(message, 1), nil
}

// Decrypt applies the progressive shift in the opposite direction
func (t *Trithemius) Decrypt(message string) (string, error) {
	return t.apply(message, -1), nil
}

func (t *Trithemius) apply(message string, dir int) string {
	sign := dir
	if !t.ascending {
		sign = -dir
	}
	return transformLetters(message, func(pos, i int) int {
		return i + sign*(pos%alphabet.Size+t.initialShift)
	})
}
