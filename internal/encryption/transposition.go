package encryption

import (
	"fmt"

	"github.com/cipherloom-go/internal/errors"
	"github.com/cipherloom-go/internal/keysched"
	"github.com/cipherloom-go/internal/textfmt"
)

// Transposition is a columnar transposition: the message is written row by
// row under the key and read out column by column in key-letter order.
type Transposition struct {
	order []int
	opts  options
}

// NewTransposition creates a columnar transposition cipher. The number of
// columns is the number of letters in key.
func NewTransposition(key string, opts ...Option) (*Transposition, error) {
	letters, err := keysched.KeyLetters(key)
	if err != nil {
		return nil, err
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Transposition{order: keysched.ColumnOrder(letters), opts: o}, nil
}

// Kind returns KindTransposition
func (t *Transposition) Kind() Kind {
	return KindTransposition
}

// Encrypt pads the message to whole rows with the filler and reads columns.
// Filler letters are appended after the last character of the message.
func (t *Transposition) Encrypt(message string) (string, error) {
	if t.opts.raw {
		runes := []rune(message)
		for pad := textfmt.PaddingLength(len(runes), len(t.order)); pad > 0; pad-- {
			runes = append(runes, t.opts.filler)
		}
		return string(readColumns(runes, t.order)), nil
	}

	tpl, stream := textfmt.Parse(message)
	padded, rec := textfmt.InsertBlockPadding(stream, len(t.order), t.opts.fillerIndex())
	out := readColumns(padded, t.order)
	return tpl.AppendFillers(rec.Len(), t.opts.fillerUpper()).Render(out), nil
}

// Decrypt writes the columns back and reads rows. Trailing fillers are
// stripped only when WithFillerRemoval(true) was given.
func (t *Transposition) Decrypt(message string) (string, error) {
	strip := t.opts.removal(false)

	if t.opts.raw {
		runes := []rune(message)
		if err := t.checkLength(len(runes)); err != nil {
			return "", err
		}
		out := writeColumns(runes, t.order)
		if strip {
			out = trimTrailing(out, t.opts.filler, len(t.order)-1)
		}
		return string(out), nil
	}

	tpl, stream := textfmt.Parse(message)
	if err := t.checkLength(len(stream)); err != nil {
		return "", err
	}
	out := writeColumns(stream, t.order)
	if !strip {
		return tpl.Render(out), nil
	}
	return tpl.RenderWithout(out, textfmt.DetectBlockPadding(out, len(t.order), t.opts.fillerIndex())), nil
}

func (t *Transposition) checkLength(n int) error {
	if n%len(t.order) != 0 {
		return errors.NewBadRequest(fmt.Sprintf("ciphertext length %d is not a multiple of the key length %d", n, len(t.order)))
	}
	return nil
}

func readColumns[T any](in []T, order []int) []T {
	cols := len(order)
	rows := len(in) / cols
	out := make([]T, 0, len(in))
	for _, col := range order {
		for r := 0; r < rows; r++ {
			out = append(out, in[r*cols+col])
		}
	}
	return out
}

func writeColumns[T any](in []T, order []int) []T {
	cols := len(order)
	rows := len(in) / cols
	out := make([]T, len(in))
	for j, col := range order {
		for r := 0; r < rows; r++ {
			out[r*cols+col] = in[j*rows+r]
		}
	}
	return out
}

func trimTrailing(runes []rune, filler rune, limit int) []rune {
	n := len(runes)
	for n > 0 && len(runes)-n < limit && runes[n-1] == filler {
		n--
	}
	return runes[:n]
}
