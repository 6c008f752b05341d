package encryption

import (
	"fmt"

	"github.com/cipherloom-go/internal/alphabet"
	"github.com/cipherloom-go/internal/errors"
)

// DefaultFiller pads blocks and breaks Playfair digraphs unless overridden
const DefaultFiller = 'X'

type options struct {
	filler       rune
	removeFiller *bool
	raw          bool
}

// Option configures the block and digraph ciphers
type Option func(*options)

// WithFiller sets the synthetic letter used for padding. Its case is the case
// the filler takes in the output; decryption must be given the same letter.
func WithFiller(r rune) Option {
	return func(o *options) {
		o.filler = r
	}
}

// WithFillerRemoval controls whether decryption strips detected fillers.
// Hill and Playfair strip by default, Transposition does not.
func WithFillerRemoval(on bool) Option {
	return func(o *options) {
		o.removeFiller = &on
	}
}

// WithRawTransposition makes Transposition permute every character, spaces
// and punctuation included, instead of letters only.
func WithRawTransposition() Option {
	return func(o *options) {
		o.raw = true
	}
}

func buildOptions(opts []Option) (options, error) {
	o := options{filler: DefaultFiller}
	for _, opt := range opts {
		opt(&o)
	}
	if !alphabet.IsLetter(o.filler) {
		return o, errors.NewBadRequest(fmt.Sprintf("filler %q is not an ASCII letter", o.filler))
	}
	return o, nil
}

func (o options) fillerIndex() int {
	idx, _ := alphabet.LetterToIndex(o.filler)
	return idx
}

func (o options) fillerUpper() bool {
	return alphabet.IsUpper(o.filler)
}

func (o options) removal(def bool) bool {
	if o.removeFiller == nil {
		return def
	}
	return *o.removeFiller
}
