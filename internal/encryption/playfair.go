package encryption

import (
	"github.com/cipherloom-go/internal/keysched"
	"github.com/cipherloom-go/internal/textfmt"
)

// Playfair enciphers digraphs on a 5×5 keyed square. J is read as I in the
// message, the key and the filler.
type Playfair struct {
	square *keysched.PolybiusSquare
	opts   options
}

// NewPlayfair creates a Playfair cipher. An empty key gives the plain
// alphabetical square.
func NewPlayfair(key string, opts ...Option) (*Playfair, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Playfair{square: keysched.BuildPolybiusSquare(key), opts: o}, nil
}

// Kind returns KindPlayfair
func (p *Playfair) Kind() Kind {
	return KindPlayfair
}

// Square returns the key square
func (p *Playfair) Square() *keysched.PolybiusSquare {
	return p.square
}

// Encrypt separates doubled letters within a digraph with the filler, pads
// to an even length and substitutes each digraph. Fillers appear right after
// the letter they follow.
func (p *Playfair) Encrypt(message string) (string, error) {
	tpl, stream := textfmt.Parse(message)
	f := p.filler()

	broken, dups := textfmt.BreakDigraphDuplicates(foldStream(stream), f)
	padded, pad := textfmt.InsertBlockPadding(broken, 2, f)
	rec := dups.Merge(pad)

	out := p.substitute(padded, 1)
	return tpl.InsertFillers(rec.Positions, p.opts.fillerUpper()).Render(out), nil
}

// Decrypt substitutes each digraph backwards. An odd-length ciphertext is
// padded first. Unless disabled, fillers that the encryption rules would have
// inserted are detected and dropped.
func (p *Playfair) Decrypt(message string) (string, error) {
	tpl, stream := textfmt.Parse(message)
	f := p.filler()

	padded, pad := textfmt.InsertBlockPadding(foldStream(stream), 2, f)
	tpl = tpl.InsertFillers(pad.Positions, p.opts.fillerUpper())

	out := p.substitute(padded, -1)
	if !p.opts.removal(true) {
		return tpl.Render(out), nil
	}
	return tpl.RenderWithout(out, textfmt.DetectDigraphFillers(out, f)), nil
}

func (p *Playfair) filler() int {
	return keysched.FoldLetter(p.opts.fillerIndex())
}

func (p *Playfair) substitute(stream []int, shift int) []int {
	out := make([]int, len(stream))
	for b := 0; b+1 < len(stream); b += 2 {
		x := p.square.Locate(stream[b])
		y := p.square.Locate(stream[b+1])
		switch {
		case x.Row == y.Row:
			out[b] = p.square.At(x.Row, x.Col+shift)
			out[b+1] = p.square.At(y.Row, y.Col+shift)
		case x.Col == y.Col:
			out[b] = p.square.At(x.Row+shift, x.Col)
			out[b+1] = p.square.At(y.Row+shift, y.Col)
		default:
			out[b] = p.square.At(x.Row, y.Col)
			out[b+1] = p.square.At(y.Row, x.Col)
		}
	}
	return out
}

func foldStream(stream []int) []int {
	out := make([]int, len(stream))
	for i, x := range stream {
		out[i] = keysched.FoldLetter(x)
	}
	return out
}
