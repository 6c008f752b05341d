// Package alphabet maps the 26 Latin letters to and from their positions 0-25.
package alphabet

// Size is the number of letters in the working alphabet
const Size = 26

const (
	Lower = "abcdefghijklmnopqrstuvwxyz"
	Upper = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	LowerReversed = "zyxwvutsrqponmlkjihgfedcba"
)

// IsLetter reports whether r is an ASCII letter
func IsLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// IsUpper reports whether r is an upper-case ASCII letter
func IsUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// LetterToIndex returns the alphabet position of r, ignoring case.
// ok is false for anything that is not an ASCII letter.
func LetterToIndex(r rune) (index int, ok bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return int(r - 'a'), true
	case r >= 'A' && r <= 'Z':
		return int(r - 'A'), true
	}
	return 0, false
}

// IndexToLetter returns the letter at position index (reduced mod 26)
func IndexToLetter(index int, upper bool) rune {
	index = Mod(index, Size)
	if upper {
		return rune('A' + index)
	}
	return rune('a' + index)
}

// Mod returns the non-negative remainder of x divided by m
func Mod(x, m int) int {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}

// Encode converts the letters of s to indices, dropping everything else
func Encode(s string) []int {
	out := make([]int, 0, len(s))
	for _, r := range s {
		if i, ok := LetterToIndex(r); ok {
			out = append(out, i)
		}
	}
	return out
}

// Decode converts indices back to lower-case letters
func Decode(stream []int) string {
	buf := make([]byte, len(stream))
	for i, idx := range stream {
		buf[i] = byte(IndexToLetter(idx, false))
	}
	return string(buf)
}

// ApplyIndexFunction maps f over the stream, reducing every result mod 26.
// f receives the position within the stream and the letter index.
func ApplyIndexFunction(stream []int, f func(pos, index int) int) []int {
	out := make([]int, len(stream))
	for pos, idx := range stream {
		out[pos] = Mod(f(pos, idx), Size)
	}
	return out
}
