// Package textfmt separates a message into its alphabetic stream and the
// formatting (case, punctuation, spacing) around it, and puts the two back
// together after a cipher has transformed the stream. It also owns the filler
// letters ciphers insert to satisfy block or digraph constraints.
package textfmt

import (
	"fmt"
	"strings"

	"github.com/cipherloom-go/internal/alphabet"
)

// Slot is one position of a Template. Letter slots are filled from the
// alphabetic stream in order; other slots reproduce Rune verbatim.
type Slot struct {
	Rune   rune
	Letter bool
	Upper  bool
	Filler bool
}

// Template is the punctuation mask of a message: one slot per original rune,
// plus one letter slot for every filler inserted into the stream.
type Template struct {
	slots   []Slot
	letters int
}

// Parse splits text into its template and its alphabetic stream
func Parse(text string) (Template, []int) {
	t := Template{slots: make([]Slot, 0, len(text))}
	stream := make([]int, 0, len(text))
	for _, r := range text {
		if idx, ok := alphabet.LetterToIndex(r); ok {
			t.slots = append(t.slots, Slot{Rune: r, Letter: true, Upper: alphabet.IsUpper(r)})
			stream = append(stream, idx)
			t.letters++
			continue
		}
		t.slots = append(t.slots, Slot{Rune: r})
	}
	return t, stream
}

// ExtractAlphabetic returns the letters of text as alphabet indices
func ExtractAlphabetic(text string) []int {
	return alphabet.Encode(text)
}

// RestoreFormat re-applies the case and punctuation of original onto
// transformed, which must hold exactly one index per letter of original.
func RestoreFormat(original string, transformed []int) string {
	t, _ := Parse(original)
	return t.Render(transformed)
}

// Len returns the number of slots
func (t Template) Len() int {
	return len(t.slots)
}

// Letters returns the number of letter slots, fillers included
func (t Template) Letters() int {
	return t.letters
}

// Render threads stream through the template. A stream whose length differs
// from the number of letter slots is a programming error and panics.
func (t Template) Render(stream []int) string {
	return t.RenderWithout(stream, FillerRecord{})
}

// RenderWithout renders like Render but drops the letters at the positions
// recorded in strip, together with their slots.
func (t Template) RenderWithout(stream []int, strip FillerRecord) string {
	if len(stream) != t.letters {
		panic(fmt.Sprintf("textfmt: template has %d letter slots, stream has %d letters", t.letters, len(stream)))
	}

	var b strings.Builder
	b.Grow(len(t.slots))
	k := 0
	for _, s := range t.slots {
		if !s.Letter {
			b.WriteRune(s.Rune)
			continue
		}
		if !strip.contains(k) {
			b.WriteRune(alphabet.IndexToLetter(stream[k], s.Upper))
		}
		k++
	}
	return b.String()
}

// InsertFillers returns a template with a filler slot for every position in
// positions (ascending, relative to the stream after insertion). Each filler
// slot goes right after the slot of the letter preceding it in the stream,
// so fillers never jump over punctuation that follows their letter.
func (t Template) InsertFillers(positions []int, upper bool) Template {
	out := Template{
		slots:   make([]Slot, 0, len(t.slots)+len(positions)),
		letters: t.letters + len(positions),
	}

	p, k := 0, 0
	flush := func() {
		for k < len(positions) && positions[k] == p {
			out.slots = append(out.slots, Slot{Letter: true, Upper: upper, Filler: true})
			p++
			k++
		}
	}

	flush()
	for _, s := range t.slots {
		out.slots = append(out.slots, s)
		if s.Letter {
			p++
			flush()
		}
	}
	if k != len(positions) {
		panic(fmt.Sprintf("textfmt: filler position %d beyond stream of %d letters", positions[k], out.letters))
	}
	return out
}

// AppendFillers returns a template with count filler slots after every
// existing slot, trailing punctuation included.
func (t Template) AppendFillers(count int, upper bool) Template {
	out := Template{
		slots:   make([]Slot, len(t.slots), len(t.slots)+count),
		letters: t.letters + count,
	}
	copy(out.slots, t.slots)
	for i := 0; i < count; i++ {
		out.slots = append(out.slots, Slot{Letter: true, Upper: upper, Filler: true})
	}
	return out
}
