package keysched

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherloom-go/internal/alphabet"
	"github.com/cipherloom-go/internal/errors"
)

func TestKeyLetters(t *testing.T) {
	got, err := KeyLetters("K-e y!")
	require.NoError(t, err)
	assert.Equal(t, []int{10, 4, 24}, got)

	_, err = KeyLetters("123 !")
	assert.True(t, errors.Is(err, errors.ErrInvalidKey))
}

func TestRepeatKey(t *testing.T) {
	key := alphabet.Encode("key")
	assert.Equal(t, "keykeykeyk", alphabet.Decode(RepeatKey(key, 10)))
	assert.Equal(t, "ke", alphabet.Decode(RepeatKey(key, 2)))
	assert.Empty(t, RepeatKey(key, 0))
	assert.Nil(t, RepeatKey(nil, 4))
}

func TestColumnOrder(t *testing.T) {
	tests := []struct {
		key  string
		want []int
	}{
		{"key", []int{1, 0, 2}},
		{"cheese", []int{0, 2, 3, 5, 1, 4}},
		{"hello", []int{1, 0, 2, 3, 4}},
		{"a", []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, ColumnOrder(alphabet.Encode(tt.key)))
		})
	}
}

func TestBuildPolybiusSquare(t *testing.T) {
	sq := BuildPolybiusSquare("Playfair example")
	assert.Equal(t, "p l a y f\ni r e x m\nb c d g h\nk n o q s\nt u v w z", sq.String())

	c := sq.Locate(alphabet.Encode("e")[0])
	assert.Equal(t, Cell{Row: 1, Col: 2}, c)
	assert.Equal(t, sq.Locate(MergeTarget), sq.Locate(MergedLetter))
	assert.Equal(t, alphabet.Encode("p")[0], sq.At(5, -5))
}

func TestBuildPolybiusSquareEmptyKey(t *testing.T) {
	sq := BuildPolybiusSquare("")
	assert.Equal(t, "a b c d e\nf g h i k\nl m n o p\nq r s t u\nv w x y z", sq.String())
}

func TestPolybiusSquareHasEveryLetterOnce(t *testing.T) {
	for _, key := range []string{"", "mango", "Diamond", "jjjjj", "The quick brown fox"} {
		sq := BuildPolybiusSquare(key)
		seen := map[int]bool{}
		for r := 0; r < SquareSize; r++ {
			for c := 0; c < SquareSize; c++ {
				idx := sq.At(r, c)
				assert.False(t, seen[idx], "key %q repeats %d", key, idx)
				assert.NotEqual(t, MergedLetter, idx)
				seen[idx] = true
			}
		}
		assert.Len(t, seen, 25)
	}
}

func TestDeriveAlphabet(t *testing.T) {
	a, err := DeriveAlphabet("correct horse battery staple")
	require.NoError(t, err)
	b, err := DeriveAlphabet("correct horse battery staple")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	sorted := []byte(a)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	assert.Equal(t, alphabet.Lower, string(sorted))

	other, err := DeriveAlphabet("tr0ub4dor")
	require.NoError(t, err)
	assert.NotEqual(t, a, other)

	_, err = DeriveAlphabet("")
	assert.Error(t, err)
}
