// Package keysched turns user keys into the schedules ciphers consume:
// repeated letter streams, column orders and Polybius squares.
package keysched

import (
	"sort"

	"github.com/cipherloom-go/internal/alphabet"
	"github.com/cipherloom-go/internal/errors"
)

// KeyLetters returns the letters of key as indices. Non-letters are ignored
// and an empty result is an invalid key.
func KeyLetters(key string) ([]int, error) {
	letters := alphabet.Encode(key)
	if len(letters) == 0 {
		return nil, errors.NewInvalidKey("key must contain at least one letter")
	}
	return letters, nil
}

// RepeatKey tiles key over n positions
func RepeatKey(key []int, n int) []int {
	if len(key) == 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = key[i%len(key)]
	}
	return out
}

// ColumnOrder returns the column indices of key sorted by their letter.
// Equal letters keep their original order.
func ColumnOrder(key []int) []int {
	order := make([]int, len(key))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return key[order[i]] < key[order[j]]
	})
	return order
}
