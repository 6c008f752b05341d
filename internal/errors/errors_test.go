package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMatchesByCode(t *testing.T) {
	err := NewNonInvertibleKey("affine multiplier 13 shares a factor with 26", nil)
	assert.True(t, Is(err, ErrNonInvertibleKey))
	assert.False(t, Is(err, ErrInvalidKeyShape))

	wrapped := fmt.Errorf("hill: %w", NewInvalidKeyShape("key length 12 is not a square", nil))
	assert.True(t, Is(wrapped, ErrInvalidKeyShape))
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("determinant 0")
	err := NewNonInvertibleKey("hill key", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "hill key: determinant 0", err.Error())
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad request", NewBadRequest("x"), http.StatusBadRequest},
		{"key shape", NewInvalidKeyShape("x", nil), http.StatusBadRequest},
		{"unknown cipher", NewUnknownCipher("enigma"), http.StatusNotFound},
		{"wrapped", fmt.Errorf("ctx: %w", NewUnauthorized("x")), http.StatusUnauthorized},
		{"plain", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToHTTPStatus(tt.err))
		})
	}
}

func TestToJSON(t *testing.T) {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(ToJSON(NewMalformedAlphabet("alphabet has 25 letters")), &body))
	assert.Equal(t, float64(ErrCodeMalformedAlphabet), body["code"])
	assert.Equal(t, "alphabet has 25 letters", body["msg"])

	require.NoError(t, json.Unmarshal(ToJSON(fmt.Errorf("boom")), &body))
	assert.Equal(t, float64(ErrCodeInternal), body["code"])
}
